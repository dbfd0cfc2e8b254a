// Package document renders the assembled markdown document: instruction
// preamble, directory tree, per-file numbered content, and totals summary.
package document

import (
	"bufio"
	"io"
)

const lineTerminator = "\n"

// Sink provides ordered sequential line writes over an output writer. After
// the first write failure every subsequent write is a no-op and the error is
// reported by Flush.
type Sink struct {
	writer     *bufio.Writer
	writeError error
}

// NewSink wraps writer in a buffered line sink.
func NewSink(writer io.Writer) *Sink {
	return &Sink{writer: bufio.NewWriter(writer)}
}

// WriteLine writes text followed by a line terminator.
func (sink *Sink) WriteLine(text string) {
	if sink.writeError != nil {
		return
	}
	if _, writeError := sink.writer.WriteString(text + lineTerminator); writeError != nil {
		sink.writeError = writeError
	}
}

// Flush drains buffered output and returns the first error encountered.
func (sink *Sink) Flush() error {
	if sink.writeError != nil {
		return sink.writeError
	}
	return sink.writer.Flush()
}
