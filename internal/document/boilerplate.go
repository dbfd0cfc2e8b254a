package document

// aiInstructionPreamble is the fixed instruction text emitted at the top of
// every generated document.
const aiInstructionPreamble = `# Source Code Review Context

This document was generated automatically from a source-code directory tree.
It is intended to be read by a large-language-model reviewer.

How to read it:

- The "Directory Structure" section shows every included file and directory as
  an ASCII tree. Well-known application entry points are annotated.
- The "File Contents" section lists each included file under a
  "### File: <relative path>" header, inside a fenced code block. Every line is
  prefixed with its 1-based line number.
- Secrets such as connection strings, credentials, and tokens have been
  replaced with placeholders. Treat any placeholder as intentionally redacted;
  do not flag it as a missing value.
- Line numbers are stable: sanitization never changes a file's line count, so
  the numbers shown here match the original sources and can be used in review
  comments.
- The "Summary" section reports the total number of files and lines included.`

// writeBoilerplate emits the instruction preamble followed by a blank line.
func writeBoilerplate(sink *Sink) {
	sink.WriteLine(aiInstructionPreamble)
	sink.WriteLine("")
}
