package tokenizer

import (
	"errors"
	"unicode/utf8"

	"github.com/srcdoc/srcdoc/internal/utils"
)

// CountResult captures the outcome of counting a document or byte slice.
type CountResult struct {
	Tokens  int
	Counted bool
}

// CountBytes estimates tokens for the provided data using counter. Binary or
// invalid-UTF-8 input is reported as uncounted rather than failing.
func CountBytes(counter Counter, data []byte) (CountResult, error) {
	if counter == nil {
		return CountResult{}, errors.New("nil tokenizer counter")
	}
	if len(data) == 0 {
		tokens, countError := counter.CountString("")
		if countError != nil {
			return CountResult{}, countError
		}
		return CountResult{Tokens: tokens, Counted: true}, nil
	}
	if utils.IsBinary(data) {
		return CountResult{Counted: false}, nil
	}
	if !utf8.Valid(data) {
		return CountResult{Counted: false}, nil
	}
	tokens, countError := counter.CountString(string(data))
	if countError != nil {
		return CountResult{}, countError
	}
	return CountResult{Tokens: tokens, Counted: true}, nil
}

// CountDocument estimates tokens for an assembled document.
func CountDocument(counter Counter, assembledDocument string) (CountResult, error) {
	return CountBytes(counter, []byte(assembledDocument))
}
