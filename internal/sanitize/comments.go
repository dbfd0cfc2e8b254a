package sanitize

import (
	"path/filepath"
	"regexp"
	"strings"
)

const (
	lineCommentToken      = "//"
	blockCommentOpenToken = "/*"
)

// commentStrippableExtensions lists the source kinds eligible for comment
// stripping: C#, JavaScript, TypeScript, and JSON, which all share the same
// comment syntax.
var commentStrippableExtensions = map[string]struct{}{
	".cs":   {},
	".js":   {},
	".ts":   {},
	".json": {},
}

// commentOrLiteralPattern recognizes, in priority order: verbatim strings,
// escaped double-quoted strings, escaped single-quoted character literals (all
// preserved verbatim even when they contain comment tokens), then line
// comments to end of line, then non-greedy block comments spanning any number
// of lines. Nested block comments are not supported: the first */ terminates
// the match.
var commentOrLiteralPattern = regexp.MustCompile(
	`(?s)` +
		`@"(?:[^"]|"")*"` +
		`|"(?:\\.|[^"\\` + "\n" + `])*"` +
		`|'(?:\\.|[^'\\` + "\n" + `])*'` +
		`|//[^` + "\n" + `]*` +
		`|/\*.*?\*/`,
)

// IsCommentStrippable reports whether fileName belongs to a source kind
// supported by StripComments.
func IsCommentStrippable(fileName string) bool {
	_, supported := commentStrippableExtensions[strings.ToLower(filepath.Ext(fileName))]
	return supported
}

// StripComments removes comment text from content while preserving every line
// break: a recognized comment is replaced by a string containing only the
// newline characters the matched span contained. Content of unsupported kinds
// is returned unchanged.
func StripComments(content, fileName string) string {
	if !IsCommentStrippable(fileName) {
		return content
	}
	return commentOrLiteralPattern.ReplaceAllStringFunc(content, func(match string) string {
		if strings.HasPrefix(match, lineCommentToken) || strings.HasPrefix(match, blockCommentOpenToken) {
			return newlinesOnly(match)
		}
		return match
	})
}

// newlinesOnly returns only the newline characters of text.
func newlinesOnly(text string) string {
	return strings.Repeat("\n", strings.Count(text, "\n"))
}
