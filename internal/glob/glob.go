// Package glob compiles user-supplied wildcard patterns into matchers usable
// for both whole-path and filename-only matching.
package glob

import (
	"path/filepath"
	"regexp"
	"strings"
)

const (
	pathSegmentSeparator = "/"

	// anySegmentsToken matches zero or more whole path segments, including none.
	anySegmentsToken = "**/"
	// anyRunToken matches any run of characters, including separators.
	anyRunToken = "**"

	caseInsensitiveAnchorPrefix = "(?i)^"
	anchorSuffix                = "$"

	anySegmentsExpression = "(?:[^/]*/)*"
	anyRunExpression      = ".*"
	segmentRunExpression  = "[^/]*"
	segmentCharExpression = "[^/]"
)

// wildcardStripper removes wildcard tokens when deriving the literal fallback fragment.
var wildcardStripper = strings.NewReplacer("*", "", "?", "")

// IncludePattern pairs a compiled matcher with the normalized pattern text that
// produced it. The raw text is retained because directory-prefix inclusion
// consults substring forms of the pattern, not the compiled expression.
type IncludePattern struct {
	rawPattern      string
	matcher         *regexp.Regexp
	literalFragment string
}

// Compile converts a single wildcard pattern into an IncludePattern. A pattern
// that cannot be compiled degrades to a case-insensitive literal-substring
// fallback instead of failing the run.
func Compile(pattern string) IncludePattern {
	normalizedPattern := NormalizePattern(pattern)
	expression := caseInsensitiveAnchorPrefix + buildExpression(normalizedPattern) + anchorSuffix
	matcher, compileError := regexp.Compile(expression)
	if compileError != nil {
		return IncludePattern{
			rawPattern:      normalizedPattern,
			literalFragment: literalFragment(normalizedPattern),
		}
	}
	return IncludePattern{rawPattern: normalizedPattern, matcher: matcher}
}

// CompileAll compiles every pattern in order.
func CompileAll(patterns []string) []IncludePattern {
	compiled := make([]IncludePattern, 0, len(patterns))
	for _, pattern := range patterns {
		compiled = append(compiled, Compile(pattern))
	}
	return compiled
}

// NormalizePattern converts host path separators to forward slashes.
func NormalizePattern(pattern string) string {
	return strings.ReplaceAll(filepath.ToSlash(pattern), `\`, pathSegmentSeparator)
}

// Raw returns the normalized pattern text.
func (pattern IncludePattern) Raw() string {
	return pattern.rawPattern
}

// Fallback reports whether compilation degraded to literal-substring matching.
func (pattern IncludePattern) Fallback() bool {
	return pattern.matcher == nil
}

// MatchesPath reports whether the normalized relative path matches the entire
// pattern. Matching is case-insensitive and fully anchored: a partial match is
// not inclusion.
func (pattern IncludePattern) MatchesPath(relativePath string) bool {
	normalizedPath := NormalizePattern(relativePath)
	if pattern.matcher == nil {
		return pattern.literalFragment != "" &&
			strings.Contains(strings.ToLower(normalizedPath), pattern.literalFragment)
	}
	return pattern.matcher.MatchString(normalizedPath)
}

// MatchesName reports whether the bare file name matches the pattern.
func (pattern IncludePattern) MatchesName(fileName string) bool {
	return pattern.MatchesPath(fileName)
}

// buildExpression translates wildcard tokens into a regular expression body.
// Literal characters are quoted so regex metacharacters in the pattern do not
// leak into the compiled expression.
func buildExpression(pattern string) string {
	var expressionBuilder strings.Builder
	index := 0
	for index < len(pattern) {
		switch {
		case strings.HasPrefix(pattern[index:], anySegmentsToken):
			expressionBuilder.WriteString(anySegmentsExpression)
			index += len(anySegmentsToken)
		case strings.HasPrefix(pattern[index:], anyRunToken):
			expressionBuilder.WriteString(anyRunExpression)
			index += len(anyRunToken)
		case pattern[index] == '*':
			expressionBuilder.WriteString(segmentRunExpression)
			index++
		case pattern[index] == '?':
			expressionBuilder.WriteString(segmentCharExpression)
			index++
		default:
			expressionBuilder.WriteString(regexp.QuoteMeta(string(pattern[index])))
			index++
		}
	}
	return expressionBuilder.String()
}

// literalFragment derives the lowercase literal text used by the fallback
// matcher: the pattern with every wildcard token removed.
func literalFragment(pattern string) string {
	return strings.ToLower(wildcardStripper.Replace(pattern))
}
