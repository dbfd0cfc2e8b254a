// Package sanitize rewrites file content before emission: secret redaction for
// config-like files and optional comment stripping for source-like files.
// Every rewrite keeps each newline of the input at its original offset so
// downstream line numbering stays stable.
package sanitize

import (
	"path/filepath"
	"regexp"
	"strings"
)

const (
	// ValuePlaceholder replaces redacted secret values.
	ValuePlaceholder = "***"
	// EmailPlaceholder replaces every matched email address. The placeholder is
	// itself a fixed point of the email rule, keeping redaction idempotent.
	EmailPlaceholder = "redacted@example.com"
)

// SanitizationRule pairs a matcher with an expansion template. Rules are
// applied sequentially; each rule sees the previous rule's output.
type SanitizationRule struct {
	matcher     *regexp.Regexp
	replacement string
}

// secretRedactionRules is the ordered constant redaction table: connection
// strings first, then named credential assignments, long hexadecimal tokens,
// and email addresses.
var secretRedactionRules = []SanitizationRule{
	// Whole "ConnectionStrings" JSON blocks, possibly spanning several lines.
	{regexp.MustCompile(`(?i)("connectionstrings?"\s*:\s*\{)[^}]*(\})`), "${1}${2}"},
	// Quoted connection-string assignments in XML or key/value config files.
	{regexp.MustCompile(`(?i)(connection[ _-]?string[a-z0-9_ .-]*"?\s*[:=]\s*")[^"\n]*(")`), "${1}" + ValuePlaceholder + "${2}"},
	// Credential fragments inside unquoted connection strings.
	{regexp.MustCompile(`(?i)\b((?:password|pwd|user id|uid|accountkey|sharedaccesskey)\s*=)[^;"'\n]+`), "${1}" + ValuePlaceholder},
	// Named credentials in JSON form: "name": "value".
	{regexp.MustCompile(`(?i)("[a-z0-9_.-]*(?:key|secret|password|passwd|pwd|token|credential|auth)[a-z0-9_.-]*"\s*:\s*")[^"\n]*(")`), "${1}" + ValuePlaceholder + "${2}"},
	// Named credentials in assignment form: name="value".
	{regexp.MustCompile(`(?i)\b((?:key|secret|password|passwd|pwd|token|credential|auth)[a-z0-9_]*\s*=\s*")[^"\n]*(")`), "${1}" + ValuePlaceholder + "${2}"},
	// Long hexadecimal tokens as a generic high-entropy catch-all.
	{regexp.MustCompile(`\b[0-9a-fA-F]{32,}\b`), ValuePlaceholder},
	// Email addresses.
	{regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`), EmailPlaceholder},
}

// configLikeExtensions classify files subject to secret redaction.
var configLikeExtensions = map[string]struct{}{
	".json":   {},
	".xml":    {},
	".config": {},
}

// configLikeNameFragments classify files by name when the extension alone does not.
var configLikeNameFragments = []string{"setting", "constant", "config"}

// RedactSecrets applies the ordered secret-redaction rules to text. Only
// non-newline characters are affected: every newline keeps its position, so
// each line of the result corresponds to the same line of the input. Applying
// the rules again yields no further changes.
func RedactSecrets(text string) string {
	result := text
	for _, rule := range secretRedactionRules {
		result = rule.apply(result)
	}
	return result
}

// IsConfigLike reports whether fileName classifies as configuration subject to
// secret redaction.
func IsConfigLike(fileName string) bool {
	loweredName := strings.ToLower(fileName)
	if _, configLike := configLikeExtensions[filepath.Ext(loweredName)]; configLike {
		return true
	}
	for _, fragment := range configLikeNameFragments {
		if strings.Contains(loweredName, fragment) {
			return true
		}
	}
	return false
}

// apply rewrites every match of the rule in text. Single-line matches expand
// the rule's template; a match spanning lines is rewritten in place so its
// newlines never move.
func (rule SanitizationRule) apply(text string) string {
	return rule.matcher.ReplaceAllStringFunc(text, func(match string) string {
		submatchIndexes := rule.matcher.FindStringSubmatchIndex(match)
		if submatchIndexes == nil {
			return match
		}
		if strings.Contains(match, "\n") {
			return redactSpanInPlace(match, submatchIndexes)
		}
		return string(rule.matcher.ExpandString(nil, rule.replacement, match, submatchIndexes))
	})
}

// redactSpanInPlace blanks the non-newline characters of a multi-line match
// that lie outside its capture groups. Group content, every newline, and each
// carriage return preceding a newline stay at their matched offsets, so every
// line of the span keeps its line number and its surviving line-local content.
// The only rule able to match across lines carries no literal template text,
// which is why dropping the non-group characters is the whole rewrite.
func redactSpanInPlace(match string, submatchIndexes []int) string {
	keptPositions := make([]bool, len(match))
	for groupIndex := 2; groupIndex+1 < len(submatchIndexes); groupIndex += 2 {
		groupStart, groupEnd := submatchIndexes[groupIndex], submatchIndexes[groupIndex+1]
		if groupStart < 0 {
			continue
		}
		for position := groupStart; position < groupEnd; position++ {
			keptPositions[position] = true
		}
	}

	var spanBuilder strings.Builder
	spanBuilder.Grow(len(match))
	for position := 0; position < len(match); position++ {
		switch {
		case keptPositions[position]:
			spanBuilder.WriteByte(match[position])
		case match[position] == '\n':
			spanBuilder.WriteByte('\n')
		case match[position] == '\r' && position+1 < len(match) && match[position+1] == '\n':
			spanBuilder.WriteByte('\r')
		}
	}
	return spanBuilder.String()
}
