// Package filter decides which files and directories belong in both the
// rendered tree and the content dump.
package filter

import (
	"path/filepath"
	"strings"

	gitignore "github.com/monochromegane/go-gitignore"

	"github.com/srcdoc/srcdoc/internal/glob"
)

const (
	pathSegmentSeparator = "/"
	currentDirectoryPath = "."

	// matchAnythingBelowPrefix marks patterns that can match descendants of any
	// directory, forcing recursion even when the directory itself does not match.
	matchAnythingBelowPrefix = "**"
)

// serviceFileNames are gitignore bookkeeping files withheld from the output
// while an ignore matcher is attached. Disabling gitignore support emits them
// like any other file.
var serviceFileNames = map[string]struct{}{
	".gitignore": {},
}

// InclusionFilter evaluates entries against the fixed exclusion tables, an
// optional gitignore matcher, and the compiled include patterns. The fixed
// tables always run first; an empty pattern list includes everything that
// survives them.
type InclusionFilter struct {
	patterns      []glob.IncludePattern
	ignoreMatcher gitignore.IgnoreMatcher
}

// New constructs an InclusionFilter over the compiled include patterns.
func New(patterns []glob.IncludePattern) *InclusionFilter {
	return &InclusionFilter{patterns: patterns}
}

// SetIgnoreMatcher attaches a gitignore matcher consulted after the fixed
// exclusion tables and before pattern matching.
func (inclusionFilter *InclusionFilter) SetIgnoreMatcher(matcher gitignore.IgnoreMatcher) {
	inclusionFilter.ignoreMatcher = matcher
}

// IsFileIncluded reports whether the file at the slash-normalized relative
// path belongs in the output. A file is included when its relative path or its
// bare name matches any pattern.
func (inclusionFilter *InclusionFilter) IsFileIncluded(relativePath string) bool {
	normalizedPath := normalizeRelativePath(relativePath)
	fileName := lastPathSegment(normalizedPath)

	if inclusionFilter.ignoreMatcher != nil {
		if _, isServiceFile := serviceFileNames[strings.ToLower(fileName)]; isServiceFile {
			return false
		}
	}
	if IsExcludedExtension(filepath.Ext(fileName)) {
		return false
	}
	if inclusionFilter.ignoreMatcher != nil && inclusionFilter.ignoreMatcher.Match(normalizedPath, false) {
		return false
	}
	if len(inclusionFilter.patterns) == 0 {
		return true
	}
	for _, pattern := range inclusionFilter.patterns {
		if pattern.MatchesPath(normalizedPath) || pattern.MatchesName(fileName) {
			return true
		}
	}
	return false
}

// IsDirectoryIncluded reports whether the directory should be rendered and
// descended into. Besides a direct pattern match, a directory is included when
// any pattern's raw text could select paths nested under it; exclusion prunes
// the whole subtree. The raw-text check is deliberately permissive: a false
// positive only causes an extra directory visit whose files are still filtered
// individually.
func (inclusionFilter *InclusionFilter) IsDirectoryIncluded(relativePath string) bool {
	normalizedPath := normalizeRelativePath(relativePath)
	if normalizedPath == "" || normalizedPath == currentDirectoryPath {
		return true
	}
	directoryName := lastPathSegment(normalizedPath)

	if IsExcludedFolderName(directoryName) {
		return false
	}
	if inclusionFilter.ignoreMatcher != nil && inclusionFilter.ignoreMatcher.Match(normalizedPath, true) {
		return false
	}
	if len(inclusionFilter.patterns) == 0 {
		return true
	}

	loweredDirectoryPrefix := strings.ToLower(directoryName) + pathSegmentSeparator
	for _, pattern := range inclusionFilter.patterns {
		if pattern.MatchesPath(normalizedPath) || pattern.MatchesName(directoryName) {
			return true
		}
		loweredRawPattern := strings.ToLower(pattern.Raw())
		if strings.HasPrefix(loweredRawPattern, matchAnythingBelowPrefix) {
			return true
		}
		if strings.Contains(loweredRawPattern, loweredDirectoryPrefix) {
			return true
		}
	}
	return false
}

// normalizeRelativePath converts host separators to forward slashes.
func normalizeRelativePath(relativePath string) string {
	return strings.ReplaceAll(filepath.ToSlash(relativePath), `\`, pathSegmentSeparator)
}

// lastPathSegment returns the final segment of a slash-normalized path.
func lastPathSegment(normalizedPath string) string {
	if separatorIndex := strings.LastIndex(normalizedPath, pathSegmentSeparator); separatorIndex >= 0 {
		return normalizedPath[separatorIndex+1:]
	}
	return normalizedPath
}
