package filter

import "strings"

// Fixed exclusion tables. Both are process-wide constants: they are never
// mutated after initialization and are safe to share across runs.

// excludedFileExtensions lists binary, media, archive, and IDE-artifact
// extensions that never appear in the output.
var excludedFileExtensions = map[string]struct{}{
	".exe":   {},
	".dll":   {},
	".pdb":   {},
	".so":    {},
	".dylib": {},
	".a":     {},
	".o":     {},
	".class": {},
	".suo":   {},
	".user":  {},
	".cache": {},
	".png":   {},
	".jpg":   {},
	".jpeg":  {},
	".gif":   {},
	".bmp":   {},
	".ico":   {},
	".webp":  {},
	".mp3":   {},
	".mp4":   {},
	".avi":   {},
	".mov":   {},
	".wav":   {},
	".zip":   {},
	".7z":    {},
	".rar":   {},
	".tar":   {},
	".gz":    {},
	".bin":   {},
}

// excludedFolderNames lists version-control, build-output, dependency-cache,
// and IDE-metadata directories whose subtrees are never visited.
var excludedFolderNames = map[string]struct{}{
	".git":         {},
	".svn":         {},
	".hg":          {},
	".vs":          {},
	".idea":        {},
	".vscode":      {},
	"bin":          {},
	"obj":          {},
	"node_modules": {},
	"packages":     {},
	"dist":         {},
	"build":        {},
	"__pycache__":  {},
}

// IsExcludedExtension reports whether the file extension belongs to the fixed
// excluded-extension set. Extensions are compared case-insensitively.
func IsExcludedExtension(extension string) bool {
	_, excluded := excludedFileExtensions[strings.ToLower(extension)]
	return excluded
}

// IsExcludedFolderName reports whether the directory name belongs to the fixed
// excluded-folder set. Names are compared case-insensitively.
func IsExcludedFolderName(directoryName string) bool {
	_, excluded := excludedFolderNames[strings.ToLower(directoryName)]
	return excluded
}
