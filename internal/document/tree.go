package document

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/srcdoc/srcdoc/internal/filter"
)

const (
	treeBranchConnector = "├── "
	treeLastConnector   = "└── "
	treeBranchPadding   = "│   "
	treeLastPadding     = "    "

	directorySuffix      = "/"
	entryPointAnnotation = " [Entry Point]"
	accessDeniedLabel    = "[Access Denied]"
)

// entryPointFileNames receive the entry-point annotation in the rendered tree.
// Names are compared case-insensitively.
var entryPointFileNames = map[string]struct{}{
	"program.cs": {},
	"startup.cs": {},
	"main.go":    {},
	"index.js":   {},
	"main.py":    {},
}

// TreeRenderer recursively emits an ASCII representation of the included
// directory and file hierarchy.
type TreeRenderer struct {
	FileSystem afero.Fs
	Filter     *filter.InclusionFilter
}

// Render writes the tree rooted at rootPath, starting with the root directory name.
func (renderer *TreeRenderer) Render(sink *Sink, rootPath string) {
	sink.WriteLine(filepath.Base(filepath.Clean(rootPath)) + directorySuffix)
	renderer.renderDirectory(sink, rootPath, "", "")
}

// renderDirectory emits one directory level. Directories and files are listed
// together in lexicographic order. A directory whose enumeration fails is
// rendered as a single access-denied leaf instead of aborting the render.
func (renderer *TreeRenderer) renderDirectory(sink *Sink, directoryPath, relativeDirectory, prefix string) {
	directoryEntries, readDirectoryError := afero.ReadDir(renderer.FileSystem, directoryPath)
	if readDirectoryError != nil {
		sink.WriteLine(prefix + treeLastConnector + accessDeniedLabel)
		return
	}

	includedEntries := renderer.includedEntries(directoryEntries, relativeDirectory)
	for entryIndex, includedEntry := range includedEntries {
		connector := treeBranchConnector
		childPrefix := prefix + treeBranchPadding
		if entryIndex == len(includedEntries)-1 {
			connector = treeLastConnector
			childPrefix = prefix + treeLastPadding
		}

		if includedEntry.IsDir() {
			sink.WriteLine(prefix + connector + includedEntry.Name() + directorySuffix)
			renderer.renderDirectory(
				sink,
				filepath.Join(directoryPath, includedEntry.Name()),
				joinRelative(relativeDirectory, includedEntry.Name()),
				childPrefix,
			)
			continue
		}
		sink.WriteLine(prefix + connector + includedEntry.Name() + entryPointSuffix(includedEntry.Name()))
	}
}

// includedEntries filters one directory level and sorts the survivors
// lexicographically by name, directories and files interleaved.
func (renderer *TreeRenderer) includedEntries(directoryEntries []os.FileInfo, relativeDirectory string) []os.FileInfo {
	var includedEntries []os.FileInfo
	for _, directoryEntry := range directoryEntries {
		relativePath := joinRelative(relativeDirectory, directoryEntry.Name())
		if directoryEntry.IsDir() {
			if renderer.Filter.IsDirectoryIncluded(relativePath) {
				includedEntries = append(includedEntries, directoryEntry)
			}
			continue
		}
		if renderer.Filter.IsFileIncluded(relativePath) {
			includedEntries = append(includedEntries, directoryEntry)
		}
	}
	sort.Slice(includedEntries, func(first, second int) bool {
		return includedEntries[first].Name() < includedEntries[second].Name()
	})
	return includedEntries
}

// entryPointSuffix returns the annotation for well-known entry-point filenames.
func entryPointSuffix(fileName string) string {
	if _, isEntryPoint := entryPointFileNames[strings.ToLower(fileName)]; isEntryPoint {
		return entryPointAnnotation
	}
	return ""
}

// joinRelative joins slash-normalized relative path components.
func joinRelative(relativeDirectory, name string) string {
	if relativeDirectory == "" {
		return name
	}
	return relativeDirectory + "/" + name
}
