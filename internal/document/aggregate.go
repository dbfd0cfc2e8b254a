package document

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/srcdoc/srcdoc/internal/filter"
	"github.com/srcdoc/srcdoc/internal/sanitize"
	"github.com/srcdoc/srcdoc/internal/types"
	"github.com/srcdoc/srcdoc/internal/utils"
)

const (
	fileHeaderFormat      = "### File: %s"
	numberedLineFormat    = "%d: %s"
	readErrorMarkerFormat = "[Error reading file: %v]"
	binarySkippedMarker   = "[Binary file content omitted]"

	standardFence  = "```"
	escalatedFence = "````"

	trailingWhitespaceCutset = " \t\r"

	warningUnreadableDirectoryMessage = "skipping unreadable directory"
	warningBinaryFileMessage          = "skipping binary file content"
)

// ContentAggregator recursively walks included entries, sanitizes file
// content, and emits numbered lines while accumulating totals. Traversal is
// strictly sequential; stats flow back to the caller by value.
type ContentAggregator struct {
	FileSystem    afero.Fs
	Filter        *filter.InclusionFilter
	StripComments bool
	Logger        *zap.Logger
}

// EmitDirectory processes every included file in the directory, in sorted
// order, before descending into included subdirectories, and returns the
// combined stats for the subtree. An unreadable directory contributes nothing
// and does not stop its siblings.
func (aggregator *ContentAggregator) EmitDirectory(sink *Sink, directoryPath, relativeDirectory string) types.TraversalStats {
	var stats types.TraversalStats

	directoryEntries, readDirectoryError := afero.ReadDir(aggregator.FileSystem, directoryPath)
	if readDirectoryError != nil {
		aggregator.Logger.Warn(warningUnreadableDirectoryMessage,
			zap.String("path", directoryPath), zap.Error(readDirectoryError))
		return stats
	}

	var fileNames []string
	var directoryNames []string
	for _, directoryEntry := range directoryEntries {
		relativePath := joinRelative(relativeDirectory, directoryEntry.Name())
		if directoryEntry.IsDir() {
			if aggregator.Filter.IsDirectoryIncluded(relativePath) {
				directoryNames = append(directoryNames, directoryEntry.Name())
			}
			continue
		}
		if aggregator.Filter.IsFileIncluded(relativePath) {
			fileNames = append(fileNames, directoryEntry.Name())
		}
	}
	sort.Strings(fileNames)
	sort.Strings(directoryNames)

	for _, fileName := range fileNames {
		fileStats := aggregator.emitFile(
			sink,
			filepath.Join(directoryPath, fileName),
			joinRelative(relativeDirectory, fileName),
			fileName,
		)
		stats = stats.Add(fileStats)
	}
	for _, directoryName := range directoryNames {
		childStats := aggregator.EmitDirectory(
			sink,
			filepath.Join(directoryPath, directoryName),
			joinRelative(relativeDirectory, directoryName),
		)
		stats = stats.Add(childStats)
	}
	return stats
}

// emitFile writes one file section and returns its stats. A read failure is
// reported inline and contributes nothing to the totals.
func (aggregator *ContentAggregator) emitFile(sink *Sink, filePath, relativePath, fileName string) types.TraversalStats {
	sink.WriteLine("")
	sink.WriteLine(fmt.Sprintf(fileHeaderFormat, relativePath))

	if utils.IsFileBinary(aggregator.FileSystem, filePath) {
		aggregator.Logger.Warn(warningBinaryFileMessage, zap.String("path", relativePath))
		sink.WriteLine(binarySkippedMarker)
		return types.TraversalStats{}
	}
	contentBytes, fileReadError := afero.ReadFile(aggregator.FileSystem, filePath)
	if fileReadError != nil {
		sink.WriteLine(fmt.Sprintf(readErrorMarkerFormat, fileReadError))
		return types.TraversalStats{}
	}

	fileContent := string(contentBytes)
	if sanitize.IsConfigLike(fileName) {
		fileContent = sanitize.RedactSecrets(fileContent)
	}
	if aggregator.StripComments {
		fileContent = sanitize.StripComments(fileContent, fileName)
	}

	contentLines := splitContentLines(fileContent)
	fence := fenceFor(fileContent)
	sink.WriteLine(fence)
	for lineIndex, lineText := range contentLines {
		sink.WriteLine(fmt.Sprintf(numberedLineFormat, lineIndex+1, strings.TrimRight(lineText, trailingWhitespaceCutset)))
	}
	sink.WriteLine(fence)

	return types.TraversalStats{FileCount: 1, LineCount: len(contentLines)}
}

// splitContentLines splits content on newline boundaries. A single trailing
// newline does not produce an extra empty line; empty content has no lines.
func splitContentLines(content string) []string {
	if content == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(content, "\n"), "\n")
}

// fenceFor widens the code fence from three to four backticks when the
// content itself contains a three-backtick run, so the emitted block cannot
// terminate early.
func fenceFor(content string) string {
	if strings.Contains(content, standardFence) {
		return escalatedFence
	}
	return standardFence
}
