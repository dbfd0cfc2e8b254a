package document

import (
	"fmt"
	"io"
	"path/filepath"

	gitignore "github.com/monochromegane/go-gitignore"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/srcdoc/srcdoc/internal/filter"
	"github.com/srcdoc/srcdoc/internal/glob"
	"github.com/srcdoc/srcdoc/internal/types"
)

const (
	directoryStructureHeading = "## Directory Structure"
	fileContentsHeading       = "## File Contents"
	summaryHeading            = "## Summary"
	summaryFileCountFormat    = "Total files: %d"
	summaryLineCountFormat    = "Total lines: %d"

	gitIgnoreFileName       = ".gitignore"
	gitIgnoreMatcherBaseDir = "."

	errorRootPathFormat         = "root path %s: %w"
	errorRootNotDirectoryFormat = "root path %s is not a directory"

	warningDegradedPatternMessage = "include pattern degraded to literal matching"
)

// Options configures a single document generation run.
type Options struct {
	IncludePatterns []string
	StripComments   bool
	UseGitignore    bool
}

// Assembler orchestrates boilerplate emission, tree rendering, and content
// aggregation into a single markdown document.
type Assembler struct {
	FileSystem afero.Fs
	Logger     *zap.Logger
	Options    Options
}

// NewAssembler constructs an Assembler over the provided filesystem.
func NewAssembler(fileSystem afero.Fs, logger *zap.Logger, options Options) *Assembler {
	return &Assembler{FileSystem: fileSystem, Logger: logger, Options: options}
}

// Assemble validates rootPath, writes the complete document to writer, and
// returns the traversal totals. A missing or non-directory root is the only
// failure that prevents any output from being produced; every other error
// degrades the affected section and the run continues.
func (assembler *Assembler) Assemble(writer io.Writer, rootPath string) (types.TraversalStats, error) {
	rootInformation, rootStatError := assembler.FileSystem.Stat(rootPath)
	if rootStatError != nil {
		return types.TraversalStats{}, fmt.Errorf(errorRootPathFormat, rootPath, rootStatError)
	}
	if !rootInformation.IsDir() {
		return types.TraversalStats{}, fmt.Errorf(errorRootNotDirectoryFormat, rootPath)
	}

	inclusionFilter := assembler.buildFilter(rootPath)
	sink := NewSink(writer)

	writeBoilerplate(sink)

	sink.WriteLine(directoryStructureHeading)
	sink.WriteLine("")
	sink.WriteLine(standardFence)
	treeRenderer := &TreeRenderer{FileSystem: assembler.FileSystem, Filter: inclusionFilter}
	treeRenderer.Render(sink, rootPath)
	sink.WriteLine(standardFence)
	sink.WriteLine("")

	sink.WriteLine(fileContentsHeading)
	aggregator := &ContentAggregator{
		FileSystem:    assembler.FileSystem,
		Filter:        inclusionFilter,
		StripComments: assembler.Options.StripComments,
		Logger:        assembler.Logger,
	}
	stats := aggregator.EmitDirectory(sink, rootPath, "")

	sink.WriteLine("")
	sink.WriteLine(summaryHeading)
	sink.WriteLine("")
	sink.WriteLine(fmt.Sprintf(summaryFileCountFormat, stats.FileCount))
	sink.WriteLine(fmt.Sprintf(summaryLineCountFormat, stats.LineCount))

	if flushError := sink.Flush(); flushError != nil {
		return stats, flushError
	}
	return stats, nil
}

// buildFilter compiles the include patterns and, when enabled, attaches the
// root .gitignore matcher. Degraded patterns are logged and still consulted as
// literal matchers.
func (assembler *Assembler) buildFilter(rootPath string) *filter.InclusionFilter {
	compiledPatterns := glob.CompileAll(assembler.Options.IncludePatterns)
	for _, compiledPattern := range compiledPatterns {
		if compiledPattern.Fallback() {
			assembler.Logger.Warn(warningDegradedPatternMessage, zap.String("pattern", compiledPattern.Raw()))
		}
	}
	inclusionFilter := filter.New(compiledPatterns)

	if assembler.Options.UseGitignore {
		gitIgnorePath := filepath.Join(rootPath, gitIgnoreFileName)
		gitIgnoreFile, openError := assembler.FileSystem.Open(gitIgnorePath)
		if openError == nil {
			matcher := gitignore.NewGitIgnoreFromReader(gitIgnoreMatcherBaseDir, gitIgnoreFile)
			gitIgnoreFile.Close()
			inclusionFilter.SetIgnoreMatcher(matcher)
		}
	}
	return inclusionFilter
}
