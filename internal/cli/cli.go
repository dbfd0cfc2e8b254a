// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/srcdoc/srcdoc/internal/config"
	"github.com/srcdoc/srcdoc/internal/document"
	clipboardservice "github.com/srcdoc/srcdoc/internal/services/clipboard"
	"github.com/srcdoc/srcdoc/internal/tokenizer"
	"github.com/srcdoc/srcdoc/internal/types"
	"github.com/srcdoc/srcdoc/internal/utils"
)

const (
	rootUse              = "srcdoc [path]"
	rootShortDescription = "assemble a source tree into a single reviewable document"
	rootLongDescription  = `srcdoc walks a source-code directory tree and assembles a single markdown
document containing a visual directory tree and every included file's content
with per-line numbers, secrets redacted, and comments optionally stripped.
Use --include to restrict the output to paths matching glob patterns, --output
to write the document to a file, and --copy to place it on the clipboard.`
	rootUsageExample = `  # Document the current directory to stdout
  srcdoc

  # Only C# sources under src, comments stripped, written to context.md
  srcdoc --include 'src/**/*.cs' --strip-comments --output context.md .

  # Copy the document to the clipboard and report its token count
  srcdoc --copy --tokens .`

	includeFlagName       = "include"
	includeFlagShorthand  = "i"
	stripCommentsFlagName = "strip-comments"
	outputFlagName        = "output"
	outputFlagShorthand   = "o"
	copyFlagName          = "copy"
	tokensFlagName        = "tokens"
	modelFlagName         = "model"
	noGitignoreFlagName   = "no-gitignore"
	configFlagName        = "config"
	versionFlagName       = "version"

	includeFlagDescription       = "include glob pattern (repeatable)"
	stripCommentsFlagDescription = "strip comments from source files"
	outputFlagDescription        = "write the document to a file instead of stdout"
	copyFlagDescription          = "copy the document to the system clipboard"
	tokensFlagDescription        = "report the document's token count"
	modelFlagDescription         = "tokenizer model used for token counting"
	noGitignoreFlagDescription   = "do not use .gitignore"
	configFlagDescription        = "explicit configuration file path"
	versionFlagDescription       = "display application version"

	versionTemplate           = "srcdoc version: %s\n"
	defaultPath               = "."
	defaultTokenizerModelName = "gpt-4o"
	outputFilePermissions     = 0o644

	errorRootMissingFormat      = "root path '%s' does not exist: %w"
	errorRootNotDirectoryFormat = "root path '%s' is not a directory"
	errorAbsolutePathFormat     = "abs failed for '%s': %w"
	workingDirectoryErrorFormat = "unable to determine working directory: %w"
	errorWriteOutputFormat      = "writing output to %s: %w"

	summaryLogMessage           = "document assembled"
	tokenCountSkippedLogMessage = "token count skipped for non-text document"
)

// generateOptions stores flag values for the root command.
type generateOptions struct {
	includePatterns []string
	stripComments   bool
	outputPath      string
	copyToClipboard bool
	tokensEnabled   bool
	model           string
	noGitignore     bool
	configPath      string
}

// Execute runs the srcdoc application.
func Execute() error {
	rootCommand := createRootCommand()
	rootCommand.SetArgs(normalizeCopyFlagArguments(os.Args[1:]))
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command.
func createRootCommand() *cobra.Command {
	var showVersion bool
	var options generateOptions

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		Example:      rootUsageExample,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		PersistentPreRun: func(command *cobra.Command, arguments []string) {
			if showVersion {
				fmt.Printf(versionTemplate, utils.GetApplicationVersion())
				os.Exit(0)
			}
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			return runGenerate(command, arguments, &options)
		},
	}

	rootCommand.PersistentFlags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	rootCommand.Flags().StringArrayVarP(&options.includePatterns, includeFlagName, includeFlagShorthand, nil, includeFlagDescription)
	rootCommand.Flags().BoolVar(&options.stripComments, stripCommentsFlagName, false, stripCommentsFlagDescription)
	rootCommand.Flags().StringVarP(&options.outputPath, outputFlagName, outputFlagShorthand, "", outputFlagDescription)
	rootCommand.Flags().BoolVar(&options.tokensEnabled, tokensFlagName, false, tokensFlagDescription)
	rootCommand.Flags().StringVar(&options.model, modelFlagName, defaultTokenizerModelName, modelFlagDescription)
	rootCommand.Flags().BoolVar(&options.noGitignore, noGitignoreFlagName, false, noGitignoreFlagDescription)
	rootCommand.Flags().StringVar(&options.configPath, configFlagName, "", configFlagDescription)
	registerCopyFlag(rootCommand.Flags(), &options.copyToClipboard)

	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// resolvedSettings is the flag and configuration merge result for one run.
type resolvedSettings struct {
	includePatterns []string
	stripComments   bool
	outputPath      string
	copyToClipboard bool
	tokensEnabled   bool
	model           string
	useGitignore    bool
}

// resolveGenerateSettings overlays explicitly-set flags onto configuration defaults.
func resolveGenerateSettings(command *cobra.Command, options *generateOptions, configuration config.GenerateConfiguration) resolvedSettings {
	resolved := resolvedSettings{
		includePatterns: configuration.Include,
		outputPath:      configuration.Output,
		model:           defaultTokenizerModelName,
		useGitignore:    true,
	}
	if configuration.StripComments != nil {
		resolved.stripComments = *configuration.StripComments
	}
	if configuration.Clipboard != nil {
		resolved.copyToClipboard = *configuration.Clipboard
	}
	if configuration.UseGitignore != nil {
		resolved.useGitignore = *configuration.UseGitignore
	}
	if configuration.Tokens.Enabled != nil {
		resolved.tokensEnabled = *configuration.Tokens.Enabled
	}
	if configuration.Tokens.Model != "" {
		resolved.model = configuration.Tokens.Model
	}

	flagSet := command.Flags()
	if flagSet.Changed(includeFlagName) {
		resolved.includePatterns = options.includePatterns
	}
	if flagSet.Changed(stripCommentsFlagName) {
		resolved.stripComments = options.stripComments
	}
	if flagSet.Changed(outputFlagName) {
		resolved.outputPath = options.outputPath
	}
	if flagSet.Changed(copyFlagName) {
		resolved.copyToClipboard = options.copyToClipboard
	}
	if flagSet.Changed(tokensFlagName) {
		resolved.tokensEnabled = options.tokensEnabled
	}
	if flagSet.Changed(modelFlagName) {
		resolved.model = options.model
	}
	if flagSet.Changed(noGitignoreFlagName) {
		resolved.useGitignore = !options.noGitignore
	}
	resolved.includePatterns = utils.DeduplicatePatterns(resolved.includePatterns)
	return resolved
}

// runGenerate assembles the document for the requested root and fans the
// result out to the output writer, the tokenizer, and the clipboard.
func runGenerate(command *cobra.Command, arguments []string, options *generateOptions) error {
	loggerInstance, loggerError := utils.NewApplicationLogger()
	if loggerError != nil {
		return fmt.Errorf(utils.LoggerInitializationFailedMessageFormat, loggerError)
	}
	defer loggerInstance.Sync()

	rootPath := defaultPath
	if len(arguments) > 0 {
		rootPath = arguments[0]
	}
	absoluteRootPath, absolutePathError := filepath.Abs(rootPath)
	if absolutePathError != nil {
		return fmt.Errorf(errorAbsolutePathFormat, rootPath, absolutePathError)
	}
	rootInformation, rootStatError := os.Stat(absoluteRootPath)
	if rootStatError != nil {
		return fmt.Errorf(errorRootMissingFormat, rootPath, rootStatError)
	}
	if !rootInformation.IsDir() {
		return fmt.Errorf(errorRootNotDirectoryFormat, rootPath)
	}
	validatedRoot := types.ValidatedRoot{AbsolutePath: absoluteRootPath}

	workingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return fmt.Errorf(workingDirectoryErrorFormat, workingDirectoryError)
	}
	applicationConfiguration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: workingDirectory,
		ExplicitFilePath: options.configPath,
	})
	if configurationError != nil {
		return configurationError
	}
	resolved := resolveGenerateSettings(command, options, applicationConfiguration.Generate)

	assembler := document.NewAssembler(afero.NewOsFs(), loggerInstance, document.Options{
		IncludePatterns: resolved.includePatterns,
		StripComments:   resolved.stripComments,
		UseGitignore:    resolved.useGitignore,
	})

	var documentBuilder strings.Builder
	stats, assembleError := assembler.Assemble(&documentBuilder, validatedRoot.AbsolutePath)
	if assembleError != nil {
		return assembleError
	}
	assembledDocument := documentBuilder.String()

	// The traversal above is strictly sequential; only the independent
	// consumers of the finished document run concurrently.
	var tokenCount int
	var tokenCounted bool
	var resolvedModelName string

	consumerGroup := new(errgroup.Group)
	consumerGroup.Go(func() error {
		return writeDocument(resolved.outputPath, assembledDocument)
	})
	if resolved.tokensEnabled {
		consumerGroup.Go(func() error {
			counter, resolvedModel, counterError := tokenizer.NewCounter(tokenizer.Config{Model: resolved.model})
			if counterError != nil {
				return counterError
			}
			countResult, countError := tokenizer.CountDocument(counter, assembledDocument)
			if countError != nil {
				return countError
			}
			tokenCount = countResult.Tokens
			tokenCounted = countResult.Counted
			resolvedModelName = resolvedModel
			return nil
		})
	}
	if resolved.copyToClipboard {
		consumerGroup.Go(func() error {
			return clipboardservice.NewService().Copy(assembledDocument)
		})
	}
	if groupError := consumerGroup.Wait(); groupError != nil {
		return groupError
	}

	summaryFields := []zap.Field{
		zap.String("root", utils.RelativePathOrSelf(validatedRoot.AbsolutePath, workingDirectory)),
		zap.Int("files", stats.FileCount),
		zap.Int("lines", stats.LineCount),
	}
	if resolved.tokensEnabled {
		if tokenCounted {
			summaryFields = append(summaryFields,
				zap.Int("tokens", tokenCount),
				zap.String("model", resolvedModelName))
		} else {
			loggerInstance.Warn(tokenCountSkippedLogMessage)
		}
	}
	loggerInstance.Info(summaryLogMessage, summaryFields...)
	return nil
}

// writeDocument writes the assembled document to the output file, or to
// stdout when no output path is configured.
func writeDocument(outputPath, assembledDocument string) error {
	if outputPath == "" {
		_, writeError := os.Stdout.WriteString(assembledDocument)
		return writeError
	}
	if writeError := os.WriteFile(outputPath, []byte(assembledDocument), outputFilePermissions); writeError != nil {
		return fmt.Errorf(errorWriteOutputFormat, outputPath, writeError)
	}
	return nil
}
