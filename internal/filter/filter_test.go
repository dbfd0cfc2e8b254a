package filter_test

import (
	"strings"
	"testing"

	gitignore "github.com/monochromegane/go-gitignore"

	"github.com/srcdoc/srcdoc/internal/filter"
	"github.com/srcdoc/srcdoc/internal/glob"
)

// TestIsFileIncluded verifies the evaluation order of the fixed exclusion
// tables and the include patterns.
func TestIsFileIncluded(testingInstance *testing.T) {
	testCases := []struct {
		testName string
		patterns []string
		path     string
		expected bool
	}{
		{testName: "no patterns include everything", patterns: nil, path: "src/main.cs", expected: true},
		{testName: "excluded extension always loses", patterns: nil, path: "bin/tool.exe", expected: false},
		{testName: "excluded extension beats matching pattern", patterns: []string{"**/*.dll"}, path: "lib/native.dll", expected: false},
		{testName: "excluded extension is case-insensitive", patterns: nil, path: "assets/logo.PNG", expected: false},
		{testName: "gitignore file emitted when no matcher attached", patterns: nil, path: ".gitignore", expected: true},
		{testName: "relative path pattern match", patterns: []string{"src/**/*.cs"}, path: "src/app/Program.cs", expected: true},
		{testName: "bare name pattern match", patterns: []string{"*.cs"}, path: "src/app/Program.cs", expected: true},
		{testName: "no pattern matches", patterns: []string{"src/**/*.cs"}, path: "docs/readme.md", expected: false},
		{testName: "backslash path normalized", patterns: []string{"src/*.cs"}, path: `src\Program.cs`, expected: true},
	}
	for index, testCase := range testCases {
		inclusionFilter := filter.New(glob.CompileAll(testCase.patterns))
		actual := inclusionFilter.IsFileIncluded(testCase.path)
		if actual != testCase.expected {
			testingInstance.Errorf("case %d (%s): IsFileIncluded(%q) with %v: expected %v, got %v",
				index, testCase.testName, testCase.path, testCase.patterns, testCase.expected, actual)
		}
	}
}

// TestIsDirectoryIncluded verifies pruning and the permissive descent
// heuristics for pattern-restricted runs.
func TestIsDirectoryIncluded(testingInstance *testing.T) {
	testCases := []struct {
		testName string
		patterns []string
		path     string
		expected bool
	}{
		{testName: "root is always included", patterns: []string{"src/**"}, path: "", expected: true},
		{testName: "dot root is always included", patterns: []string{"src/**"}, path: ".", expected: true},
		{testName: "excluded folder pruned", patterns: nil, path: "node_modules", expected: false},
		{testName: "excluded folder pruned when nested", patterns: nil, path: "src/bin", expected: false},
		{testName: "excluded folder beats matching pattern", patterns: []string{"**"}, path: "obj", expected: false},
		{testName: "no patterns include everything", patterns: nil, path: "src", expected: true},
		{testName: "pattern rooted at the directory forces descent", patterns: []string{"src/**"}, path: "src", expected: true},
		{testName: "pattern naming a nested segment forces descent", patterns: []string{"src/app/*.cs"}, path: "src", expected: true},
		{testName: "anchored segment wildcard forces descent", patterns: []string{"**/*.cs"}, path: "anything", expected: true},
		{testName: "unrelated directory pruned", patterns: []string{"src/**"}, path: "docs", expected: false},
	}
	for index, testCase := range testCases {
		inclusionFilter := filter.New(glob.CompileAll(testCase.patterns))
		actual := inclusionFilter.IsDirectoryIncluded(testCase.path)
		if actual != testCase.expected {
			testingInstance.Errorf("case %d (%s): IsDirectoryIncluded(%q) with %v: expected %v, got %v",
				index, testCase.testName, testCase.path, testCase.patterns, testCase.expected, actual)
		}
	}
}

// TestIgnoreMatcherConsultedAfterFixedTables verifies gitignore rules exclude
// files and directories that survive the fixed exclusion tables.
func TestIgnoreMatcherConsultedAfterFixedTables(testingInstance *testing.T) {
	ignoreMatcher := gitignore.NewGitIgnoreFromReader(".", strings.NewReader("generated.txt\nartifacts/\n"))
	inclusionFilter := filter.New(nil)
	inclusionFilter.SetIgnoreMatcher(ignoreMatcher)

	if inclusionFilter.IsFileIncluded("generated.txt") {
		testingInstance.Errorf("expected generated.txt to be ignored")
	}
	if !inclusionFilter.IsFileIncluded("kept.txt") {
		testingInstance.Errorf("expected kept.txt to be included")
	}
	if inclusionFilter.IsDirectoryIncluded("artifacts") {
		testingInstance.Errorf("expected artifacts directory to be pruned")
	}
	if !inclusionFilter.IsDirectoryIncluded("src") {
		testingInstance.Errorf("expected src directory to be included")
	}
	if inclusionFilter.IsFileIncluded(".gitignore") {
		testingInstance.Errorf("expected .gitignore to be withheld while a matcher is attached")
	}
}

// TestExclusionTables verifies representative fixed-table entries.
func TestExclusionTables(testingInstance *testing.T) {
	extensionCases := []struct {
		extension string
		expected  bool
	}{
		{extension: ".exe", expected: true},
		{extension: ".DLL", expected: true},
		{extension: ".png", expected: true},
		{extension: ".zip", expected: true},
		{extension: ".cs", expected: false},
		{extension: ".md", expected: false},
	}
	for index, extensionCase := range extensionCases {
		if actual := filter.IsExcludedExtension(extensionCase.extension); actual != extensionCase.expected {
			testingInstance.Errorf("extension case %d: IsExcludedExtension(%q): expected %v, got %v",
				index, extensionCase.extension, extensionCase.expected, actual)
		}
	}

	folderCases := []struct {
		folderName string
		expected   bool
	}{
		{folderName: ".git", expected: true},
		{folderName: "Node_Modules", expected: true},
		{folderName: "__pycache__", expected: true},
		{folderName: "src", expected: false},
	}
	for index, folderCase := range folderCases {
		if actual := filter.IsExcludedFolderName(folderCase.folderName); actual != folderCase.expected {
			testingInstance.Errorf("folder case %d: IsExcludedFolderName(%q): expected %v, got %v",
				index, folderCase.folderName, folderCase.expected, actual)
		}
	}
}
