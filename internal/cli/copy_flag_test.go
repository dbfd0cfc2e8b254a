package cli

import (
	"testing"

	"github.com/srcdoc/srcdoc/internal/config"
)

// TestNormalizeCopyFlagArguments verifies bare --copy never swallows a
// positional path argument while boolean literals still bind to the flag.
func TestNormalizeCopyFlagArguments(testingInstance *testing.T) {
	testCases := []struct {
		testName string
		input    []string
		expected []string
	}{
		{
			testName: "bare flag becomes explicit true",
			input:    []string{"--copy"},
			expected: []string{"--copy=true"},
		},
		{
			testName: "boolean literal consumed",
			input:    []string{"--copy", "true", "."},
			expected: []string{"--copy=true", "."},
		},
		{
			testName: "false literal consumed",
			input:    []string{"--copy", "false", "."},
			expected: []string{"--copy=false", "."},
		},
		{
			testName: "path argument stays positional",
			input:    []string{"--copy", "."},
			expected: []string{"--copy=true", "."},
		},
		{
			testName: "following flag not consumed",
			input:    []string{"--copy", "--tokens"},
			expected: []string{"--copy=true", "--tokens"},
		},
		{
			testName: "equals form passes through",
			input:    []string{"--copy=false", "."},
			expected: []string{"--copy=false", "."},
		},
		{
			testName: "arguments after terminator untouched",
			input:    []string{"--", "--copy", "odd-dir"},
			expected: []string{"--", "--copy", "odd-dir"},
		},
		{
			testName: "empty arguments untouched",
			input:    nil,
			expected: nil,
		},
	}
	for index, testCase := range testCases {
		actual := normalizeCopyFlagArguments(testCase.input)
		if len(actual) != len(testCase.expected) {
			testingInstance.Errorf("case %d (%s): expected %v, got %v", index, testCase.testName, testCase.expected, actual)
			continue
		}
		for position, expectedArgument := range testCase.expected {
			if actual[position] != expectedArgument {
				testingInstance.Errorf("case %d (%s): position %d: expected %q, got %q",
					index, testCase.testName, position, expectedArgument, actual[position])
			}
		}
	}
}

// TestInterpretCopyFlagLiteral verifies the accepted boolean spellings.
func TestInterpretCopyFlagLiteral(testingInstance *testing.T) {
	testCases := []struct {
		input         string
		expectedValue bool
		expectedMatch bool
	}{
		{input: "true", expectedValue: true, expectedMatch: true},
		{input: "YES", expectedValue: true, expectedMatch: true},
		{input: "1", expectedValue: true, expectedMatch: true},
		{input: "", expectedValue: true, expectedMatch: true},
		{input: "false", expectedValue: false, expectedMatch: true},
		{input: " no ", expectedValue: false, expectedMatch: true},
		{input: "0", expectedValue: false, expectedMatch: true},
		{input: ".", expectedMatch: false},
		{input: "maybe", expectedMatch: false},
	}
	for index, testCase := range testCases {
		actualValue, actualMatch := interpretCopyFlagLiteral(testCase.input)
		if actualMatch != testCase.expectedMatch {
			testingInstance.Errorf("case %d: interpretCopyFlagLiteral(%q): expected match %v, got %v",
				index, testCase.input, testCase.expectedMatch, actualMatch)
			continue
		}
		if actualMatch && actualValue != testCase.expectedValue {
			testingInstance.Errorf("case %d: interpretCopyFlagLiteral(%q): expected value %v, got %v",
				index, testCase.input, testCase.expectedValue, actualValue)
		}
	}
}

// TestResolveGenerateSettingsDefaults verifies built-in defaults when neither
// flags nor configuration set a value.
func TestResolveGenerateSettingsDefaults(testingInstance *testing.T) {
	command := createRootCommand()
	var options generateOptions
	resolved := resolveGenerateSettings(command, &options, config.GenerateConfiguration{})
	if !resolved.useGitignore {
		testingInstance.Errorf("expected gitignore enabled by default")
	}
	if resolved.model != defaultTokenizerModelName {
		testingInstance.Errorf("expected default model %q, got %q", defaultTokenizerModelName, resolved.model)
	}
	if resolved.stripComments || resolved.copyToClipboard || resolved.tokensEnabled {
		testingInstance.Errorf("expected boolean settings off by default, got %+v", resolved)
	}
}
