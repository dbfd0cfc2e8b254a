package sanitize_test

import (
	"strings"
	"testing"

	"github.com/srcdoc/srcdoc/internal/sanitize"
)

// TestRedactSecrets verifies every redaction rule replaces secret values while
// preserving surrounding structure.
func TestRedactSecrets(testingInstance *testing.T) {
	testCases := []struct {
		testName string
		input    string
		expected string
	}{
		{
			testName: "json password value replaced",
			input:    `{ "Password": "abc123" }`,
			expected: `{ "Password": "***" }`,
		},
		{
			testName: "json api key value replaced",
			input:    `{ "ApiKey": "sk-something" }`,
			expected: `{ "ApiKey": "***" }`,
		},
		{
			testName: "connection string block emptied",
			input:    `{ "ConnectionStrings": { "Default": "Server=db;Password=x" } }`,
			expected: `{ "ConnectionStrings": {} }`,
		},
		{
			testName: "quoted connection string assignment",
			input:    `connectionString="Server=db;Password=hunter2"`,
			expected: `connectionString="***"`,
		},
		{
			testName: "unquoted credential fragments",
			input:    `Server=db;User Id=admin;Password=hunter2;Database=app`,
			expected: `Server=db;User Id=***;Password=***;Database=app`,
		},
		{
			testName: "assignment form credential",
			input:    `secretToken = "value-here"`,
			expected: `secretToken = "***"`,
		},
		{
			testName: "long hexadecimal token replaced",
			input:    "token is 0123456789abcdef0123456789abcdef here",
			expected: "token is *** here",
		},
		{
			testName: "short hexadecimal token kept",
			input:    "hash deadbeef stays",
			expected: "hash deadbeef stays",
		},
		{
			testName: "email address replaced",
			input:    "contact alice@example.org for access",
			expected: "contact redacted@example.com for access",
		},
		{
			testName: "non-secret content untouched",
			input:    `{ "Logging": { "Level": "Debug" } }`,
			expected: `{ "Logging": { "Level": "Debug" } }`,
		},
	}
	for index, testCase := range testCases {
		actual := sanitize.RedactSecrets(testCase.input)
		if actual != testCase.expected {
			testingInstance.Errorf("case %d (%s): expected %q, got %q", index, testCase.testName, testCase.expected, actual)
		}
		if strings.Contains(actual, "abc123") || strings.Contains(actual, "hunter2") {
			testingInstance.Errorf("case %d (%s): secret value survived redaction: %q", index, testCase.testName, actual)
		}
	}
}

// TestRedactSecretsKeepsMultiLineStructureInPlace verifies a multi-line match
// is rewritten line by line: each newline stays at its matched position, the
// closing brace stays on its original line, and only the span's non-newline
// characters are removed.
func TestRedactSecretsKeepsMultiLineStructureInPlace(testingInstance *testing.T) {
	multiLineInput := "{\n" +
		"  \"ConnectionStrings\": {\n" +
		"    \"Default\": \"Server=db;Password=x\"\n" +
		"  },\n" +
		"  \"Other\": true\n" +
		"}\n"
	expectedLines := []string{
		"{",
		"  \"ConnectionStrings\": {",
		"",
		"},",
		"  \"Other\": true",
		"}",
		"",
	}

	redacted := sanitize.RedactSecrets(multiLineInput)
	actualLines := strings.Split(redacted, "\n")
	if len(actualLines) != len(expectedLines) {
		testingInstance.Fatalf("expected %d lines, got %d:\n%q", len(expectedLines), len(actualLines), redacted)
	}
	for lineIndex, expectedLine := range expectedLines {
		if actualLines[lineIndex] != expectedLine {
			testingInstance.Errorf("line %d: expected %q, got %q", lineIndex+1, expectedLine, actualLines[lineIndex])
		}
	}
}

// TestRedactSecretsPreservesNewlineCount verifies multi-line matches never
// change the file's line structure.
func TestRedactSecretsPreservesNewlineCount(testingInstance *testing.T) {
	multiLineInput := "{\n  \"ConnectionStrings\": {\n    \"Default\": \"Server=db;Password=x\",\n    \"Audit\": \"Server=db2;Password=y\"\n  },\n  \"Other\": true\n}\n"
	redacted := sanitize.RedactSecrets(multiLineInput)
	if strings.Count(redacted, "\n") != strings.Count(multiLineInput, "\n") {
		testingInstance.Errorf("newline count changed: input %d, output %d",
			strings.Count(multiLineInput, "\n"), strings.Count(redacted, "\n"))
	}
	if strings.Contains(redacted, "Password=x") || strings.Contains(redacted, "Password=y") {
		testingInstance.Errorf("connection string values survived redaction: %q", redacted)
	}
}

// TestRedactSecretsIsIdempotent verifies a second application changes nothing.
func TestRedactSecretsIsIdempotent(testingInstance *testing.T) {
	inputs := []string{
		`{ "Password": "abc123", "owner": "alice@example.org" }`,
		`Server=db;Password=hunter2;AccountKey=0123456789abcdef0123456789abcdef`,
	}
	for index, input := range inputs {
		once := sanitize.RedactSecrets(input)
		twice := sanitize.RedactSecrets(once)
		if once != twice {
			testingInstance.Errorf("case %d: redaction not idempotent: first %q, second %q", index, once, twice)
		}
	}
}

// TestIsConfigLike verifies the configuration-file classification.
func TestIsConfigLike(testingInstance *testing.T) {
	testCases := []struct {
		fileName string
		expected bool
	}{
		{fileName: "appsettings.json", expected: true},
		{fileName: "Web.config", expected: true},
		{fileName: "app.XML", expected: true},
		{fileName: "Constants.cs", expected: true},
		{fileName: "UserSettings.cs", expected: true},
		{fileName: "Program.cs", expected: false},
		{fileName: "readme.md", expected: false},
	}
	for index, testCase := range testCases {
		actual := sanitize.IsConfigLike(testCase.fileName)
		if actual != testCase.expected {
			testingInstance.Errorf("case %d: IsConfigLike(%q): expected %v, got %v",
				index, testCase.fileName, testCase.expected, actual)
		}
	}
}
