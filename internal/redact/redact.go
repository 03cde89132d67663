// Package redact provides utilities for redacting sensitive information from
// strings before they are logged or surfaced to callers. Task failure
// messages and batch warnings end up in API responses and the exported
// workbook, so credentials and local filesystem details must not leak
// through error text.
package redact

import "regexp"

// Redaction placeholders
const (
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
	RedactedPathPlaceholder       = "[REDACTED_PATH]"
)

// Precompiled redaction patterns
var (
	// API keys and tokens that external SDK errors sometimes echo back.
	apiKeyRegex = regexp.MustCompile(
		`(?i)(api[_-]?key|token|secret|key|auth)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`,
	)

	// Credentials embedded in URLs.
	credentialURLRegex = regexp.MustCompile(`(?i)[a-z][a-z0-9+.-]*://[^@/\s]+@`)

	// Local filesystem paths from subprocess and temp-dir errors.
	unixPathRegex = regexp.MustCompile(`(/[\w.-]+){2,}`)
	winPathRegex  = regexp.MustCompile(`[A-Za-z]:\\[^\\\s]+(\\[^\\\s]+)+`)
)

var patternPlaceholders = []struct {
	pattern     *regexp.Regexp
	placeholder string
}{
	{apiKeyRegex, RedactedKeyPlaceholder},
	{credentialURLRegex, RedactedCredentialPlaceholder},
	{unixPathRegex, RedactedPathPlaceholder},
	{winPathRegex, RedactedPathPlaceholder},
}

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, p := range patternPlaceholders {
		result = p.pattern.ReplaceAllString(result, p.placeholder)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
