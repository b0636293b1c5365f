// Package redact scrubs sensitive information from strings before they are
// logged or returned in error responses. Error messages produced by the
// database layer or the webhook client can carry connection strings, tokens,
// or SQL fragments that must not reach API clients.
package redact

import "regexp"

// Redaction placeholders
const (
	RedactedCredential = "[REDACTED_CREDENTIAL]"
	RedactedKey        = "[REDACTED_KEY]"
	RedactedPath       = "[REDACTED_PATH]"
	RedactedJWT        = "[REDACTED_JWT]"
	RedactedSQL        = "[REDACTED_SQL]"
	RedactedEmail      = "[REDACTED_EMAIL]"
	RedactedHost       = "[REDACTED_HOST]"
)

var (
	dbConnRegex   = regexp.MustCompile(`(?i)(postgres|postgresql|mysql|db|database)://[^@\s]+@`)
	passwordRegex = regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]?['"]?)[^'"&\s]{3,}`)
	apiKeyRegex   = regexp.MustCompile(`(?i)(api[_-]?key|token|secret|bearer)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`)
	jwtRegex      = regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`)
	unixPathRegex = regexp.MustCompile(`(/[\w.-]+){2,}`)
	sqlRegex      = regexp.MustCompile(
		`(?i)(SELECT|INSERT|UPDATE|DELETE|CREATE|ALTER|DROP)[\s\w,*()]+(?:FROM|INTO|SET|TABLE)(?:[\s\w,*()='"]+)?`,
	)
	emailRegex    = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`)
	hostPortRegex = regexp.MustCompile(
		`\b(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}(?::\d{1,5})?\b`,
	)
)

// Order matters: connection strings and JWTs must be caught before the
// broader path and host patterns get a chance to split them up.
var replacements = []struct {
	pattern     *regexp.Regexp
	placeholder string
}{
	{dbConnRegex, RedactedCredential},
	{passwordRegex, RedactedCredential},
	{apiKeyRegex, RedactedKey},
	{jwtRegex, RedactedJWT},
	{unixPathRegex, RedactedPath},
	{sqlRegex, RedactedSQL},
	{emailRegex, RedactedEmail},
	{hostPortRegex, RedactedHost},
}

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range replacements {
		result = r.pattern.ReplaceAllString(result, r.placeholder)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output.
// A nil error yields the empty string.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
