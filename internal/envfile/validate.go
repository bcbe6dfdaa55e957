package envfile

import (
	"fmt"
	"strings"
)

// Result is the report produced by Validate.
type Result struct {
	Valid    bool     `json:"valid" yaml:"valid"`
	Errors   []string `json:"errors" yaml:"errors"`
	Warnings []string `json:"warnings" yaml:"warnings"`

	// FixedContent is set when an automatic fix is available.
	FixedContent string `json:"fixedContent,omitempty" yaml:"fixedContent,omitempty"`

	// Fixed is set by callers after they have written FixedContent.
	Fixed bool `json:"fixed,omitempty" yaml:"fixed,omitempty"`
}

// HasFix reports whether Validate offered replacement content.
func (r Result) HasFix() bool {
	return r.FixedContent != ""
}

// Validate checks content for a trailing newline and basic KEY=VALUE syntax.
// Blank lines and lines starting with # are skipped.
func Validate(content string) Result {
	result := Result{
		Valid:    true,
		Errors:   []string{},
		Warnings: []string{},
	}

	if content != "" && !strings.HasSuffix(content, "\n") {
		result.Errors = append(result.Errors, "File does not end with a newline character")
		result.Valid = false
		result.FixedContent = content + "\n"
	}

	for i, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		lineNo := i + 1

		key, value, found := strings.Cut(line, "=")
		if !found {
			result.Errors = append(result.Errors, fmt.Sprintf("Line %d: Missing '=' separator", lineNo))
			result.Valid = false
			continue
		}

		if key != strings.TrimRight(key, " \t") {
			result.Warnings = append(result.Warnings, fmt.Sprintf(
				"Line %d: Key contains a trailing space, which will be part of the key name '%s'", lineNo, key))
		}
		if value != strings.TrimLeft(value, " \t") {
			result.Warnings = append(result.Warnings, fmt.Sprintf(
				"Line %d: Value starts with a space, which will be part of the value '%s'", lineNo, strings.TrimRight(value, "\r")))
		}
	}

	return result
}

// Fix applies the automatic fixes Validate can offer.
// The bool reports whether content changed.
func Fix(content string) (string, bool) {
	result := Validate(content)
	if !result.HasFix() {
		return content, false
	}
	return result.FixedContent, true
}
