package envfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name         string
		content      string
		valid        bool
		errors       int
		warnings     int
		fixedContent string
	}{
		{"well formed", "A=1\nB=2\n", true, 0, 0, ""},
		{"empty file", "", true, 0, 0, ""},
		{"missing trailing newline", "A=1", false, 1, 0, "A=1\n"},
		{"trailing space in key", "KEY =value\n", true, 0, 1, ""},
		{"leading space in value", "KEY= value\n", true, 0, 1, ""},
		{"spaces around equals", "KEY = value\n", true, 0, 2, ""},
		{"tab before equals", "KEY\t=value\n", true, 0, 1, ""},
		{"missing separator", "justtext\n", false, 1, 0, ""},
		{"comments and blanks skipped", "# header\n\n   \n  # indented comment\nA=1\n", true, 0, 0, ""},
		{"equals inside value", "URL=postgres://h/db?a=b\n", true, 0, 0, ""},
		{"empty value", "EMPTY=\n", true, 0, 0, ""},
		{"crlf line endings", "A=1\r\nB=2\r\n", true, 0, 0, ""},
		{"several errors", "one\ntwo\nA=1", false, 3, 0, "one\ntwo\nA=1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Validate(tt.content)
			assert.Equal(t, tt.valid, got.Valid)
			assert.Len(t, got.Errors, tt.errors, "errors: %v", got.Errors)
			assert.Len(t, got.Warnings, tt.warnings, "warnings: %v", got.Warnings)
			assert.Equal(t, tt.fixedContent, got.FixedContent)
			assert.False(t, got.Fixed)
		})
	}
}

func TestValidate_Messages(t *testing.T) {
	got := Validate("OK=1\nbroken\nKEY =value")

	assert.Equal(t, []string{
		"File does not end with a newline character",
		"Line 2: Missing '=' separator",
	}, got.Errors)
	assert.Equal(t, []string{
		"Line 3: Key contains a trailing space, which will be part of the key name 'KEY '",
	}, got.Warnings)
}

func TestValidate_WarningsDoNotAffectValidity(t *testing.T) {
	got := Validate("A = 1\nB = 2\n")
	assert.True(t, got.Valid)
	assert.Len(t, got.Warnings, 4)
	assert.Empty(t, got.Errors)
}

func TestFix(t *testing.T) {
	fixed, changed := Fix("A=1")
	assert.True(t, changed)
	assert.Equal(t, "A=1\n", fixed)

	same, changed := Fix("A=1\n")
	assert.False(t, changed)
	assert.Equal(t, "A=1\n", same)

	// Syntax errors have no automatic fix.
	same, changed = Fix("broken\n")
	assert.False(t, changed)
	assert.Equal(t, "broken\n", same)
}
