package utils

import (
	"regexp"
	"strings"

	"github.com/treebird7/Envoak/internal/ui"
)

var envVarNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// FormatPaths formats a slice of paths into a readable string.
func FormatPaths(paths []string) string {
	var b strings.Builder
	b.WriteString("\n")
	for _, path := range paths {
		b.WriteString("    - ")
		b.WriteString(ui.Path.Sprint(path))
		b.WriteString("\n")
	}
	return b.String()
}

// IsValidEnvVarName checks if name can be used as an environment variable.
func IsValidEnvVarName(name string) bool {
	return envVarNameRegex.MatchString(name)
}
