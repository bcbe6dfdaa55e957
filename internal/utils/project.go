package utils

import (
	"path/filepath"
)

// GetProjectName returns the name of the project rooted at projectRoot.
// An empty root yields an empty name rather than an error, so commands run
// outside a configured project keep working.
func GetProjectName(projectRoot string) string {
	if projectRoot == "" {
		return ""
	}
	return filepath.Base(projectRoot)
}
