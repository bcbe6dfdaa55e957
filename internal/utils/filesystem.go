package utils

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// FindProjectRoot traverses up from startDir to find the directory holding
// the project config file named configName.
// Returns the path to the project root if found, empty string otherwise.
// Stops searching when it reaches the user's home directory.
func FindProjectRoot(startDir, configName string) (string, error) {
	currentDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", startDir, err)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	for {
		// Stop searching at one level above home directory
		if currentDir == path.Join(homeDir, "..") {
			return "", nil
		}

		configPath := filepath.Join(currentDir, configName)
		fileInfo, err := os.Stat(configPath)
		if err == nil {
			if !fileInfo.IsDir() {
				return currentDir, nil
			}
		} else if !os.IsNotExist(err) {
			return "", fmt.Errorf("error checking for %s at %s: %w", configName, currentDir, err)
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", nil
		}
		currentDir = parentDir
	}
}

// RelPath renders path relative to base when it lies below base, and
// unchanged otherwise.
func RelPath(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}
