// Package utils provides shared utility functions for Envoak.
//
// This package contains general-purpose helpers used across multiple packages.
//
// # Filesystem Utilities
//
//   - FindProjectRoot: walks up directories to find .envoak.toml
//   - FormatPaths: formats file paths for human-readable output
//
// # Project Utilities
//
//   - GetProjectName: returns the project's directory name
//
// # I/O Utilities
//
//   - ReadStdin: reads all data from standard input
//
// # Terminal Utilities
//
//   - IsTerminal: checks if stdout is a terminal
package utils
