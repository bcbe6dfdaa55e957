package scan

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/treebird7/Envoak/internal/secrets"
)

// KeySource tells where the propagated key came from.
type KeySource string

const (
	KeySourceNone        KeySource = "none"
	KeySourceEnvironment KeySource = "environment"
	KeySourceRootFile    KeySource = "root-file"
)

// ResolveKey picks the key to hand to every child.
//
// A non-empty envKey always wins. Otherwise root's plaintext file is read
// and, for each name in order, the first line starting with NAME= supplies
// the value, trimmed and with one pair of surrounding quotes removed.
// A missing or unreadable file means no key, never an error.
func ResolveKey(envKey, root string, files secrets.FileNames, names []string) (string, KeySource) {
	if envKey = strings.TrimSpace(envKey); envKey != "" {
		return envKey, KeySourceEnvironment
	}

	content, err := os.ReadFile(filepath.Join(root, files.Env))
	if err != nil {
		return "", KeySourceNone
	}

	for _, name := range names {
		if name == "" {
			continue
		}
		if value, ok := lookupLine(string(content), name); ok {
			return value, KeySourceRootFile
		}
	}

	return "", KeySourceNone
}

// lookupLine finds the first line that starts with name= and returns its
// non-empty value. Only the literal prefix is matched; there is no full
// dotenv parsing here.
func lookupLine(content, name string) (string, bool) {
	prefix := name + "="
	scanner := bufio.NewScanner(strings.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, prefix) {
			continue
		}
		value := unquote(strings.TrimSpace(strings.TrimPrefix(line, prefix)))
		if value == "" {
			continue
		}
		return value, true
	}

	return "", false
}

func unquote(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
