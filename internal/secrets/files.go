package secrets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	kerrors "github.com/treebird7/Envoak/internal/errors"

	"github.com/bmatcuk/doublestar/v4"
)

// EncryptedSuffix is appended to arbitrary files encrypted with `file push`.
const EncryptedSuffix = ".enc"

// ResolveFiles takes user-provided paths/globs and returns matching files.
// forEncryption=true finds plain files, forEncryption=false finds *.enc files.
// Relative patterns are resolved against baseDir.
func ResolveFiles(patterns []string, baseDir string, forEncryption bool) ([]string, error) {
	var files []string
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		resolved, err := resolvePattern(pattern, baseDir, forEncryption)
		if err != nil {
			return nil, err
		}

		for _, f := range resolved {
			if !seen[f] {
				seen[f] = true
				files = append(files, f)
			}
		}
	}

	if len(files) == 0 {
		return nil, kerrors.ErrNoFilesFound
	}

	return files, nil
}

func resolvePattern(pattern, baseDir string, forEncryption bool) ([]string, error) {
	absPattern := pattern
	if !filepath.IsAbs(pattern) {
		absPattern = filepath.Join(baseDir, pattern)
	}

	info, err := os.Stat(absPattern)
	if err == nil && info.IsDir() {
		return findFilesInDir(absPattern, forEncryption)
	}

	if strings.ContainsAny(pattern, "*?[{") {
		return expandGlob(absPattern, pattern, forEncryption)
	}

	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrNoFilesFound, pattern)
	}
	if err != nil {
		return nil, kerrors.IO("stat", absPattern, err)
	}

	if !forEncryption && !isEncryptedFile(absPattern) {
		return nil, fmt.Errorf("file is not a %s file: %s", EncryptedSuffix, pattern)
	}

	return []string{absPattern}, nil
}

func expandGlob(absPattern, pattern string, forEncryption bool) ([]string, error) {
	matches, err := doublestar.FilepathGlob(absPattern)
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}

	var filtered []string
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		if forEncryption != isEncryptedFile(m) {
			filtered = append(filtered, m)
		}
	}

	return filtered, nil
}

func findFilesInDir(dir string, forEncryption bool) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// Skip hidden directories such as .git, but not the root itself.
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if forEncryption != isEncryptedFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, kerrors.IO("walking", dir, err)
	}

	return files, nil
}

func isEncryptedFile(path string) bool {
	return strings.HasSuffix(filepath.Base(path), EncryptedSuffix)
}

// EncryptedPathFor returns the default artifact path for a plain file.
func EncryptedPathFor(path string) string {
	return path + EncryptedSuffix
}

// DecryptedPathFor returns the default output path when decrypting input.
// It never returns input itself.
func DecryptedPathFor(input string) string {
	out := strings.TrimSuffix(input, EncryptedSuffix)
	if out == input || out == "" {
		return input + ".decrypted"
	}
	return out
}

// ReadText reads a whole file as text.
func ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", kerrors.IO("reading", path, err)
	}
	return string(data), nil
}

// WriteFileAtomic writes data to a temp file next to path and renames it
// into place, so readers never observe a partially written file.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return kerrors.IO("creating temp file for", path, err)
	}
	tmpPath := tmp.Name()

	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}

	if _, err := tmp.Write(data); err != nil {
		cleanup()
		return kerrors.IO("writing", tmpPath, err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return kerrors.IO("syncing", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return kerrors.IO("closing", tmpPath, err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		_ = os.Remove(tmpPath)
		return kerrors.IO("chmod", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return kerrors.IO("renaming", tmpPath, err)
	}
	return nil
}
