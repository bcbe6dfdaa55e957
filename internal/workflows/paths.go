package workflows

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	kerrors "github.com/treebird7/Envoak/internal/errors"
)

// resolvePath makes p absolute relative to dir. An empty p yields def.
func resolvePath(dir, p, def string) string {
	if p == "" {
		p = def
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(dir, p)
}

// fileExists reports whether path is an existing regular file.
func fileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, kerrors.IO("stat", path, err)
	}
	return !info.IsDir(), nil
}

// filePerm returns path's permission bits, or def if it does not exist.
func filePerm(path string, def os.FileMode) os.FileMode {
	info, err := os.Stat(path)
	if err != nil {
		return def
	}
	return info.Mode().Perm()
}

func requireKey(key string) error {
	if key == "" {
		return kerrors.ErrKeyNotFound
	}
	return nil
}
