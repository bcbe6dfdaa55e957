package scan

import (
	"os"
	"path/filepath"

	kerrors "github.com/treebird7/Envoak/internal/errors"
	"github.com/treebird7/Envoak/internal/secrets"
)

// DiscoverTargets returns the names of root's immediate subdirectories that
// contain the plaintext file, the encrypted artifact or a key marker.
// Children that cannot be inspected are skipped.
func DiscoverTargets(root string, files secrets.FileNames) ([]string, error) {
	return discoverTargets(root, files, nil)
}

func discoverTargets(root string, files secrets.FileNames, onSkip func(name string, err error)) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, kerrors.IO("reading directory", root, err)
	}

	targets := []string{}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		probe, err := secrets.ProbeDirectory(filepath.Join(root, entry.Name()), files)
		if err != nil {
			if onSkip != nil {
				onSkip(entry.Name(), err)
			}
			continue
		}
		if probe.Managed() {
			targets = append(targets, entry.Name())
		}
	}

	return targets, nil
}
