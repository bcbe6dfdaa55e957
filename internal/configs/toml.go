package configs

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// SaveTOML encodes data as TOML and writes it to filePath.
// The file is meant to be committed, so it is world-readable.
func SaveTOML(filePath string, data interface{}) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(data); err != nil {
		return fmt.Errorf("failed to encode %s: %w", filePath, err)
	}

	return os.WriteFile(filePath, buf.Bytes(), 0644)
}

// LoadTOML decodes a TOML file into data. Keys present in the file
// overwrite the corresponding fields; all other fields are left as they are.
// Unknown keys are rejected so that typos do not silently fall back to
// defaults.
func LoadTOML(filePath string, data interface{}) error {
	meta, err := toml.DecodeFile(filePath, data)
	if err != nil {
		return err
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown key %q in %s", undecoded[0].String(), filePath)
	}
	return nil
}
