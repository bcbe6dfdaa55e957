package audit

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/treebird7/Envoak/internal/envfile"
	kerrors "github.com/treebird7/Envoak/internal/errors"
	"github.com/treebird7/Envoak/internal/secrets"
)

// Entry is the audit result for one subdirectory.
type Entry struct {
	Dir    string                 `json:"dir" yaml:"dir"`
	Status secrets.DirectoryState `json:"status" yaml:"status"`
	// Valid is the format check of the plaintext file. A directory with
	// no plaintext file is reported as valid.
	Valid bool `json:"valid" yaml:"valid"`

	Errors   []string `json:"errors,omitempty" yaml:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Format selects the report encoding.
type Format string

const (
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatJSONL Format = "jsonl"
)

// ParseFormat accepts json, yaml (or yml) and jsonl, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "jsonl":
		return FormatJSONL, nil
	default:
		return "", fmt.Errorf("%w: %q (expected json, yaml or jsonl)", kerrors.ErrUnsupportedFormat, s)
	}
}

// Directory audits every non-hidden immediate subdirectory of root.
// Only directories holding the plaintext file or the encrypted artifact are
// reported; marker-only directories have nothing to audit. Entries are sorted
// by directory name.
//
// A subdirectory that cannot be inspected is reported as an invalid entry
// carrying the error text. Returns ErrIO only if root itself cannot be read.
func Directory(root string, files secrets.FileNames) ([]Entry, error) {
	dirEntries, err := os.ReadDir(root)
	if err != nil {
		return nil, kerrors.IO("reading directory", root, err)
	}

	entries := []Entry{}
	for _, d := range dirEntries {
		if !d.IsDir() || strings.HasPrefix(d.Name(), ".") {
			continue
		}

		entry, ok, err := auditOne(filepath.Join(root, d.Name()), files)
		if err != nil {
			entries = append(entries, Entry{
				Dir:    d.Name(),
				Status: secrets.StateNone,
				Errors: []string{err.Error()},
			})
			continue
		}
		if ok {
			entry.Dir = d.Name()
			entries = append(entries, entry)
		}
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Dir < entries[j].Dir })
	return entries, nil
}

// auditOne reports ok=false when dir holds neither file.
func auditOne(dir string, files secrets.FileNames) (Entry, bool, error) {
	probe, err := secrets.ProbeDirectory(dir, files)
	if err != nil {
		return Entry{}, false, err
	}
	if !probe.EnvExists && !probe.EncExists {
		return Entry{}, false, nil
	}

	entry := Entry{Status: probe.State, Valid: true}
	if probe.EnvExists {
		content, err := secrets.ReadText(probe.EnvPath)
		if err != nil {
			// Unreadable plaintext is reported, not fatal for the whole audit.
			if errors.Is(err, fs.ErrPermission) {
				entry.Valid = false
				entry.Errors = []string{"plaintext file is not readable"}
				return entry, true, nil
			}
			return Entry{}, false, err
		}
		result := envfile.Validate(content)
		entry.Valid = result.Valid
		entry.Errors = result.Errors
		entry.Warnings = result.Warnings
	}
	return entry, true, nil
}

// Encode writes entries to w in the given format.
func Encode(w io.Writer, entries []Entry, format Format) error {
	if entries == nil {
		entries = []Entry{}
	}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	case FormatJSONL:
		enc := json.NewEncoder(w)
		for _, entry := range entries {
			if err := enc.Encode(entry); err != nil {
				return err
			}
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(entries); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q", kerrors.ErrUnsupportedFormat, format)
	}
}
