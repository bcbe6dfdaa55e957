package workflows

import (
	"context"
	"path/filepath"
	"time"

	"github.com/treebird7/Envoak/internal/envfile"
	"github.com/treebird7/Envoak/internal/secrets"
)

// StatusOptions configures the status workflow.
type StatusOptions struct {
	Dir   string
	Files secrets.FileNames

	// Key and KeyVar describe the key the caller found, if any.
	Key    string
	KeyVar string
}

// StatusResult is a snapshot of one directory.
type StatusResult struct {
	Dir string `json:"dir"`

	EnvFile   string `json:"envFile"`
	EnvExists bool   `json:"envExists"`
	EnvSize   int64  `json:"envSize"`
	// EnvValid is the format check of the plaintext file. It is true when
	// the file does not exist.
	EnvValid      bool           `json:"envValid"`
	EnvValidation envfile.Result `json:"-"`

	EncFile   string `json:"encFile"`
	EncExists bool   `json:"encExists"`
	EncSize   int64  `json:"encSize"`
	// EncModTime is nil when the artifact does not exist.
	EncModTime *time.Time `json:"encModTime,omitempty"`

	KeyVar         string `json:"keyVar"`
	KeyLoaded      bool   `json:"keyLoaded"`
	KeyFingerprint string `json:"keyFingerprint,omitempty"`

	State secrets.DirectoryState `json:"status"`
}

// Status probes the plaintext file and the artifact in Dir. It reads the
// filesystem on every call and never writes.
//
// KeyLoaded is true only when a key was supplied and it is well formed.
// Returns ErrIO if a file exists but cannot be inspected.
func Status(ctx context.Context, opts StatusOptions) (*StatusResult, error) {
	probe, err := secrets.ProbeDirectory(opts.Dir, opts.Files)
	if err != nil {
		return nil, err
	}

	result := &StatusResult{
		Dir:       opts.Dir,
		EnvFile:   filepath.Base(probe.EnvPath),
		EnvExists: probe.EnvExists,
		EnvSize:   probe.EnvSize,
		EnvValid:  true,
		EncFile:   filepath.Base(probe.EncPath),
		EncExists: probe.EncExists,
		EncSize:   probe.EncSize,
		KeyVar:    opts.KeyVar,
		State:     probe.State,
	}
	if probe.EncExists {
		modTime := probe.EncModTime
		result.EncModTime = &modTime
	}

	if probe.EnvExists {
		content, err := secrets.ReadText(probe.EnvPath)
		if err != nil {
			return nil, err
		}
		result.EnvValidation = envfile.Validate(content)
		result.EnvValid = result.EnvValidation.Valid
	}

	if secrets.ValidateKey(opts.Key) {
		result.KeyLoaded = true
		result.KeyFingerprint, _ = secrets.Fingerprint(opts.Key)
	}

	return result, nil
}
