package secrets

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	kerrors "github.com/treebird7/Envoak/internal/errors"
)

// DirectoryState is the synchronization status of a managed directory.
type DirectoryState string

const (
	// StateNone means neither the plaintext file nor the encrypted artifact exists.
	StateNone DirectoryState = "NONE"
	// StateSynced means both files exist. Contents are not compared.
	StateSynced DirectoryState = "SYNCED"
	// StateUntracked means plaintext exists with no encrypted artifact.
	StateUntracked DirectoryState = "UNTRACKED"
	// StateMissing means the encrypted artifact exists with no plaintext.
	StateMissing DirectoryState = "MISSING"
)

// DeriveStatus maps file presence to a DirectoryState.
func DeriveStatus(plaintextExists, encryptedExists bool) DirectoryState {
	switch {
	case plaintextExists && encryptedExists:
		return StateSynced
	case plaintextExists:
		return StateUntracked
	case encryptedExists:
		return StateMissing
	default:
		return StateNone
	}
}

// FileNames names the files that make a directory managed.
type FileNames struct {
	// Env is the plaintext secrets file, usually .env.
	Env string

	// Encrypted is the committed artifact, usually config.enc.
	Encrypted string

	// Markers are sentinel files that mark a directory as managed before
	// any secrets exist.
	Markers []string
}

// DefaultFileNames returns the standard file layout.
func DefaultFileNames() FileNames {
	return FileNames{
		Env:       ".env",
		Encrypted: "config.enc",
		Markers:   []string{".envoak_key", ".envault_key"},
	}
}

// Probe is a point-in-time view of a directory's secrets files.
type Probe struct {
	Dir string

	EnvPath     string
	EnvExists   bool
	EnvSize     int64
	EncPath     string
	EncExists   bool
	EncSize     int64
	EncModTime  time.Time
	MarkerFound bool

	State DirectoryState
}

// ProbeDirectory stats the secrets files in dir. Nothing is cached:
// every call reads the filesystem again.
func ProbeDirectory(dir string, files FileNames) (*Probe, error) {
	p := &Probe{
		Dir:     dir,
		EnvPath: filepath.Join(dir, files.Env),
		EncPath: filepath.Join(dir, files.Encrypted),
	}

	envInfo, err := statRegular(p.EnvPath)
	if err != nil {
		return nil, err
	}
	if envInfo != nil {
		p.EnvExists = true
		p.EnvSize = envInfo.Size()
	}

	encInfo, err := statRegular(p.EncPath)
	if err != nil {
		return nil, err
	}
	if encInfo != nil {
		p.EncExists = true
		p.EncSize = encInfo.Size()
		p.EncModTime = encInfo.ModTime()
	}

	for _, marker := range files.Markers {
		info, err := statRegular(filepath.Join(dir, marker))
		if err != nil {
			return nil, err
		}
		if info != nil {
			p.MarkerFound = true
			break
		}
	}

	p.State = DeriveStatus(p.EnvExists, p.EncExists)
	return p, nil
}

// Managed reports whether the probed directory qualifies as a scan target.
func (p *Probe) Managed() bool {
	return p.EnvExists || p.EncExists || p.MarkerFound
}

// statRegular returns nil info and nil error when path does not exist.
func statRegular(path string) (fs.FileInfo, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, kerrors.IO("stat", path, err)
	}
	if info.IsDir() {
		return nil, nil
	}
	return info, nil
}
