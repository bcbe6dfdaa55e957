package workflows

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/treebird7/Envoak/internal/configs"
	kerrors "github.com/treebird7/Envoak/internal/errors"
	"github.com/treebird7/Envoak/internal/secrets"
)

// InitOptions configures the init workflow.
type InitOptions struct {
	Dir   string
	Files secrets.FileNames

	// ProjectName is written to .envoak.toml. Defaults to the directory name.
	ProjectName string

	// Marker creates the first marker file so that scan picks the
	// directory up before any secrets exist.
	Marker bool

	// Force regenerates the project UUID of an existing .envoak.toml.
	// Other settings in the file are kept.
	Force bool
}

// GitignoreCheck is the advisory .gitignore report.
type GitignoreCheck struct {
	// Found is false when the directory has no .gitignore.
	Found bool

	// Missing lists the entries that no .gitignore pattern covers.
	Missing []string
}

// InitResult contains the outcome of an init operation.
type InitResult struct {
	// Key is the newly generated key. It is not stored anywhere.
	Key string

	ConfigPath    string
	ConfigWritten bool
	ProjectUUID   string
	ProjectName   string

	MarkerPath    string
	MarkerCreated bool

	Gitignore GitignoreCheck
}

// Init generates a key and prepares Dir for Envoak.
//
// The key is only returned: Init never writes it to disk. An existing
// .envoak.toml is left alone unless Force is set.
func Init(ctx context.Context, opts InitOptions) (*InitResult, error) {
	key, err := secrets.GenerateKey()
	if err != nil {
		return nil, err
	}

	result := &InitResult{
		Key:        key,
		ConfigPath: filepath.Join(opts.Dir, configs.ConfigFileName),
	}

	if err := writeProjectConfig(opts, result); err != nil {
		return nil, err
	}

	if opts.Marker && len(opts.Files.Markers) > 0 {
		result.MarkerPath = filepath.Join(opts.Dir, opts.Files.Markers[0])
		created, err := touch(result.MarkerPath)
		if err != nil {
			return nil, err
		}
		result.MarkerCreated = created
	}

	result.Gitignore, err = CheckGitignore(opts.Dir, []string{opts.Files.Env, opts.Files.Env + ".bak"})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func writeProjectConfig(opts InitOptions, result *InitResult) error {
	exists, err := fileExists(result.ConfigPath)
	if err != nil {
		return err
	}

	config := configs.DefaultProjectConfig()
	if exists {
		config, err = configs.LoadProjectConfig(opts.Dir)
		if err != nil {
			return err
		}
		if !opts.Force {
			result.ProjectUUID = config.Project.UUID
			result.ProjectName = config.Project.Name
			return nil
		}
	}

	config.Project.UUID = configs.GenerateProjectUUID()
	if opts.ProjectName != "" {
		config.Project.Name = opts.ProjectName
	}
	if config.Project.Name == "" {
		config.Project.Name = filepath.Base(opts.Dir)
	}

	if err := configs.SaveProjectConfig(opts.Dir, config); err != nil {
		return kerrors.IO("writing", result.ConfigPath, err)
	}

	result.ConfigWritten = true
	result.ProjectUUID = config.Project.UUID
	result.ProjectName = config.Project.Name
	return nil
}

// touch creates an empty file unless it exists. It reports whether the
// file was created.
func touch(path string) (bool, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if errors.Is(err, fs.ErrExist) {
		return false, nil
	}
	if err != nil {
		return false, kerrors.IO("creating", path, err)
	}
	if err := f.Close(); err != nil {
		return false, kerrors.IO("closing", path, err)
	}
	return true, nil
}

// CheckGitignore reports which of entries are not ignored by dir/.gitignore.
// Patterns are matched with doublestar, so ".env*" covers ".env.bak".
// Negations and directory-only patterns are not interpreted.
func CheckGitignore(dir string, entries []string) (GitignoreCheck, error) {
	path := filepath.Join(dir, ".gitignore")
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return GitignoreCheck{Found: false, Missing: entries}, nil
	}
	if err != nil {
		return GitignoreCheck{}, kerrors.IO("reading", path, err)
	}

	var patterns []string
	scanner := bufio.NewScanner(strings.NewReader(string(data)))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
			continue
		}
		line = strings.TrimPrefix(line, "**/")
		line = strings.TrimPrefix(line, "/")
		patterns = append(patterns, line)
	}
	if err := scanner.Err(); err != nil {
		return GitignoreCheck{}, fmt.Errorf("parsing %s: %w", path, err)
	}

	check := GitignoreCheck{Found: true, Missing: []string{}}
	for _, entry := range entries {
		if !ignored(entry, patterns) {
			check.Missing = append(check.Missing, entry)
		}
	}
	return check, nil
}

func ignored(name string, patterns []string) bool {
	for _, p := range patterns {
		if ok, err := doublestar.Match(p, name); err == nil && ok {
			return true
		}
	}
	return false
}
