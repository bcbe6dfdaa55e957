package configs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/allisson/go-env"
	"github.com/joho/godotenv"

	"github.com/treebird7/Envoak/internal/secrets"
	"github.com/treebird7/Envoak/internal/utils"
)

// Environment overrides for the [scan] section.
const (
	ScanTimeoutEnv  = "ENVOAK_SCAN_TIMEOUT"
	ScanParallelEnv = "ENVOAK_SCAN_PARALLEL"
)

// Settings is the resolved configuration for one invocation: project file,
// defaults and environment overrides merged together.
type Settings struct {
	// WorkDir is the directory the command operates on.
	WorkDir string

	// ProjectPath is the directory holding .envoak.toml, or empty when the
	// command runs outside a configured project.
	ProjectPath string
	ProjectName string

	Config *ProjectConfig

	Files        secrets.FileNames
	KeyVar       string
	KeyAliases   []string
	ScanTimeout  time.Duration
	ScanParallel int
}

// Load resolves settings for workDir.
func Load(workDir string) (*Settings, error) {
	absDir, err := filepath.Abs(workDir)
	if err != nil {
		return nil, fmt.Errorf("error resolving working directory: %w", err)
	}

	projectPath, err := utils.FindProjectRoot(absDir, ConfigFileName)
	if err != nil {
		return nil, fmt.Errorf("error getting project root: %w", err)
	}

	config := DefaultProjectConfig()
	if projectPath != "" {
		config, err = LoadProjectConfig(projectPath)
		if err != nil {
			return nil, err
		}
	}

	config.Scan.TimeoutSeconds = env.GetInt(ScanTimeoutEnv, config.Scan.TimeoutSeconds)
	config.Scan.Parallel = env.GetInt(ScanParallelEnv, config.Scan.Parallel)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	name := config.Project.Name
	if name == "" {
		name = utils.GetProjectName(projectPath)
	}

	aliases := make([]string, len(config.Key.Aliases))
	copy(aliases, config.Key.Aliases)

	return &Settings{
		WorkDir:      absDir,
		ProjectPath:  projectPath,
		ProjectName:  name,
		Config:       config,
		Files:        config.FileNames(),
		KeyVar:       config.Key.EnvVar,
		KeyAliases:   aliases,
		ScanTimeout:  time.Duration(config.Scan.TimeoutSeconds) * time.Second,
		ScanParallel: config.Scan.Parallel,
	}, nil
}

// KeyNames returns the primary key variable followed by its aliases.
func (s *Settings) KeyNames() []string {
	names := make([]string, 0, 1+len(s.KeyAliases))
	names = append(names, s.KeyVar)
	for _, alias := range s.KeyAliases {
		if alias != s.KeyVar {
			names = append(names, alias)
		}
	}
	return names
}

// KeyFromEnv returns the key from the process environment and the variable
// it came from. The primary name wins over aliases. An unset or blank
// variable yields empty strings.
//
// This is the only place the key is read from the environment; everything
// below the command layer receives it as an argument.
func KeyFromEnv(s *Settings) (key, source string) {
	for _, name := range s.KeyNames() {
		if value, ok := os.LookupEnv(name); ok {
			if value = strings.TrimSpace(value); value != "" {
				return value, name
			}
		}
	}
	return "", ""
}

// LoadDotEnv loads the plaintext file name in dir into the process
// environment. An empty name means .env. Variables that are already set are
// left untouched. A missing file is not an error.
func LoadDotEnv(dir, name string) error {
	if name == "" {
		name = secrets.DefaultFileNames().Env
	}
	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}
