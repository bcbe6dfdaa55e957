package configs

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	"github.com/treebird7/Envoak/internal/secrets"
	"github.com/treebird7/Envoak/internal/utils"
)

// ConfigFileName is the optional project configuration file.
const ConfigFileName = ".envoak.toml"

// Default key variable names.
const (
	DefaultKeyVar = "ENVOAK_KEY"
	LegacyKeyVar  = "ENVAULT_KEY"
)

type ProjectConfig struct {
	Project Project `toml:"project"`
	Files   Files   `toml:"files"`
	Key     Key     `toml:"key"`
	Scan    Scan    `toml:"scan"`
}

type Project struct {
	UUID string `toml:"uuid"`
	Name string `toml:"name"`
}

type Files struct {
	Env       string   `toml:"env"`
	Encrypted string   `toml:"encrypted"`
	Markers   []string `toml:"markers"`
}

type Key struct {
	EnvVar  string   `toml:"env_var"`
	Aliases []string `toml:"aliases"`
}

type Scan struct {
	// TimeoutSeconds bounds each child process. Zero means no timeout.
	TimeoutSeconds int `toml:"timeout_seconds"`
	Parallel       int `toml:"parallel"`
}

// DefaultProjectConfig returns the configuration used when no
// .envoak.toml exists, and the base that a config file is decoded onto.
func DefaultProjectConfig() *ProjectConfig {
	files := secrets.DefaultFileNames()
	return &ProjectConfig{
		Files: Files{
			Env:       files.Env,
			Encrypted: files.Encrypted,
			Markers:   files.Markers,
		},
		Key: Key{
			EnvVar:  DefaultKeyVar,
			Aliases: []string{LegacyKeyVar},
		},
		Scan: Scan{
			TimeoutSeconds: 0,
			Parallel:       1,
		},
	}
}

// LoadProjectConfig loads the project configuration from projectPath.
// Keys missing from the file keep their defaults. A missing file is not an
// error.
func LoadProjectConfig(projectPath string) (*ProjectConfig, error) {
	config := DefaultProjectConfig()
	configPath := filepath.Join(projectPath, ConfigFileName)

	if err := LoadTOML(configPath, config); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return config, nil
		}
		return nil, fmt.Errorf("failed to load project config: %w", err)
	}

	return config, nil
}

// SaveProjectConfig saves the project configuration to projectPath.
func SaveProjectConfig(projectPath string, config *ProjectConfig) error {
	configPath := filepath.Join(projectPath, ConfigFileName)

	if err := SaveTOML(configPath, config); err != nil {
		return fmt.Errorf("failed to save project config: %w", err)
	}

	return nil
}

// GenerateProjectUUID generates a new UUID for the project.
func GenerateProjectUUID() string {
	return uuid.New().String()
}

// FileNames converts the [files] section for the secrets package.
func (c *ProjectConfig) FileNames() secrets.FileNames {
	markers := make([]string, len(c.Files.Markers))
	copy(markers, c.Files.Markers)
	return secrets.FileNames{
		Env:       c.Files.Env,
		Encrypted: c.Files.Encrypted,
		Markers:   markers,
	}
}

// Validate checks the configuration after defaults and overrides are applied.
func (c *ProjectConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Files),
		validation.Field(&c.Key),
		validation.Field(&c.Scan),
	)
}

func (f Files) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Env,
			validation.Required.Error("env file name is required"),
			validation.By(plainFileName),
		),
		validation.Field(&f.Encrypted,
			validation.Required.Error("encrypted file name is required"),
			validation.By(plainFileName),
		),
		validation.Field(&f.Markers,
			validation.Required.Error("at least one marker file is required"),
			validation.Each(validation.Required, validation.By(plainFileName)),
		),
	)
}

func (k Key) Validate() error {
	return validation.ValidateStruct(&k,
		validation.Field(&k.EnvVar,
			validation.Required.Error("key variable name is required"),
			validation.By(envVarName),
		),
		validation.Field(&k.Aliases,
			validation.Each(validation.Required, validation.By(envVarName)),
		),
	)
}

func (s Scan) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.TimeoutSeconds, validation.Min(0).Error("must not be negative")),
		validation.Field(&s.Parallel,
			validation.Required.Error("must be at least 1"),
			validation.Min(1).Error("must be at least 1"),
		),
	)
}

func envVarName(value interface{}) error {
	name, _ := value.(string)
	if name == "" || utils.IsValidEnvVarName(name) {
		return nil
	}
	return errors.New("must be a valid environment variable name")
}

// plainFileName rejects names that would escape the directory being managed.
func plainFileName(value interface{}) error {
	name, _ := value.(string)
	if name == "" {
		return nil
	}
	if filepath.Base(name) != name || name == "." || name == ".." {
		return errors.New("must be a file name, not a path")
	}
	return nil
}
