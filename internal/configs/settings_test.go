package configs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWithoutProjectFile(t *testing.T) {
	dir := t.TempDir()

	settings, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, settings.WorkDir)
	assert.Empty(t, settings.ProjectPath)
	assert.Equal(t, ".env", settings.Files.Env)
	assert.Equal(t, "config.enc", settings.Files.Encrypted)
	assert.Equal(t, "ENVOAK_KEY", settings.KeyVar)
	assert.Equal(t, time.Duration(0), settings.ScanTimeout)
	assert.Equal(t, 1, settings.ScanParallel)
}

func TestLoadFindsProjectFileInParent(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "services", "api")
	require.NoError(t, os.MkdirAll(nested, 0755))

	config := DefaultProjectConfig()
	config.Project.Name = "monorepo"
	config.Scan.TimeoutSeconds = 30
	require.NoError(t, SaveProjectConfig(root, config))

	settings, err := Load(nested)
	require.NoError(t, err)
	assert.Equal(t, root, settings.ProjectPath)
	assert.Equal(t, "monorepo", settings.ProjectName)
	assert.Equal(t, 30*time.Second, settings.ScanTimeout)
}

func TestLoadProjectNameFallsBackToDirectory(t *testing.T) {
	root := filepath.Join(t.TempDir(), "payments")
	require.NoError(t, os.Mkdir(root, 0755))
	require.NoError(t, SaveProjectConfig(root, DefaultProjectConfig()))

	settings, err := Load(root)
	require.NoError(t, err)
	assert.Equal(t, "payments", settings.ProjectName)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv(ScanTimeoutEnv, "5")
	t.Setenv(ScanParallelEnv, "3")

	settings, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, settings.ScanTimeout)
	assert.Equal(t, 3, settings.ScanParallel)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	root := t.TempDir()
	content := "[scan]\nparallel = -2\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, ConfigFileName), []byte(content), 0644))

	_, err := Load(root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestKeyNames(t *testing.T) {
	settings := &Settings{KeyVar: "ENVOAK_KEY", KeyAliases: []string{"ENVAULT_KEY", "ENVOAK_KEY"}}
	assert.Equal(t, []string{"ENVOAK_KEY", "ENVAULT_KEY"}, settings.KeyNames())
}

func TestKeyFromEnv(t *testing.T) {
	settings := &Settings{KeyVar: "ENVOAK_TEST_KEY", KeyAliases: []string{"ENVOAK_TEST_LEGACY"}}

	t.Run("Unset", func(t *testing.T) {
		key, source := KeyFromEnv(settings)
		assert.Empty(t, key)
		assert.Empty(t, source)
	})

	t.Run("AliasOnly", func(t *testing.T) {
		t.Setenv("ENVOAK_TEST_LEGACY", "legacy")
		key, source := KeyFromEnv(settings)
		assert.Equal(t, "legacy", key)
		assert.Equal(t, "ENVOAK_TEST_LEGACY", source)
	})

	t.Run("PrimaryWins", func(t *testing.T) {
		t.Setenv("ENVOAK_TEST_KEY", " primary \n")
		t.Setenv("ENVOAK_TEST_LEGACY", "legacy")
		key, source := KeyFromEnv(settings)
		assert.Equal(t, "primary", key)
		assert.Equal(t, "ENVOAK_TEST_KEY", source)
	})

	t.Run("BlankPrimaryFallsThrough", func(t *testing.T) {
		t.Setenv("ENVOAK_TEST_KEY", "   ")
		t.Setenv("ENVOAK_TEST_LEGACY", "legacy")
		key, _ := KeyFromEnv(settings)
		assert.Equal(t, "legacy", key)
	})
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()

	t.Run("MissingFile", func(t *testing.T) {
		assert.NoError(t, LoadDotEnv(dir, ""))
	})

	t.Run("DoesNotOverride", func(t *testing.T) {
		content := "ENVOAK_DOTENV_A=from-file\nENVOAK_DOTENV_B=from-file\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0600))

		t.Setenv("ENVOAK_DOTENV_A", "from-env")
		os.Unsetenv("ENVOAK_DOTENV_B")
		t.Cleanup(func() { os.Unsetenv("ENVOAK_DOTENV_B") })

		require.NoError(t, LoadDotEnv(dir, ".env"))
		assert.Equal(t, "from-env", os.Getenv("ENVOAK_DOTENV_A"))
		assert.Equal(t, "from-file", os.Getenv("ENVOAK_DOTENV_B"))
	})
}

func TestLoadDotEnvHonorsConfiguredFileName(t *testing.T) {
	dir := t.TempDir()

	config := DefaultProjectConfig()
	config.Files.Env = "secrets.env"
	require.NoError(t, SaveProjectConfig(dir, config))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "secrets.env"), []byte("ENVOAK_DOTENV_CUSTOM=from-secrets\n"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("ENVOAK_DOTENV_DEFAULT=from-default\n"), 0600))

	for _, name := range []string{"ENVOAK_DOTENV_CUSTOM", "ENVOAK_DOTENV_DEFAULT"} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}

	settings, err := Load(dir)
	require.NoError(t, err)
	require.NoError(t, LoadDotEnv(settings.WorkDir, settings.Files.Env))

	assert.Equal(t, "from-secrets", os.Getenv("ENVOAK_DOTENV_CUSTOM"))
	_, found := os.LookupEnv("ENVOAK_DOTENV_DEFAULT")
	assert.False(t, found, ".env is not the configured file")
}
