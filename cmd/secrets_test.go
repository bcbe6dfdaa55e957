package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kerrors "github.com/treebird7/Envoak/internal/errors"
)

const (
	testKey  = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"
	otherKey = "fedcba9876543210fedcba9876543210fedcba9876543210fedcba9876543210"
)

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestPushPullCommands(t *testing.T) {
	dir := t.TempDir()
	setKey(t, testKey)
	content := "ENVOAK_TEST_DB=postgres://localhost/app\n"
	writeTestFile(t, filepath.Join(dir, ".env"), content)

	output, err := runCLI(t, dir, "push")
	require.NoError(t, err, output)
	assert.Contains(t, output, "Encrypted .env → config.enc")
	assert.Contains(t, output, "You can now safely commit config.enc")
	assert.FileExists(t, filepath.Join(dir, "config.enc"))

	require.NoError(t, os.Remove(filepath.Join(dir, ".env")))

	output, err = runCLI(t, dir, "pull")
	require.NoError(t, err, output)
	assert.Contains(t, output, "Decrypted config.enc → .env")
	assert.NotContains(t, output, "Overwrote")

	data, err := os.ReadFile(filepath.Join(dir, ".env"))
	require.NoError(t, err)
	assert.Equal(t, content, string(data))

	output, err = runCLI(t, dir, "pull")
	require.NoError(t, err, output)
	assert.Contains(t, output, "Overwrote existing .env")

	output, err = runCLI(t, dir, "pull", "--force")
	require.NoError(t, err, output)
	assert.NotContains(t, output, "Overwrote")
}

func TestPushCustomPaths(t *testing.T) {
	dir := t.TempDir()
	setKey(t, testKey)
	writeTestFile(t, filepath.Join(dir, "prod.env"), "ENVOAK_TEST_MODE=prod\n")

	output, err := runCLI(t, dir, "push", "-f", "prod.env", "-o", "prod.enc")
	require.NoError(t, err, output)
	assert.FileExists(t, filepath.Join(dir, "prod.enc"))

	output, err = runCLI(t, dir, "pull", "-f", "prod.enc", "-o", "restored.env")
	require.NoError(t, err, output)
	assert.FileExists(t, filepath.Join(dir, "restored.env"))
}

func TestPushWithoutKey(t *testing.T) {
	dir := t.TempDir()
	setKey(t, "")
	writeTestFile(t, filepath.Join(dir, ".env"), "ENVOAK_TEST_A=1\n")

	_, err := runCLI(t, dir, "push")
	require.Error(t, err)
	assert.True(t, errors.Is(err, kerrors.ErrKeyNotFound))
	assert.NoFileExists(t, filepath.Join(dir, "config.enc"))
}

func TestPushKeyFromAlias(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ENVOAK_KEY", "")
	t.Setenv("ENVAULT_KEY", testKey)
	writeTestFile(t, filepath.Join(dir, ".env"), "ENVOAK_TEST_A=1\n")

	output, err := runCLI(t, dir, "push")
	require.NoError(t, err, output)
	assert.FileExists(t, filepath.Join(dir, "config.enc"))
}

func TestPushInvalidFile(t *testing.T) {
	dir := t.TempDir()
	setKey(t, testKey)
	writeTestFile(t, filepath.Join(dir, ".env"), "ENVOAK_TEST_A=1\nBROKEN\n")

	output, err := runCLI(t, dir, "push")
	require.Error(t, err)
	assert.True(t, errors.Is(err, kerrors.ErrValidationFailed))
	assert.Contains(t, output, "Line 2: Missing '=' separator")
	assert.Contains(t, output, "Refusing to encrypt")
	assert.NoFileExists(t, filepath.Join(dir, "config.enc"))
}

func TestPushPrintsWarnings(t *testing.T) {
	dir := t.TempDir()
	setKey(t, testKey)
	writeTestFile(t, filepath.Join(dir, ".env"), "ENVOAK_TEST_A= 1\n")

	output, err := runCLI(t, dir, "push")
	require.NoError(t, err, output)
	assert.Contains(t, output, "Value starts with a space")
	assert.FileExists(t, filepath.Join(dir, "config.enc"))
}

func TestPullWrongKey(t *testing.T) {
	dir := t.TempDir()
	setKey(t, testKey)
	writeTestFile(t, filepath.Join(dir, ".env"), "ENVOAK_TEST_A=1\n")
	_, err := runCLI(t, dir, "push")
	require.NoError(t, err)
	require.NoError(t, os.Remove(filepath.Join(dir, ".env")))

	setKey(t, otherKey)
	_, err = runCLI(t, dir, "pull")
	require.Error(t, err)
	assert.True(t, errors.Is(err, kerrors.ErrAuthenticationFailed))
	assert.Contains(t, describeError(err), "wrong key")
	assert.NoFileExists(t, filepath.Join(dir, ".env"))
}

func TestPullInvalidKey(t *testing.T) {
	dir := t.TempDir()
	setKey(t, "not-a-key")
	writeTestFile(t, filepath.Join(dir, "config.enc"), "aa:bb:cc")

	_, err := runCLI(t, dir, "pull")
	assert.True(t, errors.Is(err, kerrors.ErrInvalidKey))
}

func TestCheckCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	writeTestFile(t, path, "ENVOAK_TEST_A=1")

	output, err := runCLI(t, dir, "check")
	require.Error(t, err)
	assert.True(t, errors.Is(err, kerrors.ErrValidationFailed))
	assert.Contains(t, output, "File does not end with a newline character")
	assert.Contains(t, output, "`envoak check --fix`")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ENVOAK_TEST_A=1", string(data), "check never rewrites without --fix")

	output, err = runCLI(t, dir, "check", "--fix")
	require.NoError(t, err, output)
	assert.Contains(t, output, "Added the missing trailing newline")
	assert.Contains(t, output, ".env is valid")

	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ENVOAK_TEST_A=1\n", string(data))
}

func TestCheckQuiet(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "app.env"), "KEY =value\n")

	output, err := runCLI(t, dir, "check", "-f", "app.env", "--quiet")
	require.NoError(t, err)
	assert.Empty(t, strings.TrimSpace(output))

	output, err = runCLI(t, dir, "check", "-f", "app.env")
	require.NoError(t, err)
	assert.Contains(t, output, "Key contains a trailing space")
}

func TestCheckFixRejectsStdin(t *testing.T) {
	_, err := runCLI(t, t.TempDir(), "check", "--stdin", "--fix")
	assert.Error(t, err)
}

func TestInitCommand(t *testing.T) {
	dir := t.TempDir()

	output, err := runCLI(t, dir, "init", "--marker", "--name", "api")
	require.NoError(t, err, output)
	assert.Contains(t, output, "Generated a new key")
	assert.Contains(t, output, "ENVOAK_KEY=")
	assert.Contains(t, output, "Wrote .envoak.toml for project 'api'")
	assert.Contains(t, output, "No .gitignore found")
	assert.FileExists(t, filepath.Join(dir, ".envoak.toml"))
	assert.FileExists(t, filepath.Join(dir, ".envoak_key"))

	writeTestFile(t, filepath.Join(dir, ".gitignore"), ".env*\n")

	output, err = runCLI(t, dir, "init")
	require.NoError(t, err, output)
	assert.Contains(t, output, "Keeping existing .envoak.toml")
	assert.Contains(t, output, ".gitignore ignores your plaintext secrets")
}

func TestInitWarnsAboutGitignore(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, ".gitignore"), "node_modules/\n.env\n")

	output, err := runCLI(t, dir, "init")
	require.NoError(t, err, output)
	assert.Contains(t, output, ".gitignore does not ignore .env.bak")
}

func TestFileCommands(t *testing.T) {
	dir := t.TempDir()
	setKey(t, testKey)
	writeTestFile(t, filepath.Join(dir, "creds", "service.json"), `{"token":"abc"}`)

	output, err := runCLI(t, dir, "file", "push", "creds/*.json")
	require.NoError(t, err, output)
	assert.Contains(t, output, "Encrypted 1 file(s):")
	assert.Contains(t, output, filepath.Join("creds", "service.json.enc"))

	require.NoError(t, os.Remove(filepath.Join(dir, "creds", "service.json")))

	output, err = runCLI(t, dir, "file", "pull", "creds/service.json")
	require.NoError(t, err, output)

	data, err := os.ReadFile(filepath.Join(dir, "creds", "service.json"))
	require.NoError(t, err)
	assert.Equal(t, `{"token":"abc"}`, string(data))

	output, err = runCLI(t, dir, "file", "pull", "restored.json", "-i", "creds/service.json.enc")
	require.NoError(t, err, output)
	assert.FileExists(t, filepath.Join(dir, "restored.json"))
}

func TestFilePushNoMatches(t *testing.T) {
	setKey(t, testKey)
	_, err := runCLI(t, t.TempDir(), "file", "push", "*.json")
	assert.True(t, errors.Is(err, kerrors.ErrNoFilesFound))
}
