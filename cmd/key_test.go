package cmd

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/treebird7/Envoak/internal/configs"
	kerrors "github.com/treebird7/Envoak/internal/errors"
	"github.com/treebird7/Envoak/internal/secrets"
)

func TestKeyGenerate(t *testing.T) {
	output, err := runCLI(t, t.TempDir(), "key", "generate")
	require.NoError(t, err)
	assert.True(t, secrets.ValidateKey(strings.TrimSpace(output)), output)
}

func TestKeyCheck(t *testing.T) {
	setKey(t, testKey)
	output, err := runCLI(t, t.TempDir(), "key", "check")
	require.NoError(t, err)

	fingerprint, err := secrets.Fingerprint(testKey)
	require.NoError(t, err)
	assert.Contains(t, output, "'ENVOAK_KEY' holds a valid key")
	assert.Contains(t, output, fingerprint)

	setKey(t, "zz")
	_, err = runCLI(t, t.TempDir(), "key", "check")
	assert.True(t, errors.Is(err, kerrors.ErrInvalidKey))

	setKey(t, "")
	_, err = runCLI(t, t.TempDir(), "key", "check")
	assert.True(t, errors.Is(err, kerrors.ErrKeyNotFound))
}

func TestKeyCheckReadsConfiguredEnvFile(t *testing.T) {
	dir := t.TempDir()

	config := configs.DefaultProjectConfig()
	config.Files.Env = "secrets.env"
	config.Key.EnvVar = "ENVOAK_CMD_FILE_KEY"
	config.Key.Aliases = nil
	require.NoError(t, configs.SaveProjectConfig(dir, config))
	writeTestFile(t, filepath.Join(dir, "secrets.env"), "ENVOAK_CMD_FILE_KEY="+testKey+"\n")

	t.Setenv("ENVOAK_CMD_FILE_KEY", "")
	os.Unsetenv("ENVOAK_CMD_FILE_KEY")

	output, err := runCLI(t, dir, "key", "check")
	require.NoError(t, err, output)
	assert.Contains(t, output, "'ENVOAK_CMD_FILE_KEY' holds a valid key")
}

func TestRootBanner(t *testing.T) {
	output, err := runCLI(t, t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, output, "`envoak --help`")
}

func TestDescribeError(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	tests := []struct {
		err  error
		want string
	}{
		{kerrors.ErrKeyNotFound, "No key found in 'ENVOAK_KEY'"},
		{kerrors.ErrInvalidKey, "must be 64 hex characters"},
		{kerrors.ErrAuthenticationFailed, "wrong key or the encrypted file was modified"},
		{kerrors.ErrMalformedEnvelope, "not in Envoak format"},
		{kerrors.IO("reading", "/x/.env", fs.ErrNotExist), "File not found"},
		{kerrors.IO("writing", "/x/.env", fs.ErrPermission), "Permission denied"},
		{errors.New("boom"), "boom"},
	}
	for _, tt := range tests {
		assert.Contains(t, describeError(tt.err), tt.want)
	}
}
