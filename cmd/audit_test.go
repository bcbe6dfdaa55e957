package cmd

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kerrors "github.com/treebird7/Envoak/internal/errors"
)

func TestAuditCommand(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "api", ".env"), "ENVOAK_TEST_A=1\n")
	writeTestFile(t, filepath.Join(root, "api", "config.enc"), "aa:bb:cc")
	writeTestFile(t, filepath.Join(root, "web", ".env"), "BROKEN\n")

	output, err := runCLI(t, root, "audit")
	require.NoError(t, err, output)

	var entries []map[string]any
	require.NoError(t, json.Unmarshal([]byte(output), &entries), output)
	require.Len(t, entries, 2)
	assert.Equal(t, "api", entries[0]["dir"])
	assert.Equal(t, "SYNCED", entries[0]["status"])
	assert.Equal(t, true, entries[0]["valid"])
	assert.Equal(t, "web", entries[1]["dir"])
	assert.Equal(t, false, entries[1]["valid"])
}

func TestAuditYAMLWithPath(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "services", "api", "config.enc"), "aa:bb:cc")

	output, err := runCLI(t, root, "audit", "services", "--format", "yaml")
	require.NoError(t, err, output)
	assert.Contains(t, output, "dir: api")
	assert.Contains(t, output, "status: MISSING")
}

func TestAuditUnknownFormat(t *testing.T) {
	_, err := runCLI(t, t.TempDir(), "audit", "--format", "xml")
	assert.True(t, errors.Is(err, kerrors.ErrUnsupportedFormat))
}
