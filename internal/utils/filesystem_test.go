package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".envoak.toml"), []byte(""), 0644))

	t.Run("FromNestedDirectory", func(t *testing.T) {
		got, err := FindProjectRoot(nested, ".envoak.toml")
		require.NoError(t, err)
		assert.Equal(t, root, got)
	})

	t.Run("FromRootItself", func(t *testing.T) {
		got, err := FindProjectRoot(root, ".envoak.toml")
		require.NoError(t, err)
		assert.Equal(t, root, got)
	})

	t.Run("NotFound", func(t *testing.T) {
		got, err := FindProjectRoot(nested, ".does-not-exist.toml")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("DirectoryWithConfigNameIsIgnored", func(t *testing.T) {
		other := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(other, ".fake.toml"), 0755))
		got, err := FindProjectRoot(other, ".fake.toml")
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestGetProjectName(t *testing.T) {
	assert.Equal(t, "", GetProjectName(""))
	assert.Equal(t, "myapp", GetProjectName(filepath.Join("/tmp", "myapp")))
}

func TestIsValidEnvVarName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"Simple", "ENVOAK_KEY", true},
		{"LeadingUnderscore", "_KEY", true},
		{"Lowercase", "my_key", true},
		{"LeadingDigit", "1KEY", false},
		{"Empty", "", false},
		{"Dash", "MY-KEY", false},
		{"Space", "MY KEY", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsValidEnvVarName(tc.input))
		})
	}
}

func TestRelPath(t *testing.T) {
	base := filepath.Join("/", "work", "repo")

	assert.Equal(t, ".env", RelPath(base, filepath.Join(base, ".env")))
	assert.Equal(t, filepath.Join("api", "config.enc"), RelPath(base, filepath.Join(base, "api", "config.enc")))
	assert.Equal(t, filepath.Join("/", "etc", "hosts"), RelPath(base, filepath.Join("/", "etc", "hosts")))
	assert.Equal(t, "..data", RelPath(filepath.Join("/", "work"), filepath.Join("/", "work", "..data")))
}
