package repo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty path", "", true},
		{"whitespace only", "   ", true},
		{"relative path", ".", false},
		{"absolute path", "/tmp", false},
		{"tilde expansion", "~", false},
		{"tilde with subpath", "~/test", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := NormalizePath(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, filepath.IsAbs(result), "should return absolute path")
		})
	}
}

func TestNormalizePath_TildeExpansion(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("cannot get user home dir")
	}

	result, err := NormalizePath("~")
	require.NoError(t, err)
	assert.Equal(t, home, result)

	result, err = NormalizePath("~/foo")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "foo"), result)
}

func TestNormalizePath_CleansEquivalentForms(t *testing.T) {
	a, err := NormalizePath("/code/repo/")
	require.NoError(t, err)
	b, err := NormalizePath(" /code/./other/../repo ")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestVerifyRepos(t *testing.T) {
	tmpDir := t.TempDir()

	validRepo := filepath.Join(tmpDir, "valid-repo")
	require.NoError(t, os.MkdirAll(filepath.Join(validRepo, ".git"), 0o755))

	invalidRepo := filepath.Join(tmpDir, "invalid-repo")
	require.NoError(t, os.MkdirAll(invalidRepo, 0o755))

	missing := filepath.Join(tmpDir, "non-existent")

	valid, invalid := VerifyRepos([]Repo{
		{Path: validRepo},
		{Path: invalidRepo},
		{Path: missing},
	})

	require.Len(t, valid, 1)
	assert.Equal(t, validRepo, valid[0].Path)
	require.Len(t, invalid, 2)
	assert.Equal(t, invalidRepo, invalid[0].Path)
	assert.Equal(t, missing, invalid[1].Path)
}
