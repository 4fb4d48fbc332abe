package repo

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadLegacyList_MissingFile(t *testing.T) {
	paths, err := LoadLegacyList(filepath.Join(t.TempDir(), "repos"))
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestLoadLegacyList_DedupAndNormalize(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "repos")

	lines := []string{
		"/code/a",
		"  /code/a/  ",
		"",
		"/code/b/../c",
		"/code/c",
	}
	require.NoError(t, os.WriteFile(file, []byte(strings.Join(lines, "\n")+"\n"), 0o600))

	paths, err := LoadLegacyList(file)
	require.NoError(t, err)
	assert.Equal(t, []string{"/code/a", "/code/c"}, paths)
}

func TestLegacyListFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	file, err := LegacyListFile()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "git-visible", "repos"), file)
}
