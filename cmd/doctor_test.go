package cmd

import (
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoctor_NormalRepository_AllOK(t *testing.T) {
	home := withTempHome(t)
	repoPath := filepath.Join(home, "code", "repo-1")
	createRepoWithCommit(t, repoPath)

	_, err := executeCommand(t, "add", filepath.Join(home, "code"))
	require.NoError(t, err)
	_, err = executeCommand(t, "link", "project", "p1", repoPath)
	require.NoError(t, err)

	s, err := executeCommand(t, "doctor")
	require.NoError(t, err)
	assert.Contains(t, s, "Running diagnostics...")
	assert.Contains(t, s, "✅ Config: OK")
	assert.Contains(t, s, "✅ Repositories: 1/1 valid")
	assert.Contains(t, s, "✅ Names: OK")
	assert.Contains(t, s, "✅ Branch reachability: OK")
	assert.Contains(t, s, "✅ Permissions: OK")
	assert.Contains(t, s, "✅ Performance: OK")
	assert.Contains(t, s, "✅ Orphans: none")
}

func TestDoctor_BrokenRepository_ReturnsError(t *testing.T) {
	home := withTempHome(t)
	repoPath := filepath.Join(home, "code", "empty-repo")
	_, err := git.PlainInit(repoPath, false)
	require.NoError(t, err)

	_, err = executeCommand(t, "add", filepath.Join(home, "code"))
	require.NoError(t, err)

	s, err := executeCommand(t, "doctor")
	require.Error(t, err)
	assert.Contains(t, s, "❌ Branch reachability")
	assert.Contains(t, s, "⚠️  Orphans: 1")
}

func TestDoctor_ReportsPendingNames(t *testing.T) {
	home := withTempHome(t)
	writeLegacyList(t, home, filepath.Join(home, "code", "alpha"))

	_, err := executeCommand(t, "import", "--no-backfill")
	require.NoError(t, err)

	s, err := executeCommand(t, "doctor")
	require.Error(t, err)
	assert.Contains(t, s, "⚠️  Names: 1 pending backfill")
	assert.Contains(t, s, "❌ Repositories: 0/1 valid, 1 invalid")
}

func TestDoctor_EmptyCatalog(t *testing.T) {
	withTempHome(t)

	s, err := executeCommand(t, "doctor")
	require.NoError(t, err)
	assert.Contains(t, s, "⚠️  Repositories: no repositories added")
	assert.Contains(t, s, "⚠️  Branch reachability: skipped (no valid repositories)")
}
