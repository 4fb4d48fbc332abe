package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"git-catalog/internal/repo"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func withTempHome(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

// executeCommand 通过 rootCmd 执行一条命令，返回 stdout 内容。
// 每次执行前重置所有标志，执行后关闭目录库。
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	resetFlags(rootCmd)

	var out, errBuf bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errBuf)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	require.NoError(t, closeStore())
	return out.String(), err
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func listRepos(t *testing.T) []repo.Repo {
	t.Helper()

	out, err := executeCommand(t, "list", "--json")
	require.NoError(t, err)

	var repos []repo.Repo
	require.NoError(t, json.Unmarshal([]byte(out), &repos))
	return repos
}

func mkRepoDir(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(path, ".git"), 0o755))
}

func writeLegacyList(t *testing.T, home string, lines ...string) string {
	t.Helper()

	dir := filepath.Join(home, ".config", "git-visible")
	require.NoError(t, os.MkdirAll(dir, 0o700))

	path := filepath.Join(dir, "repos")
	data := ""
	for _, line := range lines {
		data += line + "\n"
	}
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}

func createRepoWithCommit(t *testing.T, path string) {
	t.Helper()

	r, err := git.PlainInit(path, false)
	require.NoError(t, err)

	wt, err := r.Worktree()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(path, "README.md"), []byte("hello\n"), 0o644))
	_, err = wt.Add("README.md")
	require.NoError(t, err)

	sig := &object.Signature{
		Name:  "Test",
		Email: "test@example.com",
		When:  time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	_, err = wt.Commit("init", &git.CommitOptions{Author: sig, Committer: sig})
	require.NoError(t, err)
}
