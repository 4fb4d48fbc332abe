package cmd

import (
	"fmt"

	"git-catalog/internal/repo"

	"github.com/spf13/cobra"
)

var (
	addDepth       int
	addExcludes    []string
	addNoExcludes  bool
	addDryRun      bool
	addDisplayName string
)

// addCmd 扫描目录下的 Git 仓库并登记到目录中。
// 已登记的路径会得到原有记录，不会产生新 id。
// 用法: git-catalog add <folder> [-d depth] [-x exclude] [--name display] [--dry-run]
var addCmd = &cobra.Command{
	Use:   "add <folder>",
	Short: "Scan a folder and register its git repositories",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdd,
}

func init() {
	addCmd.Flags().IntVarP(&addDepth, "depth", "d", 0, "Maximum recursion depth (-1 for unlimited, default: config value)")
	addCmd.Flags().StringArrayVarP(&addExcludes, "exclude", "x", nil, "Exclude directories (repeatable, default: config value)")
	addCmd.Flags().BoolVar(&addNoExcludes, "no-excludes", false, "Ignore configured excludes")
	addCmd.Flags().BoolVar(&addDryRun, "dry-run", false, "Preview repositories without registering")
	addCmd.Flags().StringVar(&addDisplayName, "name", "", "Display name (only when exactly one repository is found)")

	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	depth := appConfig.ScanDepth
	if cmd.Flags().Changed("depth") {
		depth = addDepth
	}
	if depth < -1 {
		return fmt.Errorf("depth must be >= -1, got %d", depth)
	}

	excludes := appConfig.Excludes
	if cmd.Flags().Changed("exclude") {
		excludes = addExcludes
	}
	if addNoExcludes {
		excludes = nil
	}

	found, err := repo.ScanRepos(args[0], repo.ScanOptions{Depth: depth, Excludes: excludes})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(found) == 0 {
		fmt.Fprintln(out, "no repositories found")
		return nil
	}
	if addDisplayName != "" && len(found) != 1 {
		return fmt.Errorf("--name requires exactly one repository, found %d", len(found))
	}

	if addDryRun {
		fmt.Fprintln(out, "dry run; repositories found:")
		for _, p := range found {
			fmt.Fprintln(out, p)
		}
		return nil
	}

	ctx := cmd.Context()

	existing, err := catalog.List(ctx)
	if err != nil {
		return err
	}
	existingSet := make(map[string]struct{}, len(existing))
	for _, r := range existing {
		existingSet[r.Path] = struct{}{}
	}

	bar := newRegisterProgressBar(len(found))
	added := 0
	registered := make([]repo.Repo, 0, len(found))
	for _, p := range found {
		r, err := catalog.FindOrCreate(ctx, p, addDisplayName)
		if err != nil {
			return err
		}
		if bar != nil {
			_ = bar.Add(1)
		}
		if _, ok := existingSet[p]; ok {
			continue
		}
		existingSet[p] = struct{}{}
		added++
		registered = append(registered, *r)
	}
	if bar != nil {
		_ = bar.Finish()
	}

	for _, r := range registered {
		printRepoLine(out, r)
	}
	if added == 0 {
		fmt.Fprintln(out, "no new repositories to add")
		return nil
	}
	fmt.Fprintf(out, "added %d repositories\n", added)
	return nil
}
