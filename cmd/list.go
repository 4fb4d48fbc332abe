package cmd

import (
	"encoding/json"
	"fmt"

	"git-catalog/internal/repo"

	"github.com/spf13/cobra"
)

var (
	listVerify bool
	listJSON   bool
)

// listCmd 列出目录中的全部记录，按路径排序。
// 用法: git-catalog list [--verify] [--json]
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered repositories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		repos, err := catalog.List(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if listJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(repos)
		}

		if len(repos) == 0 {
			fmt.Fprintln(out, errNoRepositoriesAdded.Error())
			return nil
		}

		if !listVerify {
			for _, r := range repos {
				printRepoLine(out, r)
			}
			return nil
		}

		// 验证模式：磁盘上已不是仓库的记录标记 (invalid)
		_, invalid := repo.VerifyRepos(repos)
		invalidSet := make(map[string]struct{}, len(invalid))
		for _, r := range invalid {
			invalidSet[r.Path] = struct{}{}
		}
		for _, r := range repos {
			if _, ok := invalidSet[r.Path]; ok {
				fmt.Fprintf(out, "%s  %s  %s (invalid)\n", r.ID, displayLabel(r), r.Path)
				continue
			}
			printRepoLine(out, r)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVar(&listVerify, "verify", false, "Verify repositories on disk")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")

	rootCmd.AddCommand(listCmd)
}
