package cmd

import (
	"fmt"

	"git-catalog/internal/repo"

	"github.com/spf13/cobra"
)

// backfillCmd 显式执行名称回填。其他命令启动时也会执行一次，
// 这里跳过启动回填，以便报告本次修复的数量。
var backfillCmd = &cobra.Command{
	Use:         "backfill",
	Short:       "Derive names for repositories imported without one",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationNoBackfill: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		fixed, err := repo.BackfillNames(cmd.Context(), catalog)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if fixed == 0 {
			fmt.Fprintln(out, "no repositories need a name")
			return nil
		}
		fmt.Fprintf(out, "backfilled %d repositories\n", fixed)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(backfillCmd)
}
