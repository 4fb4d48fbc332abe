package cmd

import (
	"database/sql"
	"fmt"

	"git-catalog/internal/repo"

	"github.com/spf13/cobra"
)

var pruneDryRun bool

// pruneCmd 删除没有被任何项目或工作区引用的记录。
// --dry-run 在事务内执行删除后回滚，只报告数量。
// 用法: git-catalog prune [--dry-run]
var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete repositories not referenced by any project or workspace",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		tx, err := catalogDB.BeginTx(ctx, &sql.TxOptions{})
		if err != nil {
			return err
		}
		defer func() {
			_ = tx.Rollback()
		}()

		deleted, err := repo.NewCatalog(&tx).DeleteOrphaned(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if pruneDryRun {
			fmt.Fprintf(out, "dry run; %d orphaned repositories would be deleted\n", deleted)
			return nil
		}
		if err := tx.Commit(); err != nil {
			return err
		}

		if deleted == 0 {
			fmt.Fprintln(out, "no orphaned repositories")
			return nil
		}
		fmt.Fprintf(out, "deleted %d orphaned repositories\n", deleted)
		return nil
	},
}

func init() {
	pruneCmd.Flags().BoolVar(&pruneDryRun, "dry-run", false, "Report how many repositories would be deleted")

	rootCmd.AddCommand(pruneCmd)
}
