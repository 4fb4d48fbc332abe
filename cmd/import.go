package cmd

import (
	"fmt"

	"git-catalog/internal/repo"

	"github.com/spf13/cobra"
)

var importNoBackfill bool

// importCmd 导入旧版 git-visible 的纯文本仓库列表。
// 新记录先以占位名称写入，随后（除非 --no-backfill）立即回填名称。
// 用法: git-catalog import [file] [--no-backfill]
var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import a legacy git-visible repository list",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file := ""
		if len(args) == 1 {
			normalized, err := repo.NormalizePath(args[0])
			if err != nil {
				return err
			}
			file = normalized
		} else {
			legacy, err := repo.LegacyListFile()
			if err != nil {
				return err
			}
			file = legacy
		}

		paths, err := repo.LoadLegacyList(file)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(paths) == 0 {
			fmt.Fprintf(out, "no repositories in %s\n", file)
			return nil
		}

		ctx := cmd.Context()
		imported, err := catalog.ImportLegacy(ctx, paths)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "imported %d of %d repositories\n", imported, len(paths))

		if importNoBackfill || imported == 0 {
			return nil
		}
		fixed, err := repo.BackfillNames(ctx, catalog)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "backfilled %d repositories\n", fixed)
		return nil
	},
}

func init() {
	importCmd.Flags().BoolVar(&importNoBackfill, "no-backfill", false, "Skip the name backfill right after importing")

	rootCmd.AddCommand(importCmd)
}
