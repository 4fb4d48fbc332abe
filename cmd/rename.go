package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var renameDisplayName string

// renameCmd 修改记录的名称。路径和 id 不可改。
// 用法: git-catalog rename <id|path> <name> [--display-name name]
var renameCmd = &cobra.Command{
	Use:   "rename <id|path> <name>",
	Short: "Rename a repository",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.TrimSpace(args[1])
		if name == "" {
			return fmt.Errorf("name must not be empty")
		}

		displayName := strings.TrimSpace(renameDisplayName)
		if displayName == "" {
			displayName = name
		}

		ctx := cmd.Context()
		r, err := resolveRepo(ctx, args[0])
		if err != nil {
			return err
		}
		if err := catalog.UpdateName(ctx, r.ID, name, displayName); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "renamed %s to %q\n", r.Path, name)
		return nil
	},
}

func init() {
	renameCmd.Flags().StringVar(&renameDisplayName, "display-name", "", "Display name (default: same as name)")

	rootCmd.AddCommand(renameCmd)
}
