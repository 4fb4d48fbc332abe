package cmd

import (
	"context"
	"fmt"

	"git-catalog/internal/store"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/uptrace/bun"
)

type linkFunc func(ctx context.Context, db bun.IDB, ownerID string, repoID uuid.UUID) error

// ownerKinds 把命令行上的归属类型映射到对应的关系表操作。
var ownerKinds = map[string]struct {
	link   linkFunc
	unlink linkFunc
}{
	"project":   {link: store.LinkProject, unlink: store.UnlinkProject},
	"workspace": {link: store.LinkWorkspace, unlink: store.UnlinkWorkspace},
}

// linkCmd 让项目或工作区引用一条记录，被引用的记录不会被 prune 删除。
// 用法: git-catalog link <project|workspace> <owner-id> <id|path>
var linkCmd = &cobra.Command{
	Use:       "link <project|workspace> <owner-id> <id|path>",
	Short:     "Attach a repository to a project or workspace",
	Args:      cobra.ExactArgs(3),
	ValidArgs: []string{"project", "workspace"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLink(cmd, args, true)
	},
}

// unlinkCmd 解除引用。解除后记录可能成为孤儿，由 prune 清理。
// 用法: git-catalog unlink <project|workspace> <owner-id> <id|path>
var unlinkCmd = &cobra.Command{
	Use:       "unlink <project|workspace> <owner-id> <id|path>",
	Short:     "Detach a repository from a project or workspace",
	Args:      cobra.ExactArgs(3),
	ValidArgs: []string{"project", "workspace"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLink(cmd, args, false)
	},
}

func init() {
	rootCmd.AddCommand(linkCmd)
	rootCmd.AddCommand(unlinkCmd)
}

func runLink(cmd *cobra.Command, args []string, attach bool) error {
	kind, ok := ownerKinds[args[0]]
	if !ok {
		return fmt.Errorf("unknown owner kind %q (want project or workspace)", args[0])
	}

	ctx := cmd.Context()
	r, err := resolveRepo(ctx, args[2])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if attach {
		if err := kind.link(ctx, catalogDB, args[1], r.ID); err != nil {
			return err
		}
		fmt.Fprintf(out, "linked %s to %s %s\n", r.Path, args[0], args[1])
		return nil
	}

	if err := kind.unlink(ctx, catalogDB, args[1], r.ID); err != nil {
		return err
	}
	fmt.Fprintf(out, "unlinked %s from %s %s\n", r.Path, args[0], args[1])
	return nil
}
