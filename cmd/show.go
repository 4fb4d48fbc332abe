package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"git-catalog/internal/repo"
	"git-catalog/internal/store"

	"github.com/spf13/cobra"
)

var showJSON bool

// showCmd 显示一条或多条记录的详情及其归属关系。
// 参数全部是 id 时走批量查找，不存在的 id 会被跳过并提示；否则逐个按 id 或路径解析。
// 用法: git-catalog show <id|path>... [--json]
var showCmd = &cobra.Command{
	Use:   "show <id|path>...",
	Short: "Show repository details and ownership links",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output as JSON")

	rootCmd.AddCommand(showCmd)
}

type showJSONItem struct {
	repo.Repo
	Projects   []string `json:"projects"`
	Workspaces []string `json:"workspaces"`
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	var repos []repo.Repo
	if ids, ok := parseIDs(args); ok {
		found, err := catalog.FindByIDs(ctx, ids)
		if err != nil {
			return err
		}
		if missing := len(ids) - len(found); missing > 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "%d of %d ids not found\n", missing, len(ids))
		}
		repos = found
	} else {
		for _, arg := range args {
			r, err := resolveRepo(ctx, arg)
			if err != nil {
				return err
			}
			repos = append(repos, *r)
		}
	}

	items := make([]showJSONItem, 0, len(repos))
	for _, r := range repos {
		links, err := store.ListLinks(ctx, catalogDB, r.ID)
		if err != nil {
			return err
		}
		items = append(items, showJSONItem{Repo: r, Projects: links.Projects, Workspaces: links.Workspaces})
	}

	if showJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	}

	for i, item := range items {
		if i > 0 {
			fmt.Fprintln(out)
		}
		writeRepoDetail(out, item)
	}
	return nil
}

func writeRepoDetail(out io.Writer, item showJSONItem) {
	r := item.Repo
	fmt.Fprintf(out, "ID:           %s\n", r.ID)
	fmt.Fprintf(out, "Path:         %s\n", r.Path)
	if r.NeedsNameFix() {
		fmt.Fprintln(out, "Name:         (pending backfill)")
	} else {
		fmt.Fprintf(out, "Name:         %s\n", r.Name)
	}
	fmt.Fprintf(out, "Display name: %s\n", r.DisplayName)
	fmt.Fprintf(out, "Created:      %s\n", r.CreatedAt.Local().Format(time.DateTime))
	fmt.Fprintf(out, "Updated:      %s\n", r.UpdatedAt.Local().Format(time.DateTime))
	fmt.Fprintf(out, "Projects:     %s\n", joinOrDash(item.Projects))
	fmt.Fprintf(out, "Workspaces:   %s\n", joinOrDash(item.Workspaces))
}

func joinOrDash(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, ", ")
}
