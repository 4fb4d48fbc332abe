package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"git-catalog/internal/repo"

	"github.com/google/uuid"
)

var errNoRepositoriesAdded = errors.New("no repositories added")

// resolveRepo 按 id 或路径查找一条记录。
// 参数能解析成 UUID 时按 id 查找，否则标准化为路径后查找；找不到返回 repo.ErrNotFound。
func resolveRepo(ctx context.Context, arg string) (*repo.Repo, error) {
	arg = strings.TrimSpace(arg)
	if id, err := uuid.Parse(arg); err == nil {
		return catalog.Get(ctx, id)
	}

	path, err := repo.NormalizePath(arg)
	if err != nil {
		return nil, err
	}
	r, err := catalog.FindByPath(ctx, path)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, fmt.Errorf("repo %s: %w", path, repo.ErrNotFound)
	}
	return r, nil
}

// parseIDs 解析命令行传入的一组 id，任何一个不是合法 UUID 时返回 false。
func parseIDs(args []string) ([]uuid.UUID, bool) {
	ids := make([]uuid.UUID, 0, len(args))
	for _, arg := range args {
		id, err := uuid.Parse(strings.TrimSpace(arg))
		if err != nil {
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}

// displayLabel 返回记录展示用的名称：优先 display_name，其次 name。
func displayLabel(r repo.Repo) string {
	if strings.TrimSpace(r.DisplayName) != "" {
		return r.DisplayName
	}
	return r.Name
}

// printRepoLine 以 "<id>  <name>  <path>" 的形式输出一条记录。
func printRepoLine(out io.Writer, r repo.Repo) {
	fmt.Fprintf(out, "%s  %s  %s\n", r.ID, displayLabel(r), r.Path)
}

// printLines 将字符串列表以缩进列表形式输出，每行前加 "   - " 前缀。
func printLines(out io.Writer, lines []string) {
	for _, line := range lines {
		fmt.Fprintf(out, "   - %s\n", line)
	}
}
