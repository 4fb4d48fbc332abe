package repo

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// LegacyListFile 返回旧版 git-visible 仓库列表文件的默认位置
// （~/.config/git-visible/repos，每行一个路径）。
func LegacyListFile() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "git-visible", "repos"), nil
}

// LoadLegacyList 读取旧版纯文本仓库列表。
// 返回的路径已去重和标准化；文件不存在时返回空列表而不是错误。
func LoadLegacyList(file string) ([]string, error) {
	content, err := os.ReadFile(file)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}

	lines := strings.Split(string(content), "\n")
	seen := make(map[string]struct{}, len(lines))
	paths := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		normalized, err := NormalizePath(line)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		paths = append(paths, normalized)
	}

	return paths, nil
}

// ImportLegacy 以占位名称批量插入旧列表中的路径，已存在的路径保持不变。
// 名称留给启动时的 BackfillNames 计算。返回实际插入的记录数。
func (c *Catalog) ImportLegacy(ctx context.Context, paths []string) (int64, error) {
	if len(paths) == 0 {
		return 0, nil
	}

	now := c.clock.Now()
	rows := make([]Repo, 0, len(paths))
	for _, p := range paths {
		rows = append(rows, Repo{
			ID:          uuid.New(),
			Path:        p,
			Name:        NameBackfillSentinel,
			DisplayName: NameBackfillSentinel,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}

	res, err := c.db.NewInsert().
		Model(&rows).
		On("CONFLICT (path) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return 0, storeError("import legacy repos", err)
	}

	inserted, err := res.RowsAffected()
	if err != nil {
		return 0, storeError("import legacy repos", err)
	}
	log.Debug().Int("paths", len(paths)).Int64("inserted", inserted).Msg("import legacy repos")
	return inserted, nil
}
