package repo

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ScanOptions 控制 ScanRepos 的遍历范围。
type ScanOptions struct {
	// Depth 是最大递归深度，-1 表示不限制。
	Depth int
	// Excludes 是要跳过的目录：目录名、相对 root 的路径或绝对路径（支持 ~）。
	Excludes []string
}

// ScanRepos 递归查找 root 下的 Git 仓库，返回排序后的标准化绝对路径。
// 找到仓库后不再进入其子目录，符号链接目录会被跳过。
func ScanRepos(root string, opts ScanOptions) ([]string, error) {
	rootPath, err := NormalizePath(root)
	if err != nil {
		return nil, err
	}

	st, err := os.Stat(rootPath)
	if err != nil {
		return nil, err
	}
	if !st.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", rootPath)
	}

	s := &scanner{
		root:     rootPath,
		depth:    opts.Depth,
		excludes: normalizeExcludes(opts.Excludes),
		seen:     make(map[string]struct{}),
	}
	if err := s.walk(rootPath, 0); err != nil {
		return nil, err
	}

	sort.Strings(s.found)
	return s.found, nil
}

type scanner struct {
	root     string
	depth    int
	excludes []string
	seen     map[string]struct{}
	found    []string
}

func normalizeExcludes(excludes []string) []string {
	out := make([]string, 0, len(excludes))
	for _, ex := range excludes {
		ex = strings.TrimSpace(ex)
		if ex == "" {
			continue
		}
		out = append(out, ex)
	}
	return out
}

func (s *scanner) walk(dir string, depth int) error {
	if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
		if _, ok := s.seen[dir]; !ok {
			s.seen[dir] = struct{}{}
			s.found = append(s.found, dir)
		}
		return nil
	}

	if s.depth >= 0 && depth >= s.depth {
		return nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		// 无权限的目录直接跳过
		if os.IsPermission(err) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		if !entry.IsDir() || entry.Type()&os.ModeSymlink != 0 {
			continue
		}

		name := entry.Name()
		if name == ".git" {
			continue
		}

		child := filepath.Join(dir, name)
		if s.excluded(child, name) {
			continue
		}

		if err := s.walk(child, depth+1); err != nil {
			return err
		}
	}

	return nil
}

func (s *scanner) excluded(path, name string) bool {
	path = filepath.Clean(path)
	sep := string(os.PathSeparator)

	for _, ex := range s.excludes {
		if ex == name {
			return true
		}

		if ex == "~" || strings.HasPrefix(ex, "~/") {
			if expanded, err := NormalizePath(ex); err == nil {
				ex = expanded
			}
		}

		exPath := ex
		if !filepath.IsAbs(ex) {
			exPath = filepath.Join(s.root, ex)
		}
		exPath = filepath.Clean(exPath)

		if path == exPath || strings.HasPrefix(path, exPath+sep) {
			return true
		}
	}

	return false
}
