package repo

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// NormalizePath 标准化路径：
// 1. 去除首尾空白
// 2. 展开 ~ 为用户主目录
// 3. 转换为绝对路径
// 4. 清理路径（移除多余的分隔符和 . 或 ..）
//
// Catalog 按原样存储路径，调用方应先用它把同一目录的不同写法归一，
// 否则 "/a/b" 和 "/a/b/" 会成为两条记录。
func NormalizePath(p string) (string, error) {
	p = strings.TrimSpace(p)
	if p == "" {
		return "", errors.New("empty path")
	}

	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if p == "~" {
			p = home
		} else {
			p = filepath.Join(home, p[2:])
		}
	}

	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	return filepath.Clean(abs), nil
}

// isValidRepo 检查路径是否指向有效的 Git 仓库。
// 有效的仓库需要满足：路径存在、是目录、包含 .git 子目录。
func isValidRepo(path string) bool {
	st, err := os.Stat(path)
	if err != nil || !st.IsDir() {
		return false
	}
	_, err = os.Stat(filepath.Join(path, ".git"))
	return err == nil
}

// VerifyRepos 把目录中的记录按磁盘上是否仍是有效仓库分成两组。
func VerifyRepos(repos []Repo) (valid []Repo, invalid []Repo) {
	for _, r := range repos {
		if isValidRepo(r.Path) {
			valid = append(valid, r)
		} else {
			invalid = append(invalid, r)
		}
	}
	return valid, invalid
}
