package repo

import (
	"path/filepath"

	"github.com/google/uuid"
)

// DeriveName 取路径的最后一段作为仓库名称。
// 路径没有最后一段时（如根目录 "/"、空串、"."、".."）退回到 id 的字符串形式。
func DeriveName(path string, id uuid.UUID) string {
	if name, ok := lastSegment(path); ok {
		return name
	}
	return id.String()
}

// lastSegment 返回清理后路径的最后一段。
func lastSegment(path string) (string, bool) {
	if path == "" {
		return "", false
	}
	base := filepath.Base(filepath.Clean(path))
	switch base {
	case ".", "..", string(filepath.Separator):
		return "", false
	}
	if vol := filepath.VolumeName(base); vol != "" && vol == base {
		return "", false
	}
	return base, true
}
