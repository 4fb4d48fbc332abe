package repo

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// NameBackfillSentinel 是遗留导入路径写入的占位名称，等待启动时回填。
const NameBackfillSentinel = "__NEEDS_BACKFILL__"

// Repo 是目录中的一条仓库记录。
// Path 是业务主键（唯一），ID 在创建时由 Catalog 生成且不可变。
// Name 通常是路径最后一段，但在回填完成前可能仍为 NameBackfillSentinel，
// 使用方不能假设它总是合法的路径片段。
type Repo struct {
	bun.BaseModel `bun:"table:repos,alias:repo"`

	ID          uuid.UUID `bun:"id,pk,type:text" json:"id"`
	Path        string    `bun:"path,notnull,unique" json:"path"`
	Name        string    `bun:"name,notnull" json:"name"`
	DisplayName string    `bun:"display_name,notnull" json:"display_name"`
	CreatedAt   time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`
}

// NeedsNameFix 报告记录的名称是否仍是回填占位符。
func (r *Repo) NeedsNameFix() bool {
	return r.Name == NameBackfillSentinel
}
