package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"git-catalog/internal/clock"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/uptrace/bun"
)

// Catalog 管理 Repo 记录的生命周期。
// 它只持有调用方传入的存储句柄，不管理连接，也不做进程内加锁；
// 传入 bun.Tx 即可让 FindOrCreate 参与调用方自己的事务。
type Catalog struct {
	db    bun.IDB
	clock clock.Clock
}

// CatalogOption 配置 Catalog。
type CatalogOption func(*Catalog)

// WithClock 替换写入 created_at / updated_at 时使用的时间源。
func WithClock(c clock.Clock) CatalogOption {
	return func(cat *Catalog) {
		cat.clock = c
	}
}

// NewCatalog 基于存储句柄创建 Catalog。
func NewCatalog(db bun.IDB, opts ...CatalogOption) *Catalog {
	c := &Catalog{
		db:    db,
		clock: clock.System{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FindOrCreate 返回 path 对应的唯一 Repo，不存在时创建。
//
// 整个过程是一条语句：插入新记录，若 path 已存在则对已有行做一次无副作用的
// 自更新（updated_at = updated_at），并通过 RETURNING 取回存活行。
// 因此并发调用同一 path 时，输掉竞争的一方拿到的是胜者的 id、name 和 created_at，
// 而不是自己生成的 id。不能改写成“先查后插”，否则两个调用方可能都看到“不存在”。
func (c *Catalog) FindOrCreate(ctx context.Context, path, displayName string) (*Repo, error) {
	id := uuid.New()
	now := c.clock.Now()

	r := &Repo{
		ID:          id,
		Path:        path,
		Name:        DeriveName(path, id),
		DisplayName: displayName,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := c.db.NewInsert().
		Model(r).
		On("CONFLICT (path) DO UPDATE").
		Set("updated_at = updated_at").
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, storeError(fmt.Sprintf("find or create repo %q", path), err)
	}

	log.Debug().
		Str("path", path).
		Str("id", r.ID.String()).
		Bool("created", r.ID == id).
		Msg("find or create repo")
	return r, nil
}

// FindByID 按 id 精确查找。记录不存在时返回 (nil, nil)。
func (c *Catalog) FindByID(ctx context.Context, id uuid.UUID) (*Repo, error) {
	r := new(Repo)
	err := c.db.NewSelect().
		Model(r).
		Where("repo.id = ?", id).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storeError(fmt.Sprintf("find repo %s", id), err)
	}
	return r, nil
}

// Get 是 FindByID 的严格版本：记录不存在时返回包装了 ErrNotFound 的错误。
func (c *Catalog) Get(ctx context.Context, id uuid.UUID) (*Repo, error) {
	r, err := c.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, fmt.Errorf("repo %s: %w", id, ErrNotFound)
	}
	return r, nil
}

// FindByIDs 批量查找，结果保持输入顺序，不存在的 id 被静默跳过，
// 所以结果长度可能小于输入长度。空输入直接返回空切片，不访问存储。
//
// 每个 id 一次往返（O(n)），只适用于几十条量级的目录。
// TODO: 目录规模变大时改成一条 IN (?) 查询。
func (c *Catalog) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Repo, error) {
	if len(ids) == 0 {
		return []Repo{}, nil
	}

	repos := make([]Repo, 0, len(ids))
	for _, id := range ids {
		r, err := c.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if r != nil {
			repos = append(repos, *r)
		}
	}
	return repos, nil
}

// FindByPath 按路径查找。记录不存在时返回 (nil, nil)。
func (c *Catalog) FindByPath(ctx context.Context, path string) (*Repo, error) {
	r := new(Repo)
	err := c.db.NewSelect().
		Model(r).
		Where("repo.path = ?", path).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storeError(fmt.Sprintf("find repo by path %q", path), err)
	}
	return r, nil
}

// List 返回全部记录，按路径排序。
func (c *Catalog) List(ctx context.Context) ([]Repo, error) {
	repos := make([]Repo, 0)
	err := c.db.NewSelect().
		Model(&repos).
		Order("repo.path ASC").
		Scan(ctx)
	if err != nil {
		return nil, storeError("list repos", err)
	}
	return repos, nil
}

// UpdateName 无条件覆盖 name 和 display_name 并刷新 updated_at。
// 不做存在性检查：id 不存在时影响 0 行，不视为错误。
func (c *Catalog) UpdateName(ctx context.Context, id uuid.UUID, name, displayName string) error {
	res, err := c.db.NewUpdate().
		Model((*Repo)(nil)).
		Set("name = ?", name).
		Set("display_name = ?", displayName).
		Set("updated_at = ?", c.clock.Now()).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return storeError(fmt.Sprintf("update repo name %s", id), err)
	}

	if rows, err := res.RowsAffected(); err == nil {
		log.Debug().Str("id", id.String()).Str("name", name).Int64("rows", rows).Msg("update repo name")
	}
	return nil
}

// ListNeedingNameFix 返回名称仍为回填占位符的记录。
func (c *Catalog) ListNeedingNameFix(ctx context.Context) ([]Repo, error) {
	repos := make([]Repo, 0)
	err := c.db.NewSelect().
		Model(&repos).
		Where("repo.name = ?", NameBackfillSentinel).
		Order("repo.path ASC").
		Scan(ctx)
	if err != nil {
		return nil, storeError("list repos needing name fix", err)
	}
	return repos, nil
}

// DeleteOrphaned 删除没有被任何 project_repos / workspace_repos 引用的记录，
// 返回删除的行数。这是唯一的删除路径，不提供按 id 删除。
func (c *Catalog) DeleteOrphaned(ctx context.Context) (int64, error) {
	res, err := c.db.NewDelete().
		Model((*Repo)(nil)).
		Where("id NOT IN (SELECT repo_id FROM project_repos)").
		Where("id NOT IN (SELECT repo_id FROM workspace_repos)").
		Exec(ctx)
	if err != nil {
		return 0, storeError("delete orphaned repos", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return 0, storeError("delete orphaned repos", err)
	}
	log.Debug().Int64("rows", rows).Msg("delete orphaned repos")
	return rows, nil
}
