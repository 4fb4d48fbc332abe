// Package store 负责打开和初始化 SQLite 目录库。
//
// 它是 repo.Catalog 的外部协作者：提供实时的 bun 句柄、建表，
// 以及 project_repos / workspace_repos 两张归属关系表。
// Catalog 只读取这两张表来判断孤儿记录，从不写入。
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "modernc.org/sqlite"
)

// DefaultBusyTimeout 是写锁冲突时的等待时间。
const DefaultBusyTimeout = 5 * time.Second

// Options 描述如何打开目录库。
type Options struct {
	// Path 是数据库文件路径，父目录不存在时会被创建。
	Path string
	// BusyTimeout 为 0 时使用 DefaultBusyTimeout。
	BusyTimeout time.Duration
}

// DB 包装 bun.DB。
type DB struct {
	*bun.DB
}

// DSN 构造 modernc.org/sqlite 连接串。
// pragma 通过 DSN 传入，连接池中的每个连接都会执行，而不只是第一个。
func DSN(opts Options) string {
	timeout := opts.BusyTimeout
	if timeout <= 0 {
		timeout = DefaultBusyTimeout
	}

	q := url.Values{}
	q.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", timeout.Milliseconds()))
	q.Add("_pragma", "journal_mode(WAL)")
	q.Add("_pragma", "foreign_keys(1)")
	return "file:" + opts.Path + "?" + q.Encode()
}

// Open 打开目录库并确认连接可用。不会建表，需要再调用 Migrate。
func Open(ctx context.Context, opts Options) (*DB, error) {
	if opts.Path == "" {
		return nil, errors.New("store: empty database path")
	}
	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o700); err != nil {
		return nil, fmt.Errorf("create database dir: %w", err)
	}

	sqldb, err := sql.Open("sqlite", DSN(opts))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := sqldb.PingContext(ctx); err != nil {
		_ = sqldb.Close()
		return nil, fmt.Errorf("ping sqlite %s: %w", opts.Path, err)
	}

	log.Debug().Str("path", opts.Path).Msg("opened catalog store")
	return &DB{DB: bun.NewDB(sqldb, sqlitedialect.New())}, nil
}

// Migrate 创建目录表和归属关系表，可重复执行。
func (db *DB) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS repos (
	id TEXT PRIMARY KEY,
	path TEXT NOT NULL UNIQUE,
	name TEXT NOT NULL,
	display_name TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`,
	`CREATE INDEX IF NOT EXISTS idx_repos_name ON repos(name)`,
	`CREATE TABLE IF NOT EXISTS project_repos (
	project_id TEXT NOT NULL,
	repo_id TEXT NOT NULL REFERENCES repos(id) ON DELETE CASCADE,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (project_id, repo_id)
)`,
	`CREATE INDEX IF NOT EXISTS idx_project_repos_repo_id ON project_repos(repo_id)`,
	`CREATE TABLE IF NOT EXISTS workspace_repos (
	workspace_id TEXT NOT NULL,
	repo_id TEXT NOT NULL REFERENCES repos(id) ON DELETE CASCADE,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (workspace_id, repo_id)
)`,
	`CREATE INDEX IF NOT EXISTS idx_workspace_repos_repo_id ON workspace_repos(repo_id)`,
}
