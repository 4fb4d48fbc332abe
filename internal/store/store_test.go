package store

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := Open(context.Background(), Options{Path: filepath.Join(t.TempDir(), "catalog.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Migrate(context.Background()))
	return db
}

func insertRepo(t *testing.T, db *DB, path string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.ExecContext(context.Background(),
		`INSERT INTO repos (id, path, name, display_name) VALUES (?, ?, ?, ?)`,
		id.String(), path, filepath.Base(path), filepath.Base(path))
	require.NoError(t, err)
	return id
}

func TestDSN(t *testing.T) {
	dsn := DSN(Options{Path: "/tmp/catalog.db", BusyTimeout: 250 * time.Millisecond})

	assert.True(t, strings.HasPrefix(dsn, "file:/tmp/catalog.db?"))
	assert.Contains(t, dsn, "busy_timeout%28250%29")
	assert.Contains(t, dsn, "journal_mode%28WAL%29")
	assert.Contains(t, dsn, "foreign_keys%281%29")
}

func TestDSN_DefaultBusyTimeout(t *testing.T) {
	dsn := DSN(Options{Path: "catalog.db"})
	assert.Contains(t, dsn, "busy_timeout%285000%29")
}

func TestOpen_EmptyPath(t *testing.T) {
	_, err := Open(context.Background(), Options{})
	require.Error(t, err)
}

func TestOpen_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "catalog.db")

	db, err := Open(context.Background(), Options{Path: path})
	require.NoError(t, err)
	defer db.Close()

	assert.DirExists(t, filepath.Dir(path))
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.Migrate(context.Background()))

	var count int
	err := db.QueryRowContext(context.Background(),
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('repos', 'project_repos', 'workspace_repos')`,
	).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestMigrate_PathIsUnique(t *testing.T) {
	db := openTestDB(t)
	insertRepo(t, db, "/code/a")

	_, err := db.ExecContext(context.Background(),
		`INSERT INTO repos (id, path, name, display_name) VALUES (?, ?, ?, ?)`,
		uuid.NewString(), "/code/a", "a", "a")
	require.Error(t, err)
}

func TestLinks(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repoID := insertRepo(t, db, "/code/a")

	links, err := ListLinks(ctx, db, repoID)
	require.NoError(t, err)
	assert.True(t, links.Empty())

	require.NoError(t, LinkProject(ctx, db, "proj-b", repoID))
	require.NoError(t, LinkProject(ctx, db, "proj-a", repoID))
	require.NoError(t, LinkProject(ctx, db, "proj-a", repoID), "duplicate link should be a no-op")
	require.NoError(t, LinkWorkspace(ctx, db, "ws-1", repoID))

	links, err = ListLinks(ctx, db, repoID)
	require.NoError(t, err)
	assert.Equal(t, []string{"proj-a", "proj-b"}, links.Projects)
	assert.Equal(t, []string{"ws-1"}, links.Workspaces)
	assert.False(t, links.Empty())

	require.NoError(t, UnlinkProject(ctx, db, "proj-a", repoID))
	require.NoError(t, UnlinkProject(ctx, db, "proj-b", repoID))
	require.NoError(t, UnlinkProject(ctx, db, "proj-b", repoID), "missing link should be silent")
	require.NoError(t, UnlinkWorkspace(ctx, db, "ws-1", repoID))

	links, err = ListLinks(ctx, db, repoID)
	require.NoError(t, err)
	assert.True(t, links.Empty())
}

func TestLinks_EmptyOwnerID(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repoID := insertRepo(t, db, "/code/a")

	assert.Error(t, LinkProject(ctx, db, "  ", repoID))
	assert.Error(t, LinkWorkspace(ctx, db, "", repoID))
}

func TestLinks_UnknownRepoRejected(t *testing.T) {
	db := openTestDB(t)

	err := LinkProject(context.Background(), db, "proj", uuid.New())
	require.Error(t, err, "foreign key should reject links to missing repos")
}
