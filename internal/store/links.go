package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ProjectRepo 表示项目对仓库的引用。
type ProjectRepo struct {
	bun.BaseModel `bun:"table:project_repos,alias:pr"`

	ProjectID string    `bun:"project_id,pk"`
	RepoID    uuid.UUID `bun:"repo_id,pk,type:text"`
}

// WorkspaceRepo 表示工作区对仓库的引用。
type WorkspaceRepo struct {
	bun.BaseModel `bun:"table:workspace_repos,alias:wr"`

	WorkspaceID string    `bun:"workspace_id,pk"`
	RepoID      uuid.UUID `bun:"repo_id,pk,type:text"`
}

// Links 汇总一个仓库被哪些项目和工作区引用。
type Links struct {
	Projects   []string
	Workspaces []string
}

// Empty 表示仓库没有任何引用，下一次清理会删除它。
func (l Links) Empty() bool {
	return len(l.Projects) == 0 && len(l.Workspaces) == 0
}

// LinkProject 记录项目引用了仓库，重复调用无副作用。
func LinkProject(ctx context.Context, db bun.IDB, projectID string, repoID uuid.UUID) error {
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return fmt.Errorf("project id cannot be empty")
	}
	_, err := db.NewInsert().
		Model(&ProjectRepo{ProjectID: projectID, RepoID: repoID}).
		On("CONFLICT DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("link project %s to repo %s: %w", projectID, repoID, err)
	}
	return nil
}

// UnlinkProject 移除项目对仓库的引用，引用不存在时静默成功。
func UnlinkProject(ctx context.Context, db bun.IDB, projectID string, repoID uuid.UUID) error {
	_, err := db.NewDelete().
		Model((*ProjectRepo)(nil)).
		Where("project_id = ?", projectID).
		Where("repo_id = ?", repoID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("unlink project %s from repo %s: %w", projectID, repoID, err)
	}
	return nil
}

// LinkWorkspace 记录工作区引用了仓库，重复调用无副作用。
func LinkWorkspace(ctx context.Context, db bun.IDB, workspaceID string, repoID uuid.UUID) error {
	workspaceID = strings.TrimSpace(workspaceID)
	if workspaceID == "" {
		return fmt.Errorf("workspace id cannot be empty")
	}
	_, err := db.NewInsert().
		Model(&WorkspaceRepo{WorkspaceID: workspaceID, RepoID: repoID}).
		On("CONFLICT DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("link workspace %s to repo %s: %w", workspaceID, repoID, err)
	}
	return nil
}

// UnlinkWorkspace 移除工作区对仓库的引用，引用不存在时静默成功。
func UnlinkWorkspace(ctx context.Context, db bun.IDB, workspaceID string, repoID uuid.UUID) error {
	_, err := db.NewDelete().
		Model((*WorkspaceRepo)(nil)).
		Where("workspace_id = ?", workspaceID).
		Where("repo_id = ?", repoID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("unlink workspace %s from repo %s: %w", workspaceID, repoID, err)
	}
	return nil
}

// ListLinks 返回引用该仓库的项目和工作区 id，均按字典序排列。
func ListLinks(ctx context.Context, db bun.IDB, repoID uuid.UUID) (Links, error) {
	links := Links{Projects: []string{}, Workspaces: []string{}}

	err := db.NewSelect().
		Model((*ProjectRepo)(nil)).
		Column("project_id").
		Where("repo_id = ?", repoID).
		Order("project_id ASC").
		Scan(ctx, &links.Projects)
	if err != nil {
		return Links{}, fmt.Errorf("list project links for repo %s: %w", repoID, err)
	}

	err = db.NewSelect().
		Model((*WorkspaceRepo)(nil)).
		Column("workspace_id").
		Where("repo_id = ?", repoID).
		Order("workspace_id ASC").
		Scan(ctx, &links.Workspaces)
	if err != nil {
		return Links{}, fmt.Errorf("list workspace links for repo %s: %w", repoID, err)
	}

	return links, nil
}
