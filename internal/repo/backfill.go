package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// NameFixer 是回填所需的最小目录能力，*Catalog 实现了它。
type NameFixer interface {
	ListNeedingNameFix(ctx context.Context) ([]Repo, error)
	UpdateName(ctx context.Context, id uuid.UUID, name, displayName string) error
}

// BackfillNames 为仍带占位名称的记录计算真实名称并写回，
// display_name 与 name 取相同的值。返回修复的记录数。
// 任一写入失败即停止，已修复的记录保留。
func BackfillNames(ctx context.Context, catalog NameFixer) (int, error) {
	repos, err := catalog.ListNeedingNameFix(ctx)
	if err != nil {
		return 0, err
	}
	if len(repos) == 0 {
		return 0, nil
	}

	fixed := 0
	for _, r := range repos {
		name := DeriveName(r.Path, r.ID)
		if err := catalog.UpdateName(ctx, r.ID, name, name); err != nil {
			return fixed, fmt.Errorf("backfill repo %s: %w", r.ID, err)
		}
		fixed++
	}

	log.Info().Int("fixed", fixed).Msg("backfilled repo names")
	return fixed, nil
}
