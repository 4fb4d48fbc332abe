package cmd

import (
	"fmt"

	"git-catalog/internal/config"
	"git-catalog/internal/repo"

	"github.com/spf13/cobra"
)

// doctorCmd 实现 doctor 子命令，一站式诊断配置和目录记录。
// 有错误时返回非零退出码，仅警告时返回 0。
// 用法: git-catalog doctor
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose configuration and catalog issues",
	Args:  cobra.NoArgs,
	// 不在启动时回填，才能看到待回填的记录
	Annotations: map[string]string{annotationNoBackfill: "true"},
	RunE:        runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

// runDoctor 按顺序执行诊断检查：
//  1. 配置合法性
//  2. 记录路径有效性（路径存在且包含 .git）
//  3. 名称状态（待回填、与路径不一致）
//  4. 分支可达性（HEAD 有提交且可解析）
//  5. 读权限（.git/HEAD 可读）
//  6. 性能预警（记录数 >50 或 .git 体积 >1GB）
//  7. 孤儿记录数量（prune 会删除的记录）
func runDoctor(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	ctx := cmd.Context()

	fmt.Fprintln(out, "Running diagnostics...")

	hasError := false

	// 1. 配置合法性检查
	issues := config.ValidateConfig(appConfig)
	if len(issues) == 0 {
		fmt.Fprintf(out, "✅ Config: OK (database %s)\n", appConfig.Database)
	} else {
		fmt.Fprintf(out, "⚠️  Config: %d issue(s)\n", len(issues))
		printLines(out, issues)
	}

	repos, err := catalog.List(ctx)
	if err != nil {
		fmt.Fprintf(out, "❌ Catalog: %v\n", err)
		return fmt.Errorf("doctor found issues")
	}

	// 2. 路径有效性检查
	validRepos, invalidRepos := repo.VerifyRepos(repos)
	switch {
	case len(repos) == 0:
		fmt.Fprintln(out, "⚠️  Repositories: no repositories added")
	case len(invalidRepos) == 0:
		fmt.Fprintf(out, "✅ Repositories: %d/%d valid\n", len(validRepos), len(repos))
	default:
		hasError = true
		fmt.Fprintf(out, "❌ Repositories: %d/%d valid, %d invalid\n", len(validRepos), len(repos), len(invalidRepos))
		printLines(out, repoPaths(invalidRepos))
	}

	// 3. 名称状态
	pending, renamed := repo.CheckNames(repos)
	switch {
	case len(pending) > 0:
		fmt.Fprintf(out, "⚠️  Names: %d pending backfill (run `git-catalog backfill`)\n", len(pending))
		printLines(out, repoPaths(pending))
	case len(renamed) > 0:
		fmt.Fprintf(out, "✅ Names: OK (%d renamed)\n", len(renamed))
	default:
		fmt.Fprintln(out, "✅ Names: OK")
	}

	// 4. 分支可达性检查（需要有效仓库）
	if len(validRepos) == 0 {
		fmt.Fprintln(out, "⚠️  Branch reachability: skipped (no valid repositories)")
	} else {
		branchErrors := make([]string, 0)
		for _, r := range validRepos {
			if err := repo.CheckBranchReachability(r.Path, ""); err != nil {
				branchErrors = append(branchErrors, fmt.Sprintf("%s: %v", r.Path, err))
			}
		}
		if len(branchErrors) == 0 {
			fmt.Fprintln(out, "✅ Branch reachability: OK")
		} else {
			hasError = true
			fmt.Fprintf(out, "❌ Branch reachability: %d issue(s)\n", len(branchErrors))
			printLines(out, branchErrors)
		}
	}

	// 5. 读权限检查（需要有效仓库）
	if len(validRepos) == 0 {
		fmt.Fprintln(out, "⚠️  Permissions: skipped (no valid repositories)")
	} else {
		permissionErrors := make([]string, 0)
		for _, r := range validRepos {
			if err := repo.CheckPermissions(r.Path); err != nil {
				permissionErrors = append(permissionErrors, fmt.Sprintf("%s: %v", r.Path, err))
			}
		}
		if len(permissionErrors) == 0 {
			fmt.Fprintln(out, "✅ Permissions: OK")
		} else {
			hasError = true
			fmt.Fprintf(out, "❌ Permissions: %d issue(s)\n", len(permissionErrors))
			printLines(out, permissionErrors)
		}
	}

	// 6. 性能预警
	performanceWarnings := repo.CheckPerformance(validRepos)
	if len(performanceWarnings) == 0 {
		fmt.Fprintln(out, "✅ Performance: OK")
	} else {
		fmt.Fprintf(out, "⚠️  Performance: %d warning(s)\n", len(performanceWarnings))
		printLines(out, performanceWarnings)
	}

	// 7. 孤儿记录：在事务里删除后回滚，只取数量
	orphans, err := countOrphans(cmd)
	switch {
	case err != nil:
		hasError = true
		fmt.Fprintf(out, "❌ Orphans: %v\n", err)
	case orphans > 0:
		fmt.Fprintf(out, "⚠️  Orphans: %d repository(s) not linked to any project or workspace\n", orphans)
	default:
		fmt.Fprintln(out, "✅ Orphans: none")
	}

	if hasError {
		return fmt.Errorf("doctor found issues")
	}
	return nil
}

func countOrphans(cmd *cobra.Command) (int64, error) {
	ctx := cmd.Context()
	tx, err := catalogDB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = tx.Rollback()
	}()
	return repo.NewCatalog(&tx).DeleteOrphaned(ctx)
}

func repoPaths(repos []repo.Repo) []string {
	paths := make([]string, 0, len(repos))
	for _, r := range repos {
		paths = append(paths, r.Path)
	}
	return paths
}
