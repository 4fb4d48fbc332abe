package cmd

import (
	"fmt"
	"os"
	"time"

	"git-catalog/internal/config"
	"git-catalog/internal/repo"
	"git-catalog/internal/store"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// 命令注解：不需要打开目录库，或不需要启动时回填名称。
const (
	annotationNoStore    = "git-catalog/no-store"
	annotationNoBackfill = "git-catalog/no-backfill"
)

var (
	verbose    bool
	databaseFl string
)

// 一次命令执行期间共享的状态，由 PersistentPreRunE 建立，closeStore 释放。
var (
	appConfig *config.Config
	catalogDB *store.DB
	catalog   *repo.Catalog
)

var rootCmd = &cobra.Command{
	Use:               "git-catalog",
	Short:             "Catalog of local git repositories with stable identities",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeStore()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func Execute() {
	err := rootCmd.Execute()
	// RunE 出错时 PersistentPostRunE 不会执行
	if cerr := closeStore(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&databaseFl, "db", "", "Catalog database file (default: config value)")
}

// setup 加载配置、初始化日志、打开并迁移目录库，然后执行启动时的名称回填。
func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if databaseFl != "" {
		db, err := repo.NormalizePath(databaseFl)
		if err != nil {
			return fmt.Errorf("invalid --db: %w", err)
		}
		cfg.Database = db
	}
	appConfig = cfg

	initLogger(cmd, cfg.LogLevel)

	if cmd.Annotations[annotationNoStore] == "true" {
		return nil
	}

	ctx := cmd.Context()
	db, err := store.Open(ctx, store.Options{
		Path:        cfg.Database,
		BusyTimeout: time.Duration(cfg.BusyTimeout) * time.Millisecond,
	})
	if err != nil {
		return err
	}
	if err := db.Migrate(ctx); err != nil {
		_ = db.Close()
		return err
	}

	catalogDB = db
	catalog = repo.NewCatalog(db)

	if cmd.Annotations[annotationNoBackfill] == "true" {
		return nil
	}
	if _, err := repo.BackfillNames(ctx, catalog); err != nil {
		return err
	}
	return nil
}

func initLogger(cmd *cobra.Command, level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.WarnLevel
	}
	if verbose {
		lvl = zerolog.DebugLevel
	}

	zerolog.SetGlobalLevel(lvl)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        cmd.ErrOrStderr(),
		TimeFormat: time.Kitchen,
	}).With().Timestamp().Logger()
}

func closeStore() error {
	if catalogDB == nil {
		return nil
	}
	err := catalogDB.Close()
	catalogDB = nil
	catalog = nil
	return err
}
