package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const (
	// DefaultBusyTimeout 单位毫秒。
	DefaultBusyTimeout = 5000
	DefaultLogLevel    = "warn"
	DefaultScanDepth   = -1

	envPrefix = "GIT_CATALOG"
)

// DefaultExcludes 是 add 扫描时默认跳过的目录名。
var DefaultExcludes = []string{"node_modules", "vendor"}

type Config struct {
	Database    string
	BusyTimeout int
	LogLevel    string
	ScanDepth   int
	Excludes    []string
}

func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "git-catalog"), nil
}

func File() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// DefaultDatabase 返回默认的目录库文件位置。
func DefaultDatabase() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "catalog.db"), nil
}

func EnsureDir() error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0o755)
}

// Load 读取配置文件，并允许 GIT_CATALOG_* 环境变量覆盖。
// 配置文件不存在时返回默认值。
func Load() (*Config, error) {
	configFile, err := File()
	if err != nil {
		return nil, err
	}
	database, err := DefaultDatabase()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigFile(configFile)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetDefault("database", database)
	v.SetDefault("busy_timeout", DefaultBusyTimeout)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("scan_depth", DefaultScanDepth)
	v.SetDefault("excludes", DefaultExcludes)

	if err := v.ReadInConfig(); err != nil {
		// SetConfigFile 时文件缺失返回的是 *fs.PathError 而不是 ConfigFileNotFoundError
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	db, err := expandHome(v.GetString("database"))
	if err != nil {
		return nil, err
	}

	return &Config{
		Database:    db,
		BusyTimeout: v.GetInt("busy_timeout"),
		LogLevel:    strings.TrimSpace(v.GetString("log_level")),
		ScanDepth:   v.GetInt("scan_depth"),
		Excludes:    v.GetStringSlice("excludes"),
	}, nil
}

func Save(config Config) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	configFile, err := File()
	if err != nil {
		return err
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.Set("database", config.Database)
	v.Set("busy_timeout", config.BusyTimeout)
	v.Set("log_level", config.LogLevel)
	v.Set("scan_depth", config.ScanDepth)
	v.Set("excludes", config.Excludes)

	return v.WriteConfigAs(configFile)
}

// ValidateConfig 返回配置中的问题描述，为空表示合法。
func ValidateConfig(cfg *Config) []string {
	if cfg == nil {
		return []string{"config is nil"}
	}

	issues := make([]string, 0)
	if strings.TrimSpace(cfg.Database) == "" {
		issues = append(issues, "database must not be empty")
	}
	if cfg.BusyTimeout < 0 {
		issues = append(issues, fmt.Sprintf("busy_timeout must be >= 0, got %d", cfg.BusyTimeout))
	}
	if cfg.ScanDepth < -1 {
		issues = append(issues, fmt.Sprintf("scan_depth must be >= -1, got %d", cfg.ScanDepth))
	}
	if cfg.LogLevel != "" {
		if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
			issues = append(issues, fmt.Sprintf("invalid log_level %q", cfg.LogLevel))
		}
	}
	for _, ex := range cfg.Excludes {
		if strings.TrimSpace(ex) == "" {
			issues = append(issues, "excludes contains an empty entry")
			break
		}
	}
	return issues
}

func expandHome(p string) (string, error) {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~")), nil
}
