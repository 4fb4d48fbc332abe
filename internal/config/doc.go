// Package config 提供 git-catalog 的配置管理功能。
//
// 配置文件存储在 ~/.config/git-catalog/config.yaml，使用 YAML 格式，
// 每一项都可以用 GIT_CATALOG_ 前缀的环境变量覆盖（如 GIT_CATALOG_DATABASE）。
// 支持的配置项包括目录库位置、写锁等待时间、日志级别和扫描默认值。
package config
