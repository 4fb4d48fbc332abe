// Package repo 维护仓库目录（catalog）：把文件系统路径映射为唯一、稳定的 Repo 记录。
//
// 主要功能：
//   - Catalog: 基于路径去重的创建、按 id 查询、改名、孤儿记录清理
//   - BackfillNames: 启动时修复遗留导入留下的占位名称
//   - ImportLegacy: 导入旧版纯文本仓库列表
//   - ScanRepos: 递归扫描目录查找 Git 仓库
//   - Doctor: 检查目录中的仓库在磁盘上是否仍然有效
//
// 并发正确性完全依赖存储层的 UNIQUE(path) 约束和单条原子 upsert 语句，
// 本包不做任何进程内加锁。
package repo
