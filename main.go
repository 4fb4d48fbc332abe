// git-catalog 为本地 Git 仓库维护一个带稳定 id 的目录，供项目和工作区引用。
package main

import (
	"git-catalog/cmd"
)

// main 是程序的入口函数，负责启动 CLI 命令执行。
func main() {
	cmd.Execute()
}
