// Command cougarbots 播放 Canterbury Cougarbots 站点开场动画
//
// 不带参数运行时打开窗口；子命令见 cougarbots --help。
package main

import (
	"os"

	"github.com/cougarbots/site/internal/cli"
	"github.com/cougarbots/site/pkg/embedded"
)

func main() {
	// assetsFS 和 dataFS 在 embed.go 中声明
	embedded.Init(assetsFS, dataFS)

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
