// Command flight 点击飞船小游戏（桌面端）
//
// 用法:
//
//	go run . [--verbose] [--config data/flight.yaml] [--seed 42] [--fullscreen]
//
// 操作：点击/触摸飞船得分；M 切换音效；F3 切换统计信息；F11 切换全屏。
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/flight/pkg/app"
	"github.com/decker502/flight/pkg/embedded"
)

var (
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
	configPath = flag.String("config", "", "游戏配置文件路径（默认使用嵌入的 data/flight.yaml）")
	seed       = flag.Int64("seed", 0, "随机种子（0 表示随机）")
	fullscreen = flag.Bool("fullscreen", false, "以全屏模式启动")
)

func main() {
	flag.Parse()

	// dataFS 在 embed.go 中声明
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		ConfigPath: *configPath,
		Seed:       *seed,
		Fullscreen: *fullscreen,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "游戏初始化失败: %v\n", err)
		os.Exit(1)
	}

	ebiten.SetWindowSize(gameApp.WindowSize())
	ebiten.SetWindowTitle("Flight")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetFullscreen(gameApp.Fullscreen())

	if err := ebiten.RunGame(gameApp); err != nil {
		fmt.Fprintf(os.Stderr, "游戏运行失败: %v\n", err)
		os.Exit(1)
	}
}
