// Command flight-term 终端版点击飞船小游戏
//
// 用鼠标点击从远处飞来的飞船得分，每次命中后飞船更快；
// 飞船抵达观察者时显示 GAME OVER，数秒后自动重开。
//
// 用法:
//
//	go run ./cmd/flight-term [--config data/flight.yaml] [--seed 42] [--log flight.log] [--mute]
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/flight/pkg/config"
	"github.com/decker502/flight/pkg/save"
)

func main() {
	configPath := flag.String("config", "", "游戏配置文件路径（默认使用内置配置）")
	seed := flag.Int64("seed", 0, "随机种子（0 表示随机）")
	logPath := flag.String("log", "", "日志文件路径（默认不输出日志）")
	mute := flag.Bool("mute", false, "关闭音效")
	flag.Parse()

	// 终端被游戏画面占用，日志只能写文件
	log.SetOutput(io.Discard)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "无法打开日志文件: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.LoadFlightConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "配置加载失败: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	var rng *rand.Rand
	if *seed != 0 {
		rng = rand.New(rand.NewSource(*seed))
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	screen.EnableMouse()
	screen.HideCursor()

	sound := newTermSound(cfg.Audio, *mute)
	records := save.NewRecordManager(save.OpenStorage(save.AppName))

	game := newTermGame(screen, cfg, sound, records, rng)
	game.run()

	sound.close()
	screen.Fini()
	if err := records.Save(); err != nil {
		fmt.Fprintf(os.Stderr, "战绩保存失败: %v\n", err)
	}
	fmt.Printf("Best score: %d\n", records.BestScore())
}
