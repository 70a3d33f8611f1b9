// Command validate_config 校验飞船游戏配置文件并打印难度曲线
//
// 用法:
//
//	go run ./cmd/validate_config [--config data/flight.yaml] [--hits 20]
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/decker502/flight/pkg/config"
)

func main() {
	path := flag.String("config", config.DefaultConfigPath, "配置文件路径")
	hits := flag.Int("hits", 20, "打印前 N 次命中后的飞行时长")
	flag.Parse()

	data, err := os.ReadFile(*path)
	if err != nil {
		fmt.Printf("❌ 读取文件失败: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.ParseFlightConfig(data)
	if err != nil {
		fmt.Printf("❌ 配置无效: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ YAML 格式正确，配置校验通过\n")
	fmt.Printf("✅ 出生范围: X [%d, %d]  Y [%d, %d]  Z %.0f\n",
		cfg.Spawn.RangeX.Min, cfg.Spawn.RangeX.Max, cfg.Spawn.RangeY.Min, cfg.Spawn.RangeY.Max, cfg.Spawn.Depth)
	fmt.Printf("✅ GAME OVER 后 %.1fs 重开，命中高亮 %.2fs\n", cfg.Round.RestartDelay, cfg.Round.HighlightDuration)

	for i, d := range cfg.Round.DurationCurve(*hits) {
		fmt.Printf("   命中 %2d 次: %.3fs\n", i, d)
	}
}
