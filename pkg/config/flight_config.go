package config

import (
	"fmt"
	"os"

	"github.com/decker502/flight/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// DefaultConfigPath 默认配置文件路径（嵌入资源）
const DefaultConfigPath = "data/flight.yaml"

// FlightConfig 飞船游戏配置
//
// 配置文件位置: data/flight.yaml
type FlightConfig struct {
	Round   RoundConfig   `yaml:"round"`
	Spawn   SpawnConfig   `yaml:"spawn"`
	Camera  CameraConfig  `yaml:"camera"`
	Display DisplayConfig `yaml:"display"`
	Audio   AudioConfig   `yaml:"audio"`
}

// RoundConfig 回合与难度配置
type RoundConfig struct {
	// BaseDuration 飞船飞到原点的初始时长（秒），每回合重开时恢复为该值
	BaseDuration float64 `yaml:"baseDuration"`

	// DecayFactor 每次击中后飞行时长乘以的系数
	DecayFactor float64 `yaml:"decayFactor"`

	// MinDuration 飞行时长下限（秒），0 表示不设下限
	MinDuration float64 `yaml:"minDuration"`

	// RestartDelay GAME OVER 后自动重开的延迟（秒）
	RestartDelay float64 `yaml:"restartDelay"`

	// HighlightDuration 击中高亮过渡时长（秒）
	HighlightDuration float64 `yaml:"highlightDuration"`
}

// SpawnConfig 出生点配置
type SpawnConfig struct {
	// RangeX/RangeY 出生点 X/Y 整数坐标范围（闭区间）
	RangeX IntRange `yaml:"rangeX"`
	RangeY IntRange `yaml:"rangeY"`

	// Depth 出生点 Z 坐标（远离观察者，应为负值）
	Depth float64 `yaml:"depth"`

	// LookAtScale 朝向点 = 出生点 * LookAtScale
	LookAtScale float64 `yaml:"lookAtScale"`
}

// IntRange 整数闭区间
type IntRange struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// CameraConfig 透视相机配置
// 相机位于原点，朝 -Z 方向观察
type CameraConfig struct {
	FieldOfView float64 `yaml:"fieldOfView"` // 垂直视场角（度）
	Near        float64 `yaml:"near"`        // 近裁剪面距离
	ShipRadius  float64 `yaml:"shipRadius"`  // 飞船点击判定半径（世界单位）
}

// DisplayConfig 显示配置
type DisplayConfig struct {
	Width          int     `yaml:"width"`          // 逻辑屏幕宽度
	Height         int     `yaml:"height"`         // 逻辑屏幕高度
	FontSize       float64 `yaml:"fontSize"`       // 状态文字字号
	StatusHeight   int     `yaml:"statusHeight"`   // 状态文字区域高度
	ShowStatistics bool    `yaml:"showStatistics"` // 是否显示 FPS/TPS 统计
}

// AudioConfig 合成音效配置
type AudioConfig struct {
	HitFrequency      float64 `yaml:"hitFrequency"`      // 击中音调（Hz）
	HitMillis         int     `yaml:"hitMillis"`         // 击中音时长（毫秒）
	GameOverFrequency float64 `yaml:"gameOverFrequency"` // 失败音调（Hz）
	GameOverMillis    int     `yaml:"gameOverMillis"`    // 失败音时长（毫秒）
}

// Default 返回内置默认配置，与 data/flight.yaml 一致
func Default() *FlightConfig {
	return &FlightConfig{
		Round: RoundConfig{
			BaseDuration:      5.0,
			DecayFactor:       0.9,
			MinDuration:       0,
			RestartDelay:      5.0,
			HighlightDuration: 0.2,
		},
		Spawn: SpawnConfig{
			RangeX:      IntRange{Min: -25, Max: 25},
			RangeY:      IntRange{Min: -25, Max: 25},
			Depth:       -105,
			LookAtScale: 2,
		},
		Camera: CameraConfig{
			FieldOfView: 60,
			Near:        1,
			ShipRadius:  4,
		},
		Display: DisplayConfig{
			Width:          390,
			Height:         844,
			FontSize:       30,
			StatusHeight:   100,
			ShowStatistics: true,
		},
		Audio: AudioConfig{
			HitFrequency:      880,
			HitMillis:         80,
			GameOverFrequency: 220,
			GameOverMillis:    400,
		},
	}
}

// LoadFlightConfig 加载飞船游戏配置
//
// 优先从嵌入资源读取（路径以 "data/" 开头且已嵌入），否则读取磁盘文件。
// 文件中缺失的字段保留默认值。
//
// 参数:
//   - path: 配置文件路径（如 "data/flight.yaml"）
//
// 返回:
//   - *FlightConfig: 加载成功后的配置结构
//   - error: 读取、解析或验证失败时返回错误
func LoadFlightConfig(path string) (*FlightConfig, error) {
	var data []byte
	var err error
	if embedded.Exists(path) {
		data, err = embedded.ReadFile(path)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read flight config: %w", err)
	}

	return ParseFlightConfig(data)
}

// ParseFlightConfig 从 YAML 数据解析配置
func ParseFlightConfig(data []byte) (*FlightConfig, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse flight config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flight config: %w", err)
	}

	return cfg, nil
}

// Validate 验证配置有效性
//
// 检查：
//   - 各时长必须为正（MinDuration 可为 0）
//   - 衰减系数在 (0, 1] 内
//   - 出生点范围 Min <= Max，且深度在观察者前方（负值）
//   - 相机参数为正
func (c *FlightConfig) Validate() error {
	r := c.Round
	if r.BaseDuration <= 0 {
		return fmt.Errorf("baseDuration must be > 0, got %.3f", r.BaseDuration)
	}
	if r.DecayFactor <= 0 || r.DecayFactor > 1 {
		return fmt.Errorf("decayFactor must be in (0, 1], got %.3f", r.DecayFactor)
	}
	if r.MinDuration < 0 || r.MinDuration > r.BaseDuration {
		return fmt.Errorf("minDuration must be in [0, baseDuration], got %.3f", r.MinDuration)
	}
	if r.RestartDelay <= 0 {
		return fmt.Errorf("restartDelay must be > 0, got %.3f", r.RestartDelay)
	}
	if r.HighlightDuration < 0 {
		return fmt.Errorf("highlightDuration must be >= 0, got %.3f", r.HighlightDuration)
	}

	s := c.Spawn
	if s.RangeX.Min > s.RangeX.Max {
		return fmt.Errorf("spawn rangeX invalid: min(%d) > max(%d)", s.RangeX.Min, s.RangeX.Max)
	}
	if s.RangeY.Min > s.RangeY.Max {
		return fmt.Errorf("spawn rangeY invalid: min(%d) > max(%d)", s.RangeY.Min, s.RangeY.Max)
	}
	if s.Depth >= 0 {
		return fmt.Errorf("spawn depth must be < 0, got %.1f", s.Depth)
	}

	cam := c.Camera
	if cam.FieldOfView <= 0 || cam.FieldOfView >= 180 {
		return fmt.Errorf("camera fieldOfView must be in (0, 180), got %.1f", cam.FieldOfView)
	}
	if cam.Near <= 0 {
		return fmt.Errorf("camera near must be > 0, got %.3f", cam.Near)
	}
	if cam.ShipRadius <= 0 {
		return fmt.Errorf("camera shipRadius must be > 0, got %.3f", cam.ShipRadius)
	}

	if c.Display.Width <= 0 || c.Display.Height <= 0 {
		return fmt.Errorf("display size must be positive, got %dx%d", c.Display.Width, c.Display.Height)
	}

	return nil
}

// NextDuration 命中后的飞行时长：乘以衰减系数，低于 MinDuration 时截断（MinDuration 为 0 时不截断）
func (r RoundConfig) NextDuration(d float64) float64 {
	d *= r.DecayFactor
	if r.MinDuration > 0 && d < r.MinDuration {
		d = r.MinDuration
	}
	return d
}

// DurationCurve 返回命中 0..hits 次时的飞行时长
func (r RoundConfig) DurationCurve(hits int) []float64 {
	if hits < 0 {
		hits = 0
	}
	curve := make([]float64, hits+1)
	curve[0] = r.BaseDuration
	for i := 1; i <= hits; i++ {
		curve[i] = r.NextDuration(curve[i-1])
	}
	return curve
}
