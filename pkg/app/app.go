// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/flight/pkg/config"
	"github.com/decker502/flight/pkg/game"
	"github.com/decker502/flight/pkg/save"
	"github.com/decker502/flight/pkg/scenes"
	"github.com/decker502/flight/pkg/utils"
)

// sampleRate 音频采样率
const sampleRate = 48000

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 游戏配置文件路径，为空时使用嵌入的默认配置
	ConfigPath string
	// Seed 随机种子，为 0 时使用随机种子
	Seed int64
	// Fullscreen 以全屏模式启动
	Fullscreen bool
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	cfg          *config.FlightConfig
	sceneManager *game.SceneManager
	settings     *save.SettingsManager
	fullscreen   bool
	mobile       bool

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(appCfg Config) (*App, error) {
	// 配置日志输出
	if !appCfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	configPath := appCfg.ConfigPath
	if configPath == "" {
		configPath = config.DefaultConfigPath
	}
	cfg, err := config.LoadFlightConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("游戏配置加载失败: %w", err)
	}
	log.Printf("[Config] Loaded %s", configPath)

	// 本地存储（设置与战绩）
	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[App] Warning: %v", err)
	}
	storage := save.OpenStorage(save.AppName)
	settings := save.NewSettingsManager(storage)
	records := save.NewRecordManager(storage)
	log.Printf("[App] Best score so far: %d", records.BestScore())

	// 初始化音频
	audioContext := audio.NewContext(sampleRate)
	audioManager := game.NewAudioManager(audioContext, settings, cfg.Audio)
	audioManager.PreloadSounds()
	log.Printf("[App] AudioManager initialized")

	var rng *rand.Rand
	if appCfg.Seed != 0 {
		rng = rand.New(rand.NewSource(appCfg.Seed))
		log.Printf("[App] Using seed %d", appCfg.Seed)
	}

	// 创建场景管理器
	sceneManager := game.NewSceneManager()
	sceneManager.SetSceneFactory(func(name string) game.Scene {
		switch name {
		case scenes.SceneFlight:
			return scenes.NewFlightScene(cfg, scenes.FlightDeps{
				Audio:    audioManager,
				Settings: settings,
				Records:  records,
				Rand:     rng,
			})
		default:
			return nil
		}
	})
	if !sceneManager.Load(scenes.SceneFlight) {
		return nil, fmt.Errorf("无法创建场景: %s", scenes.SceneFlight)
	}

	mobile := utils.IsMobile()
	return &App{
		cfg:          cfg,
		sceneManager: sceneManager,
		settings:     settings,
		fullscreen:   appCfg.Fullscreen || settings.GetSettings().Fullscreen || mobile,
		mobile:       mobile,
	}, nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	if ebiten.IsWindowBeingClosed() {
		a.SaveOnExit()
		return ebiten.Termination
	}

	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.WindowSize())
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)
	return nil
}

// toggleFullscreen 切换全屏并记住选择
func (a *App) toggleFullscreen() {
	if ebiten.IsFullscreen() {
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
	} else {
		ebiten.SetFullscreen(true)
	}

	a.settings.SetFullscreen(ebiten.IsFullscreen())
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] ERROR: %v", err)
	}
}

// Draw 绘制游戏画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
//
// 桌面端使用配置中的固定尺寸，由 Ebitengine 负责缩放；
// 移动端跟随设备屏幕，场景相机同步调整视口。
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if a.mobile && outsideWidth > 0 && outsideHeight > 0 {
		a.sceneManager.Resize(outsideWidth, outsideHeight)
		return outsideWidth, outsideHeight
	}
	return a.WindowSize()
}

// WindowSize 返回配置的窗口尺寸
func (a *App) WindowSize() (int, int) {
	return a.cfg.Display.Width, a.cfg.Display.Height
}

// Fullscreen 是否应以全屏模式启动
func (a *App) Fullscreen() bool {
	return a.fullscreen
}

// SaveOnExit 保存当前场景状态
func (a *App) SaveOnExit() bool {
	return a.sceneManager.SaveOnExit()
}
