package scenes

import (
	"bytes"
	"fmt"
	"image/color"
	"log"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/decker502/flight/pkg/config"
	"github.com/decker502/flight/pkg/game"
	"github.com/decker502/flight/pkg/round"
	"github.com/decker502/flight/pkg/save"
	"github.com/decker502/flight/pkg/stage"
	"github.com/decker502/flight/pkg/utils"
)

// SceneFlight 飞船场景名称（用于 SceneManager.Load）
const SceneFlight = "flight"

// 编译期检查
var (
	_ game.Scene     = (*FlightScene)(nil)
	_ game.Saveable  = (*FlightScene)(nil)
	_ game.Resizable = (*FlightScene)(nil)
	_ round.Display  = (*FlightScene)(nil)
)

var (
	hullColor      = color.RGBA{R: 200, G: 205, B: 215, A: 255}
	wingColor      = color.RGBA{R: 140, G: 150, B: 165, A: 255}
	cockpitColor   = color.RGBA{R: 40, G: 70, B: 120, A: 255}
	highlightColor = color.RGBA{R: 255, G: 0, B: 0, A: 255}
)

// FlightDeps 飞船场景的外部依赖，均可为 nil
type FlightDeps struct {
	Audio    *game.AudioManager
	Settings *save.SettingsManager
	Records  *save.RecordManager
	Rand     *rand.Rand
}

// FlightScene 点击飞船小游戏场景
//
// 黑色背景上飞船从远处飞向观察者，点中得分并加速，
// 飞船抵达观察者则显示 GAME OVER，数秒后自动重开。
type FlightScene struct {
	cfg        *config.FlightConfig
	stage      *stage.Stage
	controller *round.Controller
	deps       FlightDeps

	font       *text.GoTextFace
	statusText string

	width, height int
}

// NewFlightScene 创建飞船场景并开始第一回合
func NewFlightScene(cfg *config.FlightConfig, deps FlightDeps) *FlightScene {
	s := &FlightScene{
		cfg:    cfg,
		deps:   deps,
		width:  cfg.Display.Width,
		height: cfg.Display.Height,
	}

	s.stage = stage.New(cfg.Camera, s.width, s.height)
	s.font = loadStatusFont(cfg.Display.FontSize)

	s.controller = round.NewController(cfg.Round, cfg.Spawn, s.stage, s, s.stage.Scheduler(), deps.Rand)
	if deps.Audio != nil {
		s.controller.AddListener(deps.Audio)
	}
	if deps.Records != nil {
		s.controller.AddListener(deps.Records)
	}

	s.controller.Start()
	log.Printf("[FlightScene] Scene created (%dx%d)", s.width, s.height)
	return s
}

// loadStatusFont 加载状态文字字体，失败时返回 nil（退回调试字体）
func loadStatusFont(size float64) *text.GoTextFace {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		log.Printf("[FlightScene] Warning: Failed to load font: %v", err)
		return nil
	}
	return &text.GoTextFace{
		Source: source,
		Size:   size,
	}
}

// SetStatusText 实现 round.Display
func (s *FlightScene) SetStatusText(textStr string) {
	s.statusText = textStr
}

// StatusText 返回当前状态文字
func (s *FlightScene) StatusText() string {
	return s.statusText
}

// Controller 返回回合控制器
func (s *FlightScene) Controller() *round.Controller {
	return s.controller
}

// Stage 返回舞台
func (s *FlightScene) Stage() *stage.Stage {
	return s.stage
}

// Update 处理输入并推进一帧
func (s *FlightScene) Update(deltaTime float64) {
	if tapped, x, y := utils.IsJustTouchedOrClicked(); tapped {
		s.Tap(float64(x), float64(y))
	}
	if utils.IsKeyJustPressed(ebiten.KeyM) {
		s.ToggleSound()
	}
	if utils.IsKeyJustPressed(ebiten.KeyF3) {
		s.ToggleStatistics()
	}

	s.stage.Update(deltaTime)
}

// Tap 处理屏幕点击（逻辑屏幕坐标）
func (s *FlightScene) Tap(x, y float64) bool {
	return s.controller.HandleTap(x, y)
}

// ToggleSound 切换音效开关并保存设置
func (s *FlightScene) ToggleSound() {
	if s.deps.Settings == nil {
		return
	}
	enabled := !s.deps.Settings.GetSettings().SoundEnabled
	s.deps.Settings.SetSoundEnabled(enabled)
	if err := s.deps.Settings.Save(); err != nil {
		log.Printf("[FlightScene] ERROR: %v", err)
	}
	log.Printf("[FlightScene] Sound enabled: %v", enabled)
}

// ToggleStatistics 切换 FPS/TPS 统计显示
func (s *FlightScene) ToggleStatistics() {
	if s.deps.Settings == nil {
		s.cfg.Display.ShowStatistics = !s.cfg.Display.ShowStatistics
		return
	}
	s.deps.Settings.SetShowStatistics(!s.deps.Settings.GetSettings().ShowStatistics)
	if err := s.deps.Settings.Save(); err != nil {
		log.Printf("[FlightScene] ERROR: %v", err)
	}
}

// showStatistics 是否显示统计信息，设置管理器优先于配置文件
func (s *FlightScene) showStatistics() bool {
	if s.deps.Settings != nil {
		return s.deps.Settings.GetSettings().ShowStatistics
	}
	return s.cfg.Display.ShowStatistics
}

// Resize 实现 game.Resizable
func (s *FlightScene) Resize(width, height int) {
	if width == s.width && height == s.height {
		return
	}
	s.width, s.height = width, height
	s.stage.Camera().SetViewport(width, height)
}

// SaveOnExit 实现 game.Saveable：保存设置和战绩
func (s *FlightScene) SaveOnExit() bool {
	s.controller.Stop()

	ok := true
	if s.deps.Settings != nil {
		if err := s.deps.Settings.Save(); err != nil {
			log.Printf("[FlightScene] ERROR: Failed to save settings: %v", err)
			ok = false
		}
	}
	if s.deps.Records != nil {
		if err := s.deps.Records.Save(); err != nil {
			log.Printf("[FlightScene] ERROR: Failed to save records: %v", err)
			ok = false
		}
	}
	return ok
}

// Draw 绘制场景
func (s *FlightScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	// 由远到近绘制
	for _, ship := range s.stage.Ships() {
		drawShip(screen, ship)
	}

	s.drawStatus(screen)

	if s.showStatistics() {
		s.drawStatistics(screen)
	}
}

// statusMargin 状态文字左右留白
const statusMargin = 16.0

var newBestColor = color.RGBA{R: 255, G: 215, B: 0, A: 255}

// drawStatus 在顶部居中绘制状态文字，GAME OVER 时刷新最高分则在下方提示 NEW BEST
func (s *FlightScene) drawStatus(screen *ebiten.Image) {
	if s.statusText == "" {
		return
	}

	cx := float64(s.width) / 2
	cy := float64(s.cfg.Display.StatusHeight) / 2
	if s.font == nil {
		ebitenutil.DebugPrintAt(screen, s.statusText, int(cx)-40, int(cy)-8)
		return
	}

	face := s.fitFace(s.statusText, s.font)
	utils.DrawCenteredText(screen, s.statusText, face, cx, cy, color.White)

	if s.showNewBest() {
		_, h := utils.MeasureText(s.statusText, face)
		badge := &text.GoTextFace{Source: s.font.Source, Size: face.Size * 0.6}
		utils.DrawCenteredText(screen, newBestText, badge, cx, cy+h/2+badge.Size, newBestColor)
	}
}

// newBestText 刷新最高分提示
const newBestText = "NEW BEST"

// showNewBest 本轮 GAME OVER 刷新了最高分
func (s *FlightScene) showNewBest() bool {
	return s.deps.Records != nil &&
		s.controller.State() == round.StateGameOver &&
		s.deps.Records.IsNewBest()
}

// fitFace 文本宽度超出屏幕时按比例缩小字号
func (s *FlightScene) fitFace(textStr string, face *text.GoTextFace) *text.GoTextFace {
	w, _ := utils.MeasureText(textStr, face)
	avail := float64(s.width) - 2*statusMargin
	if w <= avail || avail <= 0 {
		return face
	}
	return &text.GoTextFace{Source: face.Source, Size: face.Size * avail / w}
}

// drawStatistics 左下角的 FPS/TPS 统计
func (s *FlightScene) drawStatistics(screen *ebiten.Image) {
	stats := fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nShips: %d", ebiten.ActualFPS(), ebiten.ActualTPS(), s.stage.ShipCount())
	if s.deps.Records != nil {
		stats += fmt.Sprintf("\nBest: %d", s.deps.Records.BestScore())
		if s.showNewBest() {
			stats += " (" + newBestText + ")"
		}
	}
	ebitenutil.DebugPrintAt(screen, stats, 8, s.height-72)
}

// drawShip 绘制正对观察者飞来的飞船：机翼、机身和座舱
func drawShip(screen *ebiten.Image, ship stage.ShipView) {
	x, y, r := float32(ship.X), float32(ship.Y), float32(ship.Radius)
	if r < 1 {
		r = 1
	}

	hull := shipColor(hullColor, ship.Highlight)
	wing := shipColor(wingColor, ship.Highlight)

	vector.StrokeLine(screen, x-r, y, x+r, y, r*0.25, wing, true)
	vector.StrokeLine(screen, x, y-r*0.7, x, y-r*0.2, r*0.15, wing, true)
	vector.DrawFilledCircle(screen, x, y, r*0.45, hull, true)
	vector.DrawFilledCircle(screen, x, y, r*0.18, shipColor(cockpitColor, ship.Highlight), true)
}

// shipColor 按高亮强度把基础色混合为红色自发光
func shipColor(base color.RGBA, highlight float64) color.RGBA {
	if highlight <= 0 {
		return base
	}
	if highlight > 1 {
		highlight = 1
	}
	mix := func(a, b uint8) uint8 {
		return uint8(float64(a) + (float64(b)-float64(a))*highlight)
	}
	return color.RGBA{
		R: mix(base.R, highlightColor.R),
		G: mix(base.G, highlightColor.G),
		B: mix(base.B, highlightColor.B),
		A: 255,
	}
}
