package main

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/flight/pkg/config"
	"github.com/decker502/flight/pkg/round"
	"github.com/decker502/flight/pkg/save"
	"github.com/decker502/flight/pkg/stage"
)

// maxFrameTime 单帧最长推进时间，终端挂起恢复后避免飞船瞬移
const maxFrameTime = 0.1

// termGame 终端版游戏
type termGame struct {
	screen     tcell.Screen
	stage      *stage.Stage
	controller *round.Controller
	display    *termDisplay
	renderer   *renderer
	sound      *termSound
	records    *save.RecordManager

	// buttonDown 左键是否按住，拖动产生的鼠标事件不算新的点击
	buttonDown bool
}

// newTermGame 组装终端版游戏，screen 必须已初始化
func newTermGame(screen tcell.Screen, cfg *config.FlightConfig, sound *termSound, records *save.RecordManager, rng *rand.Rand) *termGame {
	width, height := screen.Size()

	st := stage.New(cfg.Camera, width, height)
	st.Camera().SetAspectX(cellAspect)

	display := &termDisplay{}
	controller := round.NewController(cfg.Round, cfg.Spawn, st, display, st.Scheduler(), rng)
	if sound != nil {
		controller.AddListener(sound)
	}
	if records != nil {
		controller.AddListener(records)
	}

	return &termGame{
		screen:     screen,
		stage:      st,
		controller: controller,
		display:    display,
		renderer:   newRenderer(screen),
		sound:      sound,
		records:    records,
	}
}

// handleEvent 处理一个输入事件，返回 false 表示退出
func (g *termGame) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q'):
			return false
		case ev.Key() == tcell.KeyRune && (ev.Rune() == 'm' || ev.Rune() == 'M'):
			if g.sound != nil {
				log.Printf("[FlightTerm] Muted: %v", g.sound.toggleMute())
			}
		}

	case *tcell.EventMouse:
		pressed := ev.Buttons()&tcell.Button1 != 0
		if pressed && !g.buttonDown {
			x, y := ev.Position()
			// 点击字符格中心
			g.controller.HandleTap(float64(x)+0.5, float64(y)+0.5)
		}
		g.buttonDown = pressed

	case *tcell.EventResize:
		g.resize()
	}
	return true
}

func (g *termGame) resize() {
	width, height := g.screen.Size()
	g.stage.Camera().SetViewport(width, height)
	g.screen.Sync()
}

// step 推进游戏时间并重绘
func (g *termGame) step(deltaTime float64) {
	if deltaTime > maxFrameTime {
		deltaTime = maxFrameTime
	}
	g.stage.Update(deltaTime)
	g.renderer.draw(g.stage.Ships(), g.display.text, g.footer())
}

func (g *termGame) footer() string {
	footer := "click ship: score   m: mute   q: quit"
	if g.records != nil {
		best := fmt.Sprintf("best %d", g.records.BestScore())
		if g.controller.State() == round.StateGameOver && g.records.IsNewBest() {
			best += " NEW BEST"
		}
		footer = best + "   " + footer
	}
	return footer
}

// run 主循环：输入事件与约 60 FPS 的定时器在同一个 goroutine 中串行处理
func (g *termGame) run() {
	g.controller.Start()

	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				close(eventChan)
				return
			}
			eventChan <- ev
		}
	}()

	last := time.Now()
	for {
		select {
		case ev, ok := <-eventChan:
			if !ok || !g.handleEvent(ev) {
				g.controller.Stop()
				return
			}

		case now := <-ticker.C:
			g.step(now.Sub(last).Seconds())
			last = now
		}
	}
}
