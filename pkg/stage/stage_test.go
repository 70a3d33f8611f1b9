package stage

import (
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/decker502/flight/pkg/config"
	"github.com/decker502/flight/pkg/round"
)

// 0.25 可以被 float64 精确表示，累加不会产生误差
const frame = 0.25

type recordingDisplay struct {
	texts []string
}

func (d *recordingDisplay) SetStatusText(text string) {
	d.texts = append(d.texts, text)
}

func (d *recordingDisplay) last() string {
	if len(d.texts) == 0 {
		return ""
	}
	return d.texts[len(d.texts)-1]
}

func newTestStage() *Stage {
	cfg := config.Default()
	return New(cfg.Camera, cfg.Display.Width, cfg.Display.Height)
}

func newTestGame(t *testing.T) (*Stage, *round.Controller, *recordingDisplay) {
	t.Helper()
	cfg := config.Default()
	s := New(cfg.Camera, cfg.Display.Width, cfg.Display.Height)
	display := &recordingDisplay{}
	c := round.NewController(cfg.Round, cfg.Spawn, s, display, s.Scheduler(), rand.New(rand.NewSource(7)))
	return s, c, display
}

func advance(s *Stage, frames int) {
	for i := 0; i < frames; i++ {
		s.Update(frame)
	}
}

func TestSpawnShipView(t *testing.T) {
	s := newTestStage()

	h := s.SpawnShip(round.Vec3{Z: -105}, round.Vec3{Z: -210})
	views := s.Ships()
	if len(views) != 1 {
		t.Fatalf("expected 1 ship view, got %d", len(views))
	}
	v := views[0]
	if v.Handle != h {
		t.Errorf("handle mismatch: %d vs %d", v.Handle, h)
	}
	if math.Abs(v.X-195) > 1e-9 || math.Abs(v.Y-422) > 1e-9 {
		t.Errorf("center ship should project to screen center, got (%v, %v)", v.X, v.Y)
	}
	if v.Radius <= 0 || v.Depth != 105 {
		t.Errorf("unexpected radius/depth: %v / %v", v.Radius, v.Depth)
	}
}

func TestAnimateMoveAndComplete(t *testing.T) {
	s := newTestStage()
	h := s.SpawnShip(round.Vec3{X: 10, Y: 10, Z: -100}, round.Vec3{X: 20, Y: 20, Z: -200})

	done := 0
	s.AnimateMove(h, round.Vec3{Z: -50}, 1.0, func() { done++ })

	advance(s, 2)
	v := s.Ships()[0]
	if math.Abs(v.Depth-75) > 1e-9 {
		t.Errorf("halfway depth should be 75, got %v", v.Depth)
	}
	advance(s, 2)
	if done != 1 {
		t.Fatalf("onComplete should fire once, got %d", done)
	}
	advance(s, 4)
	if done != 1 {
		t.Errorf("onComplete fired again: %d", done)
	}
}

func TestRemoveShipCancelsCallbacks(t *testing.T) {
	s := newTestStage()
	h := s.SpawnShip(round.Vec3{Z: -100}, round.Vec3{Z: -200})

	moved, flashed := false, false
	s.AnimateMove(h, round.Vec3{}, 1.0, func() { moved = true })
	s.Highlight(h, 0.5, func() { flashed = true })

	s.RemoveShip(h)
	advance(s, 8)

	if moved || flashed {
		t.Errorf("callbacks of a removed ship must not fire (moved=%v flashed=%v)", moved, flashed)
	}
	if s.ShipCount() != 0 {
		t.Errorf("expected no ships, got %d", s.ShipCount())
	}

	// 重复移除和操作已移除的飞船都应被忽略
	s.RemoveShip(h)
	s.AnimateMove(h, round.Vec3{}, 1.0, func() { moved = true })
	advance(s, 8)
	if moved {
		t.Error("AnimateMove on a removed ship should be ignored")
	}
}

func TestHitTestAndHighlight(t *testing.T) {
	s := newTestStage()
	h := s.SpawnShip(round.Vec3{Z: -105}, round.Vec3{Z: -210})

	got, ok := s.HitTest(195, 422)
	if !ok || got != h {
		t.Fatalf("HitTest at ship center: got (%d, %v)", got, ok)
	}
	if _, ok := s.HitTest(5, 5); ok {
		t.Error("HitTest far from the ship should miss")
	}

	completed := false
	s.Highlight(h, 0.5, func() { completed = true })

	// 高亮期间不可再被点中
	if _, ok := s.HitTest(195, 422); ok {
		t.Error("highlighted ship should not be pickable")
	}

	advance(s, 1)
	if v := s.Ships()[0]; math.Abs(v.Highlight-0.5) > 1e-9 {
		t.Errorf("highlight intensity should be 0.5, got %v", v.Highlight)
	}
	advance(s, 1)
	if !completed {
		t.Error("highlight onComplete should fire after its duration")
	}
}

func TestControllerGameOverAndRestart(t *testing.T) {
	s, c, display := newTestGame(t)
	c.Start()

	if c.State() != round.StateFlying || s.ShipCount() != 1 {
		t.Fatalf("expected a flying ship after Start, state=%v ships=%d", c.State(), s.ShipCount())
	}

	// 5.0 秒内未命中
	advance(s, 19)
	if c.State() != round.StateFlying {
		t.Fatalf("ship should still be flying at 4.75s, state=%v", c.State())
	}
	advance(s, 1)
	if c.State() != round.StateGameOver {
		t.Fatalf("expected GameOver at 5.0s, state=%v", c.State())
	}
	if display.last() != "GAME OVER\nFinal Score: 0" {
		t.Errorf("unexpected status %q", display.last())
	}
	if s.ShipCount() != 0 {
		t.Errorf("ship should be removed at game over, got %d", s.ShipCount())
	}

	// 重开计时从下一帧开始
	advance(s, 19)
	if c.State() != round.StateGameOver {
		t.Fatalf("restart fired too early, state=%v", c.State())
	}
	advance(s, 1)
	if c.State() != round.StateFlying || s.ShipCount() != 1 {
		t.Fatalf("expected restart after delay, state=%v ships=%d", c.State(), s.ShipCount())
	}
	if display.last() != "Score: 0" || c.FlightDuration() != 5.0 {
		t.Errorf("restart should reset score and duration, status=%q duration=%v", display.last(), c.FlightDuration())
	}
}

func TestControllerTapOnProjectedShip(t *testing.T) {
	s, c, display := newTestGame(t)
	c.Start()
	first, _ := c.Ship()

	advance(s, 4)
	v := s.Ships()[0]
	if !c.HandleTap(v.X, v.Y) {
		t.Fatalf("tap on projected ship at (%v, %v) should hit", v.X, v.Y)
	}

	// 高亮 0.2 秒，下一帧结算
	advance(s, 1)
	if c.Score() != 1 || display.last() != "Score: 1" {
		t.Errorf("expected score 1, got %d (%q)", c.Score(), display.last())
	}
	if math.Abs(c.FlightDuration()-4.5) > 1e-9 {
		t.Errorf("expected duration 4.5, got %v", c.FlightDuration())
	}
	second, ok := c.Ship()
	if !ok || second == first || s.ShipCount() != 1 {
		t.Errorf("expected exactly one new ship, got handle %d (first %d), ships=%d", second, first, s.ShipCount())
	}
}

func TestControllerHitJustBeforeArrival(t *testing.T) {
	s, c, _ := newTestGame(t)
	c.Start()

	advance(s, 19)
	v := s.Ships()[0]
	if !c.HandleTap(v.X, v.Y) {
		t.Fatal("tap at 4.75s should hit")
	}

	// 下一帧移动先结束，随后高亮结束：命中优先
	advance(s, 1)
	if c.State() != round.StateFlying {
		t.Fatalf("hit should win over arrival, state=%v", c.State())
	}
	if c.Score() != 1 {
		t.Errorf("expected score 1, got %d", c.Score())
	}
	if s.ShipCount() != 1 {
		t.Errorf("expected exactly one ship, got %d", s.ShipCount())
	}
}

func TestControllerMissDoesNotScore(t *testing.T) {
	s, c, display := newTestGame(t)
	c.Start()
	advance(s, 1)

	if c.HandleTap(1, 1) {
		t.Error("tap in the corner should miss")
	}
	advance(s, 2)
	if c.Score() != 0 || !strings.HasPrefix(display.last(), "Score: 0") {
		t.Errorf("miss should not change score, got %d (%q)", c.Score(), display.last())
	}
}
