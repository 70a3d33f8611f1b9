package systems

import (
	"testing"

	"github.com/decker502/flight/pkg/components"
	"github.com/decker502/flight/pkg/ecs"
)

func TestFlashEffectRampsAndCompletes(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewFlashEffectSystem(em)

	completed := 0
	id := em.CreateEntity()
	flash := &components.FlashEffectComponent{
		Duration:   0.2,
		IsActive:   true,
		OnComplete: func() { completed++ },
	}
	em.AddComponent(id, flash)

	system.Update(0.1)
	if flash.Intensity < 0.49 || flash.Intensity > 0.51 {
		t.Errorf("Intensity at half time: got %v, want 0.5", flash.Intensity)
	}
	if completed != 0 {
		t.Fatal("completed too early")
	}

	system.Update(0.1)
	if completed != 1 {
		t.Fatalf("completed %d times, want 1", completed)
	}
	if ecs.HasComponent[*components.FlashEffectComponent](em, id) {
		t.Error("flash component should be removed after completion")
	}

	system.Update(0.1)
	if completed != 1 {
		t.Errorf("completion fired again: %d", completed)
	}
}

func TestFlashEffectInactiveIsPaused(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewFlashEffectSystem(em)

	id := em.CreateEntity()
	flash := &components.FlashEffectComponent{Duration: 0.2}
	em.AddComponent(id, flash)

	system.Update(1.0)
	if flash.Elapsed != 0 {
		t.Errorf("inactive flash should not advance, Elapsed=%v", flash.Elapsed)
	}
}
