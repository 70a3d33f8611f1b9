package systems

import (
	"math"
	"testing"

	"github.com/decker502/flight/pkg/components"
	"github.com/decker502/flight/pkg/config"
	"github.com/decker502/flight/pkg/ecs"
	"github.com/decker502/flight/pkg/round"
)

func newTestCamera() *Camera {
	return NewCamera(config.Default().Camera, 400, 800)
}

func TestCameraProjectCenter(t *testing.T) {
	cam := newTestCamera()

	sx, sy, depth, ok := cam.Project(round.Vec3{Z: -105})
	if !ok || sx != 200 || sy != 400 || depth != 105 {
		t.Errorf("Project center: got (%v, %v, %v, %v)", sx, sy, depth, ok)
	}

	// 60° 垂直视场：深度 d 处 y = d*tan(30°) 恰好落在屏幕上边缘
	d := 50.0
	_, sy, _, ok = cam.Project(round.Vec3{Y: d * math.Tan(math.Pi/6), Z: -d})
	if !ok || math.Abs(sy) > 1e-6 {
		t.Errorf("top edge: got sy=%v ok=%v, want 0", sy, ok)
	}
}

func TestCameraProjectBehindNearPlane(t *testing.T) {
	cam := newTestCamera()

	if _, _, _, ok := cam.Project(round.Vec3{}); ok {
		t.Error("origin lies on the camera and should not project")
	}
	if _, _, _, ok := cam.Project(round.Vec3{Z: 5}); ok {
		t.Error("points behind the camera should not project")
	}
}

func TestCameraAspectX(t *testing.T) {
	cam := newTestCamera()
	p := round.Vec3{X: 10, Z: -100}
	sx1, _, _, _ := cam.Project(p)

	cam.SetAspectX(2)
	sx2, _, _, _ := cam.Project(p)
	if math.Abs((sx2-200)-2*(sx1-200)) > 1e-9 {
		t.Errorf("aspect 2 should double horizontal offset: %v vs %v", sx1, sx2)
	}

	cam.SetAspectX(0)
	if cam.AspectX() != 2 {
		t.Error("non-positive aspect should be ignored")
	}
}

func addClickable(em *ecs.EntityManager, pos round.Vec3, radius float64) ecs.EntityID {
	id := em.CreateEntity()
	em.AddComponent(id, &components.TransformComponent{Position: pos})
	em.AddComponent(id, &components.ClickableComponent{Radius: radius, IsEnabled: true})
	return id
}

func TestPickHitAndMiss(t *testing.T) {
	em := ecs.NewEntityManager()
	cam := newTestCamera()
	picker := NewPickSystem(em, cam)

	pos := round.Vec3{X: 10, Y: 5, Z: -100}
	id := addClickable(em, pos, 4)
	sx, sy, depth, _ := cam.Project(pos)
	r := cam.ProjectedRadius(4, depth)

	if got, ok := picker.Pick(sx, sy); !ok || got != id {
		t.Errorf("pick at center: got %d, %v", got, ok)
	}
	if got, ok := picker.Pick(sx+r*0.9, sy); !ok || got != id {
		t.Errorf("pick inside radius: got %d, %v", got, ok)
	}
	if _, ok := picker.Pick(sx+r*1.1, sy); ok {
		t.Error("pick outside radius should miss")
	}
}

// TestPickNearestWins 重叠时返回离相机最近的实体
func TestPickNearestWins(t *testing.T) {
	em := ecs.NewEntityManager()
	cam := newTestCamera()
	picker := NewPickSystem(em, cam)

	addClickable(em, round.Vec3{Z: -100}, 4)
	near := addClickable(em, round.Vec3{Z: -40}, 4)

	if got, ok := picker.Pick(200, 400); !ok || got != near {
		t.Errorf("expected nearest entity %d, got %d (%v)", near, got, ok)
	}
}

func TestPickSkipsDisabled(t *testing.T) {
	em := ecs.NewEntityManager()
	picker := NewPickSystem(em, newTestCamera())

	id := addClickable(em, round.Vec3{Z: -100}, 4)
	clickable, _ := ecs.GetComponent[*components.ClickableComponent](em, id)
	clickable.IsEnabled = false

	if _, ok := picker.Pick(200, 400); ok {
		t.Error("disabled entity should not be picked")
	}
}
