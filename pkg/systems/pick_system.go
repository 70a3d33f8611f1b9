package systems

import (
	"math"

	"github.com/decker502/flight/pkg/components"
	"github.com/decker502/flight/pkg/ecs"
)

// PickSystem 屏幕点击判定
// 把可点击实体的判定球投影到屏幕，返回包含点击点且离相机最近的实体
type PickSystem struct {
	entityManager *ecs.EntityManager
	camera        *Camera
}

// NewPickSystem 创建点击判定系统
func NewPickSystem(em *ecs.EntityManager, camera *Camera) *PickSystem {
	return &PickSystem{
		entityManager: em,
		camera:        camera,
	}
}

// Pick 返回屏幕坐标 (x, y) 处最上层的可点击实体
func (s *PickSystem) Pick(x, y float64) (ecs.EntityID, bool) {
	entities := ecs.GetEntitiesWith2[*components.TransformComponent, *components.ClickableComponent](s.entityManager)

	var best ecs.EntityID
	bestDepth := math.Inf(1)
	for _, id := range entities {
		clickable, _ := ecs.GetComponent[*components.ClickableComponent](s.entityManager, id)
		if !clickable.IsEnabled {
			continue
		}
		transform, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)

		sx, sy, depth, ok := s.camera.Project(transform.Position)
		if !ok {
			continue
		}
		radius := s.camera.ProjectedRadius(clickable.Radius, depth)
		dx := (x - sx) / s.camera.AspectX()
		dy := y - sy
		if dx*dx+dy*dy > radius*radius {
			continue
		}
		if depth < bestDepth {
			best = id
			bestDepth = depth
		}
	}

	return best, best != 0
}
