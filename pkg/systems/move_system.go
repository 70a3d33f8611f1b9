package systems

import (
	"math"

	"github.com/decker502/flight/pkg/components"
	"github.com/decker502/flight/pkg/ecs"
)

// MoveSystem 驱动线性移动动画
type MoveSystem struct {
	entityManager *ecs.EntityManager
}

// NewMoveSystem 创建移动动画系统
func NewMoveSystem(em *ecs.EntityManager) *MoveSystem {
	return &MoveSystem{
		entityManager: em,
	}
}

// Update 推进所有移动动画
// 动画完成时先移除组件再调用 OnComplete，回调可以安全地销毁实体
func (s *MoveSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith2[*components.TransformComponent, *components.MoveAnimationComponent](s.entityManager)

	for _, id := range entities {
		// 前面实体的回调可能已经移除了当前实体
		if !s.entityManager.IsAlive(id) {
			continue
		}
		move, ok := ecs.GetComponent[*components.MoveAnimationComponent](s.entityManager, id)
		if !ok {
			continue
		}
		transform, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
		if !ok {
			continue
		}

		move.Elapsed += deltaTime
		progress := 1.0
		if move.Duration > 0 {
			progress = math.Min(move.Elapsed/move.Duration, 1)
		}
		transform.Position = move.From.Lerp(move.To, progress)

		if progress < 1 {
			continue
		}

		ecs.RemoveComponent[*components.MoveAnimationComponent](s.entityManager, id)
		if move.OnComplete != nil {
			move.OnComplete()
		}
	}
}
