package systems

import (
	"github.com/decker502/flight/pkg/components"
	"github.com/decker502/flight/pkg/ecs"
)

// FlashEffectSystem 击中高亮效果系统
// 管理高亮过渡的强度和结束回调
type FlashEffectSystem struct {
	entityManager *ecs.EntityManager
}

// NewFlashEffectSystem 创建高亮效果系统
func NewFlashEffectSystem(em *ecs.EntityManager) *FlashEffectSystem {
	return &FlashEffectSystem{
		entityManager: em,
	}
}

// Update 更新所有高亮效果
// 参数：
//   - dt: 时间增量（秒）
func (s *FlashEffectSystem) Update(dt float64) {
	entities := ecs.GetEntitiesWith1[*components.FlashEffectComponent](s.entityManager)

	for _, entity := range entities {
		if !s.entityManager.IsAlive(entity) {
			continue
		}
		flashComp, ok := ecs.GetComponent[*components.FlashEffectComponent](s.entityManager, entity)
		if !ok || !flashComp.IsActive {
			continue
		}

		flashComp.Elapsed += dt
		if flashComp.Duration <= 0 || flashComp.Elapsed >= flashComp.Duration {
			flashComp.Intensity = 1
			// 过渡结束，移除组件后再回调
			ecs.RemoveComponent[*components.FlashEffectComponent](s.entityManager, entity)
			if flashComp.OnComplete != nil {
				flashComp.OnComplete()
			}
			continue
		}

		flashComp.Intensity = flashComp.Elapsed / flashComp.Duration
	}
}
