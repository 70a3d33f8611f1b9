package entities

import (
	"github.com/decker502/flight/pkg/components"
	"github.com/decker502/flight/pkg/ecs"
	"github.com/decker502/flight/pkg/round"
)

// NewShipEntity 创建飞船实体
//
// 参数：
//   - em: 实体管理器
//   - position: 出生点（世界坐标）
//   - lookAt: 朝向目标点
//   - radius: 点击判定球半径
//
// 返回：
//   - ecs.EntityID: 飞船实体ID
func NewShipEntity(em *ecs.EntityManager, position, lookAt round.Vec3, radius float64) ecs.EntityID {
	id := em.CreateEntity()

	em.AddComponent(id, &components.ShipComponent{
		SpawnPosition: position,
		LookAt:        lookAt,
	})
	em.AddComponent(id, &components.TransformComponent{
		Position: position,
		Forward:  lookAt.Sub(position).Normalize(),
	})
	em.AddComponent(id, &components.ClickableComponent{
		Radius:    radius,
		IsEnabled: true,
	})

	return id
}
