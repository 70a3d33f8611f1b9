package components

import "github.com/decker502/flight/pkg/round"

// ShipComponent 标记实体为飞船
type ShipComponent struct {
	// SpawnPosition 出生点
	SpawnPosition round.Vec3

	// LookAt 出生时的朝向目标点
	LookAt round.Vec3
}
