package components

import "github.com/decker502/flight/pkg/round"

// TransformComponent 实体在世界坐标中的位置与朝向
// 相机位于原点，朝 -Z 方向观察
type TransformComponent struct {
	// Position 当前位置
	Position round.Vec3

	// Forward 朝向（单位向量），由 look-at 目标计算得出
	Forward round.Vec3
}
