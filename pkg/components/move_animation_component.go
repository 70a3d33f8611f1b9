package components

import "github.com/decker502/flight/pkg/round"

// MoveAnimationComponent 线性移动动画
// 在 Duration 秒内把 TransformComponent.Position 从 From 移动到 To
type MoveAnimationComponent struct {
	From     round.Vec3
	To       round.Vec3
	Duration float64 // 动画总时长（秒）
	Elapsed  float64 // 已经过的时间（秒）

	// OnComplete 动画完成时调用一次，组件随后被移除
	OnComplete func()
}
