// Package round 实现飞船游戏的回合/计分状态机
//
// Controller 持有分数与飞行时长，响应"点击命中"和"飞行结束"两类事件，
// 通过 Scene 生成/移除/驱动飞船，通过 Display 显示状态文字。
// 渲染、点击几何判定和动画插值都由外部协作者提供，本包不依赖任何图形后端。
package round

import "math"

// Vec3 世界坐标中的点
// 相机位于原点，朝 -Z 方向观察
type Vec3 struct {
	X, Y, Z float64
}

// Scale 返回按系数缩放后的向量
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Add 向量相加
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Sub 向量相减
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

// Length 向量长度
func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalize 返回单位向量，零向量返回零向量
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// Lerp 在 v 与 o 之间线性插值，t ∈ [0, 1]
func (v Vec3) Lerp(o Vec3, t float64) Vec3 {
	return v.Add(o.Sub(v).Scale(t))
}

// ShipHandle 飞船句柄
// 由 Scene.SpawnShip 直接返回，Controller 只持有引用，资源生命周期归 Scene 所有
type ShipHandle uint64

// Scene 3D 场景协作者
type Scene interface {
	// SpawnShip 在 position 生成飞船并朝向 lookAt
	SpawnShip(position, lookAt Vec3) ShipHandle

	// AnimateMove 让飞船在 duration 秒内线性移动到 to，完成后调用 onComplete
	// 飞船在完成前被移除时，onComplete 不会被调用
	AnimateMove(h ShipHandle, to Vec3, duration float64, onComplete func())

	// RemoveShip 移除飞船，同时取消与其绑定的所有待执行回调
	RemoveShip(h ShipHandle)

	// HitTest 返回屏幕坐标处最上层的飞船
	HitTest(x, y float64) (ShipHandle, bool)

	// Highlight 播放击中高亮过渡，duration 秒后调用 onComplete
	Highlight(h ShipHandle, duration float64, onComplete func())
}

// Display 状态文字显示协作者
type Display interface {
	SetStatusText(text string)
}

// Timer 可取消的定时任务
type Timer interface {
	// Cancel 取消任务，返回任务是否在触发前被取消
	Cancel() bool
}

// Scheduler 延迟任务调度器
// 回调必须与 Controller 的其它事件在同一执行上下文中串行投递
type Scheduler interface {
	After(delay float64, fn func()) Timer
}

// Listener 回合事件监听器（音效、最高分记录、日志等）
type Listener interface {
	OnRoundStart(ship ShipHandle, duration float64)
	OnHit(score int)
	OnGameOver(score int)
}
