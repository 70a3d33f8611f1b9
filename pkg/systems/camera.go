package systems

import (
	"math"

	"github.com/decker502/flight/pkg/config"
	"github.com/decker502/flight/pkg/round"
)

// Camera 位于原点、朝 -Z 方向的透视相机
//
// 屏幕坐标原点在左上角，Y 轴向下。
type Camera struct {
	width, height float64
	fieldOfView   float64 // 垂直视场角（弧度）
	near          float64

	// aspectX 水平方向的像素缩放
	// 终端字符格高约为宽的两倍，此时设为 2 让投影保持正圆
	aspectX float64

	focal float64
}

// NewCamera 根据配置创建相机
func NewCamera(cfg config.CameraConfig, width, height int) *Camera {
	c := &Camera{
		fieldOfView: cfg.FieldOfView * math.Pi / 180,
		near:        cfg.Near,
		aspectX:     1,
	}
	c.SetViewport(width, height)
	return c
}

// SetViewport 更新视口尺寸（窗口大小或终端尺寸变化时调用）
func (c *Camera) SetViewport(width, height int) {
	c.width = float64(width)
	c.height = float64(height)
	c.focal = (c.height / 2) / math.Tan(c.fieldOfView/2)
}

// SetAspectX 设置水平像素缩放
func (c *Camera) SetAspectX(aspect float64) {
	if aspect > 0 {
		c.aspectX = aspect
	}
}

// AspectX 返回水平像素缩放
func (c *Camera) AspectX() float64 {
	return c.aspectX
}

// Viewport 返回视口尺寸
func (c *Camera) Viewport() (float64, float64) {
	return c.width, c.height
}

// Project 把世界坐标投影到屏幕
//
// 返回：
//   - sx, sy: 屏幕坐标
//   - depth: 与相机的距离（沿视线方向）
//   - ok: 点是否位于近裁剪面之前
func (c *Camera) Project(p round.Vec3) (sx, sy, depth float64, ok bool) {
	depth = -p.Z
	if depth < c.near {
		return 0, 0, depth, false
	}
	sx = c.width/2 + c.focal*p.X/depth*c.aspectX
	sy = c.height/2 - c.focal*p.Y/depth
	return sx, sy, depth, true
}

// ProjectedRadius 返回深度 depth 处半径为 radius 的球在屏幕上的半径（纵向像素）
func (c *Camera) ProjectedRadius(radius, depth float64) float64 {
	if depth <= 0 {
		return 0
	}
	return c.focal * radius / depth
}
