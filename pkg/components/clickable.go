package components

// ClickableComponent 标记实体可以被点击
// 点击判定区域为以实体位置为球心的球体，投影到屏幕后为圆
type ClickableComponent struct {
	Radius    float64 // 判定球半径（世界单位）
	IsEnabled bool    // 是否可以被点击(用于禁用已点中的对象)
}
