package components

// FlashEffectComponent 击中高亮效果组件
// 飞船被点中时自发光颜色在 Duration 内过渡到红色，结束后触发 OnComplete
type FlashEffectComponent struct {
	// Duration 过渡持续时间（秒）
	Duration float64

	// Elapsed 已经过的时间（秒）
	Elapsed float64

	// Intensity 高亮强度（0.0 - 1.0）
	// 1.0 = 完全红色自发光，0.0 = 无效果
	Intensity float64

	// IsActive 是否激活（用于临时禁用效果）
	IsActive bool

	// OnComplete 过渡结束时调用一次
	OnComplete func()
}
