package components

// TimerComponent 一次性延迟任务组件
// 用于 GAME OVER 后的自动重开等需要时间延迟的行为
type TimerComponent struct {
	Name        string  // 计时器名称，如 "round_restart"
	TargetTime  float64 // 目标时间（秒）
	CurrentTime float64 // 当前已过时间（秒）
	IsReady     bool    // 计时器是否已完成
	Cancelled   bool    // 是否已被取消

	// Callback 到期时调用一次
	Callback func()
}
