package round

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/decker502/flight/pkg/config"
)

// State 回合状态
type State int

const (
	// StateIdle 没有飞船在飞（移除与下一次生成之间的瞬时状态）
	StateIdle State = iota
	// StateFlying 飞船正在飞向原点
	StateFlying
	// StateGameOver 显示 GAME OVER，等待自动重开
	StateGameOver
)

// String 返回状态名称
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateFlying:
		return "Flying"
	case StateGameOver:
		return "GameOver"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Controller 回合控制器
//
// 所有方法和回调都必须在同一个 goroutine 中调用（游戏主循环），
// 因此内部不加锁。
type Controller struct {
	cfg       config.RoundConfig
	spawn     config.SpawnConfig
	scene     Scene
	display   Display
	scheduler Scheduler
	rng       *rand.Rand
	listeners []Listener

	state    State
	score    int
	duration float64

	ship    ShipHandle
	hasShip bool

	// generation 每次生成飞船时递增，旧飞船的回调通过它识别自己已过期
	generation uint64
	// hitPending 已命中、正在播放高亮，此时的点击和飞行结束都被忽略
	hitPending bool

	restartTimer Timer
	statusText   string
}

// NewController 创建回合控制器
//
// 参数：
//   - roundCfg: 回合与难度配置
//   - spawnCfg: 出生点配置
//   - scene: 场景协作者
//   - display: 状态文字协作者
//   - scheduler: 延迟任务调度器
//   - rng: 随机数源，为 nil 时使用全局随机源
func NewController(roundCfg config.RoundConfig, spawnCfg config.SpawnConfig, scene Scene, display Display, scheduler Scheduler, rng *rand.Rand) *Controller {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &Controller{
		cfg:       roundCfg,
		spawn:     spawnCfg,
		scene:     scene,
		display:   display,
		scheduler: scheduler,
		rng:       rng,
		state:     StateIdle,
		duration:  roundCfg.BaseDuration,
	}
}

// AddListener 注册回合事件监听器
func (c *Controller) AddListener(l Listener) {
	c.listeners = append(c.listeners, l)
}

// Start 开始新的一轮：分数归零、恢复初始时长并生成飞船
func (c *Controller) Start() {
	c.cancelRestart()
	if c.hasShip {
		c.removeShip()
	}

	c.duration = c.cfg.BaseDuration
	c.setScore(0)
	c.spawnShip()
}

// Stop 停止游戏：取消待执行的重开任务并移除飞船
func (c *Controller) Stop() {
	c.cancelRestart()
	if c.hasShip {
		c.removeShip()
	}
	c.generation++
	c.state = StateIdle
}

// HandleTap 处理屏幕点击
//
// 只有命中当前飞行中的飞船才有效；GAME OVER 期间、高亮过渡期间
// 或命中已被替换的飞船时，点击不产生任何效果。
//
// 返回：
//   - bool: 本次点击是否登记为命中
func (c *Controller) HandleTap(x, y float64) bool {
	if c.state != StateFlying || !c.hasShip || c.hitPending {
		return false
	}

	h, ok := c.scene.HitTest(x, y)
	if !ok || h != c.ship {
		return false
	}

	c.hitPending = true
	gen := c.generation
	log.Printf("[Round] Ship %d hit at (%.0f, %.0f)", h, x, y)
	c.scene.Highlight(h, c.cfg.HighlightDuration, func() {
		c.onHighlightComplete(gen)
	})
	return true
}

// Score 返回当前分数
func (c *Controller) Score() int {
	return c.score
}

// FlightDuration 返回下一艘（或当前）飞船的飞行时长
func (c *Controller) FlightDuration() float64 {
	return c.duration
}

// State 返回当前回合状态
func (c *Controller) State() State {
	return c.state
}

// Ship 返回当前飞行中的飞船句柄
func (c *Controller) Ship() (ShipHandle, bool) {
	return c.ship, c.hasShip
}

// StatusText 返回最近一次显示的状态文字
func (c *Controller) StatusText() string {
	return c.statusText
}

// onHighlightComplete 高亮结束：计分、加速并立即生成下一艘飞船
func (c *Controller) onHighlightComplete(gen uint64) {
	if gen != c.generation || !c.hasShip || !c.hitPending {
		return
	}

	c.removeShip()
	c.duration = c.cfg.NextDuration(c.duration)
	c.setScore(c.score + 1)
	for _, l := range c.listeners {
		l.OnHit(c.score)
	}
	c.spawnShip()
}

// onFlightComplete 飞船未被命中而抵达原点：本轮结束
func (c *Controller) onFlightComplete(gen uint64) {
	if gen != c.generation || !c.hasShip || c.hitPending {
		return
	}

	c.removeShip()
	c.state = StateGameOver
	c.setStatus(fmt.Sprintf("GAME OVER\nFinal Score: %d", c.score))
	log.Printf("[Round] Game over, final score %d", c.score)
	for _, l := range c.listeners {
		l.OnGameOver(c.score)
	}

	c.restartTimer = c.scheduler.After(c.cfg.RestartDelay, c.restart)
}

// restart GAME OVER 延迟结束后重开
func (c *Controller) restart() {
	c.restartTimer = nil
	if c.state != StateGameOver {
		return
	}

	c.duration = c.cfg.BaseDuration
	c.setScore(0)
	c.spawnShip()
}

// spawnShip 在随机位置生成飞船并开始飞向原点
func (c *Controller) spawnShip() {
	if c.hasShip {
		log.Printf("[Round] Warning: spawn requested while ship %d is live, ignored", c.ship)
		return
	}

	pos := c.randomSpawnPosition()
	lookAt := pos.Scale(c.spawn.LookAtScale)

	c.generation++
	gen := c.generation
	c.ship = c.scene.SpawnShip(pos, lookAt)
	c.hasShip = true
	c.hitPending = false
	c.state = StateFlying

	log.Printf("[Round] Ship %d spawned at (%.0f, %.0f, %.0f), duration %.3fs", c.ship, pos.X, pos.Y, pos.Z, c.duration)
	for _, l := range c.listeners {
		l.OnRoundStart(c.ship, c.duration)
	}

	c.scene.AnimateMove(c.ship, Vec3{}, c.duration, func() {
		c.onFlightComplete(gen)
	})
}

// removeShip 移除当前飞船
func (c *Controller) removeShip() {
	c.scene.RemoveShip(c.ship)
	c.ship = 0
	c.hasShip = false
	c.hitPending = false
	c.state = StateIdle
}

// randomSpawnPosition X/Y 在配置范围内均匀取整数，Z 固定
func (c *Controller) randomSpawnPosition() Vec3 {
	return Vec3{
		X: float64(randomInRange(c.rng, c.spawn.RangeX)),
		Y: float64(randomInRange(c.rng, c.spawn.RangeY)),
		Z: c.spawn.Depth,
	}
}

func (c *Controller) cancelRestart() {
	if c.restartTimer != nil {
		c.restartTimer.Cancel()
		c.restartTimer = nil
	}
}

// setScore 修改分数并同步刷新状态文字
func (c *Controller) setScore(score int) {
	c.score = score
	c.setStatus(fmt.Sprintf("Score: %d", score))
}

func (c *Controller) setStatus(text string) {
	c.statusText = text
	c.display.SetStatusText(text)
}

func randomInRange(rng *rand.Rand, r config.IntRange) int {
	return r.Min + rng.Intn(r.Max-r.Min+1)
}
