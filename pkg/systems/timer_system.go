package systems

import (
	"log"

	"github.com/decker502/flight/pkg/components"
	"github.com/decker502/flight/pkg/ecs"
	"github.com/decker502/flight/pkg/round"
)

// TimerSystem 基于帧时间的一次性延迟任务调度
//
// 实现 round.Scheduler：任务到期后在 Update 中、由调用 Update 的 goroutine 执行，
// 与其它游戏事件串行。Update 期间新建的任务从下一帧开始计时。
type TimerSystem struct {
	entityManager *ecs.EntityManager
}

// NewTimerSystem 创建延迟任务系统
func NewTimerSystem(em *ecs.EntityManager) *TimerSystem {
	return &TimerSystem{
		entityManager: em,
	}
}

// After 在 delay 秒后执行 fn
func (s *TimerSystem) After(delay float64, fn func()) round.Timer {
	return s.Schedule("", delay, fn)
}

// Schedule 创建带名称的延迟任务（名称仅用于日志）
func (s *TimerSystem) Schedule(name string, delay float64, fn func()) *TimerHandle {
	id := s.entityManager.CreateEntity()
	s.entityManager.AddComponent(id, &components.TimerComponent{
		Name:       name,
		TargetTime: delay,
		Callback:   fn,
	})
	return &TimerHandle{system: s, entity: id}
}

// Pending 返回尚未到期且未取消的任务数量
func (s *TimerSystem) Pending() int {
	return len(ecs.GetEntitiesWith1[*components.TimerComponent](s.entityManager))
}

// Update 推进所有计时器，触发到期任务
func (s *TimerSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith1[*components.TimerComponent](s.entityManager)

	for _, id := range entities {
		timer, ok := ecs.GetComponent[*components.TimerComponent](s.entityManager, id)
		// 前面的回调可能已经取消了这个任务
		if !ok || timer.Cancelled || timer.IsReady || !s.entityManager.IsAlive(id) {
			continue
		}

		timer.CurrentTime += deltaTime
		if timer.CurrentTime < timer.TargetTime {
			continue
		}

		timer.IsReady = true
		s.entityManager.DestroyEntity(id)
		if timer.Name != "" {
			log.Printf("[TimerSystem] Timer %q fired after %.2fs", timer.Name, timer.CurrentTime)
		}
		if timer.Callback != nil {
			timer.Callback()
		}
	}
}

// TimerHandle 延迟任务句柄，实现 round.Timer
type TimerHandle struct {
	system *TimerSystem
	entity ecs.EntityID
}

// Cancel 取消任务，返回任务是否在触发前被取消
func (h *TimerHandle) Cancel() bool {
	em := h.system.entityManager
	if !em.IsAlive(h.entity) {
		return false
	}
	timer, ok := ecs.GetComponent[*components.TimerComponent](em, h.entity)
	if !ok || timer.IsReady || timer.Cancelled {
		return false
	}
	timer.Cancelled = true
	timer.Callback = nil
	em.DestroyEntity(h.entity)
	return true
}
