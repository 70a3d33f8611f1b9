// Package stage 在 ECS 之上实现 round.Scene
//
// Stage 负责飞船实体的生成、移动、高亮、点击判定和移除，
// 不涉及任何绘制；ebiten 和终端前端通过 Ships() 读取渲染快照。
package stage

import (
	"log"

	"github.com/decker502/flight/pkg/components"
	"github.com/decker502/flight/pkg/config"
	"github.com/decker502/flight/pkg/ecs"
	"github.com/decker502/flight/pkg/entities"
	"github.com/decker502/flight/pkg/round"
	"github.com/decker502/flight/pkg/systems"
)

// 编译期检查
var _ round.Scene = (*Stage)(nil)

// Stage 飞船舞台
//
// 所有方法都必须在游戏主循环所在的 goroutine 中调用。
type Stage struct {
	entityManager *ecs.EntityManager
	camera        *systems.Camera
	shipRadius    float64

	timerSystem *systems.TimerSystem
	moveSystem  *systems.MoveSystem
	flashSystem *systems.FlashEffectSystem
	pickSystem  *systems.PickSystem
}

// New 创建舞台
//
// 参数：
//   - camCfg: 相机配置（视场角、近裁剪面、飞船判定半径）
//   - width, height: 视口尺寸（像素或终端字符格）
func New(camCfg config.CameraConfig, width, height int) *Stage {
	em := ecs.NewEntityManager()
	camera := systems.NewCamera(camCfg, width, height)

	return &Stage{
		entityManager: em,
		camera:        camera,
		shipRadius:    camCfg.ShipRadius,
		timerSystem:   systems.NewTimerSystem(em),
		moveSystem:    systems.NewMoveSystem(em),
		flashSystem:   systems.NewFlashEffectSystem(em),
		pickSystem:    systems.NewPickSystem(em, camera),
	}
}

// Scheduler 返回与舞台同帧推进的延迟任务调度器
func (s *Stage) Scheduler() round.Scheduler {
	return s.timerSystem
}

// Camera 返回舞台相机
func (s *Stage) Camera() *systems.Camera {
	return s.camera
}

// Update 推进一帧：计时器 → 移动 → 高亮，最后清理已销毁的实体
func (s *Stage) Update(deltaTime float64) {
	s.timerSystem.Update(deltaTime)
	s.moveSystem.Update(deltaTime)
	s.flashSystem.Update(deltaTime)
	s.entityManager.RemoveMarkedEntities()
}

// SpawnShip 生成飞船实体
func (s *Stage) SpawnShip(position, lookAt round.Vec3) round.ShipHandle {
	id := entities.NewShipEntity(s.entityManager, position, lookAt, s.shipRadius)
	return round.ShipHandle(id)
}

// AnimateMove 为飞船添加线性移动动画
func (s *Stage) AnimateMove(h round.ShipHandle, to round.Vec3, duration float64, onComplete func()) {
	id := ecs.EntityID(h)
	transform, ok := s.liveShip(id)
	if !ok {
		log.Printf("[Stage] Warning: AnimateMove on missing ship %d", h)
		return
	}

	s.entityManager.AddComponent(id, &components.MoveAnimationComponent{
		From:       transform.Position,
		To:         to,
		Duration:   duration,
		OnComplete: onComplete,
	})
}

// RemoveShip 移除飞船
// 先摘掉动画和高亮组件，保证本帧内不会再有与该飞船绑定的回调触发
func (s *Stage) RemoveShip(h round.ShipHandle) {
	id := ecs.EntityID(h)
	if !s.entityManager.IsAlive(id) {
		return
	}
	ecs.RemoveComponent[*components.MoveAnimationComponent](s.entityManager, id)
	ecs.RemoveComponent[*components.FlashEffectComponent](s.entityManager, id)
	s.entityManager.DestroyEntity(id)
}

// HitTest 返回屏幕坐标处最上层的飞船
func (s *Stage) HitTest(x, y float64) (round.ShipHandle, bool) {
	id, ok := s.pickSystem.Pick(x, y)
	if !ok || !ecs.HasComponent[*components.ShipComponent](s.entityManager, id) {
		return 0, false
	}
	return round.ShipHandle(id), true
}

// Highlight 播放击中高亮过渡，期间飞船不可再被点中
func (s *Stage) Highlight(h round.ShipHandle, duration float64, onComplete func()) {
	id := ecs.EntityID(h)
	if _, ok := s.liveShip(id); !ok {
		log.Printf("[Stage] Warning: Highlight on missing ship %d", h)
		return
	}

	if clickable, ok := ecs.GetComponent[*components.ClickableComponent](s.entityManager, id); ok {
		clickable.IsEnabled = false
	}
	s.entityManager.AddComponent(id, &components.FlashEffectComponent{
		Duration:   duration,
		IsActive:   true,
		OnComplete: onComplete,
	})
}

// ShipCount 返回存活的飞船数量
func (s *Stage) ShipCount() int {
	return len(ecs.GetEntitiesWith1[*components.ShipComponent](s.entityManager))
}

// liveShip 返回存活飞船的变换组件
func (s *Stage) liveShip(id ecs.EntityID) (*components.TransformComponent, bool) {
	if !s.entityManager.IsAlive(id) || !ecs.HasComponent[*components.ShipComponent](s.entityManager, id) {
		return nil, false
	}
	return ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
}
