package stage

import (
	"sort"

	"github.com/decker502/flight/pkg/components"
	"github.com/decker502/flight/pkg/ecs"
	"github.com/decker502/flight/pkg/round"
)

// ShipView 飞船的屏幕空间渲染快照
type ShipView struct {
	Handle round.ShipHandle

	// X, Y 屏幕坐标
	X, Y float64

	// Radius 投影后的判定半径（纵向像素）
	Radius float64

	// Depth 与相机的距离
	Depth float64

	// Highlight 击中高亮强度（0.0 - 1.0）
	Highlight float64
}

// Ships 返回所有可见飞船的渲染快照，按深度由远到近排序（便于画家算法绘制）
func (s *Stage) Ships() []ShipView {
	ids := ecs.GetEntitiesWith2[*components.ShipComponent, *components.TransformComponent](s.entityManager)

	views := make([]ShipView, 0, len(ids))
	for _, id := range ids {
		transform, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
		sx, sy, depth, ok := s.camera.Project(transform.Position)
		if !ok {
			continue
		}

		view := ShipView{
			Handle: round.ShipHandle(id),
			X:      sx,
			Y:      sy,
			Radius: s.camera.ProjectedRadius(s.shipRadius, depth),
			Depth:  depth,
		}

		if flash, ok := ecs.GetComponent[*components.FlashEffectComponent](s.entityManager, id); ok {
			view.Highlight = flash.Intensity
		}

		views = append(views, view)
	}

	sort.SliceStable(views, func(i, j int) bool { return views[i].Depth > views[j].Depth })
	return views
}
