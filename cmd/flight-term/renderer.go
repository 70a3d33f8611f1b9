package main

import (
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/flight/pkg/stage"
)

// cellAspect 终端字符格高宽比
const cellAspect = 2.0

// statusRows 顶部状态文字占用的行数
const statusRows = 3

var (
	styleBackground = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	styleStatus     = styleBackground.Bold(true)
	styleFooter     = styleBackground.Foreground(tcell.ColorGray)
)

// termDisplay 实现 round.Display，保存状态文字供下一帧绘制
type termDisplay struct {
	text string
}

func (d *termDisplay) SetStatusText(text string) {
	d.text = text
}

// renderer 把舞台快照绘制到 tcell 屏幕
type renderer struct {
	screen tcell.Screen
}

func newRenderer(screen tcell.Screen) *renderer {
	return &renderer{screen: screen}
}

// draw 绘制一帧
func (r *renderer) draw(ships []stage.ShipView, status, footer string) {
	r.screen.SetStyle(styleBackground)
	r.screen.Clear()

	for _, ship := range ships {
		r.drawShip(ship)
	}

	width, _ := r.screen.Size()
	for i, line := range strings.Split(status, "\n") {
		if i >= statusRows {
			break
		}
		r.drawCentered(width/2, i, line, styleStatus)
	}

	if footer != "" {
		_, height := r.screen.Size()
		r.drawText(0, height-1, footer, styleFooter)
	}

	r.screen.Show()
}

// drawShip 用实心字符绘制飞船投影圆，远处的飞船颜色更暗
func (r *renderer) drawShip(ship stage.ShipView) {
	width, height := r.screen.Size()
	radius := math.Max(ship.Radius, 0.5)
	style := styleBackground.Foreground(shipColor(ship))

	minY := int(math.Floor(ship.Y - radius))
	maxY := int(math.Ceil(ship.Y + radius))
	minX := int(math.Floor(ship.X - radius*cellAspect))
	maxX := int(math.Ceil(ship.X + radius*cellAspect))

	for y := max(minY, statusRows); y <= maxY && y < height; y++ {
		for x := max(minX, 0); x <= maxX && x < width; x++ {
			// 字符格中心
			dx := (float64(x) + 0.5 - ship.X) / cellAspect
			dy := float64(y) + 0.5 - ship.Y
			if dx*dx+dy*dy > radius*radius {
				continue
			}
			r.screen.SetContent(x, y, shipRune(dx, dy, radius), nil, style)
		}
	}
}

// shipRune 外圈绘制机翼，内部绘制机身
func shipRune(dx, dy, radius float64) rune {
	if math.Abs(dy) <= 0.5 && math.Abs(dx) > radius*0.45 {
		return '═'
	}
	return '█'
}

// shipColor 按深度变暗，按高亮强度混合为红色
func shipColor(ship stage.ShipView) tcell.Color {
	brightness := 1 - math.Min(ship.Depth/150, 0.6)
	base := 220 * brightness

	h := math.Min(math.Max(ship.Highlight, 0), 1)
	red := base + (255-base)*h
	other := base * (1 - h)
	return tcell.NewRGBColor(int32(red), int32(other), int32(other))
}

func (r *renderer) drawCentered(cx, y int, text string, style tcell.Style) {
	r.drawText(cx-len([]rune(text))/2, y, text, style)
}

func (r *renderer) drawText(x, y int, text string, style tcell.Style) {
	width, _ := r.screen.Size()
	for _, ch := range text {
		if x >= width {
			return
		}
		if x >= 0 {
			r.screen.SetContent(x, y, ch, nil, style)
		}
		x++
	}
}
