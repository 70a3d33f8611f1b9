package utils

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// DrawCenteredText 以 (cx, cy) 为中心绘制多行文本
//
// 参数:
//   - screen: 目标图像
//   - textStr: 文本，可包含换行符
//   - font: 字体
//   - cx, cy: 文本块中心（屏幕坐标）
//   - clr: 文字颜色
func DrawCenteredText(screen *ebiten.Image, textStr string, font *text.GoTextFace, cx, cy float64, clr color.Color) {
	if textStr == "" || font == nil {
		return
	}

	lineHeight := font.Size * 1.2
	op := &text.DrawOptions{}
	op.GeoM.Translate(cx, cy)
	op.ColorScale.ScaleWithColor(clr)
	op.LineSpacing = lineHeight
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	text.Draw(screen, textStr, font, op)
}

// MeasureText 测量多行文本的宽高
func MeasureText(textStr string, font *text.GoTextFace) (float64, float64) {
	if textStr == "" || font == nil {
		return 0, 0
	}
	return text.Measure(textStr, font, font.Size*1.2)
}
