package app

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// HUDStats 左上角显示的统计信息
type HUDStats struct {
	Active    int
	Pooled    int
	LinkCount int
	Cooldown  float64
	FPS       float64
	TrailOn   bool
	LinksOn   bool
}

// HUD 统计信息叠加层（basicfont 7x13 点阵字体）
type HUD struct {
	face  *text.GoXFace
	color color.Color
	x, y  float64
}

// NewHUD 创建统计信息叠加层
func NewHUD() *HUD {
	return &HUD{
		face:  text.NewGoXFace(basicfont.Face7x13),
		color: color.NRGBA{R: 0xe0, G: 0xe0, B: 0xff, A: 0xc0},
		x:     8,
		y:     8,
	}
}

// Format 生成 HUD 文本
func (h *HUD) Format(s HUDStats) string {
	return fmt.Sprintf("particles %d  pool %d  links %d\ncooldown %.2f  fps %.0f\n[T]rail %s  [L]inks %s  [H]ud",
		s.Active, s.Pooled, s.LinkCount, s.Cooldown, s.FPS, onOff(s.TrailOn), onOff(s.LinksOn))
}

// Draw 绘制到屏幕
func (h *HUD) Draw(screen *ebiten.Image, s HUDStats) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(h.x, h.y)
	op.ColorScale.ScaleWithColor(h.color)
	op.LineSpacing = 14
	text.Draw(screen, h.Format(s), h.face, op)
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
