package app

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gonewx/fireworks/pkg/render"
	"github.com/gonewx/fireworks/pkg/utils"
)

// glowLayers 光晕由几层逐渐变大、变淡的圆叠加模拟（ebiten 没有 Canvas 的 shadowBlur）
const glowLayers = 3

// glowLayerAlpha 每层光晕相对于粒子透明度的比例
const glowLayerAlpha = 0.12

// EbitenSurface 基于 ebiten vector 包的绘制表面
//
// 每帧 Draw 时通过 Bind 绑定当前屏幕图像。Background 为 nil 时清屏为全透明
// （透明叠加窗口模式），否则填充背景色。
//
// 引擎使用逻辑像素坐标；Scale 是设备像素比，所有坐标和尺寸在绘制时乘以 Scale。
type EbitenSurface struct {
	Background color.Color
	AntiAlias  bool
	Scale      float64

	target    *ebiten.Image
	alpha     float64
	glow      float64
	glowColor color.Color
}

// NewEbitenSurface 创建 ebiten 绘制表面
func NewEbitenSurface(background color.Color) *EbitenSurface {
	return &EbitenSurface{
		Background: background,
		AntiAlias:  true,
		Scale:      1,
		alpha:      1,
	}
}

// Bind 绑定本帧的目标图像
func (s *EbitenSurface) Bind(target *ebiten.Image) {
	s.target = target
}

// Target 返回当前绑定的图像
func (s *EbitenSurface) Target() *ebiten.Image {
	return s.target
}

// Clear 清空目标图像
func (s *EbitenSurface) Clear() {
	if s.target == nil {
		return
	}
	if s.Background == nil {
		s.target.Clear()
		return
	}
	s.target.Fill(s.Background)
}

// SetAlpha 设置全局透明度
func (s *EbitenSurface) SetAlpha(alpha float64) {
	s.alpha = utils.Clamp01(alpha)
}

// SetGlow 设置光晕
func (s *EbitenSurface) SetGlow(blur float64, clr color.Color) {
	if blur < 0 {
		blur = 0
	}
	s.glow = blur
	s.glowColor = clr
}

// FillCircle 绘制实心圆，先画光晕再画本体
func (s *EbitenSurface) FillCircle(x, y, radius float64, clr color.Color) {
	if s.target == nil || radius <= 0 || s.alpha <= 0 {
		return
	}

	s.drawHalo(x, y, radius)
	vector.DrawFilledCircle(s.target, s.px(x), s.px(y), s.px(radius),
		render.WithAlpha(clr, s.alpha), s.AntiAlias)
}

// StrokeLine 绘制线段，有光晕时在下面垫一条更宽更淡的线
func (s *EbitenSurface) StrokeLine(x1, y1, x2, y2, width float64, clr color.Color) {
	if s.target == nil || width <= 0 || s.alpha <= 0 {
		return
	}

	if s.glow > 0 && s.glowColor != nil {
		vector.StrokeLine(s.target, s.px(x1), s.px(y1), s.px(x2), s.px(y2),
			s.px(width+s.glow*0.4), render.WithAlpha(s.glowColor, s.alpha*glowLayerAlpha*2), s.AntiAlias)
	}
	vector.StrokeLine(s.target, s.px(x1), s.px(y1), s.px(x2), s.px(y2),
		s.px(width), render.WithAlpha(clr, s.alpha), s.AntiAlias)
}

func (s *EbitenSurface) drawHalo(x, y, radius float64) {
	if s.glow <= 0 || s.glowColor == nil {
		return
	}
	for i := glowLayers; i >= 1; i-- {
		r := radius + s.glow*float64(i)/float64(glowLayers)*0.5
		vector.DrawFilledCircle(s.target, s.px(x), s.px(y), s.px(r),
			render.WithAlpha(s.glowColor, s.alpha*glowLayerAlpha), s.AntiAlias)
	}
}

// px 逻辑像素转换为设备像素
func (s *EbitenSurface) px(v float64) float32 {
	if s.Scale <= 0 {
		return float32(v)
	}
	return float32(v * s.Scale)
}
