// Package render 提供粒子系统使用的绘制表面实现
//
// TerminalSurface 基于 tcell 字符单元绘制，RecordingSurface 只记录绘制命令，
// 用于测试和无头模拟。ebiten 的绘制表面在 pkg/app 中，这样终端版和模拟工具
// 不需要链接 ebiten。
package render

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/gonewx/fireworks/pkg/utils"
)

// HueColor 将色相转换为 RGB 颜色（等价于 CSS 的 hsl(hue, s%, l%)）
//
// 参数:
//   - hue: 色相角度，超出 [0, 360) 时取模
//   - saturation, lightness: HSL 分量 [0, 1]
func HueColor(hue int, saturation, lightness float64) color.NRGBA {
	c := colorful.Hsl(float64(normalizeHue(hue)), saturation, lightness).Clamped()
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}

// Palette 预先计算 360 个色相的颜色表，避免每帧每个粒子做 HSL 转换
type Palette struct {
	Saturation float64
	Lightness  float64
	colors     [360]color.NRGBA
}

// NewPalette 创建固定饱和度和亮度的色相颜色表
func NewPalette(saturation, lightness float64) *Palette {
	p := &Palette{
		Saturation: saturation,
		Lightness:  lightness,
	}
	for h := range p.colors {
		p.colors[h] = HueColor(h, saturation, lightness)
	}
	return p
}

// At 返回色相对应的颜色
func (p *Palette) At(hue int) color.NRGBA {
	return p.colors[normalizeHue(hue)]
}

// WithAlpha 将颜色的透明度乘以 alpha，返回非预乘颜色
func WithAlpha(clr color.Color, alpha float64) color.NRGBA {
	c := color.NRGBAModel.Convert(clr).(color.NRGBA)
	c.A = uint8(utils.Clamp01(alpha)*float64(c.A) + 0.5)
	return c
}

func normalizeHue(hue int) int {
	hue %= 360
	if hue < 0 {
		hue += 360
	}
	return hue
}
