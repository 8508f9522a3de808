package render

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/gonewx/fireworks/pkg/utils"
)

const (
	particleRune = '●'
	glowRune     = '·'
)

// TerminalSurface 基于 tcell 的字符画绘制表面
//
// 粒子系统使用像素坐标，这里按 CellWidth x CellHeight 像素一个字符单元换算。
// 终端没有透明度，透明度通过把前景色向黑色混合来模拟。
// 光晕和连线只写入空白单元，不覆盖已经画上的粒子。
type TerminalSurface struct {
	Screen     tcell.Screen
	CellWidth  float64
	CellHeight float64

	alpha     float64
	glow      float64
	glowColor color.Color
}

// NewTerminalSurface 创建终端绘制表面
func NewTerminalSurface(screen tcell.Screen, cellWidth, cellHeight float64) *TerminalSurface {
	if cellWidth <= 0 {
		cellWidth = 8
	}
	if cellHeight <= 0 {
		cellHeight = 16
	}
	return &TerminalSurface{
		Screen:     screen,
		CellWidth:  cellWidth,
		CellHeight: cellHeight,
		alpha:      1,
	}
}

// PixelSize 返回终端对应的像素尺寸
func (s *TerminalSurface) PixelSize() (float64, float64) {
	w, h := s.Screen.Size()
	return float64(w) * s.CellWidth, float64(h) * s.CellHeight
}

// CellToPixel 将字符单元坐标换算为单元中心的像素坐标
func (s *TerminalSurface) CellToPixel(cx, cy int) (float64, float64) {
	return (float64(cx) + 0.5) * s.CellWidth, (float64(cy) + 0.5) * s.CellHeight
}

// Clear 清空屏幕
func (s *TerminalSurface) Clear() {
	s.Screen.Clear()
}

// SetAlpha 设置全局透明度
func (s *TerminalSurface) SetAlpha(alpha float64) {
	s.alpha = utils.Clamp01(alpha)
}

// SetGlow 设置光晕
func (s *TerminalSurface) SetGlow(blur float64, clr color.Color) {
	if blur < 0 {
		blur = 0
	}
	s.glow = blur
	s.glowColor = clr
}

// Present 把本帧内容刷新到终端
func (s *TerminalSurface) Present() {
	s.Screen.Show()
}

// FillCircle 把圆覆盖到的字符单元涂成粒子字符，中心单元总会被涂上
func (s *TerminalSurface) FillCircle(x, y, radius float64, clr color.Color) {
	if radius <= 0 || s.alpha <= 0 {
		return
	}

	style := s.style(clr, s.alpha)
	cx, cy := s.toCell(x, y)

	// 光晕：半径扩大 glow/2，只写入空白单元
	if s.glow > 0 && s.glowColor != nil {
		haloStyle := s.style(s.glowColor, s.alpha*0.4)
		s.forCells(x, y, radius+s.glow*0.5, func(col, row int) {
			if s.isEmpty(col, row) {
				s.Screen.SetContent(col, row, glowRune, nil, haloStyle)
			}
		})
	}

	s.forCells(x, y, radius, func(col, row int) {
		s.Screen.SetContent(col, row, particleRune, nil, style)
	})
	if s.inBounds(cx, cy) {
		s.Screen.SetContent(cx, cy, particleRune, nil, style)
	}
}

// StrokeLine 用 Bresenham 算法在字符网格上画线
func (s *TerminalSurface) StrokeLine(x1, y1, x2, y2, _ float64, clr color.Color) {
	if s.alpha <= 0 {
		return
	}

	style := s.style(clr, s.alpha)
	ch := lineRune(x2-x1, (y2-y1)*s.CellWidth/s.CellHeight)

	c0, r0 := s.toCell(x1, y1)
	c1, r1 := s.toCell(x2, y2)

	dx := abs(c1 - c0)
	dy := -abs(r1 - r0)
	sx, sy := 1, 1
	if c0 > c1 {
		sx = -1
	}
	if r0 > r1 {
		sy = -1
	}
	e := dx + dy

	for {
		if s.isEmpty(c0, r0) {
			s.Screen.SetContent(c0, r0, ch, nil, style)
		}
		if c0 == c1 && r0 == r1 {
			break
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			c0 += sx
		}
		if e2 <= dx {
			e += dx
			r0 += sy
		}
	}
}

func (s *TerminalSurface) toCell(x, y float64) (int, int) {
	return int(math.Floor(x / s.CellWidth)), int(math.Floor(y / s.CellHeight))
}

// forCells 遍历中心落在圆内的字符单元
func (s *TerminalSurface) forCells(x, y, radius float64, fn func(col, row int)) {
	c0, r0 := s.toCell(x-radius, y-radius)
	c1, r1 := s.toCell(x+radius, y+radius)
	r2 := radius * radius
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			if !s.inBounds(col, row) {
				continue
			}
			px, py := s.CellToPixel(col, row)
			dx, dy := px-x, py-y
			if dx*dx+dy*dy <= r2 {
				fn(col, row)
			}
		}
	}
}

func (s *TerminalSurface) inBounds(col, row int) bool {
	w, h := s.Screen.Size()
	return col >= 0 && row >= 0 && col < w && row < h
}

func (s *TerminalSurface) isEmpty(col, row int) bool {
	if !s.inBounds(col, row) {
		return false
	}
	r, _, _, _ := s.Screen.GetContent(col, row)
	return r == ' ' || r == 0
}

// style 透明度通过前景色向黑色混合模拟
func (s *TerminalSurface) style(clr color.Color, alpha float64) tcell.Style {
	c := color.NRGBAModel.Convert(clr).(color.NRGBA)
	a := utils.Clamp01(alpha) * float64(c.A) / 255
	fg := tcell.NewRGBColor(int32(float64(c.R)*a), int32(float64(c.G)*a), int32(float64(c.B)*a))
	return tcell.StyleDefault.Foreground(fg)
}

// lineRune 按方向挑选线段字符（dy 已按单元宽高比修正）
func lineRune(dx, dy float64) rune {
	if dx == 0 && dy == 0 {
		return glowRune
	}
	angle := math.Abs(math.Atan2(dy, dx))
	switch {
	case angle < math.Pi/8 || angle > 7*math.Pi/8:
		return '─'
	case angle > 3*math.Pi/8 && angle < 5*math.Pi/8:
		return '│'
	case (dx > 0) == (dy > 0):
		return '╲'
	default:
		return '╱'
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
