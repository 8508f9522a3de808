package render

import (
	"image/color"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func newSimScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("failed to init simulation screen: %v", err)
	}
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

func runeAt(s tcell.Screen, x, y int) rune {
	r, _, _, _ := s.GetContent(x, y)
	return r
}

// TestTerminalFillCircleMarksCenterCell 测试小粒子至少占据中心单元
func TestTerminalFillCircleMarksCenterCell(t *testing.T) {
	screen := newSimScreen(t, 20, 10)
	surface := NewTerminalSurface(screen, 8, 16)

	surface.Clear()
	surface.FillCircle(44, 40, 2, color.White) // 单元 (5, 2)

	if got := runeAt(screen, 5, 2); got != particleRune {
		t.Errorf("center cell: got %q, want %q", got, particleRune)
	}
	if got := runeAt(screen, 0, 0); got == particleRune {
		t.Error("far cell should stay empty")
	}
}

// TestTerminalGlowDoesNotOverwriteParticles 测试光晕只写空白单元
func TestTerminalGlowDoesNotOverwriteParticles(t *testing.T) {
	screen := newSimScreen(t, 20, 10)
	surface := NewTerminalSurface(screen, 8, 16)
	surface.Clear()

	surface.FillCircle(44, 40, 2, color.White)
	surface.SetGlow(40, color.White)
	surface.FillCircle(52, 40, 2, color.White) // 相邻单元 (6, 2)，光晕覆盖 (5, 2)

	if got := runeAt(screen, 5, 2); got != particleRune {
		t.Errorf("existing particle overwritten by glow: got %q", got)
	}
	if got := runeAt(screen, 6, 2); got != particleRune {
		t.Errorf("second particle: got %q, want %q", got, particleRune)
	}
	if got := runeAt(screen, 7, 2); got != glowRune {
		t.Errorf("glow cell: got %q, want %q", got, glowRune)
	}
}

// TestTerminalStrokeLineHorizontal 测试水平连线
func TestTerminalStrokeLineHorizontal(t *testing.T) {
	screen := newSimScreen(t, 20, 10)
	surface := NewTerminalSurface(screen, 8, 16)
	surface.Clear()

	surface.StrokeLine(4, 8, 76, 8, 1, color.White) // 单元 (0,0) 到 (9,0)

	for x := 0; x <= 9; x++ {
		if got := runeAt(screen, x, 0); got != '─' {
			t.Errorf("cell (%d,0): got %q, want '─'", x, got)
		}
	}
}

// TestTerminalZeroAlphaDrawsNothing 测试完全透明时不绘制
func TestTerminalZeroAlphaDrawsNothing(t *testing.T) {
	screen := newSimScreen(t, 10, 5)
	surface := NewTerminalSurface(screen, 8, 16)
	surface.Clear()

	surface.SetAlpha(0)
	surface.FillCircle(4, 8, 3, color.White)

	if got := runeAt(screen, 0, 0); got == particleRune {
		t.Error("particle drawn with alpha 0")
	}
}

// TestTerminalCellToPixel 测试单元坐标换算
func TestTerminalCellToPixel(t *testing.T) {
	screen := newSimScreen(t, 10, 5)
	surface := NewTerminalSurface(screen, 8, 16)

	x, y := surface.CellToPixel(2, 3)
	if x != 20 || y != 56 {
		t.Errorf("CellToPixel(2,3) = (%v,%v), want (20,56)", x, y)
	}
	w, h := surface.PixelSize()
	if w != 80 || h != 80 {
		t.Errorf("PixelSize = (%v,%v), want (80,80)", w, h)
	}
}

// TestLineRune 测试线段字符选择
func TestLineRune(t *testing.T) {
	tests := []struct {
		dx, dy float64
		want   rune
	}{
		{10, 0, '─'},
		{-10, 1, '─'},
		{0, 10, '│'},
		{10, 10, '╲'},
		{-10, -10, '╲'},
		{10, -10, '╱'},
	}
	for _, tt := range tests {
		if got := lineRune(tt.dx, tt.dy); got != tt.want {
			t.Errorf("lineRune(%v,%v) = %q, want %q", tt.dx, tt.dy, got, tt.want)
		}
	}
}
