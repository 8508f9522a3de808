package render

import (
	"image/color"
	"testing"
)

// TestRecordingSurfaceCapturesPaintState 测试命令记录绘制时的透明度和光晕
func TestRecordingSurfaceCapturesPaintState(t *testing.T) {
	rs := NewRecordingSurface()
	rs.Clear()

	rs.SetAlpha(0.5)
	rs.SetGlow(12, color.White)
	rs.FillCircle(1, 2, 3, color.White)

	rs.SetAlpha(0.25)
	rs.SetGlow(10, color.White)
	rs.StrokeLine(0, 0, 4, 4, 1, color.White)

	circles := rs.Circles()
	if len(circles) != 1 {
		t.Fatalf("circles: got %d, want 1", len(circles))
	}
	if circles[0].Alpha != 0.5 || circles[0].Glow != 12 || circles[0].Radius != 3 {
		t.Errorf("circle state: got %+v", circles[0])
	}

	lines := rs.Lines()
	if len(lines) != 1 {
		t.Fatalf("lines: got %d, want 1", len(lines))
	}
	if lines[0].Alpha != 0.25 || lines[0].Width != 1 {
		t.Errorf("line state: got %+v", lines[0])
	}
}

// TestRecordingSurfaceClearDropsPreviousFrame 测试清屏丢弃上一帧的命令
func TestRecordingSurfaceClearDropsPreviousFrame(t *testing.T) {
	rs := NewRecordingSurface()
	rs.FillCircle(0, 0, 1, color.White)
	rs.Clear()

	if len(rs.Circles()) != 0 {
		t.Errorf("circles after clear: got %d, want 0", len(rs.Circles()))
	}
	if rs.Clears() != 1 {
		t.Errorf("Clears: got %d, want 1", rs.Clears())
	}
	if rs.Commands[0].Op != OpClear {
		t.Errorf("first command: got %v, want clear", rs.Commands[0].Op)
	}
}
