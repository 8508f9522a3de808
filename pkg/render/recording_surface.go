package render

import "image/color"

// CommandOp 绘制命令类型
type CommandOp int

const (
	OpClear CommandOp = iota
	OpCircle
	OpLine
)

// String 返回命令名
func (op CommandOp) String() string {
	switch op {
	case OpClear:
		return "clear"
	case OpCircle:
		return "circle"
	case OpLine:
		return "line"
	default:
		return "unknown"
	}
}

// Command 一条绘制命令，记录绘制时生效的绘制状态
type Command struct {
	Op     CommandOp
	X1, Y1 float64 // 圆心或线段起点
	X2, Y2 float64 // 线段终点
	Radius float64
	Width  float64
	Alpha  float64
	Glow   float64
	Color  color.Color
}

// RecordingSurface 记录绘制命令而不真正绘制
//
// 用于单元测试断言绘制结果，以及 cmd/particles 无头模拟统计每帧的绘制量。
type RecordingSurface struct {
	Commands []Command

	alpha float64
	glow  float64
	// 当前帧之前累计的清屏次数
	clears int
}

// NewRecordingSurface 创建记录表面，初始绘制状态为不透明、无光晕
func NewRecordingSurface() *RecordingSurface {
	return &RecordingSurface{alpha: 1}
}

// Clear 清空表面。同时丢弃之前记录的命令，只保留本帧的绘制
func (rs *RecordingSurface) Clear() {
	rs.Commands = rs.Commands[:0]
	rs.clears++
	rs.Commands = append(rs.Commands, Command{Op: OpClear, Alpha: rs.alpha, Glow: rs.glow})
}

// SetAlpha 设置全局透明度
func (rs *RecordingSurface) SetAlpha(alpha float64) {
	rs.alpha = alpha
}

// SetGlow 设置光晕
func (rs *RecordingSurface) SetGlow(blur float64, _ color.Color) {
	rs.glow = blur
}

// FillCircle 记录实心圆
func (rs *RecordingSurface) FillCircle(x, y, radius float64, clr color.Color) {
	rs.Commands = append(rs.Commands, Command{
		Op:     OpCircle,
		X1:     x,
		Y1:     y,
		Radius: radius,
		Alpha:  rs.alpha,
		Glow:   rs.glow,
		Color:  clr,
	})
}

// StrokeLine 记录线段
func (rs *RecordingSurface) StrokeLine(x1, y1, x2, y2, width float64, clr color.Color) {
	rs.Commands = append(rs.Commands, Command{
		Op:    OpLine,
		X1:    x1,
		Y1:    y1,
		X2:    x2,
		Y2:    y2,
		Width: width,
		Alpha: rs.alpha,
		Glow:  rs.glow,
		Color: clr,
	})
}

// Alpha 返回当前全局透明度
func (rs *RecordingSurface) Alpha() float64 {
	return rs.alpha
}

// Glow 返回当前光晕强度
func (rs *RecordingSurface) Glow() float64 {
	return rs.glow
}

// Clears 返回累计清屏次数
func (rs *RecordingSurface) Clears() int {
	return rs.clears
}

// Circles 返回本帧记录的所有圆
func (rs *RecordingSurface) Circles() []Command {
	return rs.filter(OpCircle)
}

// Lines 返回本帧记录的所有线段
func (rs *RecordingSurface) Lines() []Command {
	return rs.filter(OpLine)
}

func (rs *RecordingSurface) filter(op CommandOp) []Command {
	var out []Command
	for _, c := range rs.Commands {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}
