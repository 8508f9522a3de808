package game

import "image/color"

// Surface 可绘制表面（画布）
//
// 粒子系统只通过这个接口绘制，具体实现由宿主提供：
// 桌面端为 ebiten 图像，终端为 tcell 屏幕，测试和模拟工具为命令记录器。
//
// 绘制状态（透明度、光晕）与 Canvas 2D 上下文一样是全局的：
// 设置后对之后的每一次绘制都生效，直到再次设置。
type Surface interface {
	// Clear 清空整个表面
	Clear()

	// SetAlpha 设置全局透明度 [0, 1]
	SetAlpha(alpha float64)

	// SetGlow 设置光晕（模糊半径和颜色），blur 为 0 时关闭光晕
	SetGlow(blur float64, clr color.Color)

	// FillCircle 以当前绘制状态绘制实心圆
	FillCircle(x, y, radius float64, clr color.Color)

	// StrokeLine 以当前绘制状态绘制线段
	StrokeLine(x1, y1, x2, y2, width float64, clr color.Color)
}
