package app

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerEvents 一帧内的指针事件
// 对应浏览器的 click 和 mousemove 两类事件
type PointerEvents struct {
	// Clicked 本帧是否有点击/触摸按下
	Clicked bool
	// Moved 本帧指针位置是否变化
	Moved bool
	// 指针位置（点击和移动共用）
	X, Y int
}

// PointerTracker 指针状态跟踪器
//
// ebiten 只提供轮询接口，没有移动事件；这里比较相邻两帧的位置来生成移动事件。
// 同时支持鼠标和触摸，优先检测触摸。
type PointerTracker struct {
	lastX, lastY int
	hasLast      bool
}

// NewPointerTracker 创建指针跟踪器
func NewPointerTracker() *PointerTracker {
	return &PointerTracker{}
}

// Poll 读取本帧的 ebiten 输入状态并生成指针事件
// 应该在 Update 中每帧调用一次
func (pt *PointerTracker) Poll() PointerEvents {
	// 首先检查触摸输入（移动设备）
	if touchIDs := inpututil.AppendJustPressedTouchIDs(nil); len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return pt.Observe(true, x, y, true)
	}
	if touchIDs := ebiten.AppendTouchIDs(nil); len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return pt.Observe(false, x, y, true)
	}

	// 其次检查鼠标输入（桌面设备）
	x, y := ebiten.CursorPosition()
	clicked := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	return pt.Observe(clicked, x, y, true)
}

// Observe 根据本帧的原始输入生成事件
//
// 参数：
//   - clicked: 本帧是否刚按下
//   - x, y: 当前指针位置
//   - present: 指针是否存在（触摸设备无触摸时为 false）
func (pt *PointerTracker) Observe(clicked bool, x, y int, present bool) PointerEvents {
	ev := PointerEvents{Clicked: clicked, X: x, Y: y}
	if !present {
		pt.hasLast = false
		ev.Clicked = false
		return ev
	}

	// 第一帧只记录位置，不算移动
	if pt.hasLast && (x != pt.lastX || y != pt.lastY) {
		ev.Moved = true
	}
	pt.lastX, pt.lastY = x, y
	pt.hasLast = true
	return ev
}

// ToggleKeys 返回本帧刚按下的按键中属于 keys 的那些
func ToggleKeys(keys ...ebiten.Key) []ebiten.Key {
	var pressed []ebiten.Key
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			pressed = append(pressed, k)
		}
	}
	return pressed
}
