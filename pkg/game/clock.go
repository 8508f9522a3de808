package game

import "time"

// Clock 时钟，返回单调递增的时间戳（秒）
type Clock interface {
	Now() float64
}

// SystemClock 基于进程启动时间的单调时钟
type SystemClock struct {
	start time.Time
}

// NewSystemClock 创建系统时钟
func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

// Now 返回自创建以来经过的秒数（使用单调时钟读数）
func (c *SystemClock) Now() float64 {
	return time.Since(c.start).Seconds()
}

// ManualClock 手动推进的时钟，用于测试和无头模拟
type ManualClock struct {
	now float64
}

// NewManualClock 创建从 start 开始的手动时钟
func NewManualClock(start float64) *ManualClock {
	return &ManualClock{now: start}
}

// Now 返回当前时间
func (c *ManualClock) Now() float64 {
	return c.now
}

// Advance 将时间推进 dt 秒，负值被忽略（保持单调）
func (c *ManualClock) Advance(dt float64) float64 {
	if dt > 0 {
		c.now += dt
	}
	return c.now
}
