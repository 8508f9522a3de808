//go:build mobile

package utils

// IsMobile 移动端构建（-tags mobile）固定返回 true
// 触摸设备没有键盘，App 据此跳过 T/L/H 快捷键
func IsMobile() bool {
	return true
}
