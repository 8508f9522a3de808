//go:build !mobile

// Package mobile 的桌面端占位
//
// 烟花效果的 ebitenmobile 绑定在 mobile.go 中，只有 -tags mobile 时才编译；
// 普通的 go build ./... 只看到这个文件，包因此不会是空的。
package mobile

// Dummy 让 ebitenmobile bind 在桌面构建下也能找到导出符号，不做任何事
func Dummy() {}
