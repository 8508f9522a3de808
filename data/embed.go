// Package data 随程序发布的数据文件
//
// go:embed 指令只能嵌入当前包目录及其子目录的文件，
// 把嵌入声明放在 data/ 目录里，桌面端、终端版和移动端都能直接导入。
package data

import "embed"

// FS 嵌入的数据文件，以 data/ 目录为根
//
//go:embed fireworks.yaml
var FS embed.FS
