// Package embedded 提供嵌入资源的统一访问接口
//
// 嵌入的文件系统由 data 包提供（以 data/ 目录为根），
// 本包对外统一使用 "data/..." 形式的路径。
//
// 使用前必须调用 Init() 初始化。
package embedded

import (
	"fmt"
	"io/fs"
	"log"
	"path/filepath"
	"strings"

	"github.com/gonewx/fireworks/pkg/config"
)

// DefaultConfigPath 随程序发布的默认效果配置
const DefaultConfigPath = "data/fireworks.yaml"

var (
	dataFS      fs.FS
	initialized bool
)

var errNotInitialized = fmt.Errorf("embedded package not initialized, call Init() first")

// Init 初始化嵌入的数据文件系统（通常是 data.FS）
// 必须在 main() 开始时、任何资源加载之前调用
func Init(data fs.FS) {
	dataFS = data
	initialized = data != nil
}

// IsInitialized 返回 embedded 包是否已初始化
func IsInitialized() bool {
	return initialized
}

// normalize 标准化路径并检查前缀，返回相对 data/ 目录的路径
// embed.FS 使用正斜杠，并且不接受 "./" 前缀
func normalize(path string) (string, error) {
	path = filepath.ToSlash(path)
	path = strings.TrimPrefix(path, "./")
	rel, ok := strings.CutPrefix(path, "data/")
	if !ok {
		return "", fmt.Errorf("unknown resource path prefix: %s (must start with 'data/')", path)
	}
	return rel, nil
}

// Open 打开嵌入文件，路径必须以 "data/" 开头
func Open(path string) (fs.File, error) {
	if !initialized {
		return nil, errNotInitialized
	}
	path, err := normalize(path)
	if err != nil {
		return nil, err
	}
	return dataFS.Open(path)
}

// ReadFile 读取嵌入文件内容，路径必须以 "data/" 开头
func ReadFile(path string) ([]byte, error) {
	if !initialized {
		return nil, errNotInitialized
	}
	path, err := normalize(path)
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(dataFS, path)
}

// Exists 检查文件是否存在于嵌入文件系统中
func Exists(path string) bool {
	file, err := Open(path)
	if err != nil {
		return false
	}
	file.Close()
	return true
}

// DefaultConfig 返回嵌入的默认效果配置内容
func DefaultConfig() ([]byte, error) {
	data, err := ReadFile(DefaultConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded config: %w", err)
	}
	return data, nil
}

// LoadEffectConfig 加载效果配置
// path 不为空时读取外部文件；否则使用嵌入的默认配置，
// 未初始化时退回到代码中的默认值
func LoadEffectConfig(path string) (*config.EffectConfig, error) {
	if path != "" {
		return config.LoadEffectConfig(path)
	}

	if !IsInitialized() {
		log.Printf("[Embedded] Not initialized, using built-in defaults")
		return config.DefaultEffectConfig(), nil
	}

	data, err := DefaultConfig()
	if err != nil {
		return nil, err
	}
	return config.LoadEffectConfigBytes(data)
}
