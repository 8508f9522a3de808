package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EffectConfig 烟花粒子效果配置
//
// 所有默认值与原始效果保持一致：点击爆炸 60 个粒子、每帧 10 个、冷却 0.12 秒，
// 鼠标拖尾 25% 概率生成，连线距离 110 像素、每个粒子最多 2 条。
//
// 配置文件位置: data/fireworks.yaml
type EffectConfig struct {
	Burst    BurstConfig    `yaml:"burst"`
	Trail    TrailConfig    `yaml:"trail"`
	Link     LinkConfig     `yaml:"link"`
	Render   RenderConfig   `yaml:"render"`
	Frame    FrameConfig    `yaml:"frame"`
	Window   WindowConfig   `yaml:"window"`
	Terminal TerminalConfig `yaml:"terminal"`
}

// BurstConfig 点击爆炸配置
type BurstConfig struct {
	Total    int     `yaml:"total"`    // 每次爆炸的粒子总数
	Batch    int     `yaml:"batch"`    // 每帧生成的粒子数
	Cooldown float64 `yaml:"cooldown"` // 两次爆炸之间的最小间隔（秒）
	Life     float64 `yaml:"life"`     // 粒子寿命（秒）
	SpeedMin float64 `yaml:"speedMin"` // 速度范围 [min, max)
	SpeedMax float64 `yaml:"speedMax"`
	SizeMin  float64 `yaml:"sizeMin"` // 半径范围 [min, max)
	SizeMax  float64 `yaml:"sizeMax"`
}

// TrailConfig 鼠标拖尾配置
type TrailConfig struct {
	Enabled     bool    `yaml:"enabled"`
	SpawnChance float64 `yaml:"spawnChance"` // 每次移动事件生成粒子的概率
	Spread      float64 `yaml:"spread"`      // 每轴速度范围 [-spread, spread]
	Life        float64 `yaml:"life"`
	SizeMin     float64 `yaml:"sizeMin"`
	SizeMax     float64 `yaml:"sizeMax"`
}

// LinkConfig 近距离连线（电弧）配置
type LinkConfig struct {
	Enabled        bool    `yaml:"enabled"`
	Distance       float64 `yaml:"distance"`       // 连线距离阈值（像素）
	MaxPerParticle int     `yaml:"maxPerParticle"` // 每个粒子作为起点的最大连线数
	Alpha          float64 `yaml:"alpha"`
	Width          float64 `yaml:"width"`
	Glow           float64 `yaml:"glow"`
}

// RenderConfig 粒子绘制配置
type RenderConfig struct {
	Glow       float64 `yaml:"glow"`       // 光晕强度，实际值 = glow * t
	Saturation float64 `yaml:"saturation"` // HSL 饱和度 [0, 1]
	Lightness  float64 `yaml:"lightness"`  // HSL 亮度 [0, 1]
	MinScale   float64 `yaml:"minScale"`   // 寿命结束时的半径比例
}

// FrameConfig 帧循环配置
type FrameConfig struct {
	// MaxDelta 单帧 delta 上限（秒），0 表示不限制
	MaxDelta float64 `yaml:"maxDelta"`
}

// WindowConfig 桌面窗口配置
type WindowConfig struct {
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	Title   string `yaml:"title"`
	Overlay bool   `yaml:"overlay"` // 透明、无边框、置顶
}

// TerminalConfig 终端渲染配置
type TerminalConfig struct {
	CellWidth  float64 `yaml:"cellWidth"`  // 每个字符单元对应的像素宽度
	CellHeight float64 `yaml:"cellHeight"` // 每个字符单元对应的像素高度
	FPS        int     `yaml:"fps"`
}

// DefaultEffectConfig 返回默认配置
func DefaultEffectConfig() *EffectConfig {
	return &EffectConfig{
		Burst: BurstConfig{
			Total:    60,
			Batch:    10,
			Cooldown: 0.12,
			Life:     1.2,
			SpeedMin: 2,
			SpeedMax: 5,
			SizeMin:  4,
			SizeMax:  10,
		},
		Trail: TrailConfig{
			Enabled:     true,
			SpawnChance: 0.25,
			Spread:      0.75,
			Life:        0.5,
			SizeMin:     2,
			SizeMax:     5,
		},
		Link: LinkConfig{
			Enabled:        true,
			Distance:       110,
			MaxPerParticle: 2,
			Alpha:          0.25,
			Width:          1,
			Glow:           10,
		},
		Render: RenderConfig{
			Glow:       20,
			Saturation: 1.0,
			Lightness:  0.6,
			MinScale:   0.6,
		},
		Frame: FrameConfig{
			MaxDelta: 0,
		},
		Window: WindowConfig{
			Width:   1280,
			Height:  720,
			Title:   "Galaxy Fireworks",
			Overlay: false,
		},
		Terminal: TerminalConfig{
			CellWidth:  8,
			CellHeight: 16,
			FPS:        30,
		},
	}
}

// LoadEffectConfig 加载烟花效果配置
//
// 文件不存在时返回默认配置（不算错误）；文件中未出现的字段保留默认值。
//
// 参数:
//   - path: 配置文件路径（如 "data/fireworks.yaml"）
//
// 返回:
//   - *EffectConfig: 加载并验证后的配置
//   - error: 读取、解析或验证失败时返回错误
func LoadEffectConfig(path string) (*EffectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultEffectConfig(), nil
		}
		return nil, fmt.Errorf("failed to read effect config: %w", err)
	}
	return LoadEffectConfigBytes(data)
}

// LoadEffectConfigBytes 从 YAML 数据解析配置，未设置的字段使用默认值
func LoadEffectConfigBytes(data []byte) (*EffectConfig, error) {
	cfg := DefaultEffectConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse effect config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid effect config: %w", err)
	}

	return cfg, nil
}

// Validate 验证配置有效性
//
// 检查：
//   - 爆炸总数、批次、寿命为正数
//   - 所有 [min, max) 范围满足 min <= max
//   - 概率、颜色分量在 [0, 1] 内
//   - 距离、冷却不为负
func (c *EffectConfig) Validate() error {
	if c.Burst.Total <= 0 {
		return fmt.Errorf("burst total must be positive, got %d", c.Burst.Total)
	}
	if c.Burst.Batch <= 0 {
		return fmt.Errorf("burst batch must be positive, got %d", c.Burst.Batch)
	}
	if c.Burst.Cooldown < 0 {
		return fmt.Errorf("burst cooldown must not be negative, got %.3f", c.Burst.Cooldown)
	}
	if c.Burst.Life <= 0 {
		return fmt.Errorf("burst life must be positive, got %.3f", c.Burst.Life)
	}
	if err := validateRange("burst speed", c.Burst.SpeedMin, c.Burst.SpeedMax); err != nil {
		return err
	}
	if err := validateRange("burst size", c.Burst.SizeMin, c.Burst.SizeMax); err != nil {
		return err
	}

	if c.Trail.SpawnChance < 0 || c.Trail.SpawnChance > 1 {
		return fmt.Errorf("trail spawnChance must be in [0, 1], got %.3f", c.Trail.SpawnChance)
	}
	if c.Trail.Spread < 0 {
		return fmt.Errorf("trail spread must not be negative, got %.3f", c.Trail.Spread)
	}
	if c.Trail.Life <= 0 {
		return fmt.Errorf("trail life must be positive, got %.3f", c.Trail.Life)
	}
	if err := validateRange("trail size", c.Trail.SizeMin, c.Trail.SizeMax); err != nil {
		return err
	}

	if c.Link.Distance < 0 {
		return fmt.Errorf("link distance must not be negative, got %.1f", c.Link.Distance)
	}
	if c.Link.MaxPerParticle < 0 {
		return fmt.Errorf("link maxPerParticle must not be negative, got %d", c.Link.MaxPerParticle)
	}
	if c.Link.Alpha < 0 || c.Link.Alpha > 1 {
		return fmt.Errorf("link alpha must be in [0, 1], got %.3f", c.Link.Alpha)
	}

	if c.Render.Saturation < 0 || c.Render.Saturation > 1 {
		return fmt.Errorf("render saturation must be in [0, 1], got %.3f", c.Render.Saturation)
	}
	if c.Render.Lightness < 0 || c.Render.Lightness > 1 {
		return fmt.Errorf("render lightness must be in [0, 1], got %.3f", c.Render.Lightness)
	}
	if c.Render.MinScale < 0 || c.Render.MinScale > 1 {
		return fmt.Errorf("render minScale must be in [0, 1], got %.3f", c.Render.MinScale)
	}

	if c.Frame.MaxDelta < 0 {
		return fmt.Errorf("frame maxDelta must not be negative, got %.3f", c.Frame.MaxDelta)
	}

	if c.Terminal.CellWidth <= 0 || c.Terminal.CellHeight <= 0 {
		return fmt.Errorf("terminal cell size must be positive, got %.1fx%.1f",
			c.Terminal.CellWidth, c.Terminal.CellHeight)
	}
	if c.Terminal.FPS <= 0 {
		return fmt.Errorf("terminal fps must be positive, got %d", c.Terminal.FPS)
	}

	return nil
}

func validateRange(name string, min, max float64) error {
	if min < 0 {
		return fmt.Errorf("%s range invalid: min(%.2f) < 0", name, min)
	}
	if min > max {
		return fmt.Errorf("%s range invalid: min(%.2f) > max(%.2f)", name, min, max)
	}
	return nil
}
