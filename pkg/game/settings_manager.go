package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// OverlaySettings 用户偏好设置
// 注意：只保存开关类偏好，不保存任何动画状态（粒子、冷却等都只存在于当前帧）
type OverlaySettings struct {
	TrailEnabled bool `yaml:"trailEnabled"` // 鼠标拖尾
	LinksEnabled bool `yaml:"linksEnabled"` // 近距离连线
	ShowHUD      bool `yaml:"showHUD"`      // 左上角统计信息
	SoundEnabled bool `yaml:"soundEnabled"` // 爆炸音效（终端版）
}

// DefaultSettings 返回默认设置
func DefaultSettings() *OverlaySettings {
	return &OverlaySettings{
		TrailEnabled: true,
		LinksEnabled: true,
		ShowHUD:      false,
		SoundEnabled: false,
	}
}

// SettingsManager 设置管理器
// 负责偏好设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *OverlaySettings
}

// DefaultAppName gdata 存储使用的应用名（桌面端和终端版共用同一份设置）
const DefaultAppName = "galaxy_fireworks"

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "overlay"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 返回：
//   - *SettingsManager: 设置管理器实例
//   - error: 保留用于未来的初始化错误，加载失败不会返回错误
func NewSettingsManager(gdataManager *gdata.Manager) (*SettingsManager, error) {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	// 尝试加载已保存的设置
	if err := sm.Load(); err != nil {
		// 加载失败不是致命错误，使用默认设置
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm, nil
}

// OpenSettingsManager 使用应用名打开 gdata 存储并创建设置管理器
//
// gdata 不可用时（例如沙盒环境没有可写目录）退化为仅内存设置
func OpenSettingsManager(appName string) *SettingsManager {
	if err := EnsureStorageDir(); err != nil {
		log.Printf("[SettingsManager] Warning: %v", err)
	}
	if path := GetStoragePath(); path != "" {
		log.Printf("[SettingsManager] Storage path: %s", path)
	}

	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[SettingsManager] Warning: gdata unavailable: %v (settings will not persist)", err)
		manager = nil
	}
	sm, _ := NewSettingsManager(manager)
	return sm
}

// Load 从 gdata 加载设置
//
// 如果 gdataManager 为 nil 或文件不存在，使用默认设置
//
// 返回：
//   - error: 如果反序列化失败返回错误
func (sm *SettingsManager) Load() error {
	// 降级模式：无法持久化，使用默认设置
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	// 先填默认值，旧版本存档缺少的字段保持默认
	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *OverlaySettings {
	return sm.settings
}

// IsPersistent 返回设置是否能持久化（非降级模式）
func (sm *SettingsManager) IsPersistent() bool {
	return sm.gdataManager != nil
}

// ToggleTrail 切换鼠标拖尾，返回新状态
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) ToggleTrail() bool {
	sm.settings.TrailEnabled = !sm.settings.TrailEnabled
	return sm.settings.TrailEnabled
}

// ToggleLinks 切换近距离连线，返回新状态
func (sm *SettingsManager) ToggleLinks() bool {
	sm.settings.LinksEnabled = !sm.settings.LinksEnabled
	return sm.settings.LinksEnabled
}

// ToggleHUD 切换统计信息显示，返回新状态
func (sm *SettingsManager) ToggleHUD() bool {
	sm.settings.ShowHUD = !sm.settings.ShowHUD
	return sm.settings.ShowHUD
}

// ToggleSound 切换爆炸音效，返回新状态
func (sm *SettingsManager) ToggleSound() bool {
	sm.settings.SoundEnabled = !sm.settings.SoundEnabled
	return sm.settings.SoundEnabled
}

// SetSoundEnabled 设置爆炸音效开关
func (sm *SettingsManager) SetSoundEnabled(enabled bool) {
	sm.settings.SoundEnabled = enabled
}
