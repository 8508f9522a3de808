// Package app 提供烟花叠加层应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/gonewx/fireworks/pkg/config"
	"github.com/gonewx/fireworks/pkg/embedded"
	"github.com/gonewx/fireworks/pkg/game"
	"github.com/gonewx/fireworks/pkg/systems"
	"github.com/gonewx/fireworks/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// maxDeviceScale 设备像素比上限，高分屏上限制绘制面积
const maxDeviceScale = 2.0

// backgroundColor 非叠加模式下的背景色（深夜蓝）
var backgroundColor = color.NRGBA{R: 0x06, G: 0x07, B: 0x12, A: 0xff}

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 效果配置文件路径，为空时使用嵌入的默认配置（不启用热重载）
	ConfigPath string
	// Overlay 强制使用透明叠加窗口（覆盖配置文件中的 window.overlay）
	Overlay bool
}

// App 是烟花叠加层的核心包装器，实现 ebiten.Game 接口
type App struct {
	effect     *config.EffectConfig
	configPath string

	scheduler *game.FrameScheduler
	clock     game.Clock
	surface   *EbitenSurface
	particles *systems.ParticleSystem
	pointer   *PointerTracker
	settings  *game.SettingsManager
	hud       *HUD
	watcher   *config.Watcher

	// 当前设备像素比（Layout 中更新）
	scale float64
	// 逻辑视口尺寸
	width, height int

	verbose bool
}

// NewApp 创建并初始化应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	effect, err := embedded.LoadEffectConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("效果配置加载失败: %w", err)
	}
	if cfg.Overlay {
		effect.Window.Overlay = true
	}
	log.Printf("[App] Effect config loaded (overlay=%v)", effect.Window.Overlay)

	settings := game.OpenSettingsManager(game.DefaultAppName)

	a := newApp(effect, settings, game.NewSystemClock())
	a.configPath = cfg.ConfigPath
	a.verbose = cfg.Verbose

	// 只有外部配置文件才热重载；监听失败不影响运行
	if cfg.ConfigPath != "" {
		watcher, err := config.NewWatcher(cfg.ConfigPath)
		if err != nil {
			log.Printf("[App] Warning: config hot reload disabled: %v", err)
		} else {
			a.watcher = watcher
			log.Printf("[App] Watching %s for changes", cfg.ConfigPath)
		}
	}

	a.particles.Start()
	return a, nil
}

// newApp 组装各个组件，不访问窗口和文件系统
func newApp(effect *config.EffectConfig, settings *game.SettingsManager, clock game.Clock) *App {
	var background color.Color = backgroundColor
	if effect.Window.Overlay {
		// 透明叠加：清屏为全透明，只留下粒子
		background = nil
	}

	scheduler := game.NewFrameScheduler()
	surface := NewEbitenSurface(background)
	particles := systems.NewParticleSystem(effect, scheduler, clock, surface, nil)

	prefs := settings.GetSettings()
	particles.SetTrailEnabled(prefs.TrailEnabled)
	particles.SetLinksEnabled(prefs.LinksEnabled)

	return &App{
		effect:    effect,
		scheduler: scheduler,
		clock:     clock,
		surface:   surface,
		particles: particles,
		pointer:   NewPointerTracker(),
		settings:  settings,
		hud:       NewHUD(),
		scale:     1,
		width:     effect.Window.Width,
		height:    effect.Window.Height,
	}
}

// Update 处理输入和配置变化
// 每个 tick 调用一次（通常每秒 60 次）；动画本身在 Draw 中按帧推进
func (a *App) Update() error {
	a.applyConfigChanges()

	// 叠加窗口没有标题栏，用 Esc 退出
	if a.effect.Window.Overlay && inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}

	// 移动端没有键盘，偏好设置保持上次保存的状态
	if !utils.IsMobile() {
		for _, key := range ToggleKeys(ebiten.KeyT, ebiten.KeyL, ebiten.KeyH) {
			a.handleToggle(key)
		}
	}

	a.handlePointer(a.pointer.Poll())
	return nil
}

// handlePointer 把指针事件转换为引擎的生成调用
// 同一帧既移动又点击时，按浏览器的事件顺序先处理移动
func (a *App) handlePointer(ev PointerEvents) {
	x := float64(ev.X) / a.scale
	y := float64(ev.Y) / a.scale

	if ev.Moved {
		a.particles.SpawnTrail(x, y)
	}
	if ev.Clicked {
		a.particles.SpawnBurst(x, y)
	}
}

// handleToggle 切换偏好设置并立即保存
func (a *App) handleToggle(key ebiten.Key) {
	switch key {
	case ebiten.KeyT:
		on := a.settings.ToggleTrail()
		a.particles.SetTrailEnabled(on)
		log.Printf("[App] Trail %v", on)
	case ebiten.KeyL:
		on := a.settings.ToggleLinks()
		a.particles.SetLinksEnabled(on)
		log.Printf("[App] Links %v", on)
	case ebiten.KeyH:
		on := a.settings.ToggleHUD()
		log.Printf("[App] HUD %v", on)
	default:
		return
	}

	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: failed to save settings: %v", err)
	}
}

// applyConfigChanges 处理热重载事件（非阻塞）
// 在 Update 中调用，保证配置切换和动画在同一条时间线上
func (a *App) applyConfigChanges() {
	if a.watcher == nil {
		return
	}
	for {
		select {
		case path := <-a.watcher.Events:
			a.reloadConfig(path)
		case err := <-a.watcher.Errors:
			log.Printf("[App] Warning: config watcher error: %v", err)
		default:
			return
		}
	}
}

// reloadConfig 重新加载配置文件，无效的配置被忽略
func (a *App) reloadConfig(path string) {
	cfg, err := config.LoadEffectConfig(path)
	if err != nil {
		log.Printf("[App] Warning: config reload failed, keeping current config: %v", err)
		return
	}

	// 窗口模式只在启动时决定
	cfg.Window = a.effect.Window
	a.effect = cfg
	a.particles.SetConfig(cfg)
	log.Printf("[App] Config reloaded from %s", path)
}

// Draw 推进一帧动画并绘制
// 每帧调用一次（对应 requestAnimationFrame 回调）
func (a *App) Draw(screen *ebiten.Image) {
	a.surface.Bind(screen)
	a.scheduler.RunFrame(a.clock.Now())

	if a.settings.GetSettings().ShowHUD {
		a.hud.Draw(screen, a.hudStats(ebiten.ActualFPS()))
	}
}

// hudStats 汇总 HUD 显示的统计信息
func (a *App) hudStats(fps float64) HUDStats {
	stats := a.particles.Stats()
	return HUDStats{
		Active:    stats.Active,
		Pooled:    stats.Pooled,
		LinkCount: stats.LinksDrawn,
		Cooldown:  stats.Cooldown,
		FPS:       fps,
		TrailOn:   a.particles.TrailEnabled(),
		LinksOn:   a.particles.LinksEnabled(),
	}
}

// Layout 让绘制表面跟随窗口大小
//
// 逻辑尺寸等于窗口尺寸，屏幕图像按设备像素比放大（上限 2），
// 引擎始终使用逻辑像素坐标。
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.resize(outsideWidth, outsideHeight, ebiten.Monitor().DeviceScaleFactor())
}

// resize 更新视口尺寸和像素比，返回屏幕图像尺寸
func (a *App) resize(width, height int, deviceScale float64) (int, int) {
	a.scale = capScale(deviceScale)
	a.surface.Scale = a.scale
	a.width, a.height = width, height
	return int(float64(width) * a.scale), int(float64(height) * a.scale)
}

// capScale 限制设备像素比不超过 maxDeviceScale，无效值按 1 处理
func capScale(scale float64) float64 {
	if scale <= 0 {
		return 1
	}
	if scale > maxDeviceScale {
		return maxDeviceScale
	}
	return scale
}

// Close 停止配置监听并保存设置
func (a *App) Close() error {
	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			return fmt.Errorf("failed to close config watcher: %w", err)
		}
	}
	return a.settings.Save()
}

// Particles 返回粒子系统
func (a *App) Particles() *systems.ParticleSystem {
	return a.particles
}

// Viewport 返回当前逻辑视口尺寸
func (a *App) Viewport() (int, int) {
	return a.width, a.height
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
