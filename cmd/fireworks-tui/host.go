package main

import (
	"log"
	"math/rand"

	"github.com/gdamore/tcell/v2"

	"github.com/gonewx/fireworks/pkg/config"
	"github.com/gonewx/fireworks/pkg/game"
	"github.com/gonewx/fireworks/pkg/render"
	"github.com/gonewx/fireworks/pkg/systems"
)

// player 爆炸音效接口（便于测试时替换）
type player interface {
	Play()
}

// terminalHost 终端宿主：把 tcell 事件转换为引擎调用，并按帧驱动调度器
//
// 事件处理和帧推进都在主 goroutine 的 select 循环里执行，
// 引擎本身不需要加锁。
type terminalHost struct {
	screen    tcell.Screen
	surface   *render.TerminalSurface
	scheduler *game.FrameScheduler
	clock     game.Clock
	particles *systems.ParticleSystem
	settings  *game.SettingsManager
	sound     player

	// 上一次鼠标事件的位置和按键状态，用于生成移动和点击事件
	lastCol, lastRow int
	hasLast          bool
	buttonDown       bool
}

func newTerminalHost(screen tcell.Screen, cfg *config.EffectConfig, settings *game.SettingsManager, clock game.Clock, rng *rand.Rand) *terminalHost {
	scheduler := game.NewFrameScheduler()
	surface := render.NewTerminalSurface(screen, cfg.Terminal.CellWidth, cfg.Terminal.CellHeight)
	particles := systems.NewParticleSystem(cfg, scheduler, clock, surface, rng)

	prefs := settings.GetSettings()
	particles.SetTrailEnabled(prefs.TrailEnabled)
	particles.SetLinksEnabled(prefs.LinksEnabled)

	return &terminalHost{
		screen:    screen,
		surface:   surface,
		scheduler: scheduler,
		clock:     clock,
		particles: particles,
		settings:  settings,
	}
}

// frame 推进一帧并刷新终端
func (h *terminalHost) frame() {
	h.scheduler.RunFrame(h.clock.Now())
	h.surface.Present()
}

// handleEvent 处理一个 tcell 事件，返回 false 表示退出
func (h *terminalHost) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		h.screen.Sync()
	case *tcell.EventKey:
		return h.handleKey(ev)
	case *tcell.EventMouse:
		h.handleMouse(ev)
	}
	return true
}

func (h *terminalHost) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
	default:
		return true
	}

	switch ev.Rune() {
	case 'q', 'Q':
		return false
	case 't', 'T':
		h.particles.SetTrailEnabled(h.settings.ToggleTrail())
	case 'l', 'L':
		h.particles.SetLinksEnabled(h.settings.ToggleLinks())
	case 's', 'S':
		log.Printf("[TUI] Sound %v", h.settings.ToggleSound())
	case 'r', 'R':
		h.particles.Reset()
		return true
	default:
		return true
	}

	if err := h.settings.Save(); err != nil {
		log.Printf("[TUI] Warning: failed to save settings: %v", err)
	}
	return true
}

// handleMouse 终端只报告按键状态，这里根据状态变化生成点击（按下沿）和移动事件
func (h *terminalHost) handleMouse(ev *tcell.EventMouse) {
	col, row := ev.Position()
	x, y := h.surface.CellToPixel(col, row)

	if h.hasLast && (col != h.lastCol || row != h.lastRow) {
		h.particles.SpawnTrail(x, y)
	}
	h.lastCol, h.lastRow = col, row
	h.hasLast = true

	down := ev.Buttons()&tcell.Button1 != 0
	if down && !h.buttonDown {
		if h.particles.SpawnBurst(x, y) && h.sound != nil && h.settings.GetSettings().SoundEnabled {
			h.sound.Play()
		}
	}
	h.buttonDown = down
}

// reloadConfig 热重载配置文件，无效的配置被忽略
// 帧率和字符格尺寸只在启动时生效
func (h *terminalHost) reloadConfig(path string) {
	cfg, err := config.LoadEffectConfig(path)
	if err != nil {
		log.Printf("[TUI] Warning: config reload failed, keeping current config: %v", err)
		return
	}

	current := h.particles.Config()
	cfg.Terminal = current.Terminal
	cfg.Window = current.Window
	h.particles.SetConfig(cfg)
	log.Printf("[TUI] Config reloaded from %s", path)
}
