// Package main 终端版烟花：在任意终端里用鼠标点击放烟花
//
// Usage:
//
//	go run ./cmd/fireworks-tui [flags]
//
// Flags:
//
//	--config <path>   效果配置文件（默认使用内置配置，修改后自动热重载）
//	--sound           启用爆炸音效（等同于按 s 切换，设置会被保存）
//	--log <path>      日志输出文件（终端被占用，日志不能写到 stderr）
//
// Controls:
//
//	Mouse Click   - 放烟花
//	Mouse Move    - 拖尾
//	t / l         - 切换拖尾 / 连线
//	s             - 切换音效
//	r             - 清空所有粒子
//	q / Escape    - 退出
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/gonewx/fireworks/data"
	"github.com/gonewx/fireworks/internal/audio"
	"github.com/gonewx/fireworks/pkg/config"
	"github.com/gonewx/fireworks/pkg/embedded"
	"github.com/gonewx/fireworks/pkg/game"
)

var (
	configFlag = flag.String("config", "", "Effect config file")
	soundFlag  = flag.Bool("sound", false, "Enable burst sound")
	logFlag    = flag.String("log", "", "Write logs to this file")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fireworks-tui: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	log.SetOutput(io.Discard)
	if *logFlag != "" {
		f, err := os.OpenFile(*logFlag, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	embedded.Init(data.FS)
	cfg, err := embedded.LoadEffectConfig(*configFlag)
	if err != nil {
		return err
	}

	// 与桌面端一致：只有指定了外部文件才热重载
	var (
		configEvents <-chan string
		configErrors <-chan error
	)
	if *configFlag != "" {
		watcher, err := config.NewWatcher(*configFlag)
		if err != nil {
			log.Printf("[TUI] Warning: config hot reload disabled: %v", err)
		} else {
			defer watcher.Close()
			configEvents, configErrors = watcher.Events, watcher.Errors
			log.Printf("[TUI] Watching %s for changes", *configFlag)
		}
	}

	settings := game.OpenSettingsManager(game.DefaultAppName)
	if *soundFlag {
		settings.SetSoundEnabled(true)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to init screen: %w", err)
	}
	defer screen.Fini()

	screen.EnableMouse()
	screen.HideCursor()
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack))

	host := newTerminalHost(screen, cfg, settings, game.NewSystemClock(), rand.New(rand.NewSource(time.Now().UnixNano())))

	// 音效初始化失败不影响运行
	sound := audio.NewBurstSound()
	if err := sound.Init(); err != nil {
		log.Printf("[TUI] Audio initialization failed: %v", err)
	} else {
		host.sound = sound
		defer sound.Close()
	}

	host.particles.Start()
	log.Printf("[TUI] Started at %d fps", cfg.Terminal.FPS)

	// PollEvent 会阻塞，放到独立 goroutine；事件通过 channel 回到主循环
	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(cfg.Terminal.FPS))
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok || !host.handleEvent(ev) {
				if err := settings.Save(); err != nil {
					log.Printf("[TUI] Warning: failed to save settings: %v", err)
				}
				return nil
			}
		case path := <-configEvents:
			host.reloadConfig(path)
		case err := <-configErrors:
			log.Printf("[TUI] Warning: config watcher error: %v", err)
		case <-ticker.C:
			host.frame()
		}
	}
}
