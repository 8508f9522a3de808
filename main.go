package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/fireworks/data"
	"github.com/gonewx/fireworks/pkg/app"
	"github.com/gonewx/fireworks/pkg/embedded"
)

func main() {
	configPath := flag.String("config", "", "效果配置文件路径（修改后自动热重载），为空使用内置配置")
	verbose := flag.Bool("verbose", false, "启用详细日志输出")
	overlay := flag.Bool("overlay", false, "透明、无边框、置顶的叠加窗口")
	flag.Parse()

	// 初始化嵌入资源
	embedded.Init(data.FS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		ConfigPath: *configPath,
		Overlay:    *overlay,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}
	defer func() {
		if err := gameApp.Close(); err != nil {
			log.Printf("[Main] Warning: %v", err)
		}
	}()

	effect := gameApp.Particles().Config()
	ebiten.SetWindowSize(effect.Window.Width, effect.Window.Height)
	ebiten.SetWindowTitle(effect.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	opts := &ebiten.RunGameOptions{}
	if effect.Window.Overlay {
		// 叠加模式：透明背景，去掉标题栏并保持在其他窗口之上
		opts.ScreenTransparent = true
		ebiten.SetWindowDecorated(false)
		ebiten.SetWindowFloating(true)
	}

	if err := ebiten.RunGameWithOptions(gameApp, opts); err != nil {
		log.Fatal(err)
	}
}
