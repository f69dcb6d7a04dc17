// Fireworks 桌面端入口
//
// Usage:
//
//	go run . [flags]
//
// Flags:
//
//	--verbose   Enable verbose logging
//	--seed <n>  Random seed (0 = time based)
//	--no-auto   Disable the opening auto-launch sequence
//	--debug     Show TPS/FPS and entity counts
//
// Controls:
//
//	Mouse Click / Touch - Launch rockets at the pointer X
//	F11                 - Toggle fullscreen
//	Escape              - Quit
package main

import (
	"flag"
	"log"

	"github.com/decker502/fireworks/pkg/app"
	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging (default off)")
	seedFlag    = flag.Int64("seed", 0, "Random seed, 0 uses the current time")
	noAutoFlag  = flag.Bool("no-auto", false, "Disable the automatic launch sequence")
	debugFlag   = flag.Bool("debug", false, "Show TPS/FPS and entity counts")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源（dataFS 在 embed.go 中声明）
	embedded.Init(dataFS)

	cfg, err := config.LoadFireworksConfig(config.FireworksConfigPath)
	if err != nil {
		log.Fatalf("烟花配置加载失败: %v", err)
	}

	gameApp, err := app.NewApp(app.Config{
		Verbose:     *verboseFlag,
		Seed:        *seedFlag,
		DisableAuto: *noAutoFlag,
		Debug:       *debugFlag,
		Fireworks:   cfg,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	ebiten.SetWindowSize(cfg.Display.Width, cfg.Display.Height)
	ebiten.SetWindowTitle(cfg.Display.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	// Start the loop
	// This will call Update() and Draw() repeatedly until the window is closed
	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}
