// Package main runs the fireworks simulation in a terminal.
//
// Every terminal cell shows two vertically stacked pixels using an upper half
// block, so any truecolor terminal can display the show.
//
// Usage:
//
//	go run ./cmd/fireworks-term [flags]
//
// Flags:
//
//	--seed <n>       Random seed (0 = time based)
//	--no-auto        Disable the opening auto-launch sequence
//	--sound          Play a pop on every burst
//	--debug          Show tick and entity counts
//	--verbose        Write logs to --log
//	--log <path>     Log file (default fireworks-term.log)
//
// Controls:
//
//	Mouse Click      - Launch rockets at the pointer column
//	q / Esc / Ctrl-C - Quit
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/decker502/fireworks/internal/audio"
	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/render"
	"github.com/decker502/fireworks/pkg/scenes"
	"github.com/gdamore/tcell/v2"
)

const frameInterval = 16 * time.Millisecond // ~60 FPS

var (
	seedFlag    = flag.Int64("seed", 0, "Random seed, 0 uses the current time")
	noAutoFlag  = flag.Bool("no-auto", false, "Disable the automatic launch sequence")
	soundFlag   = flag.Bool("sound", false, "Play a pop on every burst")
	debugFlag   = flag.Bool("debug", false, "Show tick and entity counts")
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging (default off)")
	logFlag     = flag.String("log", "fireworks-term.log", "Log file used with --verbose")
)

// terminalShow 终端版烟花宿主
type terminalShow struct {
	screen  tcell.Screen
	surface *render.TerminalSurface
	scene   *scenes.FireworksScene
	sound   *audio.BurstSound

	mouseDown bool
	debug     bool
}

func main() {
	flag.Parse()

	closeLog, err := setupLogging(*verboseFlag, *logFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	cfg, err := builtinConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	show, err := newTerminalShow(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer show.cleanup()

	show.run()
}

// setupLogging 终端被画面占用，日志只能写文件；未开启 verbose 时丢弃
func setupLogging(verbose bool, path string) (func(), error) {
	if !verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
		return func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return func() { f.Close() }, nil
}

// builtinConfig 终端版和移动端一样只使用内置调参表，不读取外部文件
func builtinConfig() (*config.FireworksConfig, error) {
	cfg := config.DefaultFireworksConfig()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("烟花配置无效: %w", err)
	}
	return cfg, nil
}

func newTerminalShow(cfg *config.FireworksConfig) (*terminalShow, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()
	screen.HideCursor()
	screen.Clear()

	show := &terminalShow{
		screen:  screen,
		surface: render.NewTerminalSurface(screen),
		debug:   *debugFlag,
	}

	opts := scenes.Options{
		Seed:        *seedFlag,
		DisableAuto: *noAutoFlag,
	}
	if *soundFlag {
		sound, err := audio.NewBurstSound()
		if err != nil {
			// 没有声音也可以运行
			log.Printf("[Terminal] audio disabled: %v", err)
		} else {
			show.sound = sound
			opts.OnBurst = func(x, y float64, particles int) {
				sound.Play(particles)
			}
		}
	}
	show.scene = scenes.NewFireworksScene(cfg, opts)

	w, h := show.surface.Bounds()
	show.scene.Resize(w, h)
	log.Printf("[Terminal] screen %.0fx%.0f logical pixels", w, h)
	return show, nil
}

func (s *terminalShow) run() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := s.screen.PollEvent()
			if ev == nil {
				// Fini 之后 PollEvent 返回 nil
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !s.handleEvent(ev) {
				return
			}

		case <-ticker.C:
			s.scene.Tick(s.surface)
			s.surface.Present(s.overlay()...)
		}
	}
}

// handleEvent 返回 false 表示退出
func (s *terminalShow) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			return false
		}

	case *tcell.EventResize:
		s.screen.Sync()
		s.surface.Resize()
		w, h := s.surface.Bounds()
		s.scene.Resize(w, h)
		log.Printf("[Terminal] resized to %.0fx%.0f", w, h)

	case *tcell.EventMouse:
		pressed := ev.Buttons()&tcell.Button1 != 0
		if pressed && !s.mouseDown {
			x, y := ev.Position()
			s.scene.PointerDown(cellCenter(x, y))
		}
		s.mouseDown = pressed
	}
	return true
}

// cellCenter 返回单元格中心的逻辑坐标
func cellCenter(col, row int) (float64, float64) {
	return float64(col)*render.CellWidth + render.CellWidth/2,
		float64(row)*render.CellHeight + render.CellHeight/2
}

func (s *terminalShow) overlay() []string {
	if !s.debug {
		return nil
	}
	return []string{
		fmt.Sprintf("tick %d  %.1fs", s.scene.Ticks(), s.scene.Elapsed()),
		fmt.Sprintf("rockets %d  particles %d", s.scene.RocketCount(), s.scene.ParticleCount()),
	}
}

func (s *terminalShow) cleanup() {
	if s.sound != nil {
		s.sound.Close()
	}
	s.screen.Fini()
}
