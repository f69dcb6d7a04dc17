// Package app 提供烟花模拟的 ebiten 宿主
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"io"
	"log"
	"math"

	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/render"
	"github.com/decker502/fireworks/pkg/scenes"
	"github.com/decker502/fireworks/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Seed 随机种子，0 表示使用当前时间
	Seed int64
	// DisableAuto 关闭自动发射序列
	DisableAuto bool
	// Debug 在左上角显示 TPS/FPS 和实体数量
	Debug bool
	// Fireworks 调参表，nil 时使用默认值
	Fireworks *config.FireworksConfig
}

// App 是烟花模拟的宿主，实现 ebiten.Game 接口
//
// 模拟在 Update 中推进并绘制到持久画布上，Draw 只负责把画布贴到屏幕。
// 画布按 min(设备像素比, MaxDeviceScale) 分配物理像素。
type App struct {
	scene   *scenes.FireworksScene
	canvas  *render.EbitenSurface
	display config.DisplayConfig

	debug bool

	touchIDs []ebiten.TouchID

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化应用
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	fw := cfg.Fireworks
	if fw == nil {
		fw = config.DefaultFireworksConfig()
	}
	if err := fw.Validate(); err != nil {
		return nil, fmt.Errorf("烟花配置无效: %w", err)
	}

	scene := scenes.NewFireworksScene(fw, scenes.Options{
		Seed:        cfg.Seed,
		DisableAuto: cfg.DisableAuto,
	})

	log.Printf("[App] 初始化完成 (%dx%d, maxDeviceScale=%.2f)",
		fw.Display.Width, fw.Display.Height, fw.Display.MaxDeviceScale)

	return &App{
		scene:   scene,
		display: fw.Display,
		debug:   cfg.Debug,
	}, nil
}

// Update 推进一帧模拟
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.display.Width, a.display.Height)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", a.display.Width, a.display.Height)
			a.pendingWindowSizeReset = false
		}
	}

	// 键盘快捷键只在桌面端生效
	if !utils.IsMobile() {
		// F11 切换全屏
		if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
			if ebiten.IsFullscreen() {
				ebiten.SetFullscreen(false)
				a.pendingWindowSizeReset = true
				a.windowSizeResetCountdown = 3
			} else {
				ebiten.SetFullscreen(true)
			}
		}

		// Escape 退出（RunGame 返回 nil）
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			log.Printf("[App] Escape pressed, quitting")
			return ebiten.Termination
		}
	}

	// Layout 尚未调用，还没有画布
	if a.canvas == nil {
		return nil
	}

	a.handlePointer()
	a.scene.Tick(a.canvas)
	return nil
}

// handlePointer 把鼠标左键和新的触摸点转换为逻辑坐标并交给场景
func (a *App) handlePointer() {
	scale := a.canvas.Scale()

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		a.scene.PointerDown(float64(x)/scale, float64(y)/scale)
	}

	a.touchIDs = inpututil.AppendJustPressedTouchIDs(a.touchIDs[:0])
	for _, id := range a.touchIDs {
		x, y := ebiten.TouchPosition(id)
		a.scene.PointerDown(float64(x)/scale, float64(y)/scale)
	}
}

// Draw 把持久画布贴到屏幕
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	if a.canvas == nil {
		return
	}
	screen.DrawImage(a.canvas.Image(), nil)

	if a.debug {
		ebitenutil.DebugPrint(screen, fmt.Sprintf(
			"TPS: %.1f  FPS: %.1f\nRockets: %d  Particles: %d\nElapsed: %.1fs",
			ebiten.ActualTPS(), ebiten.ActualFPS(),
			a.scene.RocketCount(), a.scene.ParticleCount(), a.scene.Elapsed()))
	}
}

// Layout 返回物理像素尺寸
//
// 逻辑视口等于窗口大小，画布按设备像素比放大，像素比不超过 MaxDeviceScale。
// 尺寸变化时画布会重新分配（已绘制的内容被清空）。
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	scale := DeviceScale(a.monitorScale(), a.display.MaxDeviceScale)

	if a.canvas == nil {
		a.canvas = render.NewEbitenSurface(outsideWidth, outsideHeight, scale)
		log.Printf("[App] 创建画布 %dx%d @%.2fx", outsideWidth, outsideHeight, scale)
	} else {
		a.canvas.Resize(outsideWidth, outsideHeight, scale)
	}
	a.scene.Resize(float64(outsideWidth), float64(outsideHeight))

	b := a.canvas.Image().Bounds()
	return b.Dx(), b.Dy()
}

func (a *App) monitorScale() float64 {
	if m := ebiten.Monitor(); m != nil {
		return m.DeviceScaleFactor()
	}
	return 1
}

// Scene 返回烟花场景
func (a *App) Scene() *scenes.FireworksScene {
	return a.scene
}

// DeviceScale 返回画布使用的像素比 min(deviceScale, maxScale)
// deviceScale 无效（<= 0）时按 1 处理，maxScale <= 0 表示不限制
func DeviceScale(deviceScale, maxScale float64) float64 {
	if deviceScale <= 0 {
		deviceScale = 1
	}
	if maxScale > 0 {
		deviceScale = math.Min(deviceScale, maxScale)
	}
	return deviceScale
}
