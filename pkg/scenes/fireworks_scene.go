package scenes

import (
	"image/color"
	"log"
	"math"
	"time"

	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/ecs"
	"github.com/decker502/fireworks/pkg/render"
	"github.com/decker502/fireworks/pkg/systems"
	"github.com/decker502/fireworks/pkg/utils"
)

// Options 场景创建选项
type Options struct {
	// Seed 随机种子，0 表示使用当前时间
	Seed int64
	// DisableAuto 关闭自动发射序列，只保留用户触发的发射
	DisableAuto bool
	// Now 时钟函数，nil 时使用 time.Now（测试中可替换）
	Now func() time.Time
	// OnBurst 每次爆炸后回调（如播放音效），particles 为本次生成的粒子数
	OnBurst func(x, y float64, particles int)
}

// FireworksScene 烟花主循环
//
// 场景拥有全部模拟状态：实体管理器（火箭和粒子）、各系统、随机源和开场时间。
// 每次 Tick 完整执行一帧：背景淡出 → 自动发射判定 → 火箭 → 粒子 → 清理。
// 场景不是并发安全的，Tick 和 PointerDown 必须在同一个 goroutine 中调用。
type FireworksScene struct {
	entityManager *ecs.EntityManager

	particleSystem *systems.ParticleSystem
	rocketSystem   *systems.RocketSystem
	burstSystem    *systems.BurstSystem
	launchSystem   *systems.LaunchSystem

	overlay   color.NRGBA
	now       func() time.Time
	startTime time.Time
	ticks     uint64
}

// NewFireworksScene 创建烟花场景
func NewFireworksScene(cfg *config.FireworksConfig, opts Options) *FireworksScene {
	rng := utils.NewTimeSeededRandom()
	if opts.Seed != 0 {
		rng = utils.NewRandom(opts.Seed)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	em := ecs.NewEntityManager()
	burst := systems.NewBurstSystem(em, &cfg.Burst, &cfg.Particle, rng)
	launch := systems.NewLaunchSystem(em, &cfg.Launch, &cfg.Rocket, rng)
	launch.AutoEnabled = !opts.DisableAuto
	if opts.OnBurst != nil {
		onBurst := opts.OnBurst
		burst.OnBurst = func(x, y float64, plan systems.BurstPlan) {
			onBurst(x, y, plan.Total())
		}
	}

	o := cfg.Loop.Overlay
	s := &FireworksScene{
		entityManager:  em,
		particleSystem: systems.NewParticleSystem(em, &cfg.Particle),
		rocketSystem:   systems.NewRocketSystem(em, &cfg.Rocket, rng, burst),
		burstSystem:    burst,
		launchSystem:   launch,
		overlay:        color.NRGBA{R: o.R, G: o.G, B: o.B, A: uint8(math.Round(o.A * 255))},
		now:            now,
		startTime:      now(),
	}

	log.Printf("[FireworksScene] 场景创建完成 (seed=%d, auto=%v)", opts.Seed, launch.AutoEnabled)
	return s
}

// Tick 执行一帧模拟并绘制到 surface
//
// 背景不清空，而是覆盖一层半透明暗色，旧画面逐帧淡出形成拖尾。
// 本帧引爆的火箭和过期的粒子在本帧内移除。
func (s *FireworksScene) Tick(surface render.Surface) {
	w, h := surface.Bounds()
	s.setViewport(w, h)

	surface.FillRect(0, 0, w, h, s.overlay)

	s.launchSystem.AutoSequence(s.Elapsed())

	s.rocketSystem.Update()
	s.rocketSystem.Draw(surface)

	s.particleSystem.Update()
	s.particleSystem.Draw(surface)

	s.entityManager.RemoveMarkedEntities()
	s.ticks++
}

// PointerDown 处理指针按下：在 x 附近发射一组火箭
// y 不参与计算，火箭总是从视口底部升起
func (s *FireworksScene) PointerDown(x, y float64) {
	s.launchSystem.MultiLaunch(x, 0)
}

// Resize 在宿主视口变化时更新发射范围（Tick 也会从 surface 读取尺寸）
func (s *FireworksScene) Resize(width, height float64) {
	s.setViewport(width, height)
}

// Elapsed 返回开场以来经过的秒数
func (s *FireworksScene) Elapsed() float64 {
	return s.now().Sub(s.startTime).Seconds()
}

// Ticks 返回已执行的帧数
func (s *FireworksScene) Ticks() uint64 {
	return s.ticks
}

// RocketCount 返回存活火箭数
func (s *FireworksScene) RocketCount() int {
	return s.rocketSystem.Count()
}

// ParticleCount 返回存活粒子数
func (s *FireworksScene) ParticleCount() int {
	return s.particleSystem.Count()
}

// Launcher 返回发射调度系统，供宿主或测试直接发射
func (s *FireworksScene) Launcher() *systems.LaunchSystem {
	return s.launchSystem
}

func (s *FireworksScene) setViewport(w, h float64) {
	s.launchSystem.SetViewport(w, h)
	s.rocketSystem.SetViewHeight(h)
}
