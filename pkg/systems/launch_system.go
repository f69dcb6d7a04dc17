package systems

import (
	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/ecs"
	"github.com/decker502/fireworks/pkg/entities"
	"github.com/decker502/fireworks/pkg/utils"
)

// LaunchSystem 火箭发射调度
//
// 两种发射来源：
//   - 自动序列：按开场后经过的时间分阶段，以每帧概率发射（暖场、庆典、余韵）
//   - 用户触发：指针按下时在该 X 附近一次发射多枚
//
// 所有火箭都从视口底部以下 SpawnBelow 像素处升起。
type LaunchSystem struct {
	EntityManager *ecs.EntityManager

	launch *config.LaunchConfig
	rocket *config.RocketConfig
	rng    *utils.Random

	// AutoEnabled 为 false 时 AutoSequence 不发射任何火箭
	AutoEnabled bool

	width  float64
	height float64
}

// NewLaunchSystem 创建发射调度系统（默认启用自动序列）
func NewLaunchSystem(em *ecs.EntityManager, launch *config.LaunchConfig, rocket *config.RocketConfig, rng *utils.Random) *LaunchSystem {
	return &LaunchSystem{
		EntityManager: em,
		launch:        launch,
		rocket:        rocket,
		rng:           rng,
		AutoEnabled:   true,
	}
}

// SetViewport 更新逻辑视口尺寸，用于计算发射点和目标点
func (ls *LaunchSystem) SetViewport(width, height float64) {
	ls.width = width
	ls.height = height
}

// SpawnY 返回发射点 Y（视口底部以下）
func (ls *LaunchSystem) SpawnY() float64 {
	return ls.height + ls.launch.SpawnBelow
}

// Launch 在随机 X（视口宽度的 SpawnX 区间内）发射一枚火箭
func (ls *LaunchSystem) Launch() ecs.EntityID {
	x := ls.rng.Range(ls.width*ls.launch.SpawnX.Min, ls.width*ls.launch.SpawnX.Max)
	return ls.LaunchAt(x, ls.SpawnY())
}

// LaunchAt 从 (x, y) 发射一枚火箭
//
// 目标点：X 在 x ± TargetJitterX 内随机，Y 在视口高度的 TargetY 区间内随机。
func (ls *LaunchSystem) LaunchAt(x, y float64) ecs.EntityID {
	tx := x + ls.rng.Range(-ls.launch.TargetJitterX, ls.launch.TargetJitterX)
	ty := ls.rng.Range(ls.height*ls.launch.TargetY.Min, ls.height*ls.launch.TargetY.Max)
	return entities.NewRocketEntity(ls.EntityManager, ls.rng, ls.rocket, x, y, tx, ty)
}

// MultiLaunch 在 x ± MultiJitterX 范围内发射 n 枚火箭（n <= 0 时使用 MultiCount）
func (ls *LaunchSystem) MultiLaunch(x float64, n int) []ecs.EntityID {
	if n <= 0 {
		n = ls.launch.MultiCount
	}
	ids := make([]ecs.EntityID, 0, n)
	for i := 0; i < n; i++ {
		jitter := ls.rng.Range(-ls.launch.MultiJitterX, ls.launch.MultiJitterX)
		ids = append(ids, ls.LaunchAt(x+jitter, ls.SpawnY()))
	}
	return ids
}

// AutoSequence 根据开场后经过的秒数执行一帧的自动发射判定
//
// 每个阶段独立判定：From < elapsed < To 时以 Chance 的概率发射一枚，
// 重叠的阶段可能在同一帧各自发射。最后一个阶段结束后不再自动发射。
//
// 返回本帧发射的火箭数量。
func (ls *LaunchSystem) AutoSequence(elapsed float64) int {
	if !ls.AutoEnabled {
		return 0
	}
	launched := 0
	for _, phase := range ls.launch.Phases {
		if elapsed > phase.From && elapsed < phase.To && ls.rng.Chance(phase.Chance) {
			ls.Launch()
			launched++
		}
	}
	return launched
}
