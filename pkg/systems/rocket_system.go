package systems

import (
	"slices"

	"github.com/decker502/fireworks/pkg/components"
	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/ecs"
	"github.com/decker502/fireworks/pkg/render"
	"github.com/decker502/fireworks/pkg/utils"
)

// Detonator turns a rocket's final position and hue into a burst.
type Detonator interface {
	Explode(x, y, hue float64)
}

// RocketSystem steps and draws rockets, and detonates them at the apex.
type RocketSystem struct {
	EntityManager *ecs.EntityManager
	Config        *config.RocketConfig

	rng       *utils.Random
	detonator Detonator

	viewHeight float64

	// 本帧引爆的火箭已标记删除，但仍要在本帧最后绘制一次
	detonated []ecs.EntityID
}

// NewRocketSystem creates a new RocketSystem.
func NewRocketSystem(em *ecs.EntityManager, cfg *config.RocketConfig, rng *utils.Random, detonator Detonator) *RocketSystem {
	return &RocketSystem{
		EntityManager: em,
		Config:        cfg,
		rng:           rng,
		detonator:     detonator,
	}
}

// SetViewHeight sets the logical viewport height used for the apex threshold.
func (rs *RocketSystem) SetViewHeight(h float64) {
	rs.viewHeight = h
}

// Update advances every live rocket and destroys the ones that detonated.
// Detonated rockets stay drawable until the next Draw.
func (rs *RocketSystem) Update() {
	rs.detonated = rs.detonated[:0]

	ids := ecs.GetEntitiesWith3[
		*components.RocketComponent,
		*components.PositionComponent,
		*components.VelocityComponent,
	](rs.EntityManager)

	for _, id := range ids {
		rocket, ok := ecs.GetComponent[*components.RocketComponent](rs.EntityManager, id)
		if !ok || !rocket.Alive {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](rs.EntityManager, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](rs.EntityManager, id)

		rs.StepRocket(rocket, pos, vel)

		if !rocket.Alive {
			rs.EntityManager.DestroyEntity(id)
			rs.detonated = append(rs.detonated, id)
		}
	}
}

// StepRocket integrates one frame and detonates the rocket when it has slowed
// down (vy above DetonateVelocity) or climbed above a random apex line.
//
// The apex line is resampled on every step in [H*Apex.Min, H*Apex.Max), so
// the detonation altitude is not fixed at launch.
// Detonation happens at most once: a dead rocket is never stepped again.
func (rs *RocketSystem) StepRocket(rocket *components.RocketComponent, pos *components.PositionComponent, vel *components.VelocityComponent) {
	if !rocket.Alive {
		return
	}

	rocket.Trail.Push(pos.X, pos.Y)

	pos.X += vel.VX
	pos.Y += vel.VY
	vel.VY += rs.Config.Gravity
	vel.VX *= rs.Config.Friction

	h := rs.viewHeight
	if vel.VY > rs.Config.DetonateVelocity || pos.Y < rs.rng.Range(h*rs.Config.Apex.Min, h*rs.Config.Apex.Max) {
		rocket.Alive = false
		rs.detonator.Explode(pos.X, pos.Y, rocket.Hue)
	}
}

// Draw renders every live rocket plus the rockets that detonated in the last
// Update, in creation order. Each detonated rocket is drawn once, at its
// burst position.
func (rs *RocketSystem) Draw(surface render.Surface) {
	ids := ecs.GetEntitiesWith2[
		*components.RocketComponent,
		*components.PositionComponent,
	](rs.EntityManager)

	if len(rs.detonated) > 0 {
		// ID 单调递增，按 ID 排序即为创建顺序
		ids = append(ids, rs.detonated...)
		slices.Sort(ids)
		rs.detonated = rs.detonated[:0]
	}

	for _, id := range ids {
		rocket, ok := ecs.GetComponent[*components.RocketComponent](rs.EntityManager, id)
		if !ok {
			continue // 已被 RemoveMarkedEntities 清理
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](rs.EntityManager, id)
		rs.DrawRocket(surface, rocket, pos)
	}
}

// DrawRocket renders the fading trail and the glowing head.
func (rs *RocketSystem) DrawRocket(surface render.Surface, rocket *components.RocketComponent, pos *components.PositionComponent) {
	cfg := rs.Config

	// 拖尾：越新的点越不透明，最旧的点透明度为 0
	n := rocket.Trail.Len()
	for i := 0; i < n; i++ {
		p := rocket.Trail.At(i)
		a := float64(i) / float64(n)
		surface.FillRect(p.X, p.Y, cfg.TrailSize, cfg.TrailSize,
			render.HSLA{H: rocket.Hue, S: 1, L: cfg.Lightness, A: a * cfg.TrailAlpha})
	}

	surface.SetGlow(cfg.GlowBlur, render.HSLA{H: rocket.Hue, S: 1, L: cfg.Lightness, A: cfg.GlowAlpha})
	surface.FillCircle(pos.X, pos.Y, cfg.HeadRadius, render.HSLA{H: rocket.Hue, S: 1, L: cfg.Lightness, A: cfg.HeadAlpha})
	surface.ResetGlow()
}

// Count returns the number of live rockets.
func (rs *RocketSystem) Count() int {
	return len(ecs.GetEntitiesWith1[*components.RocketComponent](rs.EntityManager))
}
