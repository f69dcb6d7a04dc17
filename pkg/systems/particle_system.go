package systems

import (
	"math"

	"github.com/decker502/fireworks/pkg/components"
	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/ecs"
	"github.com/decker502/fireworks/pkg/render"
)

// ParticleSystem steps, draws and prunes burst particles.
//
// Physics is integrated per frame (no dt): friction, then gravity, then
// position, then life. A particle whose life has reached zero is destroyed
// in the same Update.
//
// Follows ECS zero-coupling principle: communicates only through EntityManager.
type ParticleSystem struct {
	EntityManager *ecs.EntityManager
	Config        *config.ParticleConfig
}

// NewParticleSystem creates a new ParticleSystem instance.
func NewParticleSystem(em *ecs.EntityManager, cfg *config.ParticleConfig) *ParticleSystem {
	return &ParticleSystem{
		EntityManager: em,
		Config:        cfg,
	}
}

// Update advances every live particle by one frame and destroys expired ones.
func (ps *ParticleSystem) Update() {
	ids := ecs.GetEntitiesWith3[
		*components.ParticleComponent,
		*components.PositionComponent,
		*components.VelocityComponent,
	](ps.EntityManager)

	for _, id := range ids {
		particle, ok := ecs.GetComponent[*components.ParticleComponent](ps.EntityManager, id)
		if !ok {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](ps.EntityManager, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](ps.EntityManager, id)

		StepParticle(particle, pos, vel)

		if particle.Life <= 0 {
			ps.EntityManager.DestroyEntity(id)
		}
	}
}

// Draw renders every live particle.
func (ps *ParticleSystem) Draw(surface render.Surface) {
	ids := ecs.GetEntitiesWith2[
		*components.ParticleComponent,
		*components.PositionComponent,
	](ps.EntityManager)

	for _, id := range ids {
		particle, _ := ecs.GetComponent[*components.ParticleComponent](ps.EntityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](ps.EntityManager, id)
		ps.DrawParticle(surface, particle, pos)
	}
}

// Count returns the number of live particles.
func (ps *ParticleSystem) Count() int {
	return len(ecs.GetEntitiesWith1[*components.ParticleComponent](ps.EntityManager))
}

// StepParticle integrates one frame of particle physics.
func StepParticle(p *components.ParticleComponent, pos *components.PositionComponent, vel *components.VelocityComponent) {
	vel.VX *= p.Friction
	vel.VY *= p.Friction
	vel.VY += p.Gravity
	pos.X += vel.VX
	pos.Y += vel.VY
	p.Life--
}

// DrawParticle renders one particle as a glowing circle.
//
// Alpha follows the remaining life fraction t = life/maxLife (clamped at 0).
// The radius is size*(base + growth*(1-t)), so particles swell slightly as
// they fade. Drawing never mutates the particle.
func (ps *ParticleSystem) DrawParticle(surface render.Surface, p *components.ParticleComponent, pos *components.PositionComponent) {
	t := 0.0
	if p.MaxLife > 0 {
		t = float64(p.Life) / float64(p.MaxLife)
	}
	alpha := math.Max(0, t)
	radius := p.Size * (ps.Config.RadiusBase + ps.Config.RadiusGrowth*(1-t))

	surface.SetGlow(ps.Config.GlowBlur, render.HSLA{H: p.Hue, S: 1, L: ps.Config.GlowLightness, A: alpha})
	surface.FillCircle(pos.X, pos.Y, radius, render.HSLA{H: p.Hue, S: 1, L: ps.Config.Lightness, A: alpha})
	surface.ResetGlow()
}
