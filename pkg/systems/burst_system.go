package systems

import (
	"log"
	"math"

	"github.com/decker502/fireworks/pkg/components"
	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/ecs"
	"github.com/decker502/fireworks/pkg/entities"
	"github.com/decker502/fireworks/pkg/utils"
)

// BurstPlan holds the per-burst random parameters.
type BurstPlan struct {
	Count   int     // main burst particles
	Glitter int     // glitter particles
	Spread  float64 // upper bound of the main burst radial speed
}

// Total returns the number of particles the plan spawns.
func (p BurstPlan) Total() int {
	return p.Count + p.Glitter
}

// BurstSystem creates the particle population of a detonating rocket and
// keeps the global particle count under the configured cap.
type BurstSystem struct {
	EntityManager *ecs.EntityManager

	// OnBurst is called after every spawned burst, if set.
	OnBurst func(x, y float64, plan BurstPlan)

	burst    *config.BurstConfig
	particle *config.ParticleConfig
	rng      *utils.Random
}

// NewBurstSystem creates a new BurstSystem.
func NewBurstSystem(em *ecs.EntityManager, burst *config.BurstConfig, particle *config.ParticleConfig, rng *utils.Random) *BurstSystem {
	return &BurstSystem{
		EntityManager: em,
		burst:         burst,
		particle:      particle,
		rng:           rng,
	}
}

// PlanBurst samples the particle counts and spread for one burst.
func (bs *BurstSystem) PlanBurst() BurstPlan {
	return BurstPlan{
		Count:   bs.rng.IntRange(bs.burst.Count.Min, bs.burst.Count.Max),
		Spread:  bs.rng.Range(bs.burst.Spread.Min, bs.burst.Spread.Max),
		Glitter: bs.rng.IntRange(bs.burst.Glitter.Count.Min, bs.burst.Glitter.Count.Max),
	}
}

// Explode spawns a randomly planned burst at (x, y). It implements Detonator.
func (bs *BurstSystem) Explode(x, y, hue float64) {
	bs.SpawnBurst(x, y, hue, bs.PlanBurst())
}

// SpawnBurst spawns the main burst and the glitter sub-burst, then enforces
// the particle cap.
//
// Main burst particles are spaced evenly around the circle with a small
// angular jitter. Glitter particles get independent random velocities, a
// fixed hue and reduced gravity.
func (bs *BurstSystem) SpawnBurst(x, y, hue float64, plan BurstPlan) {
	cfg := bs.burst

	for i := 0; i < plan.Count; i++ {
		angle := 2*math.Pi*float64(i)/float64(plan.Count) + bs.rng.Range(-cfg.AngleJitter, cfg.AngleJitter)
		speed := bs.rng.Range(cfg.MinSpeed, plan.Spread)
		life := bs.rng.IntRange(cfg.Life.Min, cfg.Life.Max)
		size := bs.rng.Range(cfg.Size.Min, cfg.Size.Max)
		h := math.Mod(hue+bs.rng.Range(-cfg.HueJitter, cfg.HueJitter)+360, 360)

		entities.NewParticleEntity(bs.EntityManager, entities.ParticleSpawn{
			X:        x,
			Y:        y,
			VX:       math.Cos(angle) * speed,
			VY:       math.Sin(angle) * speed,
			Life:     life,
			Hue:      h,
			Size:     size,
			Gravity:  bs.particle.Gravity,
			Friction: bs.particle.Friction,
		})
	}

	glitter := cfg.Glitter
	for i := 0; i < plan.Glitter; i++ {
		entities.NewParticleEntity(bs.EntityManager, entities.ParticleSpawn{
			X:        x,
			Y:        y,
			VX:       bs.rng.Range(-glitter.Speed, glitter.Speed),
			VY:       bs.rng.Range(-glitter.Speed, glitter.Speed),
			Life:     bs.rng.IntRange(glitter.Life.Min, glitter.Life.Max),
			Hue:      glitter.Hue,
			Size:     bs.rng.Range(glitter.Size.Min, glitter.Size.Max),
			Gravity:  glitter.Gravity,
			Friction: bs.particle.Friction,
		})
	}

	bs.enforceCap()

	if bs.OnBurst != nil {
		bs.OnBurst(x, y, plan)
	}
}

// enforceCap destroys the oldest particles until at most MaxParticles remain.
// Old particles are already faded, so dropping them first is not visible.
func (bs *BurstSystem) enforceCap() {
	ids := ecs.GetEntitiesWith1[*components.ParticleComponent](bs.EntityManager)
	excess := len(ids) - bs.burst.MaxParticles
	if excess <= 0 {
		return
	}
	for _, id := range ids[:excess] {
		bs.EntityManager.DestroyEntity(id)
	}
	log.Printf("[BurstSystem] 粒子数超过上限 %d，丢弃最旧的 %d 个", bs.burst.MaxParticles, excess)
}
