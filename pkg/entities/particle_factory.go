package entities

import (
	"github.com/decker502/fireworks/pkg/components"
	"github.com/decker502/fireworks/pkg/ecs"
)

// ParticleSpawn describes the initial state of one burst particle.
type ParticleSpawn struct {
	X, Y     float64
	VX, VY   float64
	Life     int
	Hue      float64
	Size     float64
	Gravity  float64
	Friction float64
}

// NewParticleEntity creates a particle entity from its spawn description.
// MaxLife is fixed to the initial Life.
func NewParticleEntity(em *ecs.EntityManager, p ParticleSpawn) ecs.EntityID {
	id := em.CreateEntity()
	em.AddComponent(id, &components.PositionComponent{X: p.X, Y: p.Y})
	em.AddComponent(id, &components.VelocityComponent{VX: p.VX, VY: p.VY})
	em.AddComponent(id, &components.ParticleComponent{
		Life:     p.Life,
		MaxLife:  p.Life,
		Hue:      p.Hue,
		Size:     p.Size,
		Gravity:  p.Gravity,
		Friction: p.Friction,
	})
	return id
}
