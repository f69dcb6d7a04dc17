package components

// ParticleComponent represents a single burst particle.
//
// Position and velocity live in PositionComponent and VelocityComponent.
// Particles are created only by the BurstSystem and are destroyed by the
// ParticleSystem once Life reaches zero.
//
// This is a pure data component following ECS principles - it contains no methods.
type ParticleComponent struct {
	// Lifecycle (生命周期, 帧)
	Life    int // Remaining frames, decremented once per step
	MaxLife int // Life at creation, never changes

	// Visual properties
	Hue  float64 // Degrees in [0, 360)
	Size float64 // Base radius in pixels

	// Physics (每帧)
	Gravity  float64 // Added to VY every step (glitter uses a smaller value)
	Friction float64 // Multiplies VX and VY every step
}
