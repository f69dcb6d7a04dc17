package components

// RocketComponent represents an ascending firework shell.
//
// A rocket has two states: ascending (Alive) and detonated (!Alive).
// The RocketSystem flips Alive to false exactly once, when it detonates the
// rocket into a burst, and destroys the entity in the same update.
//
// This is a pure data component following ECS principles - it contains no methods.
type RocketComponent struct {
	Hue   float64 // Degrees in [0, 360)
	Trail *Trail  // Recent positions, oldest first
	Alive bool
}
