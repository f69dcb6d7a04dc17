// Package render defines the drawing surface the fireworks simulation paints on,
// together with its implementations: an ebiten canvas for the desktop host,
// a tcell half-block canvas for terminals, and a recording surface for tests.
//
// Coordinates are always logical pixels. Each implementation is responsible
// for mapping them to physical pixels or terminal cells.
package render

import "image/color"

// Surface is the 2D drawing context consumed by the simulation.
//
// Glow works like a canvas shadow: once SetGlow is called every following
// fill is drawn with a soft halo until ResetGlow.
type Surface interface {
	// Bounds returns the logical width and height of the drawable area.
	Bounds() (width, height float64)

	FillRect(x, y, w, h float64, clr color.Color)
	FillCircle(cx, cy, r float64, clr color.Color)

	SetGlow(blur float64, clr color.Color)
	ResetGlow()
}
