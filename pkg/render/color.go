package render

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// HSLA is a hue/saturation/lightness/alpha colour.
//
// H is in degrees (any value, wrapped into [0, 360)), S, L and A are in [0, 1].
// HSLA implements color.Color so it can be passed to any Surface directly.
type HSLA struct {
	H float64
	S float64
	L float64
	A float64
}

// RGBA implements color.Color (alpha-premultiplied, 16 bit per channel).
func (c HSLA) RGBA() (r, g, b, a uint32) {
	alpha := clamp01(c.A)
	rgb := colorful.Hsl(wrapHue(c.H), clamp01(c.S), clamp01(c.L)).Clamped()
	r = uint32(rgb.R*alpha*0xffff + 0.5)
	g = uint32(rgb.G*alpha*0xffff + 0.5)
	b = uint32(rgb.B*alpha*0xffff + 0.5)
	a = uint32(alpha*0xffff + 0.5)
	return
}

// WithAlpha returns a copy of c with a different alpha.
func (c HSLA) WithAlpha(a float64) HSLA {
	c.A = a
	return c
}

// ScaleAlpha converts clr to non-premultiplied RGBA and multiplies its alpha by k.
func ScaleAlpha(clr color.Color, k float64) color.NRGBA {
	n := color.NRGBAModel.Convert(clr).(color.NRGBA)
	n.A = uint8(math.Round(float64(n.A) * clamp01(k)))
	return n
}

func wrapHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
