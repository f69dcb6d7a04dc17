package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// glowRings is the number of translucent rings used to fake a blurred shadow.
const glowRings = 3

// EbitenSurface is a persistent offscreen canvas.
//
// ebiten clears the screen every frame, so the simulation paints on this image
// instead and the host blits it to the screen. Old frames therefore fade out
// under the translucent background overlay rather than disappearing.
type EbitenSurface struct {
	canvas *ebiten.Image

	width  float64 // logical
	height float64 // logical
	scale  float64 // device pixel ratio

	glowBlur  float64
	glowColor color.Color
}

// NewEbitenSurface 创建逻辑尺寸为 width × height、像素比为 scale 的画布
func NewEbitenSurface(width, height int, scale float64) *EbitenSurface {
	s := &EbitenSurface{}
	s.Resize(width, height, scale)
	return s
}

// Resize 在视口尺寸或像素比变化时重新分配画布
//
// 与浏览器 canvas 一样，重新分配会清空已绘制的内容。
// 尺寸未变化时不做任何事。
func (s *EbitenSurface) Resize(width, height int, scale float64) {
	if scale <= 0 {
		scale = 1
	}
	if s.canvas != nil && s.width == float64(width) && s.height == float64(height) && s.scale == scale {
		return
	}
	if s.canvas != nil {
		s.canvas.Deallocate()
	}

	pw := max(1, int(float64(width)*scale))
	ph := max(1, int(float64(height)*scale))
	s.canvas = ebiten.NewImage(pw, ph)
	s.width = float64(width)
	s.height = float64(height)
	s.scale = scale
}

// Image returns the physical-resolution canvas.
func (s *EbitenSurface) Image() *ebiten.Image {
	return s.canvas
}

// Scale returns the device pixel ratio the canvas was allocated with.
func (s *EbitenSurface) Scale() float64 {
	return s.scale
}

func (s *EbitenSurface) Bounds() (float64, float64) {
	return s.width, s.height
}

func (s *EbitenSurface) FillRect(x, y, w, h float64, clr color.Color) {
	if s.glowBlur > 0 {
		for i := glowRings; i >= 1; i-- {
			grow := s.glowBlur * float64(i) / glowRings
			vector.DrawFilledRect(s.canvas,
				s.px(x-grow/2), s.px(y-grow/2), s.px(w+grow), s.px(h+grow),
				ScaleAlpha(s.glowColor, 0.18), true)
		}
	}
	vector.DrawFilledRect(s.canvas, s.px(x), s.px(y), s.px(w), s.px(h), clr, true)
}

func (s *EbitenSurface) FillCircle(cx, cy, r float64, clr color.Color) {
	if s.glowBlur > 0 {
		// 由外向内绘制半透明光晕环，近似 canvas 的 shadowBlur
		for i := glowRings; i >= 1; i-- {
			grow := s.glowBlur * float64(i) / glowRings
			vector.DrawFilledCircle(s.canvas, s.px(cx), s.px(cy), s.px(r+grow),
				ScaleAlpha(s.glowColor, 0.18), true)
		}
	}
	vector.DrawFilledCircle(s.canvas, s.px(cx), s.px(cy), s.px(r), clr, true)
}

func (s *EbitenSurface) SetGlow(blur float64, clr color.Color) {
	s.glowBlur = blur
	s.glowColor = clr
}

func (s *EbitenSurface) ResetGlow() {
	s.glowBlur = 0
	s.glowColor = nil
}

func (s *EbitenSurface) px(v float64) float32 {
	return float32(v * s.scale)
}
