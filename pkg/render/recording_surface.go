package render

import "image/color"

// OpKind identifies a recorded draw call.
type OpKind int

const (
	OpFillRect OpKind = iota
	OpFillCircle
)

// Op is one recorded fill, together with the glow state active at that time.
type Op struct {
	Kind OpKind

	X, Y float64 // rect origin or circle centre
	W, H float64 // rect only
	R    float64 // circle only

	Color     color.Color
	GlowBlur  float64
	GlowColor color.Color
}

// RecordingSurface is a Surface that only records what was drawn.
// It is used by tests and by headless runs that have no display.
type RecordingSurface struct {
	Width  float64
	Height float64
	Ops    []Op

	glowBlur  float64
	glowColor color.Color
}

// NewRecordingSurface creates a recording surface with the given logical size.
func NewRecordingSurface(width, height float64) *RecordingSurface {
	return &RecordingSurface{Width: width, Height: height}
}

func (s *RecordingSurface) Bounds() (float64, float64) {
	return s.Width, s.Height
}

func (s *RecordingSurface) FillRect(x, y, w, h float64, clr color.Color) {
	s.Ops = append(s.Ops, Op{
		Kind: OpFillRect, X: x, Y: y, W: w, H: h,
		Color: clr, GlowBlur: s.glowBlur, GlowColor: s.glowColor,
	})
}

func (s *RecordingSurface) FillCircle(cx, cy, r float64, clr color.Color) {
	s.Ops = append(s.Ops, Op{
		Kind: OpFillCircle, X: cx, Y: cy, R: r,
		Color: clr, GlowBlur: s.glowBlur, GlowColor: s.glowColor,
	})
}

func (s *RecordingSurface) SetGlow(blur float64, clr color.Color) {
	s.glowBlur = blur
	s.glowColor = clr
}

func (s *RecordingSurface) ResetGlow() {
	s.glowBlur = 0
	s.glowColor = nil
}

// GlowActive reports whether a glow is still set.
func (s *RecordingSurface) GlowActive() bool {
	return s.glowBlur != 0 || s.glowColor != nil
}

// Reset drops all recorded ops.
func (s *RecordingSurface) Reset() {
	s.Ops = s.Ops[:0]
}

// Count returns the number of recorded ops of the given kind.
func (s *RecordingSurface) Count(kind OpKind) int {
	n := 0
	for _, op := range s.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}
