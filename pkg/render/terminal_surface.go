package render

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
)

// Terminal cell geometry in logical pixels. Each cell is drawn with an upper
// half block, so it holds two square 8×8 "pixels" stacked vertically.
const (
	CellWidth  = 8
	CellHeight = 16

	pixelSize = CellHeight / 2
)

type rgb struct {
	r, g, b float64
}

// TerminalSurface rasterises the simulation onto a tcell screen.
//
// Colours are accumulated in a float framebuffer so alpha blending (and the
// fading background overlay) behave like they do on a real canvas. Shapes
// smaller than a pixel are treated as point sprites and blended into the
// pixel containing their centre.
type TerminalSurface struct {
	screen tcell.Screen

	cols, rows int
	pixels     []rgb // cols × rows*2, row-major

	glowBlur  float64
	glowColor color.Color
}

// NewTerminalSurface creates a surface sized to the current screen.
func NewTerminalSurface(screen tcell.Screen) *TerminalSurface {
	s := &TerminalSurface{screen: screen}
	s.Resize()
	return s
}

// Resize re-reads the screen size and reallocates the framebuffer when it changed.
func (s *TerminalSurface) Resize() {
	cols, rows := s.screen.Size()
	if cols == s.cols && rows == s.rows && s.pixels != nil {
		return
	}
	s.cols, s.rows = cols, rows
	s.pixels = make([]rgb, cols*rows*2)
}

func (s *TerminalSurface) Bounds() (float64, float64) {
	return float64(s.cols * CellWidth), float64(s.rows * CellHeight)
}

func (s *TerminalSurface) FillRect(x, y, w, h float64, clr color.Color) {
	if w < pixelSize && h < pixelSize {
		s.point(x+w/2, y+h/2, clr)
		return
	}
	x0, y0 := s.pixelAt(x, y)
	x1, y1 := s.pixelAt(x+w, y+h)
	for py := max(y0, 0); py <= min(y1, s.rows*2-1); py++ {
		for px := max(x0, 0); px <= min(x1, s.cols-1); px++ {
			s.blend(px, py, clr, 1)
		}
	}
}

func (s *TerminalSurface) FillCircle(cx, cy, r float64, clr color.Color) {
	if r*2 < pixelSize {
		s.point(cx, cy, clr)
		return
	}
	x0, y0 := s.pixelAt(cx-r, cy-r)
	x1, y1 := s.pixelAt(cx+r, cy+r)
	for py := max(y0, 0); py <= min(y1, s.rows*2-1); py++ {
		for px := max(x0, 0); px <= min(x1, s.cols-1); px++ {
			mx := (float64(px) + 0.5) * pixelSize
			my := (float64(py) + 0.5) * pixelSize
			if math.Hypot(mx-cx, my-cy) <= r {
				s.blend(px, py, clr, 1)
			}
		}
	}
}

func (s *TerminalSurface) SetGlow(blur float64, clr color.Color) {
	s.glowBlur = blur
	s.glowColor = clr
}

func (s *TerminalSurface) ResetGlow() {
	s.glowBlur = 0
	s.glowColor = nil
}

// Present copies the framebuffer to the screen and shows it.
// Each overlay string is printed as plain text on its own row, starting at
// the top-left corner.
func (s *TerminalSurface) Present(overlay ...string) {
	for row := 0; row < s.rows; row++ {
		for col := 0; col < s.cols; col++ {
			top := s.pixels[(row*2)*s.cols+col]
			bottom := s.pixels[(row*2+1)*s.cols+col]
			style := tcell.StyleDefault.
				Foreground(toTcell(top)).
				Background(toTcell(bottom))
			s.screen.SetContent(col, row, '▀', nil, style)
		}
	}

	textStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	for row, line := range overlay {
		if row >= s.rows {
			break
		}
		col := 0
		for _, r := range line {
			if col >= s.cols {
				break
			}
			s.screen.SetContent(col, row, r, nil, textStyle)
			col++
		}
	}
	s.screen.Show()
}

// point blends a sub-pixel shape; an active glow also bleeds into the
// four neighbouring pixels.
func (s *TerminalSurface) point(x, y float64, clr color.Color) {
	px, py := s.pixelAt(x, y)
	if s.glowBlur > 0 && s.glowColor != nil {
		k := math.Min(1, s.glowBlur/pixelSize) * 0.35
		s.blend(px-1, py, s.glowColor, k)
		s.blend(px+1, py, s.glowColor, k)
		s.blend(px, py-1, s.glowColor, k)
		s.blend(px, py+1, s.glowColor, k)
	}
	s.blend(px, py, clr, 1)
}

func (s *TerminalSurface) pixelAt(x, y float64) (int, int) {
	return int(math.Floor(x / pixelSize)), int(math.Floor(y / pixelSize))
}

func (s *TerminalSurface) blend(px, py int, clr color.Color, coverage float64) {
	if px < 0 || py < 0 || px >= s.cols || py >= s.rows*2 {
		return
	}
	n := color.NRGBAModel.Convert(clr).(color.NRGBA)
	a := float64(n.A) / 255 * coverage
	if a <= 0 {
		return
	}
	p := &s.pixels[py*s.cols+px]
	p.r = p.r*(1-a) + float64(n.R)/255*a
	p.g = p.g*(1-a) + float64(n.G)/255*a
	p.b = p.b*(1-a) + float64(n.B)/255*a
}

// pixel returns the accumulated colour at a framebuffer pixel.
func (s *TerminalSurface) pixel(px, py int) rgb {
	return s.pixels[py*s.cols+px]
}

func toTcell(c rgb) tcell.Color {
	return tcell.NewRGBColor(
		int32(math.Round(clamp01(c.r)*255)),
		int32(math.Round(clamp01(c.g)*255)),
		int32(math.Round(clamp01(c.b)*255)),
	)
}
