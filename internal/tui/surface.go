package tui

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"github.com/iburimskiy/emoji-reactions/internal/reaction"
)

// A terminal cell stands in for a CellWidth x CellHeight block of
// simulation pixels.
const (
	CellWidth  = 8
	CellHeight = 16
)

const (
	// Glyphs fainter than this are not printed; a cell cannot fade text.
	minGlyphAlpha = 0.25
	smallDot      = '·'
	largeDot      = '•'
)

var glyphColor = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

var _ reaction.Surface = (*Surface)(nil)

type cell struct {
	bg    color.NRGBA
	fg    color.NRGBA
	mainc rune
	combc []rune
	glyph bool
}

// Surface rasterizes reactions onto a grid of terminal cells.
type Surface struct {
	cols, rows int
	cells      []cell
	top        color.NRGBA
	bottom     color.NRGBA
}

// NewSurface returns a cols x rows surface. bottom overrides the lower
// background color when non-zero.
func NewSurface(cols, rows int, bottom color.NRGBA) *Surface {
	s := &Surface{top: reaction.BackgroundTop, bottom: reaction.BackgroundBottom}
	if bottom.A != 0 {
		s.bottom = bottom
	}
	s.Resize(cols, rows)
	return s
}

// Resize changes the grid size and clears it.
func (s *Surface) Resize(cols, rows int) {
	s.cols = max(cols, 0)
	s.rows = max(rows, 0)
	s.cells = make([]cell, s.cols*s.rows)
	s.Clear()
}

func (s *Surface) Size() (cols, rows int) {
	return s.cols, s.rows
}

// Clear fills the grid with the vertical background gradient.
func (s *Surface) Clear() {
	for row := 0; row < s.rows; row++ {
		t := 0.0
		if s.rows > 1 {
			t = float64(row) / float64(s.rows-1)
		}
		bg := blend(s.top, s.bottom, t)
		for col := 0; col < s.cols; col++ {
			s.cells[row*s.cols+col] = cell{bg: bg, fg: glyphColor, mainc: ' '}
		}
	}
}

func (s *Surface) at(col, row int) *cell {
	if col < 0 || row < 0 || col >= s.cols || row >= s.rows {
		return nil
	}
	return &s.cells[row*s.cols+col]
}

func (s *Surface) cellAt(x, y float64) *cell {
	return s.at(int(math.Floor(x/CellWidth)), int(math.Floor(y/CellHeight)))
}

// FillCircle tints every cell whose center lies inside the circle. Circles
// smaller than a cell become a dot character instead.
func (s *Surface) FillCircle(x, y, radius float64, c color.NRGBA, alpha float64) {
	if radius <= 0 || alpha <= 0 {
		return
	}
	if radius*2 < CellWidth {
		cl := s.cellAt(x, y)
		if cl == nil || cl.glyph {
			return
		}
		cl.mainc, cl.combc = smallDot, nil
		if radius >= 2.5 {
			cl.mainc = largeDot
		}
		cl.fg = blend(cl.bg, c, alpha*float64(c.A)/0xff)
		return
	}
	s.eachCovered(x, y, radius, func(cl *cell, _ float64) {
		cl.bg = blend(cl.bg, c, alpha*float64(c.A)/0xff)
	})
}

// FillRadialGradient tints covered cells with the stop color at each cell's
// distance from the center.
func (s *Surface) FillRadialGradient(x, y, inner, outer float64, stops []reaction.GradientStop, alpha float64) {
	if outer <= 0 || len(stops) == 0 || alpha <= 0 {
		return
	}
	s.eachCovered(x, y, outer, func(cl *cell, d float64) {
		t := 0.0
		if outer > inner {
			t = (d - inner) / (outer - inner)
		}
		c := stopColor(stops, t)
		cl.bg = blend(cl.bg, c, alpha*float64(c.A)/0xff)
	})
}

// DrawGlyph prints glyph in the cell under x, y. Size and rotation cannot
// be shown in a terminal.
func (s *Surface) DrawGlyph(glyph string, x, y, size, rotation, alpha float64) {
	if glyph == "" || alpha < minGlyphAlpha {
		return
	}
	cl := s.cellAt(x, y)
	if cl == nil {
		return
	}
	runes := []rune(glyph)
	cl.mainc = runes[0]
	cl.combc = runes[1:]
	cl.fg = blend(cl.bg, glyphColor, alpha)
	cl.glyph = true
	if runewidth.StringWidth(glyph) > 1 {
		// The right half belongs to the wide glyph.
		if next := s.cellAt(x+CellWidth, y); next != nil {
			next.mainc, next.combc, next.glyph = ' ', nil, true
		}
	}
}

// PutText writes plain text into the grid starting at a cell, keeping the
// background.
func (s *Surface) PutText(col, row int, str string, fg color.NRGBA) {
	for _, ch := range str {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		if cl := s.at(col, row); cl != nil {
			cl.mainc, cl.combc, cl.fg = ch, nil, fg
		}
		col += w
	}
}

func (s *Surface) eachCovered(x, y, radius float64, fn func(cl *cell, dist float64)) {
	c0 := int(math.Floor((x - radius) / CellWidth))
	c1 := int(math.Floor((x + radius) / CellWidth))
	r0 := int(math.Floor((y - radius) / CellHeight))
	r1 := int(math.Floor((y + radius) / CellHeight))
	for row := max(r0, 0); row <= min(r1, s.rows-1); row++ {
		for col := max(c0, 0); col <= min(c1, s.cols-1); col++ {
			cx := (float64(col) + 0.5) * CellWidth
			cy := (float64(row) + 0.5) * CellHeight
			d := math.Hypot(cx-x, cy-y)
			if d <= radius {
				fn(&s.cells[row*s.cols+col], d)
			}
		}
	}
}

// Flush copies the grid to screen with its top-left corner at (0, top).
func (s *Surface) Flush(screen tcell.Screen, top int) {
	for row := 0; row < s.rows; row++ {
		for col := 0; col < s.cols; col++ {
			cl := &s.cells[row*s.cols+col]
			style := tcell.StyleDefault.
				Background(tcellColor(cl.bg)).
				Foreground(tcellColor(cl.fg))
			screen.SetContent(col, top+row, cl.mainc, cl.combc, style)
		}
	}
}

// stopColor interpolates the gradient at t in [0, 1].
func stopColor(stops []reaction.GradientStop, t float64) color.NRGBA {
	if t <= stops[0].Offset {
		return stops[0].Color
	}
	for i := 1; i < len(stops); i++ {
		a, b := stops[i-1], stops[i]
		if t <= b.Offset {
			span := b.Offset - a.Offset
			if span <= 0 {
				return b.Color
			}
			return reaction.LerpColor(a.Color, b.Color, (t-a.Offset)/span)
		}
	}
	return stops[len(stops)-1].Color
}

// blend paints src over the opaque dst with the given coverage.
func blend(dst, src color.NRGBA, alpha float64) color.NRGBA {
	if alpha <= 0 {
		return dst
	}
	if alpha > 1 {
		alpha = 1
	}
	d, _ := colorful.MakeColor(opaque(dst))
	c, _ := colorful.MakeColor(opaque(src))
	r, g, b := d.BlendRgb(c, alpha).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}

func opaque(c color.NRGBA) color.NRGBA {
	c.A = 0xff
	return c
}

func tcellColor(c color.NRGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
