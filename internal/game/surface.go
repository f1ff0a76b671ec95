package game

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"log"
	"math"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/iburimskiy/emoji-reactions/internal/reaction"
)

var _ reaction.Surface = (*Surface)(nil)

// gradientSegments is the number of slices in a radial gradient fan.
const gradientSegments = 32

// LoadFontSource loads the glyph font at path, or the bundled Go Regular
// font when path is empty.
func LoadFontSource(path string) (*text.GoTextFaceSource, error) {
	data := goregular.TTF
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read font %s: %w", path, err)
		}
		data = b
	}
	source, err := text.NewGoTextFaceSource(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create font source for %s: %w", path, err)
	}
	return source, nil
}

// loadFontOrFallback never fails: a bad font path logs and uses Go Regular.
func loadFontOrFallback(path string) *text.GoTextFaceSource {
	source, err := LoadFontSource(path)
	if err == nil {
		return source
	}
	log.Printf("[Game] Warning: %v, using fallback font", err)
	source, err = LoadFontSource("")
	if err != nil {
		panic(err)
	}
	return source
}

// Surface draws reactions onto an ebiten image.
type Surface struct {
	dst     *ebiten.Image
	top     color.NRGBA
	bottom  color.NRGBA
	opacity float64

	source *text.GoTextFaceSource
	faces  map[int]*text.GoTextFace

	white    *ebiten.Image
	vertices []ebiten.Vertex
	indices  []uint16
}

// NewSurface creates a surface that renders glyphs with source. bottom
// overrides the lower background color when non-zero.
func NewSurface(source *text.GoTextFaceSource, bottom color.NRGBA) *Surface {
	s := &Surface{
		top:     reaction.BackgroundTop,
		bottom:  reaction.BackgroundBottom,
		opacity: 1,
		source:  source,
		faces:   make(map[int]*text.GoTextFace),
	}
	if bottom.A != 0 {
		s.bottom = bottom
	}
	return s
}

// SetOpacity sets the background opacity used by Clear, for transparent
// windows.
func (s *Surface) SetOpacity(opacity float64) {
	s.opacity = clamp01(opacity)
}

// SetTarget selects the image subsequent calls draw onto.
func (s *Surface) SetTarget(dst *ebiten.Image) {
	s.dst = dst
}

func (s *Surface) whitePixel() *ebiten.Image {
	if s.white == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		s.white = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return s.white
}

// Face returns a cached face of the given pixel size.
func (s *Surface) Face(size float64) *text.GoTextFace {
	key := int(math.Round(size))
	if key < 1 {
		key = 1
	}
	f, ok := s.faces[key]
	if !ok {
		f = &text.GoTextFace{Source: s.source, Size: float64(key)}
		s.faces[key] = f
	}
	return f
}

// Clear paints the vertical background gradient.
func (s *Surface) Clear() {
	if s.dst == nil {
		return
	}
	b := s.dst.Bounds()
	x0, y0 := float32(b.Min.X), float32(b.Min.Y)
	x1, y1 := float32(b.Max.X), float32(b.Max.Y)

	s.vertices = s.vertices[:0]
	s.indices = s.indices[:0]
	s.appendVertex(x0, y0, s.top, s.opacity)
	s.appendVertex(x1, y0, s.top, s.opacity)
	s.appendVertex(x0, y1, s.bottom, s.opacity)
	s.appendVertex(x1, y1, s.bottom, s.opacity)
	s.indices = append(s.indices, 0, 1, 2, 1, 3, 2)
	s.flush()
}

func (s *Surface) FillCircle(x, y, radius float64, c color.NRGBA, alpha float64) {
	if s.dst == nil || radius <= 0 || alpha <= 0 {
		return
	}
	vector.DrawFilledCircle(s.dst, float32(x), float32(y), float32(radius), scaleAlpha(c, alpha), true)
}

// FillRadialGradient draws concentric rings as a triangle fan with
// per-vertex colors. The inner disc takes the first stop's color.
func (s *Surface) FillRadialGradient(x, y, inner, outer float64, stops []reaction.GradientStop, alpha float64) {
	if s.dst == nil || outer <= 0 || len(stops) == 0 || alpha <= 0 {
		return
	}

	type ring struct {
		radius float64
		color  color.NRGBA
	}
	rings := make([]ring, 0, len(stops)+1)
	rings = append(rings, ring{radius: inner, color: stops[0].Color})
	for _, st := range stops {
		rings = append(rings, ring{radius: inner + clamp01(st.Offset)*(outer-inner), color: st.Color})
	}

	s.vertices = s.vertices[:0]
	s.indices = s.indices[:0]
	s.appendVertex(float32(x), float32(y), stops[0].Color, alpha)
	for _, r := range rings {
		for i := 0; i < gradientSegments; i++ {
			a := 2 * math.Pi * float64(i) / gradientSegments
			vx := x + r.radius*math.Cos(a)
			vy := y + r.radius*math.Sin(a)
			s.appendVertex(float32(vx), float32(vy), r.color, alpha)
		}
	}

	for i := 0; i < gradientSegments; i++ {
		next := (i + 1) % gradientSegments
		s.indices = append(s.indices, 0, uint16(1+i), uint16(1+next))
	}
	for j := 0; j+1 < len(rings); j++ {
		base := 1 + j*gradientSegments
		outerBase := base + gradientSegments
		for i := 0; i < gradientSegments; i++ {
			next := (i + 1) % gradientSegments
			a, b := uint16(base+i), uint16(base+next)
			c, d := uint16(outerBase+i), uint16(outerBase+next)
			s.indices = append(s.indices, a, c, b, b, c, d)
		}
	}
	s.flush()
}

func (s *Surface) DrawGlyph(glyph string, x, y, size, rotation, alpha float64) {
	if s.dst == nil || s.source == nil || size <= 0 || alpha <= 0 {
		return
	}
	op := &text.DrawOptions{}
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	op.GeoM.Rotate(rotation)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleAlpha(float32(clamp01(alpha)))
	text.Draw(s.dst, glyph, s.Face(size), op)
}

// DrawText draws left-aligned text with its top-left corner at x, y.
func (s *Surface) DrawText(str string, x, y, size float64, c color.Color) {
	if s.dst == nil || s.source == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(s.dst, str, s.Face(size), op)
}

func (s *Surface) appendVertex(x, y float32, c color.NRGBA, alpha float64) {
	s.vertices = append(s.vertices, ebiten.Vertex{
		DstX:   x,
		DstY:   y,
		SrcX:   1,
		SrcY:   1,
		ColorR: float32(c.R) / 0xff,
		ColorG: float32(c.G) / 0xff,
		ColorB: float32(c.B) / 0xff,
		ColorA: float32(c.A) / 0xff * float32(clamp01(alpha)),
	})
}

func (s *Surface) flush() {
	op := &ebiten.DrawTrianglesOptions{}
	op.ColorScaleMode = ebiten.ColorScaleModeStraightAlpha
	op.AntiAlias = true
	s.dst.DrawTriangles(s.vertices, s.indices, s.whitePixel(), op)
}

func scaleAlpha(c color.NRGBA, alpha float64) color.NRGBA {
	c.A = uint8(math.Round(float64(c.A) * clamp01(alpha)))
	return c
}

// DrawCenteredText draws text centered on x, y.
func (s *Surface) DrawCenteredText(str string, x, y, size float64, c color.Color) {
	if s.dst == nil || s.source == nil {
		return
	}
	op := &text.DrawOptions{}
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(s.dst, str, s.Face(size), op)
}

// TextWidth reports the advance of str at size.
func (s *Surface) TextWidth(str string, size float64) float64 {
	if s.source == nil {
		return 0
	}
	return text.Advance(str, s.Face(size))
}
