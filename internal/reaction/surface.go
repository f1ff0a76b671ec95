package reaction

import "image/color"

// GradientStop is one color stop of a radial gradient. Offset runs from 0 at
// the inner radius to 1 at the outer radius. Color carries its own alpha.
type GradientStop struct {
	Offset float64
	Color  color.NRGBA
}

// Surface is the drawing target the simulation renders onto. Coordinates are
// in the simulation's own space (origin top-left, y grows downward). alpha
// multiplies whatever alpha the color already has.
type Surface interface {
	// Clear wipes the previous frame.
	Clear()
	// FillCircle paints a solid disc.
	FillCircle(x, y, radius float64, c color.NRGBA, alpha float64)
	// FillRadialGradient paints a disc of radius outer. Inside inner the
	// first stop's color is used.
	FillRadialGradient(x, y, inner, outer float64, stops []GradientStop, alpha float64)
	// DrawGlyph renders text centered on (x, y), rotated by rotation radians,
	// at the given pixel size.
	DrawGlyph(glyph string, x, y, size, rotation, alpha float64)
}
