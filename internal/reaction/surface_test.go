package reaction

import "image/color"

type drawCall struct {
	kind  string
	x, y  float64
	size  float64
	alpha float64
	glyph string
}

// recorder is a Surface that remembers every call.
type recorder struct {
	calls []drawCall
}

func (r *recorder) Clear() {
	r.calls = append(r.calls, drawCall{kind: "clear"})
}

func (r *recorder) FillCircle(x, y, radius float64, _ color.NRGBA, alpha float64) {
	r.calls = append(r.calls, drawCall{kind: "circle", x: x, y: y, size: radius, alpha: alpha})
}

func (r *recorder) FillRadialGradient(x, y, _, outer float64, _ []GradientStop, alpha float64) {
	r.calls = append(r.calls, drawCall{kind: "gradient", x: x, y: y, size: outer, alpha: alpha})
}

func (r *recorder) DrawGlyph(glyph string, x, y, size, _, alpha float64) {
	r.calls = append(r.calls, drawCall{kind: "glyph", x: x, y: y, size: size, alpha: alpha, glyph: glyph})
}

func (r *recorder) count(kind string) int {
	n := 0
	for _, c := range r.calls {
		if c.kind == kind {
			n++
		}
	}
	return n
}
