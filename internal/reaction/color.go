package reaction

import (
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Background gradient shared by every surface, top to bottom.
var (
	BackgroundTop    = color.NRGBA{R: 0x0f, G: 0x0f, B: 0x23, A: 0xff}
	BackgroundBottom = color.NRGBA{R: 0x1a, G: 0x1a, B: 0x2e, A: 0xff}
)

const hexDigits = "0123456789abcdefABCDEF"

var white = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

// ParseColor converts a "#rgb" or "#rrggbb" token (the "#" is optional)
// into an opaque color. Unparseable tokens come back as white; the caller is
// expected to supply palette colors.
func ParseColor(token string) color.NRGBA {
	c, ok := parseHex(token)
	if !ok {
		return white
	}
	return c
}

// ValidColor reports whether token is a well-formed "#rgb" or "#rrggbb"
// color.
func ValidColor(token string) bool {
	_, ok := parseHex(token)
	return ok
}

func parseHex(token string) (color.NRGBA, bool) {
	s := token
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	// colorful.Hex stops at the first non-hex digit without an error.
	if len(s) != 4 && len(s) != 7 || strings.TrimLeft(s[1:], hexDigits) != "" {
		return color.NRGBA{}, false
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, false
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}, true
}

// LerpColor blends a toward b by t, clamped to [0, 1]. Alpha is blended too.
func LerpColor(a, b color.NRGBA, t float64) color.NRGBA {
	t = clamp01(t)
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return color.NRGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}

// withAlpha returns c with its alpha replaced by a.
func withAlpha(c color.NRGBA, a uint8) color.NRGBA {
	c.A = a
	return c
}
