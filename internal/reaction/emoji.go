package reaction

import (
	"image/color"
	"math"
	"time"
)

// Lifecycle stage boundaries, as fractions of the emoji's lifetime.
const (
	popInEnd   = 0.12
	shrinkFrom = 0.7
	fadeFrom   = 0.7
	trailUntil = 0.75

	elasticPeriod = 0.4

	spawnOffset  = 20  // spawn height above the canvas bottom
	escapeHeight = -60 // dead once y climbs above this
	initialScale = 0.1

	glyphBaseSize = 36
	minDrawSize   = 3
	minDrawAlpha  = 0.02
	glowFactor    = 1.8

	rotationStep = 0.01
)

// FloatingEmoji is one rising, wobbling glyph.
type FloatingEmoji struct {
	Glyph string
	Color color.NRGBA

	OriginX      float64
	X, Y         float64
	CanvasHeight float64

	RiseSpeed   float64
	WobbleAmp   float64
	WobbleFreq  float64
	WobblePhase float64

	Scale         float64
	MaxScale      float64
	Opacity       float64
	Rotation      float64
	RotationSpeed float64

	Born      time.Duration
	Lifetime  time.Duration
	LastTrail time.Duration

	alive bool
}

// NewFloatingEmoji anchors a new emoji at the bottom of the canvas with
// freshly drawn motion parameters.
func NewFloatingEmoji(glyph string, c color.NRGBA, originX, canvasHeight float64, now time.Duration, rng *Rand) *FloatingEmoji {
	return &FloatingEmoji{
		Glyph:         glyph,
		Color:         c,
		OriginX:       originX,
		X:             originX,
		Y:             canvasHeight - spawnOffset,
		CanvasHeight:  canvasHeight,
		RiseSpeed:     rng.Range(1.5, 4.0),
		WobbleAmp:     rng.Range(25, 45),
		WobbleFreq:    rng.Range(0.015, 0.03),
		WobblePhase:   rng.Range(0, 2*math.Pi),
		Scale:         initialScale,
		MaxScale:      rng.Range(0.9, 1.3),
		Opacity:       1,
		RotationSpeed: rng.Range(-1.5, 1.5),
		Born:          now,
		Lifetime:      time.Duration(rng.Range(2800, 3600) * float64(time.Millisecond)),
		alive:         true,
	}
}

// Alive reports whether the emoji is still animating.
func (e *FloatingEmoji) Alive() bool {
	return e.alive
}

// Age is the time elapsed since the emoji was created.
func (e *FloatingEmoji) Age(now time.Duration) time.Duration {
	return now - e.Born
}

// Progress is age/lifetime clamped to [0, 1].
func (e *FloatingEmoji) Progress(now time.Duration) float64 {
	if e.Lifetime <= 0 {
		return 1
	}
	return clamp01(float64(e.Age(now)) / float64(e.Lifetime))
}

// Update advances the emoji by one tick.
func (e *FloatingEmoji) Update(now time.Duration) {
	if !e.alive {
		return
	}
	p := e.Progress(now)

	e.Y -= e.RiseSpeed
	// Wobble follows height risen, not time.
	e.X = e.OriginX + math.Sin(e.Y*e.WobbleFreq+e.WobblePhase)*e.WobbleAmp

	e.Scale = scaleAt(p, e.MaxScale)
	e.Opacity = opacityAt(p)
	e.Rotation += e.RotationSpeed * rotationStep

	if p >= 1 || e.Y < escapeHeight {
		e.alive = false
	}
}

// Draw renders the glow and the glyph under the current opacity.
func (e *FloatingEmoji) Draw(s Surface) {
	if !e.alive || e.Opacity < minDrawAlpha {
		return
	}
	size := glyphBaseSize * e.Scale
	if size < minDrawSize {
		return
	}
	glow := []GradientStop{
		{Offset: 0, Color: withAlpha(e.Color, 0x30)},
		{Offset: 0.5, Color: withAlpha(e.Color, 0x10)},
		{Offset: 1, Color: withAlpha(e.Color, 0)},
	}
	s.FillRadialGradient(e.X, e.Y, size*0.2, size*glowFactor, glow, e.Opacity)
	s.DrawGlyph(e.Glyph, e.X, e.Y, math.Round(size), e.Rotation, e.Opacity)
}

// scaleAt maps lifecycle progress to scale: elastic pop-in, hold, then a
// quadratic shrink to zero. The result stays within [0, maxScale].
func scaleAt(p, maxScale float64) float64 {
	var s float64
	switch {
	case p < popInEnd:
		s = maxScale * easeOutElastic(p/popInEnd, elasticPeriod)
	case p < shrinkFrom:
		s = maxScale
	default:
		t := (p - shrinkFrom) / (1 - shrinkFrom)
		s = maxScale * easeOutQuadShrink(clamp01(t))
	}
	return clamp(s, 0, maxScale)
}

// opacityAt is 1 until fadeFrom, then fades linearly to 0 at p = 1.
func opacityAt(p float64) float64 {
	if p <= fadeFrom {
		return 1
	}
	return clamp01(1 - (p-fadeFrom)/(1-fadeFrom))
}
