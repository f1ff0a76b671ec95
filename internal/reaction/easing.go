package reaction

import "math"

// Easing curves take a stage-local progress t in [0, 1].

// easeOutElastic overshoots past 1 and settles with an exponentially damped
// sine. period controls the oscillation width (0.4 gives one soft bounce).
func easeOutElastic(t, period float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return math.Pow(2, -10*t)*math.Sin((t-period/4)*(2*math.Pi)/period) + 1
}

// easeOutQuadShrink goes from 1 to 0 as 1-t².
func easeOutQuadShrink(t float64) float64 {
	return 1 - t*t
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}
