package reaction

import (
	"math/rand/v2"
	"time"
)

// Rand draws the randomized per-instance parameters for emoji and particles.
// A fixed seed reproduces the exact same trajectories.
type Rand struct {
	r *rand.Rand
}

// NewRand returns a generator seeded with seed. A zero seed uses the clock.
func NewRand(seed uint64) *Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Rand{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Float64 returns a value in [0, 1).
func (r *Rand) Float64() float64 {
	return r.r.Float64()
}

// Range returns a value uniformly drawn from [lo, hi).
func (r *Rand) Range(lo, hi float64) float64 {
	return lo + r.r.Float64()*(hi-lo)
}

// Jitter returns a value in [-spread/2, spread/2).
func (r *Rand) Jitter(spread float64) float64 {
	return (r.r.Float64() - 0.5) * spread
}

// IntN returns a value in [0, n).
func (r *Rand) IntN(n int) int {
	return r.r.IntN(n)
}
