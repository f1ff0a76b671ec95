package reaction

import (
	"image/color"
	"math"
)

const (
	particleGravity = 0.015
	particleDrag    = 0.99
	particleShrink  = 0.985

	// DefaultMaxParticles bounds the particle pool.
	DefaultMaxParticles = 300
)

// Particle is a single decaying light speck.
type Particle struct {
	X, Y    float64
	VX, VY  float64
	Radius  float64
	Color   color.NRGBA
	Life    float64 // remaining life fraction, 1 at birth
	Decay   float64 // life lost per tick
	Gravity float64 // added to VY per tick
}

// NewParticle creates a slow, drifting trail particle at (x, y).
func NewParticle(x, y float64, c color.NRGBA, rng *Rand) Particle {
	return Particle{
		X:       x,
		Y:       y,
		VX:      rng.Jitter(1.2),
		VY:      rng.Jitter(0.8),
		Radius:  rng.Range(1.5, 5.5),
		Color:   c,
		Life:    1.0,
		Decay:   rng.Range(0.015, 0.04),
		Gravity: particleGravity,
	}
}

// Update advances the particle by one tick.
func (p *Particle) Update() {
	p.X += p.VX
	p.Y += p.VY
	p.VY += p.Gravity
	p.VX *= particleDrag
	p.Life -= p.Decay
	p.Radius *= particleShrink
}

// Alive reports whether the particle still has life left.
func (p *Particle) Alive() bool {
	return p.Life > 0
}

// Draw paints a soft glow and a brighter core. It never mutates p.
func (p *Particle) Draw(s Surface) {
	if p.Life <= 0 {
		return
	}
	glow := []GradientStop{
		{Offset: 0, Color: p.Color},
		{Offset: 1, Color: withAlpha(p.Color, 0)},
	}
	s.FillRadialGradient(p.X, p.Y, 0, p.Radius*2, glow, p.Life*0.5)
	s.FillCircle(p.X, p.Y, p.Radius*0.5, p.Color, p.Life*0.75)
}

// ParticleSystem is a bounded pool of particles. Once full, each new particle
// evicts the oldest one.
type ParticleSystem struct {
	particles *ring[Particle]
	rng       *Rand
}

// NewParticleSystem returns an empty pool holding at most capacity particles.
func NewParticleSystem(capacity int, rng *Rand) *ParticleSystem {
	return &ParticleSystem{
		particles: newRing[Particle](capacity),
		rng:       rng,
	}
}

// Emit adds count trail particles scattered just below (x, y).
func (ps *ParticleSystem) Emit(x, y float64, c color.NRGBA, count int) {
	const spread = 12
	for i := 0; i < count; i++ {
		px := x + ps.rng.Jitter(spread)
		py := y + ps.rng.Float64()*8
		ps.particles.push(NewParticle(px, py, c, ps.rng))
	}
}

// Burst sprays count particles radially out of (x, y).
func (ps *ParticleSystem) Burst(x, y float64, c color.NRGBA, count int) {
	for i := 0; i < count; i++ {
		angle := 2*math.Pi*float64(i)/float64(count) + ps.rng.Float64()*0.3
		speed := ps.rng.Range(1, 4)
		p := NewParticle(x, y, c, ps.rng)
		p.VX = math.Cos(angle) * speed
		p.VY = math.Sin(angle) * speed
		p.Radius = ps.rng.Range(2, 5)
		p.Decay = ps.rng.Range(0.02, 0.05)
		ps.particles.push(p)
	}
}

// Update advances every particle and drops the dead ones.
func (ps *ParticleSystem) Update() {
	ps.particles.each(func(p *Particle) { p.Update() })
	ps.particles.compact(func(p *Particle) bool { return p.Alive() })
}

// Draw renders particles oldest first.
func (ps *ParticleSystem) Draw(s Surface) {
	ps.particles.each(func(p *Particle) { p.Draw(s) })
}

// Len returns the number of particles in the pool.
func (ps *ParticleSystem) Len() int {
	return ps.particles.Len()
}

// Cap returns the pool capacity.
func (ps *ParticleSystem) Cap() int {
	return ps.particles.Cap()
}

// At returns a copy of the i-th particle, oldest first.
func (ps *ParticleSystem) At(i int) Particle {
	return *ps.particles.at(i)
}
