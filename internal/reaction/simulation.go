package reaction

import (
	"time"
)

const (
	// DefaultMaxEmojis bounds the number of live emoji.
	DefaultMaxEmojis = 50

	spawnBurstParticles = 8
	trailParticles      = 3
	trailInterval       = 40 * time.Millisecond
	trailOffsetY        = 10
	reactionSpread      = 160
	statsInterval       = 200 * time.Millisecond

	// NoTopGlyph is reported as the top glyph before anything has spawned.
	NoTopGlyph = "—"
)

// burstCounts gives 1, 2 and 3 emoji with probability 1/2, 1/3 and 1/6.
var burstCounts = [...]int{1, 1, 1, 2, 2, 3}

// Sounder plays the effect that accompanies a spawn.
type Sounder interface {
	PlayPop()
	PlayBurstPop()
}

type silent struct{}

func (silent) PlayPop()      {}
func (silent) PlayBurstPop() {}

// Options tunes a Simulation. Zero values fall back to the defaults.
type Options struct {
	MaxEmojis    int
	MaxParticles int
	Rand         *Rand
	Sound        Sounder
	// NoParticles turns off spawn bursts and trails.
	NoParticles bool
}

// Stats is the aggregate reported to the UI layer.
type Stats struct {
	Total    int    // emoji spawned since start
	Active   int    // emoji currently animating
	TopGlyph string // most spawned glyph, NoTopGlyph if none
}

// GlyphCount is a per-glyph spawn counter.
type GlyphCount struct {
	Glyph string
	Count int
}

// Simulation owns every live emoji and particle and advances them frame by
// frame. It is not safe for concurrent use; drive it from one goroutine.
type Simulation struct {
	width, height float64

	emojis      *ring[*FloatingEmoji]
	particles   *ParticleSystem
	particlesOn bool
	rng         *Rand
	sound       Sounder

	now time.Duration

	total  int
	counts map[string]int
	order  []string // glyphs in first-seen order

	stats      Stats
	statsAt    time.Duration
	statsFresh bool
}

// NewSimulation creates an empty simulation over a width×height canvas.
func NewSimulation(width, height float64, opts Options) *Simulation {
	if opts.MaxEmojis <= 0 {
		opts.MaxEmojis = DefaultMaxEmojis
	}
	if opts.MaxParticles <= 0 {
		opts.MaxParticles = DefaultMaxParticles
	}
	if opts.Rand == nil {
		opts.Rand = NewRand(0)
	}
	if opts.Sound == nil {
		opts.Sound = silent{}
	}
	return &Simulation{
		width:       width,
		height:      height,
		emojis:      newRing[*FloatingEmoji](opts.MaxEmojis),
		particles:   NewParticleSystem(opts.MaxParticles, opts.Rand),
		particlesOn: !opts.NoParticles,
		rng:         opts.Rand,
		sound:       opts.Sound,
		counts:      make(map[string]int),
		stats:       Stats{TopGlyph: NoTopGlyph},
	}
}

// SpawnReaction releases one to three emoji around centerX and plays a pop.
// It returns how many were spawned.
func (s *Simulation) SpawnReaction(glyph, colorToken string, centerX float64) int {
	count := burstCounts[s.rng.IntN(len(burstCounts))]
	for i := 0; i < count; i++ {
		s.SpawnAt(glyph, colorToken, centerX+s.rng.Jitter(reactionSpread))
	}
	if count > 1 {
		s.sound.PlayBurstPop()
	} else {
		s.sound.PlayPop()
	}
	return count
}

// SpawnAt creates a single emoji at x, evicting the oldest one when the
// simulation is full, and bursts particles at the spawn point.
func (s *Simulation) SpawnAt(glyph, colorToken string, x float64) *FloatingEmoji {
	c := ParseColor(colorToken)
	e := NewFloatingEmoji(glyph, c, x, s.height, s.now, s.rng)
	s.emojis.push(e)

	s.total++
	if _, seen := s.counts[glyph]; !seen {
		s.order = append(s.order, glyph)
	}
	s.counts[glyph]++

	if s.particlesOn {
		s.particles.Burst(x, e.Y, c, spawnBurstParticles)
	}
	return e
}

// Step advances the simulation to now: emoji first, with trail emission,
// then particles. Stats are refreshed at most every 200ms.
func (s *Simulation) Step(now time.Duration) {
	s.now = now

	s.emojis.each(func(pe **FloatingEmoji) {
		e := *pe
		e.Update(now)
		if s.particlesOn && e.Alive() && e.Progress(now) < trailUntil && now-e.LastTrail >= trailInterval {
			s.particles.Emit(e.X, e.Y+trailOffsetY, e.Color, trailParticles)
			e.LastTrail = now
		}
	})
	s.emojis.compact(func(pe **FloatingEmoji) bool { return (*pe).Alive() })

	s.particles.Update()

	if !s.statsFresh || now-s.statsAt >= statsInterval {
		s.refreshStats()
		s.statsAt = now
		s.statsFresh = true
	}
}

// Render paints particles, then emoji on top of them.
func (s *Simulation) Render(surface Surface) {
	surface.Clear()
	s.particles.Draw(surface)
	s.emojis.each(func(pe **FloatingEmoji) { (*pe).Draw(surface) })
}

// Resize changes the canvas bounds used by future spawns. Callers should
// debounce it.
func (s *Simulation) Resize(width, height float64) {
	s.width, s.height = width, height
}

// Size returns the canvas bounds.
func (s *Simulation) Size() (width, height float64) {
	return s.width, s.height
}

// Stats returns the last throttled snapshot.
func (s *Simulation) Stats() Stats {
	return s.stats
}

// Total returns the live spawn total, unthrottled.
func (s *Simulation) Total() int {
	return s.total
}

// Active returns the live emoji count, unthrottled.
func (s *Simulation) Active() int {
	return s.emojis.Len()
}

// Counts returns per-glyph spawn counts in first-seen order.
func (s *Simulation) Counts() []GlyphCount {
	out := make([]GlyphCount, 0, len(s.order))
	for _, g := range s.order {
		out = append(out, GlyphCount{Glyph: g, Count: s.counts[g]})
	}
	return out
}

// Count returns how many times glyph was spawned.
func (s *Simulation) Count(glyph string) int {
	return s.counts[glyph]
}

// Emojis returns the live emoji, oldest first.
func (s *Simulation) Emojis() []*FloatingEmoji {
	out := make([]*FloatingEmoji, 0, s.emojis.Len())
	s.emojis.each(func(pe **FloatingEmoji) { out = append(out, *pe) })
	return out
}

// Particles exposes the particle pool.
func (s *Simulation) Particles() *ParticleSystem {
	return s.particles
}

// Rand exposes the simulation's random source, e.g. for picking a palette
// entry on a surface click.
func (s *Simulation) Rand() *Rand {
	return s.rng
}

func (s *Simulation) refreshStats() {
	top, topCount := NoTopGlyph, 0
	for _, g := range s.order {
		// Strictly greater: the first-seen glyph keeps the lead on ties.
		if n := s.counts[g]; n > topCount {
			top, topCount = g, n
		}
	}
	s.stats = Stats{
		Total:    s.total,
		Active:   s.emojis.Len(),
		TopGlyph: top,
	}
}
