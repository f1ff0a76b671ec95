package sound

import (
	"log"
	"math/rand/v2"
	"time"

	"github.com/faiface/beep"
)

// State is the synthesizer lifecycle.
type State int

const (
	// StateUninitialized waits for the first user gesture to call Init.
	StateUninitialized State = iota
	// StateReady has an output and plays sounds when enabled.
	StateReady
	// StateDisabled means the output could not be created. It is final.
	StateDisabled
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateReady:
		return "ready"
	case StateDisabled:
		return "disabled"
	default:
		return "unknown"
	}
}

const (
	DefaultVolume     = 0.15
	DefaultSampleRate = 44100
)

// Options configures a Synthesizer. Zero values fall back to defaults; set
// Muted to start with playback toggled off.
type Options struct {
	Volume     float64
	SampleRate int
	Muted      bool
	Open       OpenFunc
	Rand       *rand.Rand
}

// Synthesizer plays procedurally generated pop sounds. It is driven from the
// frame goroutine; voices render on the output's own goroutine.
type Synthesizer struct {
	open    OpenFunc
	out     Output
	state   State
	enabled bool
	volume  float64
	rate    beep.SampleRate
	rng     *rand.Rand
}

// NewSynthesizer returns an uninitialized synthesizer.
func NewSynthesizer(opts Options) *Synthesizer {
	if opts.Volume <= 0 {
		opts.Volume = DefaultVolume
	}
	if opts.SampleRate <= 0 {
		opts.SampleRate = DefaultSampleRate
	}
	if opts.Open == nil {
		opts.Open = OpenSpeaker
	}
	if opts.Rand == nil {
		seed := uint64(time.Now().UnixNano())
		opts.Rand = rand.New(rand.NewPCG(seed, seed>>1))
	}
	return &Synthesizer{
		open:    opts.Open,
		enabled: !opts.Muted,
		volume:  clampVolume(opts.Volume),
		rate:    beep.SampleRate(opts.SampleRate),
		rng:     opts.Rand,
	}
}

// Init creates the output on first call. Later calls do nothing. A failure
// is logged and leaves the synthesizer permanently disabled.
func (s *Synthesizer) Init() {
	if s.state != StateUninitialized {
		return
	}
	out, err := s.open(s.rate)
	if err == nil && out == nil {
		err = ErrNoOutput
	}
	if err != nil {
		log.Printf("[Synthesizer] Warning: audio unavailable, sounds disabled: %v", err)
		s.state = StateDisabled
		return
	}
	s.out = out
	s.state = StateReady
	log.Printf("[Synthesizer] Audio ready (%d Hz, volume %.2f)", s.rate, s.volume)
}

// PlayPop plays the bubble pop used for single reactions.
func (s *Synthesizer) PlayPop() {
	if !s.canPlay() {
		return
	}
	s.out.Play(withVolume(newPop(s.rng, s.rate), s.volume))
}

// PlayBurstPop plays the lighter, randomly pitched pop used for bursts.
func (s *Synthesizer) PlayBurstPop() {
	if !s.canPlay() {
		return
	}
	s.out.Play(withVolume(newBurstPop(s.rng, s.rate), s.volume))
}

// Toggle flips playback on or off and returns the new setting.
func (s *Synthesizer) Toggle() bool {
	s.enabled = !s.enabled
	return s.enabled
}

// SetEnabled turns playback on or off.
func (s *Synthesizer) SetEnabled(enabled bool) {
	s.enabled = enabled
}

// Enabled reports the playback toggle, regardless of lifecycle state.
func (s *Synthesizer) Enabled() bool {
	return s.enabled
}

// State reports the lifecycle state.
func (s *Synthesizer) State() State {
	return s.state
}

// SetVolume sets the peak gain, clamped to [0, 1].
func (s *Synthesizer) SetVolume(v float64) {
	s.volume = clampVolume(v)
}

// Volume returns the peak gain.
func (s *Synthesizer) Volume() float64 {
	return s.volume
}

// Level reports the recent output RMS when the output can measure it.
func (s *Synthesizer) Level() float64 {
	if m, ok := s.out.(interface{ Level() float64 }); ok {
		return m.Level()
	}
	return 0
}

// Close releases the output. The synthesizer stays silent afterwards.
func (s *Synthesizer) Close() error {
	if s.out == nil {
		return nil
	}
	err := s.out.Close()
	s.out = nil
	s.state = StateDisabled
	return err
}

func (s *Synthesizer) canPlay() bool {
	return s.state == StateReady && s.enabled
}

func clampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
