package sound

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/faiface/beep"
)

// Wave selects an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveTriangle
)

func (w Wave) sample(phase float64) float64 {
	switch w {
	case WaveTriangle:
		switch {
		case phase < 0.25:
			return 4 * phase
		case phase < 0.75:
			return 2 - 4*phase
		default:
			return 4*phase - 4
		}
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// toneVoice is an oscillator whose frequency and gain follow automations.
type toneVoice struct {
	wave   Wave
	freq   *Automation
	gain   *Automation
	rate   beep.SampleRate
	phase  float64
	pos    int
	length int
}

func newTone(wave Wave, freq, gain *Automation, d time.Duration, rate beep.SampleRate) *toneVoice {
	return &toneVoice{
		wave:   wave,
		freq:   freq,
		gain:   gain,
		rate:   rate,
		length: rate.N(d),
	}
}

func (v *toneVoice) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if v.pos >= v.length {
			return i, i > 0
		}
		t := float64(v.pos) / float64(v.rate)
		val := v.wave.sample(v.phase) * v.gain.ValueAt(t)
		samples[i][0] = val
		samples[i][1] = val

		v.phase += v.freq.ValueAt(t) / float64(v.rate)
		v.phase -= math.Floor(v.phase)
		v.pos++
	}
	return len(samples), true
}

func (v *toneVoice) Err() error { return nil }

// noiseVoice is band-passed white noise under a gain automation. The noise
// buffer is drawn up front so the audio goroutine never touches the shared
// random source.
type noiseVoice struct {
	buf    []float64
	filter *biquad
	gain   *Automation
	rate   beep.SampleRate
	pos    int
}

func newFilteredNoise(rng *rand.Rand, filter *biquad, gain *Automation, d time.Duration, rate beep.SampleRate) *noiseVoice {
	buf := make([]float64, rate.N(d))
	for i := range buf {
		buf[i] = (rng.Float64()*2 - 1) * 0.5
	}
	return &noiseVoice{buf: buf, filter: filter, gain: gain, rate: rate}
}

func (v *noiseVoice) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if v.pos >= len(v.buf) {
			return i, i > 0
		}
		t := float64(v.pos) / float64(v.rate)
		val := v.filter.process(v.buf[v.pos]) * v.gain.ValueAt(t)
		samples[i][0] = val
		samples[i][1] = val
		v.pos++
	}
	return len(samples), true
}

func (v *noiseVoice) Err() error { return nil }
