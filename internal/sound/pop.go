package sound

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
)

// Envelope floor reached at the end of every exponential decay.
const silenceFloor = 0.001

const (
	popDuration      = 150 * time.Millisecond
	popNoiseDuration = 60 * time.Millisecond
	popNoiseLevel    = 0.3
	popNoiseCenter   = 2000
	popNoiseQ        = 2

	burstPopDuration = 120 * time.Millisecond
	burstPopLevel    = 0.7
	burstPopMinFreq  = 400
	burstPopMaxFreq  = 800
)

// newPop builds the "bubble pop": a sine chirp 600→1200→300 Hz over 120ms
// with a quick attack and exponential decay, mixed with a short band-passed
// noise burst at 30%. Peak gain is 1; scale with withVolume.
func newPop(rng *rand.Rand, rate beep.SampleRate) beep.Streamer {
	freq := NewAutomation(600).
		SetValueAtTime(600, 0).
		ExponentialRampToValueAtTime(1200, 0.04).
		ExponentialRampToValueAtTime(300, 0.12)
	gain := NewAutomation(0).
		SetValueAtTime(0, 0).
		LinearRampToValueAtTime(1, 0.01).
		ExponentialRampToValueAtTime(silenceFloor, popDuration.Seconds())
	tone := newTone(WaveSine, freq, gain, popDuration, rate)

	noiseGain := NewAutomation(popNoiseLevel).
		SetValueAtTime(popNoiseLevel, 0).
		ExponentialRampToValueAtTime(silenceFloor, popNoiseDuration.Seconds())
	filter := newBandpass(popNoiseCenter, popNoiseQ, float64(rate))
	noise := newFilteredNoise(rng, filter, noiseGain, popNoiseDuration, rate)

	return beep.Mix(tone, noise)
}

// newBurstPop builds the lighter burst variant: a triangle tone from a random
// base in [400, 800) Hz up to 2.5× and down to 0.5× over 100ms, peaking at
// 70%.
func newBurstPop(rng *rand.Rand, rate beep.SampleRate) beep.Streamer {
	base := burstPopMinFreq + rng.Float64()*(burstPopMaxFreq-burstPopMinFreq)
	freq := NewAutomation(base).
		SetValueAtTime(base, 0).
		ExponentialRampToValueAtTime(base*2.5, 0.03).
		ExponentialRampToValueAtTime(base*0.5, 0.1)
	gain := NewAutomation(0).
		SetValueAtTime(0, 0).
		LinearRampToValueAtTime(burstPopLevel, 0.005).
		ExponentialRampToValueAtTime(silenceFloor, burstPopDuration.Seconds())
	return newTone(WaveTriangle, freq, gain, burstPopDuration, rate)
}

// withVolume scales s by vol. log2(0) is -Inf, so zero volume goes silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
