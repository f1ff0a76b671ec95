package sound

import (
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/faiface/beep"
)

const testRate = beep.SampleRate(44100)

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

// drain streams s to completion and returns every sample.
func drain(t *testing.T, s beep.Streamer) [][2]float64 {
	t.Helper()
	var out [][2]float64
	buf := make([][2]float64, 512)
	for i := 0; i < 1000; i++ {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
	t.Fatal("streamer never drained")
	return nil
}

func peak(samples [][2]float64) float64 {
	m := 0.0
	for _, s := range samples {
		m = math.Max(m, math.Abs(s[0]))
	}
	return m
}

func TestWaveShapes(t *testing.T) {
	tests := []struct {
		wave  Wave
		phase float64
		want  float64
	}{
		{WaveSine, 0, 0},
		{WaveSine, 0.25, 1},
		{WaveTriangle, 0, 0},
		{WaveTriangle, 0.25, 1},
		{WaveTriangle, 0.5, 0},
		{WaveTriangle, 0.75, -1},
	}
	for _, tt := range tests {
		if got := tt.wave.sample(tt.phase); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("wave %d at %v = %v, want %v", tt.wave, tt.phase, got, tt.want)
		}
	}
}

func TestToneVoiceLength(t *testing.T) {
	gain := NewAutomation(1)
	freq := NewAutomation(440)
	v := newTone(WaveSine, freq, gain, 100*time.Millisecond, testRate)

	samples := drain(t, v)
	if len(samples) != testRate.N(100*time.Millisecond) {
		t.Errorf("len = %d, want %d", len(samples), testRate.N(100*time.Millisecond))
	}
	if n, ok := v.Stream(make([][2]float64, 10)); n != 0 || ok {
		t.Errorf("drained voice streamed (%d, %v)", n, ok)
	}
}

func TestPopShape(t *testing.T) {
	samples := drain(t, newPop(testRand(), testRate))

	if len(samples) != testRate.N(popDuration) {
		t.Fatalf("pop length = %d samples, want %d", len(samples), testRate.N(popDuration))
	}
	p := peak(samples)
	if p < 0.3 || p > 1.3 {
		t.Errorf("pop peak = %v, want roughly unity", p)
	}
	// The tail has decayed to the floor.
	tail := samples[len(samples)-20:]
	if tp := peak(tail); tp > 0.01 {
		t.Errorf("pop tail peak = %v, want near silence", tp)
	}
	for i, s := range samples {
		if s[0] != s[1] {
			t.Fatalf("sample %d not mono: %v", i, s)
		}
	}
}

func TestBurstPopShape(t *testing.T) {
	samples := drain(t, newBurstPop(testRand(), testRate))

	if len(samples) != testRate.N(burstPopDuration) {
		t.Fatalf("burst length = %d samples, want %d", len(samples), testRate.N(burstPopDuration))
	}
	if p := peak(samples); p > burstPopLevel+1e-9 || p < 0.3 {
		t.Errorf("burst peak = %v, want within (0.3, %v]", p, burstPopLevel)
	}
}

func TestWithVolume(t *testing.T) {
	src := func() beep.Streamer {
		return newTone(WaveSine, NewAutomation(441), NewAutomation(1), 10*time.Millisecond, testRate)
	}
	full := peak(drain(t, src()))
	scaled := peak(drain(t, withVolume(src(), 0.15)))
	if math.Abs(scaled-full*0.15) > 1e-6 {
		t.Errorf("scaled peak = %v, want %v", scaled, full*0.15)
	}
	if silent := peak(drain(t, withVolume(src(), 0))); silent != 0 {
		t.Errorf("zero volume peak = %v, want 0", silent)
	}
}

func TestBandpassPassesCenter(t *testing.T) {
	response := func(freq float64) float64 {
		f := newBandpass(2000, 2, float64(testRate))
		m := 0.0
		for i := 0; i < 8000; i++ {
			y := f.process(math.Sin(2 * math.Pi * freq * float64(i) / float64(testRate)))
			if i > 4000 {
				m = math.Max(m, math.Abs(y))
			}
		}
		return m
	}
	center := response(2000)
	if math.Abs(center-1) > 0.05 {
		t.Errorf("gain at center = %v, want ~1", center)
	}
	if low := response(200); low > 0.2 {
		t.Errorf("gain at 200 Hz = %v, want attenuated", low)
	}
	if high := response(15000); high > 0.3 {
		t.Errorf("gain at 15 kHz = %v, want attenuated", high)
	}
}
