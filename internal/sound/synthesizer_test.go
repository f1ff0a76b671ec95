package sound

import (
	"errors"
	"testing"

	"github.com/faiface/beep"

	"github.com/iburimskiy/emoji-reactions/internal/config"
)

// fakeOutput records every voice started on it.
type fakeOutput struct {
	started []beep.Streamer
	closed  bool
	level   float64
}

func (f *fakeOutput) Play(voice beep.Streamer) { f.started = append(f.started, voice) }
func (f *fakeOutput) Close() error            { f.closed = true; return nil }
func (f *fakeOutput) Level() float64          { return f.level }

func newTestSynth(out *fakeOutput, opens *int, err error) *Synthesizer {
	return NewSynthesizer(Options{
		Rand: testRand(),
		Open: func(rate beep.SampleRate) (Output, error) {
			*opens++
			if err != nil {
				return nil, err
			}
			return out, nil
		},
	})
}

func TestSynthesizerSilentBeforeInit(t *testing.T) {
	out, opens := &fakeOutput{}, 0
	s := newTestSynth(out, &opens, nil)

	s.PlayPop()
	s.PlayBurstPop()
	if opens != 0 || len(out.started) != 0 {
		t.Errorf("opens=%d started=%d before Init, want 0/0", opens, len(out.started))
	}
	if s.State() != StateUninitialized {
		t.Errorf("State() = %v, want uninitialized", s.State())
	}
}

func TestSynthesizerInitIsIdempotent(t *testing.T) {
	out, opens := &fakeOutput{}, 0
	s := newTestSynth(out, &opens, nil)

	s.Init()
	s.Init()
	if opens != 1 {
		t.Errorf("output opened %d times, want 1", opens)
	}
	if s.State() != StateReady {
		t.Fatalf("State() = %v, want ready", s.State())
	}

	s.PlayPop()
	if len(out.started) != 1 {
		t.Errorf("PlayPop started %d voices, want 1", len(out.started))
	}
	s.PlayBurstPop()
	if len(out.started) != 2 {
		t.Errorf("PlayBurstPop started %d voices total, want 2", len(out.started))
	}
}

func TestSynthesizerInitFailureDisables(t *testing.T) {
	out, opens := &fakeOutput{}, 0
	s := newTestSynth(out, &opens, errors.New("no device"))

	s.Init()
	if s.State() != StateDisabled {
		t.Fatalf("State() = %v, want disabled", s.State())
	}
	s.Init()
	if opens != 1 {
		t.Errorf("disabled synthesizer retried open: %d", opens)
	}

	s.PlayPop()
	s.PlayBurstPop()
	if len(out.started) != 0 {
		t.Errorf("disabled synthesizer started %d voices", len(out.started))
	}
}

func TestSynthesizerNilOutputDisables(t *testing.T) {
	s := NewSynthesizer(Options{
		Open: func(beep.SampleRate) (Output, error) { return nil, nil },
	})
	s.Init()
	if s.State() != StateDisabled {
		t.Errorf("State() = %v, want disabled", s.State())
	}
}

func TestSynthesizerToggle(t *testing.T) {
	out, opens := &fakeOutput{}, 0
	s := newTestSynth(out, &opens, nil)
	s.Init()

	if on := s.Toggle(); on {
		t.Fatal("Toggle() from enabled should return false")
	}
	s.PlayPop()
	s.PlayBurstPop()
	if len(out.started) != 0 {
		t.Errorf("toggled-off synthesizer started %d voices", len(out.started))
	}
	if s.State() != StateReady {
		t.Errorf("toggle changed lifecycle state to %v", s.State())
	}

	if on := s.Toggle(); !on {
		t.Fatal("second Toggle() should return true")
	}
	s.PlayPop()
	if len(out.started) != 1 {
		t.Errorf("re-enabled synthesizer started %d voices, want 1", len(out.started))
	}
}

func TestSynthesizerMutedOption(t *testing.T) {
	out, opens := &fakeOutput{}, 0
	s := NewSynthesizer(Options{
		Muted: true,
		Open: func(beep.SampleRate) (Output, error) {
			opens++
			return out, nil
		},
	})
	s.Init()
	s.PlayPop()
	if s.Enabled() || len(out.started) != 0 {
		t.Errorf("muted synthesizer: enabled=%v started=%d", s.Enabled(), len(out.started))
	}
}

func TestSynthesizerVolume(t *testing.T) {
	s := NewSynthesizer(Options{})
	if s.Volume() != DefaultVolume {
		t.Errorf("Volume() = %v, want default %v", s.Volume(), DefaultVolume)
	}
	s.SetVolume(2)
	if s.Volume() != 1 {
		t.Errorf("Volume() = %v after SetVolume(2), want 1", s.Volume())
	}
	s.SetVolume(-1)
	if s.Volume() != 0 {
		t.Errorf("Volume() = %v after SetVolume(-1), want 0", s.Volume())
	}
}

func TestSynthesizerLevelAndClose(t *testing.T) {
	out, opens := &fakeOutput{level: 0.4}, 0
	s := newTestSynth(out, &opens, nil)
	if s.Level() != 0 {
		t.Errorf("Level() before Init = %v, want 0", s.Level())
	}
	s.Init()
	if s.Level() != 0.4 {
		t.Errorf("Level() = %v, want 0.4", s.Level())
	}

	if err := s.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if !out.closed {
		t.Error("Close() did not close the output")
	}
	s.PlayPop()
	if len(out.started) != 0 {
		t.Error("closed synthesizer kept playing")
	}
}

func TestStateString(t *testing.T) {
	if StateReady.String() != "ready" || State(42).String() != "unknown" {
		t.Error("unexpected State strings")
	}
}

func TestDefaultsMatchConfig(t *testing.T) {
	if config.DefaultVolume != DefaultVolume || config.DefaultSampleRate != DefaultSampleRate {
		t.Errorf("config defaults %v/%v, synthesizer defaults %v/%v",
			config.DefaultVolume, config.DefaultSampleRate, DefaultVolume, DefaultSampleRate)
	}
}
