package sound

import (
	"errors"
	"fmt"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

// ErrNoOutput is reported when an OpenFunc returns neither an output nor an
// error.
var ErrNoOutput = errors.New("audio output unavailable")

// Output is the audio graph voices are started on. Play must not block; the
// voice plays to completion on its own.
type Output interface {
	Play(voice beep.Streamer)
	Close() error
}

// OpenFunc creates the audio output at the given sample rate.
type OpenFunc func(rate beep.SampleRate) (Output, error)

const tapSize = 4096

// SpeakerOutput mixes voices onto the system speaker.
// Chain: mixer -> tap -> ctrl -> speaker.
type SpeakerOutput struct {
	mixer *beep.Mixer
	tap   *Tap
	ctrl  *beep.Ctrl
}

// OpenSpeaker initializes the speaker. beep's speaker is process-global, so
// open it once.
func OpenSpeaker(rate beep.SampleRate) (Output, error) {
	if err := speaker.Init(rate, rate.N(time.Second/20)); err != nil {
		return nil, fmt.Errorf("init speaker at %d Hz: %w", rate, err)
	}
	mixer := &beep.Mixer{}
	tap := NewTap(mixer, tapSize)
	ctrl := &beep.Ctrl{Streamer: tap, Paused: false}
	speaker.Play(ctrl)
	return &SpeakerOutput{mixer: mixer, tap: tap, ctrl: ctrl}, nil
}

// Play adds voice to the mixer.
func (o *SpeakerOutput) Play(voice beep.Streamer) {
	speaker.Lock()
	o.mixer.Add(voice)
	speaker.Unlock()
}

// Level reports the RMS of the most recent output.
func (o *SpeakerOutput) Level() float64 {
	return o.tap.Level(1024)
}

// Close silences the output and drops every voice still playing.
func (o *SpeakerOutput) Close() error {
	speaker.Lock()
	o.ctrl.Paused = true
	o.mixer.Clear()
	speaker.Unlock()
	return nil
}
