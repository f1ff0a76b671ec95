package game

import (
	"testing"
	"time"
)

func TestResizeDebounceWaitsForQuiet(t *testing.T) {
	base := time.Unix(0, 0)
	d := newResizeDebouncer(100*time.Millisecond, 420, 700)

	d.observe(500, 700, base)
	d.observe(600, 700, base.Add(50*time.Millisecond))
	if _, _, ok := d.ready(base.Add(120 * time.Millisecond)); ok {
		t.Fatal("size applied before it had been stable for the delay")
	}

	w, h, ok := d.ready(base.Add(150 * time.Millisecond))
	if !ok || w != 600 || h != 700 {
		t.Fatalf("ready = (%d, %d, %v), want (600, 700, true)", w, h, ok)
	}
	if _, _, ok := d.ready(base.Add(time.Second)); ok {
		t.Error("a settled size must be applied only once")
	}
}

func TestResizeDebounceIgnoresRepeats(t *testing.T) {
	base := time.Unix(0, 0)
	d := newResizeDebouncer(100*time.Millisecond, 420, 700)

	for i := 0; i < 10; i++ {
		d.observe(420, 700, base.Add(time.Duration(i)*16*time.Millisecond))
	}
	if _, _, ok := d.ready(base.Add(time.Second)); ok {
		t.Error("unchanged size reported as a resize")
	}

	// Layout reports the same pending size every frame; that must not
	// restart the quiet period.
	d.observe(800, 600, base)
	for i := 1; i <= 6; i++ {
		d.observe(800, 600, base.Add(time.Duration(i)*16*time.Millisecond))
	}
	if _, _, ok := d.ready(base.Add(100 * time.Millisecond)); !ok {
		t.Error("repeated reports of the pending size delayed the resize")
	}
}

func TestResizeDebounceBackToOriginal(t *testing.T) {
	base := time.Unix(0, 0)
	d := newResizeDebouncer(100*time.Millisecond, 420, 700)

	d.observe(500, 700, base)
	d.observe(420, 700, base.Add(10*time.Millisecond))
	w, h, ok := d.ready(base.Add(200 * time.Millisecond))
	if !ok || w != 420 || h != 700 {
		t.Errorf("ready = (%d, %d, %v), want (420, 700, true)", w, h, ok)
	}
}
