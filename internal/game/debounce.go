package game

import "time"

// resizeDebouncer holds back window size changes until the size has been
// stable for delay, so a drag-resize rescales the simulation once.
type resizeDebouncer struct {
	delay time.Duration

	width, height int // last applied size

	pending            bool
	pendingW, pendingH int
	changedAt          time.Time
}

func newResizeDebouncer(delay time.Duration, width, height int) *resizeDebouncer {
	return &resizeDebouncer{delay: delay, width: width, height: height}
}

// observe records the size reported for this frame.
func (d *resizeDebouncer) observe(width, height int, now time.Time) {
	if d.pending && width == d.pendingW && height == d.pendingH {
		return
	}
	if !d.pending && width == d.width && height == d.height {
		return
	}
	d.pending = true
	d.pendingW, d.pendingH = width, height
	d.changedAt = now
}

// ready returns the settled size once it has been stable long enough.
func (d *resizeDebouncer) ready(now time.Time) (width, height int, ok bool) {
	if !d.pending || now.Sub(d.changedAt) < d.delay {
		return 0, 0, false
	}
	d.pending = false
	d.width, d.height = d.pendingW, d.pendingH
	return d.width, d.height, true
}
