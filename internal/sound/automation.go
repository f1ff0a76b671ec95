package sound

import "math"

type eventKind int

const (
	eventSet eventKind = iota
	eventLinear
	eventExponential
)

type automationEvent struct {
	kind  eventKind
	at    float64 // seconds from voice start
	value float64
}

// Automation schedules a parameter over time the way a Web Audio AudioParam
// does: instant sets, and linear or exponential ramps that end at a given
// time and start from the previous event's value. Events must be added in
// time order.
type Automation struct {
	initial float64
	events  []automationEvent
}

// NewAutomation returns a parameter that holds initial until the first event.
func NewAutomation(initial float64) *Automation {
	return &Automation{initial: initial}
}

// SetValueAtTime jumps to v at time at.
func (a *Automation) SetValueAtTime(v, at float64) *Automation {
	a.events = append(a.events, automationEvent{kind: eventSet, at: at, value: v})
	return a
}

// LinearRampToValueAtTime ramps linearly to reach v at time at.
func (a *Automation) LinearRampToValueAtTime(v, at float64) *Automation {
	a.events = append(a.events, automationEvent{kind: eventLinear, at: at, value: v})
	return a
}

// ExponentialRampToValueAtTime ramps geometrically to reach v at time at.
// A ramp between values of different sign, or touching zero, holds the
// starting value instead.
func (a *Automation) ExponentialRampToValueAtTime(v, at float64) *Automation {
	a.events = append(a.events, automationEvent{kind: eventExponential, at: at, value: v})
	return a
}

// ValueAt evaluates the parameter at time t (seconds).
func (a *Automation) ValueAt(t float64) float64 {
	prevT, prevV := 0.0, a.initial
	for _, ev := range a.events {
		if ev.at <= t {
			prevT, prevV = ev.at, ev.value
			continue
		}
		frac := (t - prevT) / (ev.at - prevT)
		switch ev.kind {
		case eventLinear:
			return prevV + (ev.value-prevV)*frac
		case eventExponential:
			if prevV*ev.value <= 0 {
				return prevV
			}
			return prevV * math.Pow(ev.value/prevV, frac)
		default:
			return prevV
		}
	}
	return prevV
}
