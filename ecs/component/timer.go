package component

import "time"

// Timer is a repeating countdown. Tick reports completion at most once per call,
// however many periods the delta spans.
type Timer struct {
	Period  time.Duration
	Elapsed time.Duration

	justFinished bool
}

func NewTimer(period time.Duration) Timer {
	return Timer{Period: period}
}

// Tick adds dt. A non-positive period finishes on every tick.
func (t *Timer) Tick(dt time.Duration) {
	t.justFinished = false
	if dt < 0 {
		dt = 0
	}
	if t.Period <= 0 {
		t.Elapsed = 0
		t.justFinished = true
		return
	}
	t.Elapsed += dt
	if t.Elapsed >= t.Period {
		t.Elapsed %= t.Period
		t.justFinished = true
	}
}

// JustFinished reports whether the last Tick crossed the period.
func (t *Timer) JustFinished() bool {
	return t.justFinished
}

// Reset clears elapsed time and installs a new period.
func (t *Timer) Reset(period time.Duration) {
	t.Period = period
	t.Elapsed = 0
	t.justFinished = false
}
