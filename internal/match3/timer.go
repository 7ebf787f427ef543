package match3

import "time"

// TimerSignal is what a RoundTimer reports from Tick.
type TimerSignal uint8

const (
	TimerRunning TimerSignal = iota
	TimerExpired
	TimerCapped
)

// String returns the signal name.
func (s TimerSignal) String() string {
	switch s {
	case TimerRunning:
		return "Running"
	case TimerExpired:
		return "Expired"
	case TimerCapped:
		return "Capped"
	default:
		return "Unknown"
	}
}

// RoundTimer counts down from half of its maximum. Bonus seconds push it
// up; reaching zero expires the round and reaching the maximum caps it.
// Once it has fired either signal it stops until Reset.
type RoundTimer struct {
	max       time.Duration
	remaining time.Duration
	paused    bool
	stopped   bool
}

// NewRoundTimer creates a running timer capped at limit.
func NewRoundTimer(limit time.Duration) *RoundTimer {
	t := &RoundTimer{max: limit}
	t.Reset()
	return t
}

// Tick advances the timer by dt. Bonus seconds added since the last tick
// are accounted for before time is subtracted, so a cap is seen even when
// the same tick would bring the timer back under it.
func (t *RoundTimer) Tick(dt time.Duration) TimerSignal {
	if t.paused || t.stopped {
		return TimerRunning
	}
	if t.remaining >= t.max {
		t.remaining = t.max
		t.stopped = true
		return TimerCapped
	}
	t.remaining -= dt
	if t.remaining <= 0 {
		t.remaining = 0
		t.stopped = true
		return TimerExpired
	}
	return TimerRunning
}

// AddSeconds adds fractional bonus seconds.
func (t *RoundTimer) AddSeconds(seconds float64) {
	t.remaining += time.Duration(seconds * float64(time.Second))
}

// Pause stops Tick from counting down.
func (t *RoundTimer) Pause() {
	t.paused = true
}

// Resume undoes Pause.
func (t *RoundTimer) Resume() {
	t.paused = false
}

// Reset sets the timer back to half of max and starts it.
func (t *RoundTimer) Reset() {
	t.remaining = t.max / 2
	t.paused = false
	t.stopped = false
}

// Remaining returns the time left in the round.
func (t *RoundTimer) Remaining() time.Duration {
	return t.remaining
}

// Max returns the cap that advances the level when reached.
func (t *RoundTimer) Max() time.Duration {
	return t.max
}

// Paused reports whether the timer is paused.
func (t *RoundTimer) Paused() bool {
	return t.paused
}

// Fraction is remaining/max clamped to [0, 1].
func (t *RoundTimer) Fraction() float64 {
	if t.max <= 0 {
		return 0
	}
	f := float64(t.remaining) / float64(t.max)
	return min(max(f, 0), 1)
}
