package core

import "time"

// Ticker paces a loop at a steady ticks-per-second rate. The solver's
// physical time step is a constant, so the tick rate only controls how often
// Step runs, never how far it advances.
type Ticker struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
}

// NewTicker constructs a Ticker targeting the given TPS.
func NewTicker(tps int) *Ticker {
	if tps <= 0 {
		tps = 60
	}
	t := &Ticker{step: time.Second / time.Duration(tps)}
	t.accumulator = t.step
	return t
}

// Tick reports whether the loop should advance the simulation by one tick.
func (t *Ticker) Tick() bool {
	now := time.Now()
	if t.last.IsZero() {
		t.last = now
	}
	t.accumulator += now.Sub(t.last)
	t.last = now
	if t.accumulator >= t.step {
		t.accumulator -= t.step
		return true
	}
	return false
}

// Interval returns the duration of one tick.
func (t *Ticker) Interval() time.Duration { return t.step }
