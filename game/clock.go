package game

import "time"

// Clock converts wall-clock time into a number of fixed simulation ticks.
// After a stall it runs at most maxCatchUp ticks and drops the rest.
type Clock struct {
	step       time.Duration
	maxCatchUp int
	acc        time.Duration
	last       time.Time
}

// NewClock creates a clock for tickRate ticks per second
func NewClock(tickRate, maxCatchUp int) *Clock {
	return &Clock{
		step:       time.Second / time.Duration(max(1, tickRate)),
		maxCatchUp: max(1, maxCatchUp),
	}
}

// Step returns the duration of one tick
func (c *Clock) Step() time.Duration {
	return c.step
}

// Advance adds elapsed wall time and returns how many ticks to run now and
// how many were dropped by the catch-up cap
func (c *Clock) Advance(elapsed time.Duration) (ticks, dropped int) {
	if elapsed < 0 {
		elapsed = 0
	}
	c.acc += elapsed
	n := int(c.acc / c.step)
	c.acc -= time.Duration(n) * c.step
	if n > c.maxCatchUp {
		dropped = n - c.maxCatchUp
		n = c.maxCatchUp
	}
	return n, dropped
}

// Tick advances by the time since the previous call. The first call only
// starts the clock.
func (c *Clock) Tick(now time.Time) (ticks, dropped int) {
	if c.last.IsZero() {
		c.last = now
		return 0, 0
	}
	elapsed := now.Sub(c.last)
	c.last = now
	return c.Advance(elapsed)
}
