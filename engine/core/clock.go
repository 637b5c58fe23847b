package core

import "time"

// Clock measures monotonic time since Start. It never reads the wall clock,
// so host clock adjustments cannot make UI time run backwards.
type Clock struct {
	start   time.Time
	started bool
	elapsed time.Duration
}

func NewClock() *Clock {
	return &Clock{}
}

// Updates the provided clock. Should be called just before checking elapsed time.
// Has no effect on non-started clocks.
func (c *Clock) Update() {
	if c.started {
		c.elapsed = time.Since(c.start)
	}
}

// Starts the provided clock. Resets elapsed time.
func (c *Clock) Start() {
	c.start = time.Now()
	c.started = true
	c.elapsed = 0
}

// Stops the provided clock. Does not reset elapsed time.
func (c *Clock) Stop() {
	c.started = false
}

func (c *Clock) Elapsed() time.Duration {
	return c.elapsed
}

// Seconds returns the elapsed time as fractional seconds, the unit the
// toolkit expects for input timestamps.
func (c *Clock) Seconds() float64 {
	return c.elapsed.Seconds()
}
