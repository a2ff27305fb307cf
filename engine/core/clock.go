package core

import "time"

// Clock measures elapsed wall time. A zero Clock is stopped.
type Clock struct {
	startTime time.Time
	elapsed   time.Duration
}

func NewClock() *Clock {
	return &Clock{}
}

// Updates the provided clock. Should be called just before checking elapsed time.
// Has no effect on non-started clocks.
func (c *Clock) Update() {
	if !c.startTime.IsZero() {
		c.elapsed = time.Since(c.startTime)
	}
}

// Starts the provided clock. Resets elapsed time.
func (c *Clock) Start() {
	c.startTime = time.Now()
	c.elapsed = 0
}

// Stops the provided clock. Does not reset elapsed time.
func (c *Clock) Stop() {
	c.startTime = time.Time{}
}

func (c *Clock) Elapsed() time.Duration {
	return c.elapsed
}

// ElapsedMillis returns the whole milliseconds between start and now.
func ElapsedMillis(start, now time.Time) uint64 {
	d := now.Sub(start)
	if d < 0 {
		return 0
	}
	return uint64(d / time.Millisecond)
}

// CalculateFrame returns the position inside a looping sequence of
// frameCount frames that each last frameLength milliseconds.
func CalculateFrame(elapsedMillis uint64, frameCount int, frameLength uint32) int {
	if frameCount <= 0 || frameLength == 0 {
		return 0
	}
	return int((elapsedMillis / uint64(frameLength)) % uint64(frameCount))
}
