package state

import "sync/atomic"

// Clock hands out monotonically increasing sequence numbers. Items take
// their Seq from it and every Op its Lamport stamp.
type Clock struct {
	counter atomic.Uint64
}

// Tick increments the clock and returns the new value
func (c *Clock) Tick() uint64 {
	return c.counter.Add(1)
}

// Now returns the last value handed out.
func (c *Clock) Now() uint64 {
	return c.counter.Load()
}
