package core

import "time"

// DefaultTickInterval is used when a clock is built with a non-positive interval.
const DefaultTickInterval = time.Second

// TickFunc receives the tick number (starting at 1) on every clock pulse.
type TickFunc func(tick uint64)

// Subscription identifies a registered TickFunc. The zero value is never issued.
type Subscription struct {
	id uint64
}

type subscriber struct {
	id uint64
	fn TickFunc
}

// Clock turns variable frame time into fixed-interval ticks.
// Subscribers are notified synchronously in subscription order. Changes to the
// subscriber list made during a dispatch apply from the next tick on.
type Clock struct {
	interval time.Duration
	elapsed  time.Duration
	ticks    uint64
	subs     []subscriber
	nextID   uint64
}

// NewClock creates a clock firing every interval.
func NewClock(interval time.Duration) *Clock {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &Clock{interval: interval}
}

// Interval returns the tick period.
func (c *Clock) Interval() time.Duration {
	return c.interval
}

// Ticks returns the number of ticks fired so far.
func (c *Clock) Ticks() uint64 {
	return c.ticks
}

// Subscribe registers fn for future ticks.
func (c *Clock) Subscribe(fn TickFunc) Subscription {
	c.nextID++
	c.subs = append(c.subs, subscriber{id: c.nextID, fn: fn})
	return Subscription{id: c.nextID}
}

// Unsubscribe removes a subscription. Returns false if it was not registered.
func (c *Clock) Unsubscribe(s Subscription) bool {
	for i, sub := range c.subs {
		if sub.id == s.id {
			// Copy instead of shifting in place: a dispatch in progress holds the old slice.
			next := make([]subscriber, 0, len(c.subs)-1)
			next = append(next, c.subs[:i]...)
			c.subs = append(next, c.subs[i+1:]...)
			return true
		}
	}
	return false
}

// Advance adds dt to the accumulator and fires one tick for every full
// interval, carrying the remainder forward. Returns the number of ticks fired.
func (c *Clock) Advance(dt time.Duration) int {
	if dt <= 0 {
		return 0
	}
	c.elapsed += dt
	fired := 0
	for c.elapsed >= c.interval {
		c.elapsed -= c.interval
		c.ticks++
		fired++
		c.dispatch()
	}
	return fired
}

func (c *Clock) dispatch() {
	snapshot := c.subs[:len(c.subs):len(c.subs)]
	for _, sub := range snapshot {
		sub.fn(c.ticks)
	}
}

// Reset clears the accumulator and tick counter. Subscriptions are kept.
func (c *Clock) Reset() {
	c.elapsed = 0
	c.ticks = 0
}
