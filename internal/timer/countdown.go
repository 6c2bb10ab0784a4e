package timer

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultMinutes is the time limit used when the configured one is invalid.
const DefaultMinutes = 10

// LimitFromMinutes converts a user-supplied number of minutes into seconds.
// Empty, non-numeric and non-positive input falls back to DefaultMinutes.
func LimitFromMinutes(input string) int {
	m, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || m <= 0 {
		m = DefaultMinutes
	}
	return m * 60
}

// Countdown is a one-tick-per-second countdown clock.
// It is not safe for concurrent use; callers drive Tick from a single loop.
type Countdown struct {
	limit     int
	remaining int
	running   bool
	expired   bool
	onExpire  []func()
}

// New creates a stopped countdown starting at limitSeconds.
// A non-positive limit falls back to DefaultMinutes.
func New(limitSeconds int) *Countdown {
	if limitSeconds <= 0 {
		limitSeconds = DefaultMinutes * 60
	}
	return &Countdown{limit: limitSeconds, remaining: limitSeconds}
}

// OnExpire registers fn to run once when the countdown reaches zero.
func (c *Countdown) OnExpire(fn func()) {
	c.onExpire = append(c.onExpire, fn)
}

// Start begins counting. Starting an expired or reset countdown does nothing.
func (c *Countdown) Start() {
	if c.expired || c.remaining <= 0 {
		return
	}
	c.running = true
}

// Stop pauses the countdown. Stopping a stopped countdown is a no-op.
func (c *Countdown) Stop() {
	c.running = false
}

// Reset stops the countdown and zeroes the remaining time without
// signalling expiry.
func (c *Countdown) Reset() {
	c.running = false
	c.remaining = 0
}

// Tick advances the countdown by one second. It returns true on the tick
// that reaches zero, after the subscribers have been notified.
func (c *Countdown) Tick() bool {
	if !c.running {
		return false
	}
	c.remaining--
	if c.remaining > 0 {
		return false
	}
	c.remaining = 0
	c.running = false
	c.expired = true
	for _, fn := range c.onExpire {
		fn()
	}
	return true
}

// Running reports whether ticks currently advance the countdown.
func (c *Countdown) Running() bool { return c.running }

// Expired reports whether the countdown reached zero by ticking.
func (c *Countdown) Expired() bool { return c.expired }

// Remaining returns the seconds left.
func (c *Countdown) Remaining() int { return c.remaining }

// Limit returns the starting number of seconds.
func (c *Countdown) Limit() int { return c.limit }

// Elapsed returns the seconds counted so far.
func (c *Countdown) Elapsed() int {
	if c.remaining > c.limit {
		return 0
	}
	return c.limit - c.remaining
}

// Format renders seconds as MM:SS.
func Format(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
