package srcloop

import "time"

// Time is a (seconds, microseconds) wall-clock reading, normalized so that
// Usec is always within [0, 1e6). It mirrors the two-field timeval vocabulary
// spec.md's current_time operation exposes, rather than a single
// time.Duration/time.Time, so re-arm arithmetic (timeout.go) carries
// microseconds into seconds exactly as spec.md §9 describes.
type Time struct {
	Sec  int64
	Usec int64
}

// normalize carries overflowing/negative microseconds into the seconds
// field, keeping Usec within [0, 1e6).
func (t Time) normalize() Time {
	for t.Usec >= 1e6 {
		t.Usec -= 1e6
		t.Sec++
	}
	for t.Usec < 0 {
		t.Usec += 1e6
		t.Sec--
	}
	return t
}

// Add returns t advanced by d.
func (t Time) Add(d time.Duration) Time {
	return Time{Sec: t.Sec, Usec: t.Usec + d.Microseconds()}.normalize()
}

// Sub returns t - u as a time.Duration.
func (t Time) Sub(u Time) time.Duration {
	return time.Duration(t.Sec-u.Sec)*time.Second + time.Duration(t.Usec-u.Usec)*time.Microsecond
}

// Before reports whether t is strictly earlier than u.
func (t Time) Before(u Time) bool {
	return t.Sec < u.Sec || (t.Sec == u.Sec && t.Usec < u.Usec)
}

// After reports whether t is strictly later than u.
func (t Time) After(u Time) bool {
	return u.Before(t)
}

// durationFromMillis converts a millisecond count (the unit timeout_add and
// the poll driver both use) to a time.Duration.
func durationFromMillis(ms int64) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// Clock is the wall-clock provider (spec.md §3, "Wall clock provider").
// Tests substitute a deterministic Clock via WithClock to drive timer
// re-arm scenarios (S2, invariant 8) without real sleeps.
type Clock interface {
	// Now returns the current time.
	Now() Time
}

// SystemClock is the default Clock, backed by time.Now.
type SystemClock struct{}

// Now implements Clock.
func (SystemClock) Now() Time {
	now := time.Now()
	return Time{Sec: now.Unix(), Usec: int64(now.Nanosecond()) / 1e3}
}

// ManualClock is a Clock whose value only changes when Advance or Set is
// called. It is exported for use by consumers' own deterministic tests, in
// addition to this package's own test suite.
type ManualClock struct {
	now Time
}

// NewManualClock returns a ManualClock initialized to t.
func NewManualClock(t Time) *ManualClock {
	return &ManualClock{now: t.normalize()}
}

// Now implements Clock.
func (c *ManualClock) Now() Time {
	return c.now
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// Set overwrites the clock's current value.
func (c *ManualClock) Set(t Time) {
	c.now = t.normalize()
}
