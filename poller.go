// Package srcloop: poll driver.
//
// The poll driver wraps the OS readiness primitive (spec.md §4.1). It is
// pluggable: Context.SetPollFunction replaces the default with a
// caller-supplied readiness function, and a nil argument restores the
// platform default.
//
// The default implementation uses poll(2) on unix (poller_unix.go) and a
// select(2)-based fallback on Windows (poller_windows.go), translating
// between the two event-mask vocabularies as needed.
package srcloop

import "errors"

// errPollInterrupted is never returned to callers of PollFunc: an
// interrupted poll (EINTR) is swallowed per spec.md §7 ("Poll errors —
// swallowed; an interrupted poll simply returns and the iteration proceeds
// to check"). It exists only to document that contract.
var errPollInterrupted = errors.New("srcloop: poll interrupted")

// PollFunc is the poll driver contract (spec.md §4.1): given descriptors
// and a millisecond timeout (-1 = infinite, 0 = non-blocking), it blocks
// until at least one is ready or the timeout elapses, writing the ready
// event set into each PollFD's Revents field.
type PollFunc func(fds []*PollFD, timeoutMs int) error
