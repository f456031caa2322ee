package srcloop

// SourceID uniquely identifies a registered Source for the lifetime of the
// Context that created it (spec.md §3, invariant 2).
type SourceID uint64

// SourceFuncs is the four-operation capability vector every source must
// implement (spec.md §4.4).
type SourceFuncs struct {
	// Prepare runs under the context lock, before polling. It reports
	// whether the source is already ready to dispatch, and writes the
	// source's desired maximum wait (milliseconds) to *outTimeout. A
	// negative value written means "no upper bound from me"; zero forces a
	// non-blocking poll.
	Prepare func(sourceData any, now Time, outTimeout *int) bool

	// Check runs under the context lock, after poll returns. It decides
	// readiness from post-poll state (descriptor revents, elapsed time).
	Check func(sourceData any, now Time) bool

	// Dispatch runs with the context lock released. It performs the
	// user-visible side effect and returns whether the source should be
	// kept (true) or removed (false).
	Dispatch func(sourceData any, now Time, userData any) bool

	// Destroy releases the source-private datum. May be nil.
	Destroy func(sourceData any)
}

// Source flag bits (spec.md §3).
type sourceFlags uint32

const (
	// sourceFlagValid marks a source still registered in the registry.
	sourceFlagValid sourceFlags = 1 << iota
	// sourceFlagInCall marks a source currently inside Dispatch.
	sourceFlagInCall
	// sourceFlagReady marks a source that prepared (or checked) ready this
	// iteration.
	sourceFlagReady
	// sourceFlagCanRecurse marks a source dispatchable even while InCall.
	sourceFlagCanRecurse
)

// Source is a registered event source (spec.md §3).
type Source struct {
	id       SourceID
	priority int
	funcs    SourceFuncs

	sourceData   any
	userData     any
	userDestroy  func(any)

	flags sourceFlags
	ref   int32

	// link position within the owning sourceList; maintained by sourceList.
	prev, next *Source
}

// ID returns the source's unique identity tag.
func (s *Source) ID() SourceID { return s.id }

// Priority returns the source's registered priority (lower is more urgent).
func (s *Source) Priority() int { return s.priority }

func (s *Source) valid() bool      { return s.flags&sourceFlagValid != 0 }
func (s *Source) inCall() bool     { return s.flags&sourceFlagInCall != 0 }
func (s *Source) ready() bool      { return s.flags&sourceFlagReady != 0 }
func (s *Source) canRecurse() bool { return s.flags&sourceFlagCanRecurse != 0 }

func (s *Source) setFlag(f sourceFlags)   { s.flags |= f }
func (s *Source) clearFlag(f sourceFlags) { s.flags &^= f }

// skippable reports whether this source must be skipped during prepare/check
// this iteration (spec.md invariant 3): in-call and not recursable.
func (s *Source) skippable() bool {
	return s.inCall() && !s.canRecurse()
}

// Default priorities, matching GLib's conventional priority bands.
const (
	PriorityHigh      = -100
	PriorityDefault   = 0
	PriorityHighIdle  = 100
	PriorityDefaultIdle = 200
	PriorityLow       = 300
)

// priorityWakeup is the poll-registry priority of the internal wake-up pipe
// record: priority 0. The record is polled whenever no source prepared ready
// or the priority ceiling is at or above 0; when a more urgent source is
// ready, the poll is non-blocking anyway.
const priorityWakeup = PriorityDefault
