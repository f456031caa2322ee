package srcloop

import (
	"sync"
)

// Context is an explicit dispatch context: the source registry, poll
// registry, wake-up pipe, and pluggable poll function that spec.md §9
// describes as process-wide singletons in the original, redesigned here as
// an explicit value per REDESIGN FLAGS / Open Question "Global state"
// (see DESIGN.md). DefaultContext preserves the single-context convenience
// the original API offered.
type Context struct {
	mu sync.Mutex

	sources *sourceList
	polls   *pollRegistry

	pollFunc    PollFunc
	pollWaiting bool
	wake        *wakeup

	clock  Clock
	logger *Logger

	closed bool
}

// NewContext constructs a ready-to-use Context. The wake-up pipe is created
// eagerly (spec.md §3 describes lazy creation "at first use", but eager
// creation here removes a lock-upgrade race at negligible cost: two fds,
// never used until the first blocking poll).
func NewContext(opts ...ContextOption) (*Context, error) {
	cfg := resolveContextOptions(opts)

	c := &Context{
		sources:  newSourceList(),
		polls:    newPollRegistry(),
		pollFunc: cfg.pollFunc,
		clock:    cfg.clock,
		logger:   cfg.logger,
	}

	wk, err := newWakeup(c.polls)
	if err != nil {
		// spec.md §7: "OS wake-up pipe creation failure — fatal (aborts the
		// process with a diagnostic)".
		fatalf("srcloop: fatal: %v", err)
	}
	c.wake = wk

	return c, nil
}

// Close releases the wake-up pipe. Registered sources are not destroyed;
// per spec.md §4.8, sources outlive the handle that drives them.
func (c *Context) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	c.wake.close(c.polls)
	return nil
}

// CurrentTime returns the context's clock reading (spec.md §6
// "current_time(out)").
func (c *Context) CurrentTime() Time {
	return c.clock.Now()
}

// SetPollFunction replaces the poll driver. A nil fn restores the platform
// default (spec.md §6 "set_poll_function(fn)").
func (c *Context) SetPollFunction(fn PollFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if fn == nil {
		fn = defaultPoll
	}
	c.pollFunc = fn
}

// SourceAdd registers a new source and returns its id (spec.md §4.3
// source_add). canRecurse seeds the CAN_RECURSE flag. Any of funcs'
// operations may be nil: a nil Prepare or Check counts as "not ready", and a
// nil Dispatch keeps the source. ErrInvalidSource is returned only when
// Prepare, Check and Dispatch are all nil.
func (c *Context) SourceAdd(priority int, canRecurse bool, funcs SourceFuncs, sourceData, userData any, userDestroy func(any)) (SourceID, error) {
	if funcs.Prepare == nil && funcs.Check == nil && funcs.Dispatch == nil {
		return 0, ErrInvalidSource
	}

	s := &Source{
		priority:    priority,
		funcs:       funcs,
		sourceData:  sourceData,
		userData:    userData,
		userDestroy: userDestroy,
		flags:       sourceFlagValid,
	}
	if canRecurse {
		s.setFlag(sourceFlagCanRecurse)
	}

	c.mu.Lock()
	c.sources.insert(s)
	id := s.id
	wake := c.pollWaiting
	if wake {
		c.pollWaiting = false
	}
	c.mu.Unlock()

	if wake {
		// spec.md §4.1: "The write side is triggered whenever a new source
		// is added while poll_waiting is true."
		c.wake.signal()
	}

	c.logger.Debug().Int("priority", priority).Log("srcloop: source added")
	return id, nil
}

// SourceRemove removes the source registered under id (spec.md §4.3
// source_remove). Returns ErrInvalidID for a zero id, and ErrSourceNotFound
// if no such source is currently valid.
func (c *Context) SourceRemove(id SourceID) error {
	if id == 0 {
		return ErrInvalidID
	}
	c.mu.Lock()
	s := c.sources.lookup(id)
	if s == nil || !s.valid() {
		c.mu.Unlock()
		return ErrSourceNotFound
	}
	c.destroyLocked(s)
	c.mu.Unlock()
	return nil
}

// SourceRemoveByUserData removes the first source whose user datum equals
// p (spec.md §4.3).
func (c *Context) SourceRemoveByUserData(p any) error {
	c.mu.Lock()
	s := c.sources.findByUserData(p)
	if s == nil {
		c.mu.Unlock()
		return ErrSourceNotFound
	}
	c.destroyLocked(s)
	c.mu.Unlock()
	return nil
}

// SourceRemoveBySourceData removes the first source whose source-private
// datum equals p (spec.md §4.3).
func (c *Context) SourceRemoveBySourceData(p any) error {
	c.mu.Lock()
	s := c.sources.findBySourceData(p)
	if s == nil {
		c.mu.Unlock()
		return ErrSourceNotFound
	}
	c.destroyLocked(s)
	c.mu.Unlock()
	return nil
}

// destroyLocked unlinks s and invokes its destroy hooks, honoring invariant
// 6 (destroy called exactly once, only after unlink). Must be called with
// c.mu held. If s is currently referenced by an in-flight dispatch (ref >
// 0), unlinking happens now but the hooks are deferred to the last
// unref (see unrefLocked).
func (c *Context) destroyLocked(s *Source) {
	s.clearFlag(sourceFlagValid)
	c.sources.unlink(s)
	if s.ref == 0 {
		c.runDestroyHooks(s)
	}
}

func (c *Context) runDestroyHooks(s *Source) {
	if s.funcs.Destroy != nil {
		s.funcs.Destroy(s.sourceData)
	}
	if s.userDestroy != nil {
		s.userDestroy(s.userData)
	}
}

func (c *Context) refLocked(s *Source) {
	s.ref++
}

// unrefLocked releases a reference taken during prepare/check/dispatch. If
// this was the last reference to an already-invalidated source, its destroy
// hooks run now (spec.md invariant 6).
func (c *Context) unrefLocked(s *Source) {
	s.ref--
	if s.ref == 0 && !s.valid() {
		c.runDestroyHooks(s)
	}
}

// PollAdd registers a descriptor for readiness polling (spec.md §4.2
// poll_add).
func (c *Context) PollAdd(priority int, fd *PollFD) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.polls.add(priority, fd)
}

// PollRemove unregisters the descriptor matching fd (spec.md §4.2
// poll_remove). Reports whether a matching record was found.
func (c *Context) PollRemove(fd *PollFD) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.polls.remove(fd)
}

// defaultContextOnce guards lazy initialization of the package-level
// convenience context.
var (
	defaultContextOnce sync.Once
	defaultContext     *Context
)

// DefaultContext returns the shared package-level Context, creating it on
// first use. It preserves the single-context convenience of the original
// API's process-wide singletons (spec.md §9, "the single-context case
// preserves the original behavior").
func DefaultContext() *Context {
	defaultContextOnce.Do(func() {
		ctx, err := NewContext()
		if err != nil {
			fatalf("srcloop: fatal: %v", err)
		}
		defaultContext = ctx
	})
	return defaultContext
}
