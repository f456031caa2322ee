package srcloop

// Pending reports whether an iteration would dispatch at least one source,
// without dispatching (spec.md §6 "pending() → bool").
func (c *Context) Pending() bool {
	return c.iterate(false, false)
}

// Iteration advances the dispatch engine by exactly one iteration, blocking
// in poll iff block is true (spec.md §6 "iteration(block) → bool"). It
// reports whether any source was dispatched.
func (c *Context) Iteration(block bool) bool {
	return c.iterate(block, true)
}

// iterate is the core primitive described in spec.md §4.5. dispatch selects
// between a probing call (Pending, dispatch=false) and a real one
// (Iteration, dispatch=true).
func (c *Context) iterate(block, dispatch bool) bool {
	c.mu.Lock()

	now := c.clock.Now()

	// Step 3: prepare phase.
	timeout := -1
	if !block {
		timeout = 0
	}
	ceiling := 0
	haveCeiling := false
	nready := 0

	for s := c.sources.head; s != nil; s = s.next {
		if haveCeiling && s.priority > ceiling {
			break
		}
		if s.skippable() {
			continue
		}

		c.refLocked(s)
		var srcTimeout = -1
		ready := false
		if s.funcs.Prepare != nil {
			ready = s.funcs.Prepare(s.sourceData, now, &srcTimeout)
		}
		c.unrefLocked(s)

		if ready {
			s.setFlag(sourceFlagReady)
			if !haveCeiling || s.priority < ceiling {
				ceiling = s.priority
				haveCeiling = true
			}
			nready++
			timeout = 0
		}
		if srcTimeout >= 0 && (timeout < 0 || srcTimeout < timeout) {
			timeout = srcTimeout
		}
	}

	if !dispatch && nready > 0 {
		// Pending leaves no READY flag behind for a later iteration.
		for s := c.sources.head; s != nil; s = s.next {
			s.clearFlag(sourceFlagReady)
		}
		c.mu.Unlock()
		return true
	}

	// Step 4: poll phase.
	var fds []*PollFD
	if haveCeiling {
		fds = c.polls.collect(ceiling, false)
	} else {
		fds = c.polls.collect(0, true)
	}

	c.pollWaiting = true
	c.mu.Unlock()

	err := c.pollFunc(fds, timeout)

	c.mu.Lock()
	if c.pollWaiting {
		// No one signalled us; clear the flag ourselves.
		c.pollWaiting = false
	} else {
		// Another goroutine cleared it (SourceAdd's wake path) and wrote a
		// byte; drain it so the pipe doesn't report spuriously ready next
		// time.
		c.wake.drain()
	}
	// Refresh the clock: check decides readiness from post-poll state
	// (spec.md §4.4), and poll may have blocked for up to timeout.
	now = c.clock.Now()
	if err != nil {
		c.logger.Debug().Err(err).Log("srcloop: poll error")
	}

	// Step 5: check phase.
	var queue []*Source
	ceiling = 0
	haveCeiling = false
	nready = 0

	for s := c.sources.head; s != nil; s = s.next {
		if haveCeiling && s.priority > ceiling {
			break
		}
		if s.skippable() {
			continue
		}

		selected := s.ready()
		if !selected && s.funcs.Check != nil {
			c.refLocked(s)
			selected = s.funcs.Check(s.sourceData, now)
			c.unrefLocked(s)
		}
		if !selected {
			continue
		}

		s.clearFlag(sourceFlagReady)

		if dispatch {
			// Only the real dispatch path needs the source to survive past
			// this unlock; Pending is a side-effect-free probe, so it must
			// not ref or queue anything (spec.md §6).
			c.refLocked(s)
			queue = append(queue, s)
		}

		if !haveCeiling || s.priority < ceiling {
			ceiling = s.priority
			haveCeiling = true
		}
		nready++
	}

	// A source that prepared ready but whose priority fell outside the
	// ceiling the check walk settled on above (because a higher-priority
	// source turned out ready here) never got visited this round, so its
	// READY flag is still set from prepare. Clear it: the flag only means
	// "as of the last prepare/check", and the next iteration's prepare will
	// recompute it correctly.
	for s := c.sources.head; s != nil; s = s.next {
		if s.ready() {
			s.clearFlag(sourceFlagReady)
		}
	}

	if nready == 0 {
		c.mu.Unlock()
		return false
	}

	if !dispatch {
		c.mu.Unlock()
		return true
	}

	c.mu.Unlock()
	c.runDispatch(queue)
	return true
}

// runDispatch performs step 6 of spec.md §4.5 on the queue the check phase
// built. The check phase above appends in traversal order (ascending
// priority, FIFO within priority), which is already dispatch order; the
// spec's "prepend then reverse" is an artifact of building the list
// head-first and yields the same order.
//
// queue is a plain local slice, not context-level state, so a Dispatch
// callback that reenters the loop (spec.md §5 CAN_RECURSE) runs its own
// independent iterate() call; this loop simply resumes afterwards and
// dispatches the remaining entries itself. Nothing needs to be handed off
// or drained between the two.
//
// Called with the lock NOT held.
func (c *Context) runDispatch(queue []*Source) {
	for _, s := range queue {
		c.mu.Lock()
		if !s.valid() {
			c.unrefLocked(s)
			c.mu.Unlock()
			continue
		}

		s.setFlag(sourceFlagInCall)
		now := c.clock.Now()
		c.mu.Unlock()

		keep := true
		if s.funcs.Dispatch != nil {
			keep = s.funcs.Dispatch(s.sourceData, now, s.userData)
		}

		c.mu.Lock()
		s.clearFlag(sourceFlagInCall)
		if !keep && s.valid() {
			c.destroyLocked(s)
		}
		c.unrefLocked(s)
		c.mu.Unlock()
	}
}
