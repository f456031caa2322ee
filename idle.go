package srcloop

// idleData is the private datum of a built-in idle source (spec.md §3
// "Idle datum", §4.7).
type idleData struct {
	callback func() bool
}

// idlePrepare is always ready, at a zero timeout. spec.md §9 calls out a
// bug in the source this is grounded on, where the idle source's own
// prepare assigns to a local copy of its timeout parameter instead of the
// caller's output slot; that bug is documented, not replicated — outTimeout
// is written here.
func idlePrepare(sourceData any, now Time, outTimeout *int) bool {
	*outTimeout = 0
	return true
}

func idleCheck(sourceData any, now Time) bool {
	return true
}

func idleDispatch(sourceData any, now Time, userData any) bool {
	d := sourceData.(*idleData)
	return d.callback()
}

var idleFuncs = SourceFuncs{
	Prepare:  idlePrepare,
	Check:    idleCheck,
	Dispatch: idleDispatch,
}

// IdleAdd registers an idle source at default priority (spec.md §6
// "idle_add(cb, user)"). callback returning true keeps the source
// registered for the next iteration; false removes it.
func (c *Context) IdleAdd(callback func() bool) (SourceID, error) {
	return c.IdleAddFull(PriorityDefault, callback, nil)
}

// IdleAddFull is IdleAdd with an explicit priority and destroy hook
// (spec.md §6 "idle_add_full").
func (c *Context) IdleAddFull(priority int, callback func() bool, destroy func()) (SourceID, error) {
	d := &idleData{callback: callback}
	var userDestroy func(any)
	if destroy != nil {
		userDestroy = func(any) { destroy() }
	}
	return c.SourceAdd(priority, false, idleFuncs, d, nil, userDestroy)
}
