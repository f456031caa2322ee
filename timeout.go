package srcloop

// timeoutData is the private datum of a built-in timeout source (spec.md
// §3 "Timeout datum", §4.6).
type timeoutData struct {
	expiration Time
	intervalMs int64
	callback   func() bool
}

func timeoutPrepare(sourceData any, now Time, outTimeout *int) bool {
	d := sourceData.(*timeoutData)
	remaining := d.expiration.Sub(now).Milliseconds()
	if remaining < 0 {
		remaining = 0
	}
	*outTimeout = int(remaining)
	return !now.Before(d.expiration)
}

func timeoutCheck(sourceData any, now Time) bool {
	d := sourceData.(*timeoutData)
	return !now.Before(d.expiration)
}

func timeoutDispatch(sourceData any, now Time, userData any) bool {
	d := sourceData.(*timeoutData)
	if !d.callback() {
		return false
	}
	d.expiration = now.Add(durationFromMillis(d.intervalMs))
	return true
}

var timeoutFuncs = SourceFuncs{
	Prepare:  timeoutPrepare,
	Check:    timeoutCheck,
	Dispatch: timeoutDispatch,
}

// TimeoutAdd registers a one-shot-or-repeating timer at default priority
// (spec.md §6 "timeout_add(ms, cb, user)"). callback returning true re-arms
// the timer for another intervalMs; returning false removes it.
func (c *Context) TimeoutAdd(intervalMs int64, callback func() bool) (SourceID, error) {
	return c.TimeoutAddFull(PriorityDefault, intervalMs, callback, nil)
}

// TimeoutAddFull is TimeoutAdd with an explicit priority and destroy hook
// (spec.md §6 "timeout_add_full").
func (c *Context) TimeoutAddFull(priority int, intervalMs int64, callback func() bool, destroy func()) (SourceID, error) {
	d := &timeoutData{
		expiration: c.clock.Now().Add(durationFromMillis(intervalMs)),
		intervalMs: intervalMs,
		callback:   callback,
	}
	var userDestroy func(any)
	if destroy != nil {
		userDestroy = func(any) { destroy() }
	}
	return c.SourceAdd(priority, false, timeoutFuncs, d, nil, userDestroy)
}
