package srcloop

// Package-level convenience wrappers operating on DefaultContext, for
// programs that need only a single loop (spec.md §9: "the single-context
// case preserves the original behavior").

// SourceAdd registers a source on DefaultContext. See Context.SourceAdd.
func SourceAdd(priority int, canRecurse bool, funcs SourceFuncs, sourceData, userData any, userDestroy func(any)) (SourceID, error) {
	return DefaultContext().SourceAdd(priority, canRecurse, funcs, sourceData, userData, userDestroy)
}

// SourceRemove removes a source on DefaultContext. See Context.SourceRemove.
func SourceRemove(id SourceID) error {
	return DefaultContext().SourceRemove(id)
}

// TimeoutAdd registers a timer on DefaultContext. See Context.TimeoutAdd.
func TimeoutAdd(intervalMs int64, callback func() bool) (SourceID, error) {
	return DefaultContext().TimeoutAdd(intervalMs, callback)
}

// IdleAdd registers an idle callback on DefaultContext. See Context.IdleAdd.
func IdleAdd(callback func() bool) (SourceID, error) {
	return DefaultContext().IdleAdd(callback)
}

// Pending probes DefaultContext. See Context.Pending.
func Pending() bool {
	return DefaultContext().Pending()
}

// Iteration advances DefaultContext by one iteration. See Context.Iteration.
func Iteration(block bool) bool {
	return DefaultContext().Iteration(block)
}
