// Package srcloop implements a priority-ordered, reentrant main-loop core
// over a heterogeneous set of registered event sources, in the style of
// GLib's GMainContext/GMainLoop.
//
// # Architecture
//
// A [Context] owns the source registry, the poll-record registry, the
// wake-up pipe, and the pluggable poll function. Each iteration walks
// registered [Source] values through a prepare/poll/check/dispatch protocol
// ([Context.Iteration]), honoring strict priority ordering: once any source
// at a given priority is ready, lower-priority sources neither participate
// in the poll nor get dispatched that iteration.
//
// [Loop] wraps a [Context] with the conventional run/quit surface:
//
//	ctx, _ := srcloop.NewContext()
//	loop := srcloop.NewLoop(ctx)
//
//	id, _ := ctx.IdleAdd(func() bool {
//	    fmt.Println("idle")
//	    return false // remove after one dispatch
//	})
//	defer ctx.SourceRemove(id)
//
//	go loop.Run()
//	time.Sleep(10 * time.Millisecond)
//	loop.Quit()
//
// # Single-context convenience
//
// Package-level functions ([SourceAdd], [TimeoutAdd], [IdleAdd], ...)
// operate on [DefaultContext], a process-wide singleton, for programs that
// need only one loop.
//
// # Thread safety
//
// Source and poll-record registration are safe from any goroutine. User
// callbacks (prepare, check, dispatch) always run on whichever goroutine is
// driving the iteration; dispatch runs with the context's lock released, so
// a callback may itself call [Context.Iteration] or [Loop.Run]. Its own
// source is dispatched again by that nested iteration only if it was
// registered with canRecurse true.
//
// # Platform support
//
// I/O readiness polling defaults to poll(2) on unix ([golang.org/x/sys/unix])
// and a select(2)-based fallback on Windows ([golang.org/x/sys/windows]);
// [Context.SetPollFunction] replaces the backend entirely.
package srcloop
