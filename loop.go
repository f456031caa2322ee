package srcloop

import "sync"

// Loop is the main-loop handle (spec.md §3 "Loop", §4.8): a trivial
// quit flag driving a tight iteration cycle against a Context. Sources
// outlive the handle; Destroy only releases the handle itself. Grounded on
// the teacher's Loop/FastState lifecycle split (run vs shutdown vs close),
// narrowed to the single boolean spec.md actually calls for.
type Loop struct {
	ctx *Context

	mu      sync.Mutex
	quit    bool
	running bool
}

// NewLoop allocates a loop handle bound to ctx (spec.md §6 "new()").
func NewLoop(ctx *Context) *Loop {
	return &Loop{ctx: ctx}
}

// Run repeats Iteration(true) until Quit is called (spec.md §6
// "run(loop)"). Returns ErrLoopAlreadyRunning if called concurrently on the
// same handle.
func (l *Loop) Run() error {
	l.mu.Lock()
	if l.running {
		l.mu.Unlock()
		return ErrLoopAlreadyRunning
	}
	l.running = true
	l.quit = false
	l.mu.Unlock()

	defer func() {
		l.mu.Lock()
		l.running = false
		l.mu.Unlock()
	}()

	for {
		l.mu.Lock()
		done := l.quit
		l.mu.Unlock()
		if done {
			return nil
		}
		l.ctx.Iteration(true)
	}
}

// Quit requests that a running Run return after its current iteration
// (spec.md §6 "quit(loop)"). Safe to call from any goroutine, including
// from within a dispatched callback.
func (l *Loop) Quit() {
	l.mu.Lock()
	l.quit = true
	l.mu.Unlock()
}

// Running reports whether Run is currently executing on this handle.
func (l *Loop) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.running
}

// Destroy releases the handle. Registered sources are unaffected (spec.md
// §4.8: "sources outlive it").
func (l *Loop) Destroy() {
	l.Quit()
}
