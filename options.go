package srcloop

// ContextOption configures a Context at construction time, following the
// functional-options pattern the teacher uses throughout eventloop/options.go
// (LoopOption / resolveLoopOptions).
type ContextOption func(*contextConfig)

type contextConfig struct {
	logger   *Logger
	pollFunc PollFunc
	clock    Clock
}

func resolveContextOptions(opts []ContextOption) contextConfig {
	cfg := contextConfig{
		logger:   defaultLogger(),
		pollFunc: defaultPoll,
		clock:    SystemClock{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithLogger installs a logger for diagnostic tracing. Defaults to a
// disabled logger (no output).
func WithLogger(logger *Logger) ContextOption {
	return func(c *contextConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithPollFunction installs the initial poll driver, equivalent to calling
// Context.SetPollFunction(fn) immediately after construction. A nil fn
// leaves the platform default in place.
func WithPollFunction(fn PollFunc) ContextOption {
	return func(c *contextConfig) {
		if fn != nil {
			c.pollFunc = fn
		}
	}
}

// WithClock installs the time source prepare/check/dispatch observe.
// Defaults to SystemClock{}; tests substitute a *ManualClock to drive
// timeout scenarios deterministically.
func WithClock(clock Clock) ContextOption {
	return func(c *contextConfig) {
		if clock != nil {
			c.clock = clock
		}
	}
}
