package srcloop

import (
	"errors"
	"fmt"
)

// Standard errors returned by this package.
var (
	// ErrInvalidSource is returned when source_add is called with a
	// SourceFuncs table whose Prepare, Check and Dispatch are all nil.
	ErrInvalidSource = errors.New("srcloop: invalid source vtable")

	// ErrInvalidID is returned when a zero ID is used as a lookup key.
	ErrInvalidID = errors.New("srcloop: invalid id")

	// ErrSourceNotFound is returned by SourceRemove and its variants when
	// no matching source is registered.
	ErrSourceNotFound = errors.New("srcloop: source not found")

	// ErrLoopAlreadyRunning is returned by Run when the loop is already
	// running on another goroutine.
	ErrLoopAlreadyRunning = errors.New("srcloop: loop is already running")

	// ErrContextClosed identifies a Context that has been closed. No
	// operation in this package returns it: calls on a closed Context are
	// not checked for the closed state.
	ErrContextClosed = errors.New("srcloop: context is closed")
)

// WrapError wraps an error with a message and preserves the cause chain,
// so that errors.Is(WrapError(msg, cause), cause) is true.
func WrapError(message string, cause error) error {
	return fmt.Errorf("%s: %w", message, cause)
}

// fatalf aborts the process with a diagnostic. Per spec, failure to create
// the wake-up pipe is unrecoverable: without it the loop cannot honor the
// add-source-while-blocked contract.
func fatalf(format string, args ...any) {
	panic(fmt.Sprintf(format, args...))
}
