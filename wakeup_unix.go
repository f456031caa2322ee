//go:build unix

package srcloop

import (
	"golang.org/x/sys/unix"
)

// wakeup is the cross-thread poll-interruption primitive (spec.md §4.6): a
// priority-0 (priorityWakeup) poll record on a pipe's read end, written to by any goroutine
// that needs an in-progress poll to return early. Grounded on the teacher's
// wakeup_linux.go/wakeup_darwin.go self-pipe pattern, generalized from
// eventfd-or-self-pipe to a plain non-blocking pipe(2) since spec.md §4.6
// asks for a literal "pipe-like" descriptor the poll registry can hold a
// PollRecord for, not an eventfd-specific coalescing counter.
type wakeup struct {
	r, w int
	fd   *PollFD
	rec  *pollRecord
}

func newWakeup(reg *pollRegistry) (*wakeup, error) {
	var fds [2]int
	if err := unix.Pipe2(fds[:], unix.O_NONBLOCK|unix.O_CLOEXEC); err != nil {
		return nil, WrapError("srcloop: create wakeup pipe", err)
	}

	w := &wakeup{
		r:  fds[0],
		w:  fds[1],
		fd: &PollFD{FD: fds[0], Events: PollIn},
	}
	w.rec = reg.add(priorityWakeup, w.fd)
	return w, nil
}

// signal makes a pending or future poll return immediately. Safe to call
// from any goroutine, any number of times; the pipe coalesces excess bytes,
// drained wholesale by drain.
func (w *wakeup) signal() {
	var b [1]byte
	for {
		_, err := unix.Write(w.w, b[:])
		if err == unix.EINTR {
			continue
		}
		// EAGAIN means the pipe buffer is already full of pending wake
		// bytes: a wake is already guaranteed, nothing more to do.
		return
	}
}

// drain empties the pipe after a poll returns so the next poll blocks
// normally absent a fresh signal.
func (w *wakeup) drain() {
	var b [64]byte
	for {
		n, err := unix.Read(w.r, b[:])
		if err == unix.EINTR {
			continue
		}
		if n <= 0 || err != nil {
			return
		}
	}
}

func (w *wakeup) close(reg *pollRegistry) {
	reg.unlink(w.rec)
	unix.Close(w.r)
	unix.Close(w.w)
}
