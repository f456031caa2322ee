//go:build unix

package srcloop

import (
	"golang.org/x/sys/unix"
)

// defaultPoll is the default PollFunc on unix platforms: poll(2) via
// golang.org/x/sys/unix, grounded on the teacher's poller_linux.go/
// poller_darwin.go EINTR-swallowing and event-mask-translation style, but
// using the single cross-platform unix.Poll syscall wrapper rather than a
// per-fd epoll/kqueue registration (spec.md §4.1 describes a flat
// fd-array + timeout contract, not a persistent per-fd registration).
func defaultPoll(fds []*PollFD, timeoutMs int) error {
	if len(fds) == 0 {
		// unix.Poll with an empty slice still sleeps for timeoutMs; that is
		// exactly the desired behavior (e.g. the loop's sole purpose this
		// iteration is to wait out a timer).
		raw := make([]unix.PollFd, 0)
		_, err := unix.Poll(raw, timeoutMs)
		return swallowEINTR(err)
	}

	raw := make([]unix.PollFd, len(fds))
	for i, f := range fds {
		raw[i] = unix.PollFd{Fd: int32(f.FD), Events: eventsToPoll(f.Events)}
	}

	_, err := unix.Poll(raw, timeoutMs)
	err = swallowEINTR(err)
	if err != nil {
		return err
	}

	for i, f := range fds {
		f.Revents = pollToEvents(raw[i].Revents)
	}
	return nil
}

func swallowEINTR(err error) error {
	if err == unix.EINTR {
		return nil
	}
	return err
}

func eventsToPoll(ev PollEvents) int16 {
	var m int16
	if ev&PollIn != 0 {
		m |= unix.POLLIN
	}
	if ev&PollOut != 0 {
		m |= unix.POLLOUT
	}
	if ev&PollPri != 0 {
		m |= unix.POLLPRI
	}
	return m
}

func pollToEvents(revents int16) PollEvents {
	var ev PollEvents
	if revents&unix.POLLIN != 0 {
		ev |= PollIn
	}
	if revents&unix.POLLOUT != 0 {
		ev |= PollOut
	}
	if revents&unix.POLLPRI != 0 {
		ev |= PollPri
	}
	if revents&unix.POLLERR != 0 {
		ev |= PollErr
	}
	if revents&unix.POLLHUP != 0 {
		ev |= PollHup
	}
	return ev
}
