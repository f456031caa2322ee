//go:build windows

package srcloop

import (
	"net"
	"time"
)

// wakeup is the Windows cross-thread poll-interruption primitive (spec.md
// §4.6). Windows has no pipe(2) and the teacher's IOCP-based approach
// (wakeup_windows.go in the example pack) is tied to its own completion-port
// loop rather than exposing a plain fd the select(2) fallback in
// poller_windows.go can wait on; a loopback TCP socket pair gives a regular
// *net.TCPConn whose underlying handle is select()-able the same way, at the
// cost of a local handshake during setup.
type wakeup struct {
	w, r *net.TCPConn
	fd   *PollFD
	rec  *pollRecord
}

func newWakeup(reg *pollRegistry) (*wakeup, error) {
	l, err := net.ListenTCP("tcp4", &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1)})
	if err != nil {
		return nil, WrapError("srcloop: create wakeup listener", err)
	}
	defer l.Close()

	w, err := net.DialTCP("tcp4", nil, l.Addr().(*net.TCPAddr))
	if err != nil {
		return nil, WrapError("srcloop: dial wakeup socket", err)
	}

	r, err := l.AcceptTCP()
	if err != nil {
		w.Close()
		return nil, WrapError("srcloop: accept wakeup socket", err)
	}

	rawConn, err := r.SyscallConn()
	if err != nil {
		w.Close()
		r.Close()
		return nil, WrapError("srcloop: obtain wakeup socket handle", err)
	}

	var fdHandle int
	_ = rawConn.Control(func(h uintptr) { fdHandle = int(h) })

	wk := &wakeup{
		w:  w,
		r:  r,
		fd: &PollFD{FD: fdHandle, Events: PollIn},
	}
	wk.rec = reg.add(priorityWakeup, wk.fd)
	return wk, nil
}

func (w *wakeup) signal() {
	_, _ = w.w.Write([]byte{0})
}

func (w *wakeup) drain() {
	buf := make([]byte, 64)
	_ = w.r.SetReadDeadline(time.Now())
	for {
		n, err := w.r.Read(buf)
		if n <= 0 || err != nil {
			return
		}
	}
}

func (w *wakeup) close(reg *pollRegistry) {
	reg.unlink(w.rec)
	w.w.Close()
	w.r.Close()
}
