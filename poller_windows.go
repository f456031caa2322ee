//go:build windows

package srcloop

import (
	"errors"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
)

// defaultPoll is the default PollFunc on Windows: a select(2)-style
// fallback built on WSAPoll, per spec.md §4.1 ("otherwise a select(2)-based
// fallback that translates between the two event-mask vocabularies"),
// since Windows lacks poll(2). Grounded on the raw-syscall WSAPoll wrapper
// pattern used elsewhere in the pack (wazero's internal/sysfs poller and
// the Orizon runtime's asyncio poller), both of which call WSAPoll via a
// lazily-loaded ws2_32.dll proc rather than a higher-level select(2)/FdSet
// abstraction — avoided here since x/sys/windows does not export writable
// FdSet fields for external callers to populate.
func defaultPoll(fds []*PollFD, timeoutMs int) error {
	if len(fds) == 0 {
		if timeoutMs < 0 {
			return errors.New("srcloop: poll: no descriptors and infinite timeout")
		}
		time.Sleep(time.Duration(timeoutMs) * time.Millisecond)
		return nil
	}

	raw := make([]wsaPollFD, len(fds))
	for i, f := range fds {
		raw[i] = wsaPollFD{fd: uintptr(f.FD), events: eventsToWSAPoll(f.Events)}
	}

	n, err := wsaPoll(raw, timeoutMs)
	if err != nil {
		return err
	}
	_ = n

	for i, f := range fds {
		f.Revents = wsaPollToEvents(raw[i].revents)
	}
	return nil
}

// wsaPollFD mirrors the WSAPOLLFD structure from winsock2.h: a SOCKET
// handle plus requested/returned int16 event bitmaps.
type wsaPollFD struct {
	fd      uintptr
	events  int16
	revents int16
}

const (
	wsaPollRdNorm = 0x0100
	wsaPollRdBand = 0x0200
	wsaPollWrNorm = 0x0010
	wsaPollPri    = 0x0400
	wsaPollErr    = 0x0001
	wsaPollHup    = 0x0002

	wsaPollInMask  = wsaPollRdNorm | wsaPollRdBand
	wsaPollOutMask = wsaPollWrNorm
)

func eventsToWSAPoll(ev PollEvents) int16 {
	var m int16
	if ev&PollIn != 0 {
		m |= wsaPollInMask
	}
	if ev&PollOut != 0 {
		m |= wsaPollOutMask
	}
	if ev&PollPri != 0 {
		m |= wsaPollPri
	}
	return m
}

func wsaPollToEvents(revents int16) PollEvents {
	var ev PollEvents
	if revents&wsaPollInMask != 0 {
		ev |= PollIn
	}
	if revents&wsaPollOutMask != 0 {
		ev |= PollOut
	}
	if revents&wsaPollPri != 0 {
		ev |= PollPri
	}
	if revents&wsaPollErr != 0 {
		ev |= PollErr
	}
	if revents&wsaPollHup != 0 {
		ev |= PollHup
	}
	return ev
}

var (
	modws2_32   = windows.NewLazySystemDLL("ws2_32.dll")
	procWSAPoll = modws2_32.NewProc("WSAPoll")
)

// wsaPoll calls the winsock2 WSAPoll function directly: there is no
// higher-level wrapper for it in golang.org/x/sys/windows.
// https://learn.microsoft.com/en-us/windows/win32/api/winsock2/nf-winsock2-wsapoll
func wsaPoll(fds []wsaPollFD, timeoutMs int) (int, error) {
	var ptr unsafe.Pointer
	if len(fds) > 0 {
		ptr = unsafe.Pointer(&fds[0])
	}
	r1, _, e1 := procWSAPoll.Call(
		uintptr(ptr),
		uintptr(len(fds)),
		uintptr(timeoutMs),
	)
	if int32(r1) == -1 {
		return -1, e1
	}
	return int(int32(r1)), nil
}
