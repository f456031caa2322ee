package srcloop

// PollEvents is the descriptor event-mask vocabulary (spec.md §6):
// readable, writable, and priority/exceptional, plus the poller-reported
// error/hangup bits.
type PollEvents uint32

const (
	// PollIn marks a descriptor readable.
	PollIn PollEvents = 1 << iota
	// PollOut marks a descriptor writable.
	PollOut
	// PollPri marks a descriptor as having urgent/out-of-band data.
	PollPri
	// PollErr is set in the result mask on error.
	PollErr
	// PollHup is set in the result mask on hangup.
	PollHup
)

// PollFD is a caller-owned descriptor structure: an fd, its requested event
// mask, and the poller's result mask (spec.md §3 "Poll record").
type PollFD struct {
	FD      int
	Events  PollEvents
	Revents PollEvents
}

// pollRecord is a registered descriptor (spec.md §3 "Poll record", §4.2).
// The registry owns records, not the PollFD structures they point to.
type pollRecord struct {
	priority int
	fd       *PollFD
	prev, next *pollRecord
}

// pollRegistry is the priority-sorted list of descriptors to include in each
// poll (spec.md §4.2). Tie-break among equal priorities is unspecified by
// spec, so insertion here is simple append-after-equal, matching
// sourceList's stable-FIFO behavior for consistency.
type pollRegistry struct {
	head, tail *pollRecord
}

func newPollRegistry() *pollRegistry {
	return &pollRegistry{}
}

// add allocates a poll record for fd at priority prio and inserts it
// priority-sorted.
func (r *pollRegistry) add(prio int, fd *PollFD) *pollRecord {
	rec := &pollRecord{priority: prio, fd: fd}

	var at *pollRecord
	for n := r.head; n != nil; n = n.next {
		if n.priority > prio {
			at = n
			break
		}
	}

	if at == nil {
		rec.prev = r.tail
		if r.tail != nil {
			r.tail.next = rec
		} else {
			r.head = rec
		}
		r.tail = rec
		return rec
	}

	rec.next = at
	rec.prev = at.prev
	if at.prev != nil {
		at.prev.next = rec
	} else {
		r.head = rec
	}
	at.prev = rec
	return rec
}

// remove unlinks the record whose descriptor pointer matches fd. No
// duplicate detection is required of callers (spec.md §4.2); the first
// match is removed.
func (r *pollRegistry) remove(fd *PollFD) bool {
	for n := r.head; n != nil; n = n.next {
		if n.fd == fd {
			r.unlink(n)
			return true
		}
	}
	return false
}

func (r *pollRegistry) unlink(rec *pollRecord) {
	if rec.prev != nil {
		rec.prev.next = rec.next
	} else if r.head == rec {
		r.head = rec.next
	}
	if rec.next != nil {
		rec.next.prev = rec.prev
	} else if r.tail == rec {
		r.tail = rec.prev
	}
	rec.prev, rec.next = nil, nil
}

// collect returns the PollFD pointers registered with priority <= ceiling.
// When includeAll is true, ceiling is ignored and every record is returned
// (spec.md §4.5 step 4: "all records if no source declared ready").
func (r *pollRegistry) collect(ceiling int, includeAll bool) []*PollFD {
	var out []*PollFD
	for n := r.head; n != nil; n = n.next {
		if includeAll || n.priority <= ceiling {
			out = append(out, n.fd)
		}
	}
	return out
}
