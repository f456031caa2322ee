package srcloop

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPollRegistryPrioritySortedCollect(t *testing.T) {
	r := newPollRegistry()
	fdLow := &PollFD{FD: 1}
	fdHigh := &PollFD{FD: 2}
	fdMid := &PollFD{FD: 3}

	r.add(10, fdLow)
	r.add(-5, fdHigh)
	r.add(0, fdMid)

	var order []int
	for n := r.head; n != nil; n = n.next {
		order = append(order, n.fd.FD)
	}
	require.Equal(t, []int{2, 3, 1}, order)

	require.Len(t, r.collect(0, false), 2)
	require.Len(t, r.collect(100, false), 3)
	require.Len(t, r.collect(-100, true), 3)
}

func TestPollRegistryRemove(t *testing.T) {
	r := newPollRegistry()
	fd := &PollFD{FD: 7}
	r.add(0, fd)

	require.True(t, r.remove(fd))
	require.False(t, r.remove(fd))
	require.Nil(t, r.head)
}

func TestContextPollAddRemove(t *testing.T) {
	ctx, err := NewContext()
	require.NoError(t, err)
	defer ctx.Close()

	fd := &PollFD{FD: 42, Events: PollIn}
	ctx.PollAdd(PriorityDefault, fd)
	require.True(t, ctx.PollRemove(fd))
	require.False(t, ctx.PollRemove(fd))
}
