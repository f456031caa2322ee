package srcloop

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// S3 — priority gating: a priority-10 source that is always ready excludes
// a priority-20 source from the same iteration.
func TestPriorityGating(t *testing.T) {
	ctx, err := NewContext()
	require.NoError(t, err)
	defer ctx.Close()

	var dispatched []string
	aFuncs := alwaysReadyFuncs(&dispatched, "A", true)
	bFuncs := alwaysReadyFuncs(&dispatched, "B", true)

	idA, err := ctx.SourceAdd(10, false, aFuncs, nil, nil, nil)
	require.NoError(t, err)
	_, err = ctx.SourceAdd(20, false, bFuncs, nil, nil, nil)
	require.NoError(t, err)

	ctx.Iteration(true)
	require.Equal(t, []string{"A"}, dispatched)

	require.NoError(t, ctx.SourceRemove(idA))
	dispatched = nil
	ctx.Iteration(true)
	require.Equal(t, []string{"B"}, dispatched)
}

// S4 — FIFO within priority: two idle sources registered at the same
// priority dispatch in registration order.
func TestFIFOWithinPriority(t *testing.T) {
	ctx, err := NewContext()
	require.NoError(t, err)
	defer ctx.Close()

	var order []string
	_, err = ctx.IdleAdd(func() bool { order = append(order, "1"); return false })
	require.NoError(t, err)
	_, err = ctx.IdleAdd(func() bool { order = append(order, "2"); return false })
	require.NoError(t, err)

	ctx.Iteration(true)
	require.Equal(t, []string{"1", "2"}, order)
}

// Invariant 1: the registry's priorities are non-decreasing along the list
// at the start of every iteration.
func TestRegistryStaysPrioritySorted(t *testing.T) {
	l := newSourceList()
	priorities := []int{5, -3, 10, -3, 0, 5}
	for _, p := range priorities {
		l.insert(&Source{priority: p})
	}

	last := -1 << 62
	for s := l.head; s != nil; s = s.next {
		require.GreaterOrEqual(t, s.priority, last)
		last = s.priority
	}
}

// Invariant 2: every source has a unique id.
func TestSourceIDsAreUnique(t *testing.T) {
	ctx, err := NewContext()
	require.NoError(t, err)
	defer ctx.Close()

	seen := map[SourceID]bool{}
	for i := 0; i < 100; i++ {
		id, err := ctx.IdleAdd(func() bool { return true })
		require.NoError(t, err)
		require.False(t, seen[id])
		seen[id] = true
	}
}
