package srcloop

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// S5 — non-recursive guard: a source with CanRecurse false whose dispatch
// calls Iteration(false) once must not be re-entered; the inner call
// reports no dispatch, and the outer dispatch counter stays at 1.
func TestNonRecursiveGuard(t *testing.T) {
	ctx, err := NewContext()
	require.NoError(t, err)
	defer ctx.Close()

	var outerCount int
	var innerResult bool

	funcs := SourceFuncs{
		Prepare: func(sourceData any, now Time, outTimeout *int) bool { *outTimeout = 0; return true },
		Check:   func(sourceData any, now Time) bool { return true },
		Dispatch: func(sourceData any, now Time, userData any) bool {
			outerCount++
			if outerCount == 1 {
				innerResult = ctx.Iteration(false)
			}
			return true
		},
	}
	id, err := ctx.SourceAdd(PriorityDefault, false, funcs, nil, nil, nil)
	require.NoError(t, err)
	defer ctx.SourceRemove(id)

	ctx.Iteration(true)

	require.False(t, innerResult)
	require.Equal(t, 1, outerCount)
}

// Invariant 5: with CanRecurse true, the source may be re-entered.
func TestRecursiveAllowed(t *testing.T) {
	ctx, err := NewContext()
	require.NoError(t, err)
	defer ctx.Close()

	var count int
	funcs := SourceFuncs{
		Prepare: func(sourceData any, now Time, outTimeout *int) bool {
			*outTimeout = 0
			return count < 2
		},
		Check: func(sourceData any, now Time) bool { return count < 2 },
		Dispatch: func(sourceData any, now Time, userData any) bool {
			count++
			if count == 1 {
				ctx.Iteration(true)
			}
			return false
		},
	}
	_, err = ctx.SourceAdd(PriorityDefault, true, funcs, nil, nil, nil)
	require.NoError(t, err)

	ctx.Iteration(true)
	require.Equal(t, 2, count)
}
