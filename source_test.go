package srcloop

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func alwaysReadyFuncs(dispatched *[]string, name string, keep bool) SourceFuncs {
	return SourceFuncs{
		Prepare: func(sourceData any, now Time, outTimeout *int) bool {
			*outTimeout = 0
			return true
		},
		Check: func(sourceData any, now Time) bool { return true },
		Dispatch: func(sourceData any, now Time, userData any) bool {
			*dispatched = append(*dispatched, name)
			return keep
		},
	}
}

// S1 — basic idle: register an idle source whose callback appends 'x' and
// returns false; one Iteration(true) dispatches it and it is then gone.
func TestIdleBasicDispatchAndRemove(t *testing.T) {
	ctx, err := NewContext()
	require.NoError(t, err)
	defer ctx.Close()

	var buf []byte
	id, err := ctx.IdleAdd(func() bool {
		buf = append(buf, 'x')
		return false
	})
	require.NoError(t, err)

	ran := ctx.Iteration(true)
	require.True(t, ran)
	require.Equal(t, "x", string(buf))

	require.ErrorIs(t, ctx.SourceRemove(id), ErrSourceNotFound)
}

// Invariant 9: SourceAdd returning id k then SourceRemove(k) leaves the
// registry empty.
func TestSourceAddRemoveRoundTrip(t *testing.T) {
	ctx, err := NewContext()
	require.NoError(t, err)
	defer ctx.Close()

	id, err := ctx.IdleAdd(func() bool { return true })
	require.NoError(t, err)
	require.Equal(t, 1, ctx.sources.len())

	require.NoError(t, ctx.SourceRemove(id))
	require.Equal(t, 0, ctx.sources.len())
}

// Invariant 6: exactly-once destroy.
func TestExactlyOnceDestroy(t *testing.T) {
	ctx, err := NewContext()
	require.NoError(t, err)
	defer ctx.Close()

	var sourceDestroyed, userDestroyed int
	funcs := SourceFuncs{
		Prepare:  func(sourceData any, now Time, outTimeout *int) bool { *outTimeout = -1; return false },
		Check:    func(sourceData any, now Time) bool { return false },
		Dispatch: func(sourceData any, now Time, userData any) bool { return true },
		Destroy:  func(sourceData any) { sourceDestroyed++ },
	}
	id, err := ctx.SourceAdd(PriorityDefault, false, funcs, "src", "user", func(any) { userDestroyed++ })
	require.NoError(t, err)

	require.NoError(t, ctx.SourceRemove(id))
	require.Equal(t, 1, sourceDestroyed)
	require.Equal(t, 1, userDestroyed)

	require.ErrorIs(t, ctx.SourceRemove(id), ErrSourceNotFound)
	require.Equal(t, 1, sourceDestroyed)
	require.Equal(t, 1, userDestroyed)
}

func TestSourceRemoveByUserAndSourceData(t *testing.T) {
	ctx, err := NewContext()
	require.NoError(t, err)
	defer ctx.Close()

	type sdata struct{}
	type udata struct{}
	sd, ud := &sdata{}, &udata{}

	funcs := SourceFuncs{
		Prepare: func(sourceData any, now Time, outTimeout *int) bool { *outTimeout = -1; return false },
		Check:   func(sourceData any, now Time) bool { return false },
	}

	_, err = ctx.SourceAdd(PriorityDefault, false, funcs, sd, ud, nil)
	require.NoError(t, err)

	require.NoError(t, ctx.SourceRemoveBySourceData(sd))
	require.Equal(t, 0, ctx.sources.len())

	_, err = ctx.SourceAdd(PriorityDefault, false, funcs, sd, ud, nil)
	require.NoError(t, err)
	require.NoError(t, ctx.SourceRemoveByUserData(ud))
	require.Equal(t, 0, ctx.sources.len())
}

func TestSourceAddRejectsEmptyVtable(t *testing.T) {
	ctx, err := NewContext()
	require.NoError(t, err)
	defer ctx.Close()

	_, err = ctx.SourceAdd(PriorityDefault, false, SourceFuncs{}, nil, nil, nil)
	require.ErrorIs(t, err, ErrInvalidSource)
}
