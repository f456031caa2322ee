package srcloop

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// S2 / invariant 8 — a 10ms timeout whose callback returns true for the
// first two calls and false on the third fires exactly three times and is
// then removed, driven by a ManualClock advanced 10ms per iteration.
func TestTimeoutRearmAndRemove(t *testing.T) {
	clock := NewManualClock(Time{Sec: 1000})
	ctx, err := NewContext(WithClock(clock))
	require.NoError(t, err)
	defer ctx.Close()

	var count int
	id, err := ctx.TimeoutAdd(10, func() bool {
		count++
		return count < 3
	})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		clock.Advance(10_000_000) // 10ms in nanoseconds
		ctx.Iteration(true)
	}

	require.Equal(t, 3, count)
	require.ErrorIs(t, ctx.SourceRemove(id), ErrSourceNotFound)
}

func TestTimeoutPrepareReportsRemainingMillis(t *testing.T) {
	clock := NewManualClock(Time{Sec: 1000})
	ctx, err := NewContext(WithClock(clock))
	require.NoError(t, err)
	defer ctx.Close()

	_, err = ctx.TimeoutAdd(50, func() bool { return false })
	require.NoError(t, err)

	var timeout int
	d := ctx.sources.head.sourceData.(*timeoutData)
	ready := timeoutPrepare(d, clock.Now(), &timeout)
	require.False(t, ready)
	require.InDelta(t, 50, timeout, 5)
}
