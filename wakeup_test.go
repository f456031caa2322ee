package srcloop

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// S6 / invariant 7 — a thread blocked in Iteration(true) with no ready
// source and an infinite wait returns shortly after another thread adds an
// idle source.
func TestWakeupLivenessOnSourceAdd(t *testing.T) {
	ctx, err := NewContext()
	require.NoError(t, err)
	defer ctx.Close()

	done := make(chan bool, 1)
	go func() {
		done <- ctx.Iteration(true)
	}()

	// Give the goroutine time to enter poll before adding a source.
	time.Sleep(20 * time.Millisecond)

	var dispatched bool
	_, err = ctx.IdleAdd(func() bool {
		dispatched = true
		return false
	})
	require.NoError(t, err)

	select {
	case ran := <-done:
		require.True(t, ran)
		require.True(t, dispatched)
	case <-time.After(2 * time.Second):
		t.Fatal("Iteration(true) did not return after source_add woke it up")
	}
}

// Invariant 4: the wake-up pipe's read end is registered at most once.
func TestWakeupPollRecordRegisteredOnce(t *testing.T) {
	ctx, err := NewContext()
	require.NoError(t, err)
	defer ctx.Close()

	count := 0
	for r := ctx.polls.head; r != nil; r = r.next {
		if r.fd == ctx.wake.fd {
			count++
		}
	}
	require.Equal(t, 1, count)
}
