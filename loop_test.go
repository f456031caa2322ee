package srcloop

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoopRunQuit(t *testing.T) {
	ctx, err := NewContext()
	require.NoError(t, err)
	defer ctx.Close()

	loop := NewLoop(ctx)

	var ticks int
	_, err = ctx.TimeoutAdd(1, func() bool {
		ticks++
		if ticks >= 3 {
			loop.Quit()
		}
		return true
	})
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- loop.Run() }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("loop.Run() did not return after Quit")
	}
	require.GreaterOrEqual(t, ticks, 3)
}

func TestLoopRejectsConcurrentRun(t *testing.T) {
	ctx, err := NewContext()
	require.NoError(t, err)
	defer ctx.Close()

	loop := NewLoop(ctx)

	go func() {
		loop.Run()
	}()
	// Give the goroutine a moment to set running = true.
	for i := 0; i < 100 && !loop.Running(); i++ {
		time.Sleep(time.Millisecond)
	}
	require.True(t, loop.Running())

	err = loop.Run()
	require.ErrorIs(t, err, ErrLoopAlreadyRunning)

	loop.Quit()
}
