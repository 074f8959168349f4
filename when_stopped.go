package strand

import (
	"context"
	"sync/atomic"
)

// WhenStopped returns an awaitable that completes once token has stop
// requested. It completes with no value; pair it with [WhenAny] to
// bound other awaitables by cancellation.
func WhenStopped(token StopToken) Awaitable[struct{}] {
	return stoppedAwaiter{token: token}
}

type stoppedAwaiter struct {
	token StopToken
}

func (a stoppedAwaiter) Ready() bool {
	return a.token.Stopped()
}

func (a stoppedAwaiter) Await(ctx context.Context) (struct{}, error) {
	if a.token.Stopped() {
		return struct{}{}, nil
	}

	// Registration and suspension race against an immediate stop.
	// Both sides bump the flag; whichever side observes the other
	// already got there performs the single wakeup.
	var race atomic.Int32
	wake := make(chan struct{})

	unregister := a.token.Register(func() {
		if race.Add(1) == 2 {
			close(wake)
		}
	})
	defer unregister()

	if race.Add(1) == 2 {
		close(wake)
	}

	select {
	case <-wake:
		return struct{}{}, nil
	case <-ctx.Done():
		return struct{}{}, ctx.Err()
	}
}
