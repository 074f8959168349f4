package strand_test

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/go-strand/strand"
)

// intTask produces v as soon as it is awaited.
func intTask(v int) *strand.Task[int] {
	return strand.NewTask(func(ctx context.Context) (int, error) {
		return v, nil
	})
}

// throwingIntTask fails with msg as soon as it is awaited.
func throwingIntTask(msg string) *strand.Task[int] {
	return strand.NewTask(func(ctx context.Context) (int, error) {
		return 0, errors.New(msg)
	})
}

// delayed produces v after d.
func delayed(v int, d time.Duration) *strand.Task[int] {
	return strand.NewTask(func(ctx context.Context) (int, error) {
		select {
		case <-time.After(d):
			return v, nil
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	})
}

// stoppable runs for up to d but completes early once token reports
// stop.
func stoppable(token strand.StopToken, d time.Duration) *strand.Task[int] {
	return strand.NewTask(func(ctx context.Context) (int, error) {
		select {
		case <-time.After(d):
			return 0, nil
		case <-token.Done():
			return 0, nil
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	})
}

// trackedTask records whether it was ever started.
func trackedTask(started *atomic.Bool, v int) *strand.Task[int] {
	return strand.NewTask(func(ctx context.Context) (int, error) {
		started.Store(true)
		return v, nil
	})
}
