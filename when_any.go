package strand

import (
	"context"
	"errors"
)

// ErrNoTasks is returned by [WhenAny] over an empty group: with no
// members there is no first success to wait for.
var ErrNoTasks = errors.New("strand: when-any over no tasks")

// WhenAny awaits the group until its first success and returns the
// winning index and value. Members not yet started when the winner
// completed are skipped; the group still waits for every started
// member before returning, so it is safe to release their resources
// afterwards. If every member fails, the first-failing member's error
// surfaces together with its index.
func WhenAny[T any](ctx context.Context, aws ...Awaitable[T]) (int, T, error) {
	return WhenAnyStop(ctx, nil, aws...)
}

// WhenAnyStop is [WhenAny] with cooperative cancellation: the first
// success triggers stop, so losing members observing stop.Token() can
// abandon their work instead of running to completion.
func WhenAnyStop[T any](ctx context.Context, stop *StopSource, aws ...Awaitable[T]) (int, T, error) {
	var zero T
	if len(aws) == 0 {
		return -1, zero, ErrNoTasks
	}

	done := make(chan struct{})
	frame := newGroupFrame(len(aws), stop, func() { close(done) })
	tasks := newAdapterTasks(aws)

	startGroup(ctx, frame, tasks, frame.anyReady, &frame.firstDone)
	<-done

	if idx := frame.firstDone.Load(); idx < frame.n {
		v, _ := tasks[idx].resultValue()
		return int(idx), v, nil
	}

	idx := frame.firstFailed.Load()
	return int(idx), zero, tasks[idx].result().Err()
}

// WhenAny2 awaits two awaitables of different types until the first
// success. The winning value is returned as `any` alongside its index.
func WhenAny2[A, B any](ctx context.Context, a Awaitable[A], b Awaitable[B]) (int, any, error) {
	return WhenAny[any](ctx, erased[A]{a}, erased[B]{b})
}
