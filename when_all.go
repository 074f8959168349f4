package strand

import "context"

// WhenAll awaits every member of the group and returns their values in
// input order. It fails fast: the first member to fail decides the
// group's error, members not yet started at that point are skipped,
// and the group still waits for every member it did start before
// returning. An empty group completes immediately.
func WhenAll[T any](ctx context.Context, aws ...Awaitable[T]) ([]T, error) {
	return WhenAllStop(ctx, nil, aws...)
}

// WhenAllStop is [WhenAll] with cooperative cancellation: the first
// failure triggers stop, so members observing stop.Token() can cancel
// themselves instead of running to completion.
func WhenAllStop[T any](ctx context.Context, stop *StopSource, aws ...Awaitable[T]) ([]T, error) {
	if len(aws) == 0 {
		return []T{}, nil
	}

	done := make(chan struct{})
	frame := newGroupFrame(len(aws), stop, func() { close(done) })
	tasks := newAdapterTasks(aws)

	startGroup(ctx, frame, tasks, frame.allReady, &frame.firstFailed)
	<-done

	if idx := frame.firstFailed.Load(); idx < frame.n {
		return nil, tasks[idx].result().Err()
	}

	values := make([]T, len(tasks))
	for i, t := range tasks {
		values[i], _ = t.resultValue()
	}
	return values, nil
}

// WhenAll2 awaits two awaitables of different types, failing fast like
// [WhenAll].
func WhenAll2[A, B any](ctx context.Context, a Awaitable[A], b Awaitable[B]) (A, B, error) {
	res, err := WhenAll[any](ctx, erased[A]{a}, erased[B]{b})
	if err != nil {
		var za A
		var zb B
		return za, zb, err
	}
	return res[0].(A), res[1].(B), nil
}

// WhenAll3 awaits three awaitables of different types, failing fast
// like [WhenAll].
func WhenAll3[A, B, C any](ctx context.Context, a Awaitable[A], b Awaitable[B], c Awaitable[C]) (A, B, C, error) {
	res, err := WhenAll[any](ctx, erased[A]{a}, erased[B]{b}, erased[C]{c})
	if err != nil {
		var za A
		var zb B
		var zc C
		return za, zb, zc, err
	}
	return res[0].(A), res[1].(B), res[2].(C), nil
}
