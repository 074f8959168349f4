package strand

import "context"

// WhenAllComplete awaits every member of the group and reports every
// outcome. It never fails fast and never fails itself: the returned
// slice always has one [AsyncResult] per input, in input order, each
// holding either the member's value or its error. Use it to collect
// partial outcomes where [WhenAll] would discard them.
func WhenAllComplete[T any](ctx context.Context, aws ...Awaitable[T]) []AsyncResult[T] {
	if len(aws) == 0 {
		return []AsyncResult[T]{}
	}

	done := make(chan struct{})
	frame := newGroupFrame(len(aws), nil, func() { close(done) })
	tasks := newAdapterTasks(aws)

	// Every member is always started: no short-circuit index.
	startGroup(ctx, frame, tasks, frame.collectReady, nil)
	<-done

	results := make([]AsyncResult[T], len(tasks))
	for i, t := range tasks {
		results[i] = t.result()
	}
	return results
}

// WhenAllComplete2 awaits two awaitables of different types and
// reports both outcomes.
func WhenAllComplete2[A, B any](ctx context.Context, a Awaitable[A], b Awaitable[B]) (AsyncResult[A], AsyncResult[B]) {
	res := WhenAllComplete[any](ctx, erased[A]{a}, erased[B]{b})
	return typedResult[A](res[0]), typedResult[B](res[1])
}

func typedResult[T any](r AsyncResult[any]) AsyncResult[T] {
	if r.err != nil {
		return ErrResult[T](r.err)
	}
	return OkResult(r.val.(T))
}
