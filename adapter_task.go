package strand

import "context"

// onReady is the completion callback of an adapter task. It is invoked
// exactly once, at the moment the wrapped awaitable finishes, with
// success reporting whether a value was produced. The returned
// continuation is run immediately; nil means there is nothing to
// resume yet.
type onReady func(success bool) Continuation

// adapterTask wraps an arbitrary awaitable behind a uniform
// completion-callback surface. Group combinators never inspect the
// shape of the wrapped awaitable: they start adapters, observe
// onReady callbacks, and read result slots afterwards.
//
// The result slot is written once by the goroutine that ran the
// awaitable and read by the group awaiter only after the group counter
// reached zero; the atomic counter decrement publishes the write.
type adapterTask[T any] struct {
	aw  Awaitable[T]
	res AsyncResult[T]
}

func newAdapterTask[T any](aw Awaitable[T]) *adapterTask[T] {
	return &adapterTask[T]{aw: aw}
}

func newAdapterTasks[T any](aws []Awaitable[T]) []*adapterTask[T] {
	tasks := make([]*adapterTask[T], len(aws))
	for i, aw := range aws {
		tasks[i] = newAdapterTask(aw)
	}
	return tasks
}

// start begins driving the wrapped awaitable. An awaitable that
// reports [Readier] readiness completes without blocking, so it is run
// inline on the calling goroutine; everything else gets its own
// goroutine. cb fires when the awaitable finishes, on whichever
// goroutine ran it.
func (a *adapterTask[T]) start(ctx context.Context, cb onReady) {
	if r, ok := a.aw.(Readier); ok && r.Ready() {
		a.run(ctx, cb)
		return
	}
	go a.run(ctx, cb)
}

// setup arms the adapter without starting it and returns the runnable
// to execute. Combinators use this for their last member: the awaiting
// goroutine runs the returned continuation itself and so becomes the
// last child instead of scheduling it.
func (a *adapterTask[T]) setup(ctx context.Context, cb onReady) Continuation {
	return func() { a.run(ctx, cb) }
}

func (a *adapterTask[T]) run(ctx context.Context, cb onReady) {
	v, err := await(ctx, a.aw)
	a.res = AsyncResult[T]{val: v, err: err}
	resume(cb(err == nil))
}

// result returns the outcome slot. Valid only after the completion
// callback has fired.
func (a *adapterTask[T]) result() AsyncResult[T] {
	return a.res
}

// resultValue takes the value or propagates the error.
func (a *adapterTask[T]) resultValue() (T, error) {
	return a.res.Value()
}
