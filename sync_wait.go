package strand

import (
	"context"
	"sync"
)

// syncEvent is the binary event behind SyncWait.
//
// Set signals under the lock: the waiter may return and let the event
// go out of scope the instant it observes signaled, so the condition
// variable must not be touched after the lock is released.
type syncEvent struct {
	mu       sync.Mutex
	cond     *sync.Cond
	signaled bool
}

func newSyncEvent() *syncEvent {
	e := &syncEvent{}
	e.cond = sync.NewCond(&e.mu)
	return e
}

func (e *syncEvent) set() {
	e.mu.Lock()
	e.signaled = true
	e.cond.Signal()
	e.mu.Unlock()
}

func (e *syncEvent) wait() {
	e.mu.Lock()
	for !e.signaled {
		e.cond.Wait()
	}
	e.mu.Unlock()
}

// SyncWait drives aw to completion and returns its outcome on the
// calling goroutine. It is the bridge from blocking code into the
// awaitable world: the awaitable runs concurrently, its completion
// callback signals a binary event, and the caller blocks on that event.
func SyncWait[T any](ctx context.Context, aw Awaitable[T]) (T, error) {
	event := newSyncEvent()
	task := newAdapterTask(aw)
	task.start(ctx, func(bool) Continuation {
		event.set()
		return nil
	})
	event.wait()
	return task.resultValue()
}
