package strand

import (
	"context"
	"sync/atomic"
)

// groupFrame is the shared state of one combinator await: a live
// counter plus first-failure / first-success indices. Completion
// callbacks may fire from multiple goroutines simultaneously; all
// cross-member coordination goes through these atomics. Everything
// else in the frame is written before the members start and read only
// by the code path that decremented the counter to zero.
type groupFrame struct {
	counter     atomic.Int64
	firstFailed atomic.Int64
	firstDone   atomic.Int64

	n      int64
	stop   *StopSource
	parent Continuation
}

// newGroupFrame prepares a frame for n members. The index slots hold
// the sentinel n until a member claims them. parent is resumed exactly
// once, by whichever completion brings the counter to zero.
func newGroupFrame(n int, stop *StopSource, parent Continuation) *groupFrame {
	f := &groupFrame{n: int64(n), stop: stop, parent: parent}
	f.counter.Store(int64(n))
	f.firstFailed.Store(int64(n))
	f.firstDone.Store(int64(n))
	return f
}

// completeOne records one member completion. The zero-decrementer gets
// the parent continuation; everyone else gets the no-op.
func (f *groupFrame) completeOne() Continuation {
	if f.counter.Add(-1) == 0 {
		return f.parent
	}
	return nil
}

// allReady is the fail-fast policy: the first unsuccessful member wins
// the CAS on firstFailed and, when a stop source is armed, requests
// stop so cooperating siblings cancel themselves.
func (f *groupFrame) allReady(i int) onReady {
	return func(success bool) Continuation {
		if !success && f.firstFailed.CompareAndSwap(f.n, int64(i)) && f.stop != nil {
			f.stop.RequestStop()
		}
		return f.completeOne()
	}
}

// anyReady is the first-success policy: the first successful member
// wins firstDone and triggers the stop source; failures race for
// firstFailed so an all-fail group can surface its first error.
func (f *groupFrame) anyReady(i int) onReady {
	return func(success bool) Continuation {
		if success {
			if f.firstDone.CompareAndSwap(f.n, int64(i)) && f.stop != nil {
				f.stop.RequestStop()
			}
		} else {
			f.firstFailed.CompareAndSwap(f.n, int64(i))
		}
		return f.completeOne()
	}
}

// collectReady is the never-fail policy: completions only count down.
func (f *groupFrame) collectReady(int) onReady {
	return func(bool) Continuation {
		return f.completeOne()
	}
}

// startGroup fans the members out in two passes: members 0..n-2 are
// started, then the awaiting goroutine itself runs the last member
// inline, becoming the last child rather than scheduling it.
//
// shortIdx, when non-nil, arms the sequential short-circuit: after
// starting member i, a winner recorded at index <= i means the
// remaining members are never started. The counter is adjusted by the
// unstarted remainder so the group still completes once every member
// that did start has finished.
func startGroup[T any](
	ctx context.Context,
	f *groupFrame,
	tasks []*adapterTask[T],
	ready func(i int) onReady,
	shortIdx *atomic.Int64,
) {
	last := len(tasks) - 1
	for i := 0; i < last; i++ {
		tasks[i].start(ctx, ready(i))
		if shortIdx != nil && shortIdx.Load() <= int64(i) {
			leftToRun := int64(last - i)
			if f.counter.Add(-leftToRun) == 0 {
				resume(f.parent)
			}
			return
		}
	}
	tasks[last].setup(ctx, ready(last))()
}

// erased adapts a typed awaitable to Awaitable[any] for the
// heterogeneous group forms, preserving readiness.
type erased[T any] struct {
	aw Awaitable[T]
}

func (e erased[T]) Await(ctx context.Context) (any, error) {
	v, err := e.aw.Await(ctx)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (e erased[T]) Ready() bool {
	r, ok := e.aw.(Readier)
	return ok && r.Ready()
}
