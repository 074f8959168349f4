// Package strand provides structured concurrency primitives for Go:
// lazy single-consumer tasks, nurseries, completion combinators, a
// one-shot event, an asynchronous mutex, and lazy generators.
//
// Structured concurrency ensures that concurrent work has a well-defined
// lifecycle: children are spawned and joined within a clear scope, so a
// parent never completes while a child is still running, and failures
// travel along the awaiter chain instead of being dropped.
//
// # Tasks
//
// A [Task] is a lazy computation. It does not run when created; it runs
// when awaited, and its outcome is consumed exactly once:
//
//	t := strand.NewTask(func(ctx context.Context) (int, error) {
//	    return fetchCount(ctx)
//	})
//	n, err := t.Await(ctx)
//
// [SyncWait] bridges the blocking world: it drives any [Awaitable] to
// completion and returns its result on the calling goroutine.
//
// # Combinators
//
// [WhenAll] awaits a group and fails fast on the first error.
// [WhenAllComplete] awaits a group and reports every outcome as an
// [AsyncResult], never failing itself. [WhenAny] completes with the
// first success. The stop-source variants ([WhenAllStop], [WhenAnyStop])
// additionally signal a [StopSource] so cooperating siblings can cancel
// themselves.
//
// # Nurseries
//
// A [NurseryTask] owns dynamically spawned children. Its awaiter cannot
// observe completion while any child is still running:
//
//	nt := strand.NewNurseryTask(func(ctx context.Context, n *strand.Nursery) (int, error) {
//	    for _, u := range urls {
//	        n.Start("fetch", func(ctx context.Context) error { return fetch(ctx, u) })
//	    }
//	    return len(urls), nil
//	})
//	n, err := nt.Await(ctx)
//
// # Synchronization
//
// [SingleEvent] is a one-shot typed rendezvous between exactly one
// sender and at most one awaiter. [Mutex] is an asynchronous mutex with
// a lock-free waiter queue; [WhenLocked] returns a [UniqueLock] that
// hands the lock off to the next waiter on unlock.
//
// # Generators
//
// [Generator] produces values lazily on demand; [AsyncGenerator] is the
// same shape but its producer may block between yields. Both are
// single-consumer and release their producer when closed.
//
// # Cancellation
//
// Cancellation is purely cooperative. A [StopSource] distributes a stop
// request to any number of [StopToken] observers; [WhenStopped] and
// [WhenSignal] turn stop requests and OS signals into awaitables.
// The library never interrupts a running task.
package strand
