// Nursery provides the structured scope of this package: a parent task
// that owns dynamically spawned children. The parent's awaiter cannot
// observe completion while any child is still running; children are
// counted in and out, and the awaiter resumes only when the parent body
// has returned and the child count has reached zero.
//
// The nursery does not cancel children when the parent body fails.
// Cancellation is cooperative: thread a [StopSource] or the context
// into the children yourself.

package strand

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	uatomic "go.uber.org/atomic"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// NurseryTask is a lazy task whose body may spawn children into a
// [Nursery]. Like [Task] it runs only when awaited and its outcome is
// consumed exactly once.
type NurseryTask[T any] struct {
	body     func(ctx context.Context, n *Nursery) (T, error)
	opts     []Option
	consumed atomic.Bool
}

// NewNurseryTask creates a nursery task from fn. fn receives the
// nursery handle; the handle is valid only until fn returns.
func NewNurseryTask[T any](fn func(ctx context.Context, n *Nursery) (T, error), opts ...Option) *NurseryTask[T] {
	if fn == nil {
		panic("strand: NewNurseryTask requires a non-nil function")
	}
	return &NurseryTask[T]{body: fn, opts: opts}
}

// Await runs the body, then suspends until every spawned child has
// completed. The body's own error takes precedence; otherwise child
// failures (each wrapped in [*TaskError]) are combined and surfaced,
// unless [WithIgnoredChildErrors] was set.
func (t *NurseryTask[T]) Await(ctx context.Context) (T, error) {
	if t.consumed.Swap(true) {
		panic("strand: nursery task awaited twice")
	}

	cfg := defaultConfig()
	for _, opt := range t.opts {
		opt(&cfg)
	}
	n := newNursery(ctx, cfg)

	val, bodyErr := protect(ctx, func(ctx context.Context) (T, error) {
		return t.body(ctx, n)
	})

	// Step 1: close the handle so no new children can be started.
	n.close()

	// Step 2: suspend until the child counter reaches zero.
	n.wg.Wait()

	// Step 3: resolve the outcome. The body's error wins; child
	// errors are surfaced only if the body itself succeeded.
	if bodyErr != nil {
		return val, bodyErr
	}
	if err := n.childError(); err != nil {
		var zero T
		return zero, err
	}
	return val, nil
}

// Nursery is the handle a [NurseryTask] body uses to spawn children.
// It is valid only for the lifetime of the body; starting a child
// after the body has returned panics.
type Nursery struct {
	ctx  context.Context
	cfg  config
	wg   sync.WaitGroup
	open atomic.Bool

	firstErr uatomic.Error
	errOnce  sync.Once

	errMu sync.Mutex
	errs  []error

	// Observability counters.
	totalStarted   atomic.Int64
	activeChildren atomic.Int64
}

func newNursery(ctx context.Context, cfg config) *Nursery {
	n := &Nursery{ctx: ctx, cfg: cfg}
	n.open.Store(true)
	return n
}

// Start spawns a child running fn. The child begins immediately and is
// joined before the nursery task's awaiter observes completion. The
// child's value, if any, is discarded; its error is recorded.
func (n *Nursery) Start(name string, fn func(ctx context.Context) error) {
	// Check open BEFORE wg.Add to avoid a TOCTOU race with the
	// awaiter's wg.Wait.
	if !n.open.Load() {
		panic("strand: Start called after nursery body returned")
	}

	n.wg.Add(1)
	n.totalStarted.Add(1)

	info := TaskInfo{ID: uuid.New(), Name: name}

	go n.runChild(info, fn)
}

// StartChild spawns aw as a child of n, discarding its value. It is
// the generic form of [Nursery.Start] for existing awaitables.
func StartChild[T any](n *Nursery, name string, aw Awaitable[T]) {
	n.Start(name, func(ctx context.Context) error {
		_, err := aw.Await(ctx)
		return err
	})
}

func (n *Nursery) runChild(info TaskInfo, fn func(ctx context.Context) error) {
	defer n.wg.Done()

	if n.cfg.sem != nil {
		if err := n.cfg.sem.Acquire(n.ctx, 1); err != nil {
			// Context cancelled while waiting for a slot; the cause
			// is already observable through the context itself.
			return
		}
		defer n.cfg.sem.Release(1)
	}

	n.activeChildren.Add(1)
	defer n.activeChildren.Add(-1)

	n.cfg.logger.Debug("nursery child started",
		zap.String("child", info.Name),
		zap.String("id", info.ID.String()),
	)
	n.emit(TaskEvent{Kind: EventStarted, Task: info})

	start := time.Now()
	_, err := protect(n.ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	elapsed := time.Since(start)

	n.cfg.logger.Debug("nursery child finished",
		zap.String("child", info.Name),
		zap.String("id", info.ID.String()),
		zap.Duration("elapsed", elapsed),
		zap.Error(err),
	)
	n.emit(completionEvent(info, err, elapsed))

	if err != nil {
		n.recordError(info, err)
	}
}

func (n *Nursery) recordError(info TaskInfo, err error) {
	te := &TaskError{Task: info, Err: err}
	n.errOnce.Do(func() { n.firstErr.Store(te) })

	n.errMu.Lock()
	n.errs = append(n.errs, te)
	n.errMu.Unlock()
}

// childError combines every recorded child failure. Valid once the
// child counter has reached zero.
func (n *Nursery) childError() error {
	if n.cfg.ignoreChildErrors {
		return nil
	}
	n.errMu.Lock()
	defer n.errMu.Unlock()
	return multierr.Combine(n.errs...)
}

// FirstError returns the first child failure recorded so far, or nil.
func (n *Nursery) FirstError() error {
	return n.firstErr.Load()
}

// Context returns the context the nursery task was awaited with.
func (n *Nursery) Context() context.Context {
	return n.ctx
}

// ActiveChildren returns the number of children currently executing.
func (n *Nursery) ActiveChildren() int64 {
	return n.activeChildren.Load()
}

// TotalStarted returns the total number of children started, including
// those that have already completed.
func (n *Nursery) TotalStarted() int64 {
	return n.totalStarted.Load()
}

func (n *Nursery) close() {
	n.open.Store(false)
}

func (n *Nursery) emit(e TaskEvent) {
	if n.cfg.onEvent != nil {
		n.cfg.onEvent(e)
	}
}

func completionEvent(info TaskInfo, err error, d time.Duration) TaskEvent {
	kind := EventDone
	switch {
	case err == nil:
	case isPanicError(err):
		kind = EventPanicked
	default:
		kind = EventErrored
	}
	return TaskEvent{Kind: kind, Task: info, Err: err, Duration: d}
}

func isPanicError(err error) bool {
	var pe *PanicError
	return errors.As(err, &pe)
}
