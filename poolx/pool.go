// Package poolx provides a fixed worker pool that doubles as a
// [strand.Scheduler]: continuations handed to Schedule resume on one
// of the pool's worker goroutines instead of the goroutine that
// produced them. It is the standard way to exercise the strand
// primitives from a bounded set of threads.
package poolx

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/go-strand/strand"
)

// ErrPoolClosed is returned by [Pool.Submit] when the pool has been
// closed.
var ErrPoolClosed = errors.New("poolx: pool is closed")

// Pool is a reusable fixed-size worker pool.
type Pool struct {
	tasks  chan func()
	wg     sync.WaitGroup
	closed atomic.Bool

	// Observability counters.
	submitted atomic.Int64
	completed atomic.Int64
	inFlight  atomic.Int64
	workers   int
}

// Stats provides a point-in-time snapshot of pool activity.
type Stats struct {
	Submitted  int64 // total tasks submitted
	Completed  int64 // tasks finished
	InFlight   int64 // tasks currently executing
	QueueDepth int   // tasks waiting in the queue
	Workers    int   // worker count (fixed at creation)
}

// Option configures a [Pool].
type Option func(*config)

type config struct {
	queueSize int
}

// WithQueueSize sets the task queue buffer size. Default is twice the
// worker count. Panics if size is negative.
func WithQueueSize(size int) Option {
	if size < 0 {
		panic("poolx: WithQueueSize requires non-negative size")
	}
	return func(c *config) {
		c.queueSize = size
	}
}

// New creates a pool with n worker goroutines. Panics if n <= 0.
func New(n int, opts ...Option) *Pool {
	if n <= 0 {
		panic("poolx: New requires n > 0")
	}

	cfg := config{queueSize: n * 2}
	for _, opt := range opts {
		opt(&cfg)
	}

	p := &Pool{
		tasks:   make(chan func(), cfg.queueSize),
		workers: n,
	}

	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for fn := range p.tasks {
		p.inFlight.Add(1)
		fn()
		p.inFlight.Add(-1)
		p.completed.Add(1)
	}
}

// Submit enqueues fn for execution on a worker. It blocks when the
// queue is full and returns [ErrPoolClosed] after Close.
func (p *Pool) Submit(fn func()) (err error) {
	if fn == nil {
		panic("poolx: Submit requires a non-nil function")
	}
	if p.closed.Load() {
		return ErrPoolClosed
	}

	// Guard against the race between the closed check above and
	// Close() closing the tasks channel. If Close fires between the
	// check and the send, the send panics; we recover and return
	// ErrPoolClosed.
	defer func() {
		if r := recover(); r != nil {
			err = ErrPoolClosed
		}
	}()

	p.tasks <- fn
	p.submitted.Add(1)
	return nil
}

// Schedule implements [strand.Scheduler]. Continuations that cannot be
// enqueued because the pool is closed run inline instead of being
// dropped: a lost resumption would wedge its awaiter forever.
func (p *Pool) Schedule(c strand.Continuation) {
	if c == nil {
		return
	}
	if err := p.Submit(func() { c() }); err != nil {
		c()
	}
}

// Close stops accepting work and waits for queued tasks to drain.
// Close is idempotent.
func (p *Pool) Close() {
	if p.closed.Swap(true) {
		return
	}
	close(p.tasks)
	p.wg.Wait()
}

// Snapshot returns current pool counters.
func (p *Pool) Snapshot() Stats {
	return Stats{
		Submitted:  p.submitted.Load(),
		Completed:  p.completed.Load(),
		InFlight:   p.inFlight.Load(),
		QueueDepth: len(p.tasks),
		Workers:    p.workers,
	}
}
