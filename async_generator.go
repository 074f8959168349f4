package strand

import "context"

// AsyncGenerator is the asynchronous shape of [Generator]: its
// producer body may block between yields (await other work, wait on
// events), and each yield is a rendezvous with the consumer's
// [AsyncGenerator.Next]. Production is lazy: the body starts on the
// first Next and advances only as the consumer demands values.
//
// AsyncGenerators are single-consumer. Close cancels the producer and
// waits for its deferred cleanup to run.
type AsyncGenerator[T any] struct {
	body    func(ctx context.Context, y *Yielder[T]) error
	ch      chan T
	err     error
	cancel  context.CancelFunc
	started bool
	closed  bool
}

// Yielder is the producing side of an [AsyncGenerator]. It is valid
// only inside the producer body.
type Yielder[T any] struct {
	ch  chan T
	ctx context.Context
}

// Yield hands v to the consumer and suspends the producer until the
// consumer asks for the next value. It returns a non-nil error when
// the generator was closed; the producer should unwind.
func (y *Yielder[T]) Yield(v T) error {
	select {
	case y.ch <- v:
		return nil
	case <-y.ctx.Done():
		return y.ctx.Err()
	}
}

// Context returns the producer's context, cancelled when the generator
// is closed.
func (y *Yielder[T]) Context() context.Context {
	return y.ctx
}

// NewAsyncGenerator creates an async generator from body. An error
// returned (or panic raised) by the body is surfaced by the Next call
// that observes the end of the sequence.
func NewAsyncGenerator[T any](body func(ctx context.Context, y *Yielder[T]) error) *AsyncGenerator[T] {
	if body == nil {
		panic("strand: NewAsyncGenerator requires a non-nil function")
	}
	return &AsyncGenerator[T]{body: body, ch: make(chan T)}
}

// Next resumes the producer and waits for its next value. ok is false
// at the end of the sequence, with err carrying the producer's
// failure, if any. ctx bounds only this wait, not the producer.
func (g *AsyncGenerator[T]) Next(ctx context.Context) (v T, ok bool, err error) {
	var zero T
	if g.closed {
		return zero, false, g.err
	}
	if !g.started {
		g.start()
	}

	select {
	case v, open := <-g.ch:
		if !open {
			g.closed = true
			return zero, false, g.err
		}
		return v, true, nil
	case <-ctx.Done():
		return zero, false, ctx.Err()
	}
}

func (g *AsyncGenerator[T]) start() {
	g.started = true
	pctx, cancel := context.WithCancel(context.Background())
	g.cancel = cancel
	y := &Yielder[T]{ch: g.ch, ctx: pctx}

	go func() {
		_, err := protect(pctx, func(ctx context.Context) (struct{}, error) {
			return struct{}{}, g.body(ctx, y)
		})
		g.err = err
		close(g.ch)
	}()
}

// Close cancels the producer and drains it so its deferred cleanup
// runs before Close returns. Closing an exhausted or never-started
// generator is a no-op.
func (g *AsyncGenerator[T]) Close() {
	if g.closed {
		return
	}
	g.closed = true
	if !g.started {
		return
	}
	g.cancel()
	for range g.ch {
	}
}

// Err returns the producer's failure, if any. It is meaningful once
// Next has reported the end of the sequence or Close has returned.
func (g *AsyncGenerator[T]) Err() error {
	return g.err
}
