package strand

import "iter"

// Generator is a lazy synchronous producer of a value sequence. The
// producer body does not run until the consumer asks for the first
// value, and advances only between [Generator.Next] calls; each
// yielded value is copied into the consumer-visible slot, so it stays
// valid until the next advance.
//
// Generators are single-consumer. Closing a generator before
// exhaustion stops the producer and runs its deferred cleanup.
type Generator[T any] struct {
	next func() (T, bool)
	stop func()
	cur  T
	err  error
	done bool
}

// NewGenerator creates a generator from body. body pushes values
// through yield and returns when the sequence ends; a false return
// from yield means the consumer is gone and the body should unwind.
// An error returned (or a panic raised) by the body is surfaced
// through [Generator.Err] once the consumer observes the end.
func NewGenerator[T any](body func(yield func(T) bool) error) *Generator[T] {
	if body == nil {
		panic("strand: NewGenerator requires a non-nil function")
	}
	g := &Generator[T]{}
	g.next, g.stop = iter.Pull(func(yield func(T) bool) {
		err := func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = newPanicError(r)
				}
			}()
			return body(yield)
		}()
		g.err = err
	})
	return g
}

// Next advances the producer to its next value. It returns false when
// the sequence is exhausted, the producer failed, or the generator was
// closed; check [Generator.Err] afterwards.
func (g *Generator[T]) Next() bool {
	if g.done {
		return false
	}
	v, ok := g.next()
	if !ok {
		g.done = true
		return false
	}
	g.cur = v
	return true
}

// Value returns the value produced by the last successful Next.
func (g *Generator[T]) Value() T {
	return g.cur
}

// Err returns the producer's failure, if any. It is meaningful once
// Next has returned false.
func (g *Generator[T]) Err() error {
	return g.err
}

// Close stops the producer, running its deferred cleanup. Closing an
// exhausted or already-closed generator is a no-op.
func (g *Generator[T]) Close() {
	if g.done {
		return
	}
	g.done = true
	g.stop()
}

// Seq exposes the remaining values as an iter.Seq for range-over-func
// consumption. Breaking out of the range closes the generator.
func (g *Generator[T]) Seq() iter.Seq[T] {
	return func(yield func(T) bool) {
		for g.Next() {
			if !yield(g.cur) {
				g.Close()
				return
			}
		}
	}
}
