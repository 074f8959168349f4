package strand

import "context"

// MapAsyncGen returns an async generator that applies fn to every
// value of g. The source generator is consumed and closed by the
// returned one.
//
// Panics if g or fn is nil.
func MapAsyncGen[T, R any](g *AsyncGenerator[T], fn func(T) R) *AsyncGenerator[R] {
	if g == nil {
		panic("strand: MapAsyncGen requires a non-nil source generator")
	}
	if fn == nil {
		panic("strand: MapAsyncGen requires a non-nil transform")
	}
	return NewAsyncGenerator(func(ctx context.Context, y *Yielder[R]) error {
		defer g.Close()
		for {
			v, ok, err := g.Next(ctx)
			if err != nil || !ok {
				return err
			}
			if err := y.Yield(fn(v)); err != nil {
				return err
			}
		}
	})
}

// FilterAsyncGen returns an async generator producing only the values
// of g for which keep reports true.
//
// Panics if g or keep is nil.
func FilterAsyncGen[T any](g *AsyncGenerator[T], keep func(T) bool) *AsyncGenerator[T] {
	if g == nil {
		panic("strand: FilterAsyncGen requires a non-nil source generator")
	}
	if keep == nil {
		panic("strand: FilterAsyncGen requires a non-nil predicate")
	}
	return NewAsyncGenerator(func(ctx context.Context, y *Yielder[T]) error {
		defer g.Close()
		for {
			v, ok, err := g.Next(ctx)
			if err != nil || !ok {
				return err
			}
			if !keep(v) {
				continue
			}
			if err := y.Yield(v); err != nil {
				return err
			}
		}
	})
}

// TakeAsyncGen limits g to its first n values, then closes the source.
//
// Panics if g is nil or n is negative.
func TakeAsyncGen[T any](g *AsyncGenerator[T], n int) *AsyncGenerator[T] {
	if g == nil {
		panic("strand: TakeAsyncGen requires a non-nil source generator")
	}
	if n < 0 {
		panic("strand: TakeAsyncGen requires n >= 0")
	}
	return NewAsyncGenerator(func(ctx context.Context, y *Yielder[T]) error {
		defer g.Close()
		for i := 0; i < n; i++ {
			v, ok, err := g.Next(ctx)
			if err != nil || !ok {
				return err
			}
			if err := y.Yield(v); err != nil {
				return err
			}
		}
		return nil
	})
}

// BatchAsyncGen groups the values of g into slices of up to size
// elements. The final batch may be shorter; empty batches are never
// produced.
//
// Panics if g is nil or size is not positive.
func BatchAsyncGen[T any](g *AsyncGenerator[T], size int) *AsyncGenerator[[]T] {
	if g == nil {
		panic("strand: BatchAsyncGen requires a non-nil source generator")
	}
	if size <= 0 {
		panic("strand: BatchAsyncGen requires size > 0")
	}
	return NewAsyncGenerator(func(ctx context.Context, y *Yielder[[]T]) error {
		defer g.Close()
		batch := make([]T, 0, size)
		for {
			v, ok, err := g.Next(ctx)
			if err != nil {
				return err
			}
			if !ok {
				if len(batch) > 0 {
					return y.Yield(batch)
				}
				return nil
			}
			batch = append(batch, v)
			if len(batch) == size {
				if err := y.Yield(batch); err != nil {
					return err
				}
				batch = make([]T, 0, size)
			}
		}
	})
}

// MergeAsyncGen fans several async generators into one (fan-in). A
// nursery child drains each source, so every source is closed and
// joined before the merged sequence ends. The order of values across
// sources is non-deterministic; a failing source ends the merged
// sequence with its error.
func MergeAsyncGen[T any](gens ...*AsyncGenerator[T]) *AsyncGenerator[T] {
	return NewAsyncGenerator(func(ctx context.Context, y *Yielder[T]) error {
		nt := NewNurseryTask(func(ctx context.Context, n *Nursery) (struct{}, error) {
			for _, g := range gens {
				n.Start("merge-drain", func(ctx context.Context) error {
					defer g.Close()
					for {
						v, ok, err := g.Next(ctx)
						if err != nil {
							if ctx.Err() != nil {
								// Merged generator closed; clean stop.
								return nil
							}
							return err
						}
						if !ok {
							return nil
						}
						if err := y.Yield(v); err != nil {
							return nil
						}
					}
				})
			}
			return struct{}{}, nil
		})
		_, err := nt.Await(ctx)
		return CauseOf(err)
	})
}

// CollectAsyncGen drains g and returns every produced value, or the
// producer's error.
func CollectAsyncGen[T any](ctx context.Context, g *AsyncGenerator[T]) ([]T, error) {
	var out []T
	for {
		v, ok, err := g.Next(ctx)
		if err != nil || !ok {
			return out, err
		}
		out = append(out, v)
	}
}
