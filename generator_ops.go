package strand

// Pair holds two values paired from two generators. It is used by
// [ZipGen].
type Pair[A, B any] struct {
	First  A
	Second B
}

// MapGen returns a generator that applies fn to every value of g.
// The source generator is consumed by the returned one.
//
// Panics if g or fn is nil.
func MapGen[T, R any](g *Generator[T], fn func(T) R) *Generator[R] {
	if g == nil {
		panic("strand: MapGen requires a non-nil source generator")
	}
	if fn == nil {
		panic("strand: MapGen requires a non-nil transform")
	}
	return NewGenerator(func(yield func(R) bool) error {
		defer g.Close()
		for g.Next() {
			if !yield(fn(g.Value())) {
				return nil
			}
		}
		return g.Err()
	})
}

// FilterGen returns a generator producing only the values of g for
// which keep reports true.
//
// Panics if g or keep is nil.
func FilterGen[T any](g *Generator[T], keep func(T) bool) *Generator[T] {
	if g == nil {
		panic("strand: FilterGen requires a non-nil source generator")
	}
	if keep == nil {
		panic("strand: FilterGen requires a non-nil predicate")
	}
	return NewGenerator(func(yield func(T) bool) error {
		defer g.Close()
		for g.Next() {
			if v := g.Value(); keep(v) && !yield(v) {
				return nil
			}
		}
		return g.Err()
	})
}

// TakeGen limits g to its first n values, then stops the source.
//
// Panics if g is nil or n is negative.
func TakeGen[T any](g *Generator[T], n int) *Generator[T] {
	if g == nil {
		panic("strand: TakeGen requires a non-nil source generator")
	}
	if n < 0 {
		panic("strand: TakeGen requires n >= 0")
	}
	return NewGenerator(func(yield func(T) bool) error {
		defer g.Close()
		for i := 0; i < n && g.Next(); i++ {
			if !yield(g.Value()) {
				return nil
			}
		}
		return g.Err()
	})
}

// ScanGen applies fn cumulatively to the values of g, producing each
// intermediate accumulation. The first produced value is
// fn(initial, firstValue).
//
// Panics if g or fn is nil.
func ScanGen[T, R any](g *Generator[T], initial R, fn func(R, T) R) *Generator[R] {
	if g == nil {
		panic("strand: ScanGen requires a non-nil source generator")
	}
	if fn == nil {
		panic("strand: ScanGen requires a non-nil accumulator")
	}
	return NewGenerator(func(yield func(R) bool) error {
		defer g.Close()
		acc := initial
		for g.Next() {
			acc = fn(acc, g.Value())
			if !yield(acc) {
				return nil
			}
		}
		return g.Err()
	})
}

// ZipGen pairs values from two generators element-by-element, ending
// as soon as either source is exhausted. Both sources are closed when
// the zipped generator ends.
//
// Panics if a or b is nil.
func ZipGen[A, B any](a *Generator[A], b *Generator[B]) *Generator[Pair[A, B]] {
	if a == nil {
		panic("strand: ZipGen requires a non-nil first generator")
	}
	if b == nil {
		panic("strand: ZipGen requires a non-nil second generator")
	}
	return NewGenerator(func(yield func(Pair[A, B]) bool) error {
		defer a.Close()
		defer b.Close()
		for a.Next() {
			if !b.Next() {
				return b.Err()
			}
			if !yield(Pair[A, B]{First: a.Value(), Second: b.Value()}) {
				return nil
			}
		}
		return a.Err()
	})
}

// CollectGen drains g and returns every produced value, or the
// producer's error.
func CollectGen[T any](g *Generator[T]) ([]T, error) {
	var out []T
	for g.Next() {
		out = append(out, g.Value())
	}
	return out, g.Err()
}

// GenFromSlice produces the elements of items in order.
func GenFromSlice[T any](items []T) *Generator[T] {
	return NewGenerator(func(yield func(T) bool) error {
		for _, v := range items {
			if !yield(v) {
				return nil
			}
		}
		return nil
	})
}
