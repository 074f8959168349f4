package strand

import "go.uber.org/multierr"

// AsyncResult holds the outcome of one completed awaitable: either a
// value or an error, never both. [WhenAllComplete] returns one
// AsyncResult per input so callers can inspect partial outcomes.
type AsyncResult[T any] struct {
	val T
	err error
}

// OkResult wraps a successful value.
func OkResult[T any](v T) AsyncResult[T] {
	return AsyncResult[T]{val: v}
}

// ErrResult wraps a failure.
func ErrResult[T any](err error) AsyncResult[T] {
	return AsyncResult[T]{err: err}
}

// Ok reports whether the result holds a value.
func (r AsyncResult[T]) Ok() bool {
	return r.err == nil
}

// Value returns the stored value or the stored error.
func (r AsyncResult[T]) Value() (T, error) {
	return r.val, r.err
}

// MustValue returns the stored value and panics if the result holds an
// error.
func (r AsyncResult[T]) MustValue() T {
	if r.err != nil {
		panic("strand: MustValue on failed result: " + r.err.Error())
	}
	return r.val
}

// Err returns the stored error, or nil for a successful result.
func (r AsyncResult[T]) Err() error {
	return r.err
}

// CombineErrors collapses the errors of a completed group into one,
// preserving every failure. It returns nil when every result succeeded.
func CombineErrors[T any](results []AsyncResult[T]) error {
	var errs []error
	for _, r := range results {
		if r.err != nil {
			errs = append(errs, r.err)
		}
	}
	return multierr.Combine(errs...)
}

// Values extracts the values of a completed group, or the first error
// encountered in input order.
func Values[T any](results []AsyncResult[T]) ([]T, error) {
	out := make([]T, 0, len(results))
	for _, r := range results {
		if r.err != nil {
			return nil, r.err
		}
		out = append(out, r.val)
	}
	return out, nil
}
