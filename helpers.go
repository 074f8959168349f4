package strand

import (
	"context"
	"fmt"
)

// ForEach runs fn once per item, concurrently, inside a nursery. It
// waits for every invocation to finish and returns their combined
// error. Options apply to the underlying nursery, so WithLimit bounds
// the concurrency:
//
//	err := strand.ForEach(ctx, urls, func(ctx context.Context, u string) error {
//	    return fetch(ctx, u)
//	}, strand.WithLimit(10))
func ForEach[T any](ctx context.Context, items []T, fn func(ctx context.Context, item T) error, opts ...Option) error {
	nt := NewNurseryTask(func(ctx context.Context, n *Nursery) (struct{}, error) {
		for i, item := range items {
			n.Start(fmt.Sprintf("foreach[%d]", i), func(ctx context.Context) error {
				return fn(ctx, item)
			})
		}
		return struct{}{}, nil
	}, opts...)
	_, err := nt.Await(ctx)
	return err
}

// Map runs fn once per item, concurrently, and collects the results
// in input order. It fails fast like [WhenAll]: the first error wins
// and the results are discarded.
func Map[T, R any](ctx context.Context, items []T, fn func(ctx context.Context, item T) (R, error)) ([]R, error) {
	aws := make([]Awaitable[R], len(items))
	for i, item := range items {
		aws[i] = NewTask(func(ctx context.Context) (R, error) {
			return fn(ctx, item)
		})
	}
	return WhenAll(ctx, aws...)
}

// MapComplete is [Map] without fail-fast: every invocation runs to
// completion and every outcome is reported as an [AsyncResult].
func MapComplete[T, R any](ctx context.Context, items []T, fn func(ctx context.Context, item T) (R, error)) []AsyncResult[R] {
	aws := make([]Awaitable[R], len(items))
	for i, item := range items {
		aws[i] = NewTask(func(ctx context.Context) (R, error) {
			return fn(ctx, item)
		})
	}
	return WhenAllComplete(ctx, aws...)
}
