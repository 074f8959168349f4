package strand_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-strand/strand"
)

func TestWhenAllCompleteTotality(t *testing.T) {
	results := strand.WhenAllComplete[int](context.Background(),
		intTask(1),
		throwingIntTask("bad"),
		delayed(3, 5*time.Millisecond),
	)
	require.Len(t, results, 3)

	v, err := results[0].Value()
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	assert.False(t, results[1].Ok())
	require.EqualError(t, results[1].Err(), "bad")

	v, err = results[2].Value()
	require.NoError(t, err)
	assert.Equal(t, 3, v)
}

func TestWhenAllCompleteNeverFailsFast(t *testing.T) {
	slowRan := false
	results := strand.WhenAllComplete[int](context.Background(),
		throwingIntTask("immediate"),
		strand.NewTask(func(ctx context.Context) (int, error) {
			time.Sleep(10 * time.Millisecond)
			slowRan = true
			return 2, nil
		}),
	)
	require.Len(t, results, 2)
	assert.True(t, slowRan, "every member runs to completion")
	assert.False(t, results[0].Ok())
	assert.True(t, results[1].Ok())
}

func TestWhenAllCompleteEmpty(t *testing.T) {
	results := strand.WhenAllComplete[int](context.Background())
	assert.Empty(t, results)
}

func TestWhenAllCompletePanicCaptured(t *testing.T) {
	results := strand.WhenAllComplete[int](context.Background(),
		strand.NewTask(func(ctx context.Context) (int, error) {
			panic("oops")
		}),
	)
	require.Len(t, results, 1)
	var pe *strand.PanicError
	require.ErrorAs(t, results[0].Err(), &pe)
}

func TestWhenAllComplete2Heterogeneous(t *testing.T) {
	a := strand.NewTask(func(ctx context.Context) (int, error) { return 4, nil })
	b := strand.NewTask(func(ctx context.Context) (string, error) { return "", assert.AnError })

	ra, rb := strand.WhenAllComplete2(context.Background(), a, b)
	assert.Equal(t, 4, ra.MustValue())
	require.ErrorIs(t, rb.Err(), assert.AnError)
}

func TestCombineErrors(t *testing.T) {
	results := []strand.AsyncResult[int]{
		strand.OkResult(1),
		strand.ErrResult[int](assert.AnError),
		strand.OkResult(3),
	}
	err := strand.CombineErrors(results)
	require.ErrorIs(t, err, assert.AnError)

	assert.NoError(t, strand.CombineErrors([]strand.AsyncResult[int]{strand.OkResult(1)}))
}

func TestValues(t *testing.T) {
	ok := []strand.AsyncResult[int]{strand.OkResult(1), strand.OkResult(2)}
	vs, err := strand.Values(ok)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, vs)

	mixed := []strand.AsyncResult[int]{strand.OkResult(1), strand.ErrResult[int](assert.AnError)}
	_, err = strand.Values(mixed)
	require.ErrorIs(t, err, assert.AnError)
}
