package strand_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-strand/strand"
)

func TestMapGen(t *testing.T) {
	g := strand.MapGen(strand.GenFromSlice([]int{1, 2, 3}), func(n int) int {
		return n * 10
	})

	out, err := strand.CollectGen(g)
	require.NoError(t, err)
	assert.Equal(t, []int{10, 20, 30}, out)
}

func TestMapGenPropagatesError(t *testing.T) {
	boom := errors.New("source boom")
	src := strand.NewGenerator(func(yield func(int) bool) error {
		yield(1)
		return boom
	})

	out, err := strand.CollectGen(strand.MapGen(src, func(n int) int { return n }))
	require.ErrorIs(t, err, boom)
	assert.Equal(t, []int{1}, out)
}

func TestFilterGen(t *testing.T) {
	g := strand.FilterGen(strand.GenFromSlice([]int{1, 2, 3, 4, 5, 6}), func(n int) bool {
		return n%2 == 0
	})

	out, err := strand.CollectGen(g)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4, 6}, out)
}

func TestTakeGen(t *testing.T) {
	closed := false
	src := strand.NewGenerator(func(yield func(int) bool) error {
		defer func() { closed = true }()
		for i := 0; ; i++ {
			if !yield(i) {
				return nil
			}
		}
	})

	out, err := strand.CollectGen(strand.TakeGen(src, 3))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, out)
	assert.True(t, closed, "the infinite source must be stopped")
}

func TestTakeGenZero(t *testing.T) {
	out, err := strand.CollectGen(strand.TakeGen(strand.GenFromSlice([]int{1, 2}), 0))
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestScanGen(t *testing.T) {
	g := strand.ScanGen(strand.GenFromSlice([]int{1, 2, 3, 4}), 0, func(acc, n int) int {
		return acc + n
	})

	out, err := strand.CollectGen(g)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 6, 10}, out)
}

func TestZipGen(t *testing.T) {
	a := strand.GenFromSlice([]int{1, 2, 3})
	b := strand.GenFromSlice([]string{"a", "b"})

	out, err := strand.CollectGen(strand.ZipGen(a, b))
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, strand.Pair[int, string]{First: 1, Second: "a"}, out[0])
	assert.Equal(t, strand.Pair[int, string]{First: 2, Second: "b"}, out[1])

	// The longer source was stopped with the zip.
	assert.False(t, a.Next())
}

func TestGeneratorOpsCompose(t *testing.T) {
	squares := strand.NewGenerator(func(yield func(int) bool) error {
		for i := 1; ; i++ {
			if !yield(i * i) {
				return nil
			}
		}
	})

	g := strand.TakeGen(strand.FilterGen(squares, func(n int) bool { return n%2 == 1 }), 3)
	out, err := strand.CollectGen(g)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 9, 25}, out)
}

func TestGeneratorOpsNilPanics(t *testing.T) {
	assert.Panics(t, func() { strand.MapGen[int, int](nil, func(int) int { return 0 }) })
	assert.Panics(t, func() { strand.FilterGen[int](nil, nil) })
	// TakeGen panics before it takes ownership of the source, so the
	// test closes the source itself.
	src := strand.GenFromSlice([]int{1})
	defer src.Close()
	assert.Panics(t, func() { strand.TakeGen(src, -1) })
}
