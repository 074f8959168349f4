package strand_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-strand/strand"
)

func asyncRange(n int) *strand.AsyncGenerator[int] {
	return strand.NewAsyncGenerator(func(ctx context.Context, y *strand.Yielder[int]) error {
		for i := 0; i < n; i++ {
			if err := y.Yield(i); err != nil {
				return err
			}
		}
		return nil
	})
}

func TestAsyncGeneratorRoundTrip(t *testing.T) {
	ctx := context.Background()
	g := asyncRange(4)

	var got []int
	for {
		v, ok, err := g.Next(ctx)
		require.NoError(t, err)
		if !ok {
			break
		}
		got = append(got, v)
	}
	assert.Equal(t, []int{0, 1, 2, 3}, got)

	// End is sticky.
	_, ok, err := g.Next(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAsyncGeneratorIsLazy(t *testing.T) {
	started := make(chan struct{})
	g := strand.NewAsyncGenerator(func(ctx context.Context, y *strand.Yielder[int]) error {
		close(started)
		return y.Yield(1)
	})
	defer g.Close()

	select {
	case <-started:
		t.Fatal("producer ran before first Next")
	case <-time.After(10 * time.Millisecond):
	}

	v, ok, err := g.Next(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestAsyncGeneratorProducerAwaitsBetweenYields(t *testing.T) {
	ev := strand.NewSingleEvent[int]()
	sender, err := ev.Sender()
	require.NoError(t, err)

	g := strand.NewAsyncGenerator(func(ctx context.Context, y *strand.Yielder[int]) error {
		if err := y.Yield(1); err != nil {
			return err
		}
		// The producer blocks on other asynchronous work before its
		// second yield.
		v, err := ev.Await(ctx)
		if err != nil {
			return err
		}
		return y.Yield(v)
	})
	defer g.Close()

	ctx := context.Background()

	v, ok, err := g.Next(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1, v)

	go func() {
		time.Sleep(5 * time.Millisecond)
		_ = sender.SetValue(7)
	}()

	v, ok, err = g.Next(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 7, v)

	_, ok, err = g.Next(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAsyncGeneratorProducerError(t *testing.T) {
	boom := errors.New("async boom")
	g := strand.NewAsyncGenerator(func(ctx context.Context, y *strand.Yielder[int]) error {
		if err := y.Yield(1); err != nil {
			return err
		}
		return boom
	})

	ctx := context.Background()

	_, ok, err := g.Next(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = g.Next(ctx)
	assert.False(t, ok)
	require.ErrorIs(t, err, boom)
}

func TestAsyncGeneratorProducerPanic(t *testing.T) {
	g := strand.NewAsyncGenerator(func(ctx context.Context, y *strand.Yielder[int]) error {
		panic("async panic")
	})

	_, ok, err := g.Next(context.Background())
	assert.False(t, ok)

	var pe *strand.PanicError
	require.ErrorAs(t, err, &pe)
}

func TestAsyncGeneratorCloseCancelsProducer(t *testing.T) {
	unwound := make(chan struct{})
	g := strand.NewAsyncGenerator(func(ctx context.Context, y *strand.Yielder[int]) error {
		defer close(unwound)
		for i := 0; ; i++ {
			if err := y.Yield(i); err != nil {
				return err
			}
		}
	})

	v, ok, err := g.Next(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 0, v)

	g.Close()

	select {
	case <-unwound:
	case <-time.After(time.Second):
		t.Fatal("producer did not unwind on Close")
	}

	_, ok, _ = g.Next(context.Background())
	assert.False(t, ok)
}

func TestAsyncGeneratorCloseBeforeStart(t *testing.T) {
	g := asyncRange(3)
	g.Close()

	_, ok, err := g.Next(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAsyncGeneratorNextContextBoundsWait(t *testing.T) {
	g := strand.NewAsyncGenerator(func(ctx context.Context, y *strand.Yielder[int]) error {
		<-ctx.Done()
		return ctx.Err()
	})
	defer g.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()

	_, ok, err := g.Next(ctx)
	assert.False(t, ok)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
