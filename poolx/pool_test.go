package poolx

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestPoolRunsSubmittedTasks(t *testing.T) {
	p := New(4)
	defer p.Close()

	var count atomic.Int64
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		require.NoError(t, p.Submit(func() {
			defer wg.Done()
			count.Add(1)
		}))
	}
	wg.Wait()

	assert.Equal(t, int64(50), count.Load())
}

func TestPoolSubmitAfterClose(t *testing.T) {
	p := New(1)
	p.Close()

	err := p.Submit(func() {})
	require.ErrorIs(t, err, ErrPoolClosed)
}

func TestPoolCloseIdempotent(t *testing.T) {
	p := New(1)
	p.Close()
	p.Close()
}

func TestPoolScheduleAfterCloseRunsInline(t *testing.T) {
	p := New(1)
	p.Close()

	ran := false
	p.Schedule(func() { ran = true })
	assert.True(t, ran, "a continuation must never be dropped")
}

func TestPoolScheduleNilIsNoop(t *testing.T) {
	p := New(1)
	defer p.Close()

	p.Schedule(nil)
}

func TestPoolSnapshot(t *testing.T) {
	p := New(2)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		require.NoError(t, p.Submit(func() { wg.Done() }))
	}
	wg.Wait()
	p.Close()

	stats := p.Snapshot()
	assert.Equal(t, int64(10), stats.Submitted)
	assert.Equal(t, int64(10), stats.Completed)
	assert.Equal(t, 2, stats.Workers)
	assert.Equal(t, int64(0), stats.InFlight)
}

func TestPoolInvalidConfig(t *testing.T) {
	assert.Panics(t, func() { New(0) })
	assert.Panics(t, func() { WithQueueSize(-1) })
	assert.Panics(t, func() {
		p := New(1)
		defer p.Close()
		_ = p.Submit(nil)
	})
}
