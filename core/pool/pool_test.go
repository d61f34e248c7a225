package pool

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolRunsEveryJob(t *testing.T) {
	p := New(Config{Workers: 4, QueueSize: 8})

	var counter atomic.Int64
	for i := 0; i < 100; i++ {
		require.NoError(t, p.Submit(func() {
			counter.Add(1)
		}))
	}

	p.Wait()

	assert.Equal(t, int64(100), counter.Load())
	assert.Equal(t, int64(100), p.Submitted())
	assert.Equal(t, int64(100), p.Completed())
}

func TestPoolSlotWritesNeedNoLocking(t *testing.T) {
	p := New(Config{Workers: 8, QueueSize: 16})

	slots := make([]int, 64)
	for i := range slots {
		i := i
		require.NoError(t, p.Submit(func() {
			slots[i] = i * 2
		}))
	}

	p.Wait()

	for i, v := range slots {
		assert.Equal(t, i*2, v)
	}
}

func TestSubmitAfterWaitReturnsClosed(t *testing.T) {
	p := New(Config{Workers: 1, QueueSize: 1})
	p.Wait()

	err := p.Submit(func() {})

	assert.ErrorIs(t, err, ErrPoolClosed)
}

func TestWaitIsIdempotent(t *testing.T) {
	p := New(Config{Workers: 2, QueueSize: 2})

	require.NoError(t, p.Submit(func() {}))

	p.Wait()
	p.Wait()

	assert.Equal(t, int64(1), p.Completed())
}

func TestNewAppliesDefaults(t *testing.T) {
	p := New(Config{})

	require.NoError(t, p.Submit(func() {}))
	p.Wait()

	assert.Equal(t, int64(1), p.Completed())
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Greater(t, cfg.Workers, 0)
	assert.Equal(t, 256, cfg.QueueSize)
}
