package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusyPassesErrorsThrough(t *testing.T) {
	busy := NewBusy(0, quietLogger())
	ctx := context.Background()

	err := busy.Run(ctx, "add_item", func(context.Context) error {
		return NewValidationError("please enter an item name")
	})
	assert.True(t, IsValidation(err))

	storageErr := &StorageError{Collection: "items", Err: errors.New("disk full")}
	err = busy.Run(ctx, "add_item", func(context.Context) error { return storageErr })
	assert.Equal(t, storageErr, err)

	assert.NoError(t, busy.Run(ctx, "noop", func(context.Context) error { return nil }))
}

func TestBusyRecoversPanics(t *testing.T) {
	busy := NewBusy(0, quietLogger())

	err := busy.Run(context.Background(), "explode", func(context.Context) error {
		panic("boom")
	})
	assert.ErrorIs(t, err, ErrUnexpected)
	assert.False(t, busy.Active())
}

func TestBusyDelayHonoursCancellation(t *testing.T) {
	busy := NewBusy(time.Hour, quietLogger())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ran := false
	err := busy.Run(ctx, "slow", func(context.Context) error {
		ran = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, ran)
}

func TestBusyDelaysAction(t *testing.T) {
	busy := NewBusy(20*time.Millisecond, quietLogger())

	start := time.Now()
	require.NoError(t, busy.Run(context.Background(), "wait", func(context.Context) error { return nil }))
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestBusySerializesActions(t *testing.T) {
	busy := NewBusy(time.Millisecond, quietLogger())

	var running, maxRunning int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = busy.Run(context.Background(), "overlap", func(context.Context) error {
				n := atomic.AddInt32(&running, 1)
				for {
					m := atomic.LoadInt32(&maxRunning)
					if n <= m || atomic.CompareAndSwapInt32(&maxRunning, m, n) {
						break
					}
				}
				time.Sleep(2 * time.Millisecond)
				atomic.AddInt32(&running, -1)
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxRunning)
	assert.False(t, busy.Active())
}
