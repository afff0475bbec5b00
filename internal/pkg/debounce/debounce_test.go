package debounce

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedule_CoalescesRapidCalls(t *testing.T) {
	var calls int32
	s := NewSaver(30*time.Millisecond, nil)
	defer s.Stop()

	for i := 0; i < 5; i++ {
		s.Schedule(func(ctx context.Context) error {
			atomic.AddInt32(&calls, 1)
			return nil
		})
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "rapid schedules should collapse into one save")
}

func TestSchedule_LatestSaveWins(t *testing.T) {
	var got atomic.Value
	s := NewSaver(20*time.Millisecond, nil)
	defer s.Stop()

	s.Schedule(func(ctx context.Context) error {
		got.Store("first")
		return nil
	})
	s.Schedule(func(ctx context.Context) error {
		got.Store("second")
		return nil
	})

	time.Sleep(80 * time.Millisecond)
	require.Equal(t, "second", got.Load())
}

func TestFlush_RunsImmediately(t *testing.T) {
	var calls int32
	s := NewSaver(time.Hour, nil)
	defer s.Stop()

	s.Schedule(func(ctx context.Context) error {
		atomic.AddInt32(&calls, 1)
		return nil
	})
	s.Flush()

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestComplete_StaleCompletionDiscarded(t *testing.T) {
	errs := make(chan uint64, 2)
	s := NewSaver(time.Millisecond, func(seq uint64, err error) {
		errs <- seq
	})
	defer s.Stop()

	// Simulate out-of-order completion: the newer save finishes before the
	// older one.
	s.mu.Lock()
	s.seq = 2
	s.mu.Unlock()

	s.complete(2, nil)
	s.complete(1, errors.New("stale failure"))

	select {
	case seq := <-errs:
		t.Fatalf("stale completion %d should have been discarded", seq)
	case <-time.After(50 * time.Millisecond):
	}
	assert.Equal(t, uint64(2), s.LastApplied())
}

func TestComplete_FailureSurfacedWithoutRollback(t *testing.T) {
	errCh := make(chan error, 1)
	s := NewSaver(time.Millisecond, func(seq uint64, err error) {
		errCh <- err
	})
	defer s.Stop()

	s.Schedule(func(ctx context.Context) error {
		return errors.New("persistence unavailable")
	})

	select {
	case err := <-errCh:
		require.EqualError(t, err, "persistence unavailable")
	case <-time.After(time.Second):
		t.Fatal("expected the save failure to be surfaced")
	}
}

func TestStop_CancelsPending(t *testing.T) {
	var calls int32
	s := NewSaver(20*time.Millisecond, nil)

	s.Schedule(func(ctx context.Context) error {
		atomic.AddInt32(&calls, 1)
		return nil
	})
	s.Stop()

	time.Sleep(60 * time.Millisecond)
	assert.Zero(t, atomic.LoadInt32(&calls))
}
