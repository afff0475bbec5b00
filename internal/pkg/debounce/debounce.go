// internal/pkg/debounce/debounce.go
package debounce

import (
	"context"
	"sync"
	"time"
)

// SaveFunc performs one batched write of the current in-memory state.
type SaveFunc func(ctx context.Context) error

// Saver coalesces rapid save requests into a single write fired after a
// quiescence window. Every flush carries a monotonic sequence number;
// because in-flight writes are allowed to race and complete out of order,
// a completion whose sequence is below the newest applied one is discarded
// instead of overwriting newer state.
//
// Failures are reported through the error callback and never roll back the
// in-memory state: the caller keeps its edits and may retry.
type Saver struct {
	mu      sync.Mutex
	window  time.Duration
	timer   *time.Timer
	pending SaveFunc
	seq     uint64 // last scheduled save
	applied uint64 // newest completed save that was accepted
	onError func(seq uint64, err error)
	stopped bool
}

// NewSaver creates a saver with the given quiescence window. onError may be
// nil.
func NewSaver(window time.Duration, onError func(seq uint64, err error)) *Saver {
	return &Saver{
		window:  window,
		onError: onError,
	}
}

// Schedule records the save to run once the window elapses with no further
// calls. A newer Schedule replaces the pending save entirely; the in-memory
// state it captures is always the freshest.
func (s *Saver) Schedule(save SaveFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}

	s.pending = save
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.window, s.fire)
}

// Flush runs any pending save immediately instead of waiting out the window.
func (s *Saver) Flush() {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()
	s.fire()
}

// Stop cancels any pending save. In-flight saves are not interrupted; their
// completions still pass through the sequence guard.
func (s *Saver) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.pending = nil
}

func (s *Saver) fire() {
	s.mu.Lock()
	save := s.pending
	s.pending = nil
	if save == nil {
		s.mu.Unlock()
		return
	}
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	go func() {
		err := save(context.Background())
		s.complete(seq, err)
	}()
}

func (s *Saver) complete(seq uint64, err error) {
	s.mu.Lock()
	if seq < s.applied {
		// A newer save already finished; this result is stale.
		s.mu.Unlock()
		return
	}
	s.applied = seq
	onError := s.onError
	s.mu.Unlock()

	if err != nil && onError != nil {
		onError(seq, err)
	}
}

// LastApplied returns the sequence of the newest accepted completion.
func (s *Saver) LastApplied() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applied
}
