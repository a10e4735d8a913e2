// Package debounce coalesces bursts of jobs into a single execution.
package debounce

import (
	"sync"
	"time"
)

// DefaultWindow is the quiescence window used when none is configured.
const DefaultWindow = 50 * time.Millisecond

// Scheduler holds at most one pending job. Every Schedule call replaces the
// pending job and restarts the window; the job runs once the window elapses
// without further calls.
type Scheduler struct {
	mu     sync.Mutex
	window time.Duration
	timer  *time.Timer
	seq    uint64
	closed bool
}

func New(window time.Duration) *Scheduler {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Scheduler{window: window}
}

// Schedule cancels any pending job and schedules job after the window.
// It is a no-op after Close.
func (s *Scheduler) Schedule(job func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	s.stopLocked()
	s.seq++
	seq := s.seq
	s.timer = time.AfterFunc(s.window, func() {
		s.mu.Lock()
		if s.closed || s.seq != seq {
			s.mu.Unlock()
			return
		}
		s.timer = nil
		s.mu.Unlock()
		job()
	})
}

// Cancel drops the pending job, if any.
func (s *Scheduler) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
	s.seq++
}

// Pending reports whether a job is waiting for its window to elapse.
func (s *Scheduler) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer != nil
}

// Close cancels the pending job and rejects future ones.
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
	s.seq++
	s.closed = true
}

func (s *Scheduler) stopLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
