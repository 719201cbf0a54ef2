package cli

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/arnorgym/internal/logging"
)

type timer interface {
	Stop() bool
}

// afterFunc is a test seam for time.AfterFunc.
var afterFunc = func(d time.Duration, f func()) timer {
	return time.AfterFunc(d, f)
}

// scheduler runs fire-and-forget UI transitions after a delay. Once stopped,
// pending and future tasks never run. Only timers that have not fired yet
// are retained.
type scheduler struct {
	log logging.Logger

	mu      sync.Mutex
	next    int
	timers  map[int]timer
	stopped bool
}

func newScheduler(log logging.Logger) *scheduler {
	return &scheduler{log: log, timers: make(map[int]timer)}
}

func (s *scheduler) after(ctx context.Context, d time.Duration, name string, fn func()) {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	id := s.next
	s.next++
	// Reserve the slot first; a task may fire before afterFunc returns.
	s.timers[id] = nil
	s.mu.Unlock()

	t := afterFunc(d, func() { s.fire(ctx, id, name, fn) })

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		t.Stop()
		return
	}
	if _, pending := s.timers[id]; pending {
		s.timers[id] = t
	}
}

func (s *scheduler) fire(ctx context.Context, id int, name string, fn func()) {
	s.mu.Lock()
	delete(s.timers, id)
	stopped := s.stopped
	s.mu.Unlock()
	if stopped {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			s.log.Error(ctx, "scheduled task panicked", "task", name, "panic", r)
		}
	}()
	fn()
}

// pending reports how many scheduled tasks have not fired yet.
func (s *scheduler) pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

func (s *scheduler) stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	for _, t := range s.timers {
		if t != nil {
			t.Stop()
		}
	}
	clear(s.timers)
}
