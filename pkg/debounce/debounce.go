// Package debounce delays work per document until edits settle.
// A newer snapshot for the same document replaces the pending one, so only
// the latest snapshot is ever handed to the handler.
package debounce

import (
	"sync"
	"time"
)

// Handler receives the latest snapshot of a document once its delay has passed.
type Handler[T any] func(id string, snapshot T)

type entry[T any] struct {
	timer    *time.Timer
	snapshot T
	gen      uint64
}

// Scheduler holds one pending timer per document id.
type Scheduler[T any] struct {
	mu      sync.Mutex
	delay   time.Duration
	handler Handler[T]
	pending map[string]*entry[T]
	gen     uint64
	stopped bool
}

// New creates a Scheduler that calls handler delay after the last Schedule for an id.
func New[T any](delay time.Duration, handler Handler[T]) *Scheduler[T] {
	return &Scheduler[T]{
		delay:   delay,
		handler: handler,
		pending: map[string]*entry[T]{},
	}
}

// SetDelay changes the delay for calls scheduled from now on.
func (s *Scheduler[T]) SetDelay(delay time.Duration) {
	s.mu.Lock()
	s.delay = delay
	s.mu.Unlock()
}

// Schedule replaces any pending call for id with one carrying snapshot.
func (s *Scheduler[T]) Schedule(id string, snapshot T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	if e, ok := s.pending[id]; ok {
		e.timer.Stop()
	}
	s.gen++
	gen := s.gen
	e := &entry[T]{snapshot: snapshot, gen: gen}
	e.timer = time.AfterFunc(s.delay, func() {
		s.fire(id, gen)
	})
	s.pending[id] = e
}

// fire runs the handler unless the entry was replaced or cancelled after the
// timer had already started.
func (s *Scheduler[T]) fire(id string, gen uint64) {
	s.mu.Lock()
	e, ok := s.pending[id]
	if !ok || e.gen != gen {
		s.mu.Unlock()
		return
	}
	delete(s.pending, id)
	s.mu.Unlock()
	s.handler(id, e.snapshot)
}

// Cancel drops the pending call for id. It reports whether one was pending.
func (s *Scheduler[T]) Cancel(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.pending[id]
	if !ok {
		return false
	}
	e.timer.Stop()
	delete(s.pending, id)
	return true
}

// Pending returns the number of documents waiting for their delay to pass.
func (s *Scheduler[T]) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Flush runs every pending call immediately on the calling goroutine.
func (s *Scheduler[T]) Flush() {
	s.mu.Lock()
	pending := s.pending
	s.pending = map[string]*entry[T]{}
	s.mu.Unlock()
	for id, e := range pending {
		e.timer.Stop()
		s.handler(id, e.snapshot)
	}
}

// Stop cancels everything pending. Later Schedule calls are ignored.
func (s *Scheduler[T]) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	for id, e := range s.pending {
		e.timer.Stop()
		delete(s.pending, id)
	}
}
