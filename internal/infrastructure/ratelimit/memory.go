package ratelimit

import (
	"context"
	"sync"
	"time"
)

type window struct {
	start time.Time
	count int
}

// MemoryStore is an in-process attempt counter for single-instance
// deployments. Windows expire lazily on the next access.
type MemoryStore struct {
	mu      sync.Mutex
	windows map[string]*window
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{windows: make(map[string]*window)}
}

func (s *MemoryStore) Fail(_ context.Context, login string, now time.Time, windowSize time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.windows[login]
	if w == nil || now.Sub(w.start) >= windowSize {
		w = &window{start: now}
		s.windows[login] = w
	}
	w.count++
	return w.count, nil
}

func (s *MemoryStore) Count(_ context.Context, login string, now time.Time, windowSize time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.windows[login]
	if w == nil {
		return 0, nil
	}
	if now.Sub(w.start) >= windowSize {
		delete(s.windows, login)
		return 0, nil
	}
	return w.count, nil
}

func (s *MemoryStore) Reset(_ context.Context, login string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.windows, login)
	return nil
}
