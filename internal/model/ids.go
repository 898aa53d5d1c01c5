package model

import (
	"sync"
	"time"
)

// IDSource hands out millisecond timestamps that strictly increase, so two
// calls in the same millisecond still get distinct ids.
type IDSource struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

func NewIDSource() *IDSource {
	return &IDSource{now: time.Now}
}

// NewIDSourceAt uses a fixed clock; tests use it to force collisions.
func NewIDSourceAt(now func() time.Time) *IDSource {
	return &IDSource{now: now}
}

func (s *IDSource) Next() int64 {
	return s.NextAfter(0)
}

// NextAfter returns an id greater than both floor and every id handed out
// before.
func (s *IDSource) NextAfter(floor int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.now().UnixMilli()
	if id <= s.last {
		id = s.last + 1
	}
	if id <= floor {
		id = floor + 1
	}
	s.last = id
	return id
}
