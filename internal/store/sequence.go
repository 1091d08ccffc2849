package store

import (
	"sync"
	"time"
)

// sequence issues record identifiers and creation timestamps. Identifiers
// are millisecond wall-clock values bumped past anything already issued or
// stored, so they never collide within a collection; timestamps never move
// backwards across calls.
type sequence struct {
	mu     sync.Mutex
	now    func() time.Time
	lastID int64
	lastTS time.Time
}

func newSequence(now func() time.Time) *sequence {
	if now == nil {
		now = time.Now
	}
	return &sequence{now: now}
}

// next returns a fresh id greater than floor and a non-decreasing timestamp.
func (s *sequence) next(floor int64) (int64, time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ts := s.now().UTC()
	if ts.Before(s.lastTS) {
		ts = s.lastTS
	}
	s.lastTS = ts

	id := ts.UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	if id <= floor {
		id = floor + 1
	}
	s.lastID = id
	return id, ts
}

// stamp returns a non-decreasing timestamp for updates.
func (s *sequence) stamp() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	ts := s.now().UTC()
	if ts.Before(s.lastTS) {
		ts = s.lastTS
	}
	s.lastTS = ts
	return ts
}
