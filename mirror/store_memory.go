package mirror

import (
	"context"
	"sync"
)

// MemoryStore keeps the mirror record in process memory. It survives
// nothing, which makes it the right backend for tests and for single
// shot development runs.
type MemoryStore struct {
	mu  sync.Mutex
	rec *Record
}

// NewMemoryStore constructs an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Save(_ context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := rec
	cp.Token = append([]byte(nil), rec.Token...)
	s.rec = &cp
	return nil
}

func (s *MemoryStore) Load(_ context.Context) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rec == nil {
		return Record{}, ErrNoStoredSession
	}
	cp := *s.rec
	cp.Token = append([]byte(nil), s.rec.Token...)
	return cp, nil
}

func (s *MemoryStore) Delete(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rec = nil
	return nil
}
