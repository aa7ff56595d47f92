package store

import (
	"context"
	"sync"
	"time"

	"github.com/rcliao/string-analyzer/internal/model"
)

// MemoryStore implements Store with a map guarded by a RWMutex.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]model.StringRecord
	now     func() time.Time
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]model.StringRecord),
		now:     time.Now,
	}
}

func (s *MemoryStore) Insert(ctx context.Context, value string) (*model.StringRecord, error) {
	if err := checkValue(value); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[value]; ok {
		return nil, alreadyExists(value)
	}
	rec := newRecord(value, s.now())
	s.records[value] = rec

	out := rec.Clone()
	return &out, nil
}

func (s *MemoryStore) Get(ctx context.Context, value string) (*model.StringRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[value]
	if !ok {
		return nil, notFound(value)
	}
	out := rec.Clone()
	return &out, nil
}

func (s *MemoryStore) Delete(ctx context.Context, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[value]; !ok {
		return notFound(value)
	}
	delete(s.records, value)
	return nil
}

func (s *MemoryStore) All(ctx context.Context) ([]model.StringRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.StringRecord, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, rec.Clone())
	}
	return out, nil
}

func (s *MemoryStore) Len(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}

func (s *MemoryStore) Close() error {
	return nil
}
