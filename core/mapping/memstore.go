package mapping

import (
	"context"
	"sync"
	"time"

	"catalog-sync/core/fingerprint"
	"catalog-sync/core/source"
)

// MemStore is an in-memory Store with the same invariants as GormStore.
// It backs unit tests and isolated runs without a database.
type MemStore struct {
	mu      sync.RWMutex
	kind    source.Kind
	records map[string]Record // keyed by external id
}

// NewMemStore creates an empty in-memory store for the given kind.
func NewMemStore(kind source.Kind) *MemStore {
	return &MemStore{kind: kind, records: make(map[string]Record)}
}

func (s *MemStore) Kind() source.Kind { return s.kind }

func (s *MemStore) FindByExternalID(ctx context.Context, externalID string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if rec, ok := s.records[externalID]; ok {
		return &rec, nil
	}
	return nil, nil
}

func (s *MemStore) FindByNaturalKey(ctx context.Context, naturalKey string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rec := range s.records {
		if rec.NaturalKey == naturalKey {
			rec := rec
			return &rec, nil
		}
	}
	return nil, nil
}

func (s *MemStore) FindByFingerprint(ctx context.Context, fp fingerprint.Digest) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rec := range s.records {
		if rec.Fingerprint == fp {
			rec := rec
			return &rec, nil
		}
	}
	return nil, nil
}

func (s *MemStore) Upsert(ctx context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, existing := range s.records {
		if id == rec.ExternalID {
			continue
		}
		if existing.NaturalKey == rec.NaturalKey {
			return &IntegrityError{Kind: s.kind, Column: "natural_key", Value: rec.NaturalKey, ExternalID: rec.ExternalID}
		}
		if existing.TargetID == rec.TargetID {
			return &IntegrityError{Kind: s.kind, Column: "target_id", Value: rec.TargetID, ExternalID: rec.ExternalID}
		}
	}

	if rec.LastUpdated.IsZero() {
		rec.LastUpdated = time.Now().UTC()
	}
	s.records[rec.ExternalID] = rec
	return nil
}

func (s *MemStore) ListAll(ctx context.Context) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Record, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, rec)
	}
	return out, nil
}

func (s *MemStore) DeleteByTargetID(ctx context.Context, targetID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, rec := range s.records {
		if rec.TargetID == targetID {
			delete(s.records, id)
			return true, nil
		}
	}
	return false, nil
}
