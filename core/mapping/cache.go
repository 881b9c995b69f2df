package mapping

import (
	"context"

	"catalog-sync/core/fingerprint"
	"catalog-sync/core/source"
)

// RunCache is a read-through, write-through view of a Store for one
// sync run. It is built from a single ListAll at run start, so a full
// pass performs one store round-trip instead of one per entity, and is
// discarded when the run ends.
//
// The cache is owned exclusively by the run's single worker and is not
// safe for concurrent use; writes go through to the backing store
// before the maps are updated, so a run can depend on its own writes.
type RunCache struct {
	store      Store
	byExternal map[string]Record
	byNatural  map[string]string // natural key -> external id
	byDigest   map[fingerprint.Digest]string
}

// BuildRunCache loads the full mapping set for the store's kind.
func BuildRunCache(ctx context.Context, store Store) (*RunCache, error) {
	records, err := store.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	c := &RunCache{
		store:      store,
		byExternal: make(map[string]Record, len(records)),
		byNatural:  make(map[string]string, len(records)),
		byDigest:   make(map[fingerprint.Digest]string, len(records)),
	}
	for _, rec := range records {
		c.index(rec)
	}
	return c, nil
}

func (c *RunCache) index(rec Record) {
	c.byExternal[rec.ExternalID] = rec
	c.byNatural[rec.NaturalKey] = rec.ExternalID
	c.byDigest[rec.Fingerprint] = rec.ExternalID
}

func (c *RunCache) Kind() source.Kind { return c.store.Kind() }

func (c *RunCache) FindByExternalID(ctx context.Context, externalID string) (*Record, error) {
	if rec, ok := c.byExternal[externalID]; ok {
		return &rec, nil
	}
	return nil, nil
}

func (c *RunCache) FindByNaturalKey(ctx context.Context, naturalKey string) (*Record, error) {
	if id, ok := c.byNatural[naturalKey]; ok {
		rec := c.byExternal[id]
		return &rec, nil
	}
	return nil, nil
}

func (c *RunCache) FindByFingerprint(ctx context.Context, fp fingerprint.Digest) (*Record, error) {
	if id, ok := c.byDigest[fp]; ok {
		rec := c.byExternal[id]
		return &rec, nil
	}
	return nil, nil
}

// Upsert writes through to the store, then refreshes the in-memory
// indexes so subsequent lookups within the run observe the write.
func (c *RunCache) Upsert(ctx context.Context, rec Record) error {
	if err := c.store.Upsert(ctx, rec); err != nil {
		return err
	}
	if old, ok := c.byExternal[rec.ExternalID]; ok {
		delete(c.byNatural, old.NaturalKey)
		delete(c.byDigest, old.Fingerprint)
	}
	c.index(rec)
	return nil
}

func (c *RunCache) ListAll(ctx context.Context) ([]Record, error) {
	out := make([]Record, 0, len(c.byExternal))
	for _, rec := range c.byExternal {
		out = append(out, rec)
	}
	return out, nil
}

func (c *RunCache) DeleteByTargetID(ctx context.Context, targetID string) (bool, error) {
	deleted, err := c.store.DeleteByTargetID(ctx, targetID)
	if err != nil {
		return false, err
	}
	for id, rec := range c.byExternal {
		if rec.TargetID == targetID {
			delete(c.byExternal, id)
			delete(c.byNatural, rec.NaturalKey)
			delete(c.byDigest, rec.Fingerprint)
			break
		}
	}
	return deleted, nil
}
