package mapping

import (
	"context"
	"fmt"
	"time"

	"catalog-sync/core/fingerprint"
	"catalog-sync/core/source"
)

// Record associates a source external id with the target-platform id it
// was materialized as, keyed three ways: external id, target id and
// natural key are each unique within a kind. Fingerprint is the content
// hash of the source entity at the time the record was last written:
// the last known synced state, not necessarily the current source state.
type Record struct {
	// ExternalID is the source system's stable identifier.
	ExternalID string `gorm:"column:external_id;primaryKey;size:128" json:"external_id"`

	// TargetID is the identifier assigned by the target platform.
	TargetID string `gorm:"column:target_id;uniqueIndex;size:128" json:"target_id"`

	// NaturalKey is the handle/path/SKU, unique within the kind.
	NaturalKey string `gorm:"column:natural_key;uniqueIndex;size:255" json:"natural_key"`

	// Fingerprint is the content hash at last successful sync.
	Fingerprint fingerprint.Digest `gorm:"column:fingerprint;index;size:64" json:"fingerprint"`

	// LastUpdated is when this record was last written.
	LastUpdated time.Time `gorm:"column:last_updated" json:"last_updated"`
}

// Store persists external-to-target identity mappings for one entity
// kind. Implementations must enforce the three uniqueness invariants
// and surface violations as *IntegrityError rather than dropping them.
type Store interface {
	// Kind returns the entity kind this store maps.
	Kind() source.Kind

	// FindByExternalID returns the record for the external id, or nil.
	FindByExternalID(ctx context.Context, externalID string) (*Record, error)

	// FindByNaturalKey returns the record for the natural key, or nil.
	FindByNaturalKey(ctx context.Context, naturalKey string) (*Record, error)

	// FindByFingerprint returns a record carrying the fingerprint, or nil.
	FindByFingerprint(ctx context.Context, fp fingerprint.Digest) (*Record, error)

	// Upsert writes the record keyed by external id as a single logical
	// write. A natural key or target id already held by a different
	// external id is an *IntegrityError.
	Upsert(ctx context.Context, rec Record) error

	// ListAll returns every record of the kind, used for stale-mapping
	// sweeps and for loading the per-run cache.
	ListAll(ctx context.Context) ([]Record, error)

	// DeleteByTargetID removes the record holding the target id.
	// It reports whether a record was removed.
	DeleteByTargetID(ctx context.Context, targetID string) (bool, error)
}

// IntegrityError reports a uniqueness violation detected on upsert.
// It indicates drift between the mapping store and the target platform
// and is fatal for the entity being written.
type IntegrityError struct {
	Kind       source.Kind
	Column     string
	Value      string
	ExternalID string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("mapping integrity violation for kind %s: %s %q already mapped by another external id (writing %s)",
		e.Kind, e.Column, e.Value, e.ExternalID)
}
