package mapping

import (
	"context"
	"errors"
	"fmt"
	"time"

	"catalog-sync/core/fingerprint"
	"catalog-sync/core/source"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore is the production Store backed by one relational table per
// entity kind.
type GormStore struct {
	db    *gorm.DB
	kind  source.Kind
	table string
}

// TableFor returns the mapping table name for a kind.
func TableFor(kind source.Kind) string {
	return "catalog_mappings_" + string(kind)
}

// NewGormStore creates a Store for the given kind on the given database.
func NewGormStore(db *gorm.DB, kind source.Kind) *GormStore {
	return &GormStore{db: db, kind: kind, table: TableFor(kind)}
}

// Migrate creates or updates the mapping tables for the given kinds.
func Migrate(db *gorm.DB, kinds ...source.Kind) error {
	for _, kind := range kinds {
		if err := db.Table(TableFor(kind)).AutoMigrate(&Record{}); err != nil {
			return fmt.Errorf("migrate mapping table for %s: %w", kind, err)
		}
	}
	return nil
}

func (s *GormStore) Kind() source.Kind { return s.kind }

func (s *GormStore) FindByExternalID(ctx context.Context, externalID string) (*Record, error) {
	return s.findOne(ctx, "external_id = ?", externalID)
}

func (s *GormStore) FindByNaturalKey(ctx context.Context, naturalKey string) (*Record, error) {
	return s.findOne(ctx, "natural_key = ?", naturalKey)
}

func (s *GormStore) FindByFingerprint(ctx context.Context, fp fingerprint.Digest) (*Record, error) {
	return s.findOne(ctx, "fingerprint = ?", string(fp))
}

func (s *GormStore) findOne(ctx context.Context, query string, arg any) (*Record, error) {
	var rec Record
	err := s.db.WithContext(ctx).Table(s.table).Where(query, arg).Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("mapping lookup (%s): %w", s.kind, err)
	}
	return &rec, nil
}

// Upsert writes the record in a single transaction. Conflicting natural
// keys or target ids held by other external ids are surfaced as
// *IntegrityError before any write happens.
func (s *GormStore) Upsert(ctx context.Context, rec Record) error {
	if rec.LastUpdated.IsZero() {
		rec.LastUpdated = time.Now().UTC()
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Table(s.table).
			Where("natural_key = ? AND external_id <> ?", rec.NaturalKey, rec.ExternalID).
			Count(&count).Error; err != nil {
			return fmt.Errorf("mapping upsert precheck (%s): %w", s.kind, err)
		}
		if count > 0 {
			return &IntegrityError{Kind: s.kind, Column: "natural_key", Value: rec.NaturalKey, ExternalID: rec.ExternalID}
		}

		if err := tx.Table(s.table).
			Where("target_id = ? AND external_id <> ?", rec.TargetID, rec.ExternalID).
			Count(&count).Error; err != nil {
			return fmt.Errorf("mapping upsert precheck (%s): %w", s.kind, err)
		}
		if count > 0 {
			return &IntegrityError{Kind: s.kind, Column: "target_id", Value: rec.TargetID, ExternalID: rec.ExternalID}
		}

		err := tx.Table(s.table).Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "external_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"target_id", "natural_key", "fingerprint", "last_updated",
			}),
		}).Create(&rec).Error
		if err != nil {
			return fmt.Errorf("mapping upsert (%s): %w", s.kind, err)
		}
		return nil
	})
}

func (s *GormStore) ListAll(ctx context.Context) ([]Record, error) {
	var records []Record
	if err := s.db.WithContext(ctx).Table(s.table).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("mapping list (%s): %w", s.kind, err)
	}
	return records, nil
}

func (s *GormStore) DeleteByTargetID(ctx context.Context, targetID string) (bool, error) {
	res := s.db.WithContext(ctx).Table(s.table).Where("target_id = ?", targetID).Delete(&Record{})
	if res.Error != nil {
		return false, fmt.Errorf("mapping delete (%s): %w", s.kind, res.Error)
	}
	return res.RowsAffected > 0, nil
}
