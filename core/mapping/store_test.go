package mapping

import (
	"context"
	"testing"
	"time"

	"catalog-sync/core/source"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupStore(t *testing.T) *GormStore {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(db, source.KindFile))
	return NewGormStore(db, source.KindFile)
}

func TestGormStore_UpsertAndLookups(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	rec := Record{
		ExternalID:  "F1",
		TargetID:    "gid://target/File/1",
		NaturalKey:  "images/chair.png",
		Fingerprint: "aaaa",
	}
	require.NoError(t, store.Upsert(ctx, rec))

	byExt, err := store.FindByExternalID(ctx, "F1")
	require.NoError(t, err)
	require.NotNil(t, byExt)
	assert.Equal(t, "gid://target/File/1", byExt.TargetID)
	assert.False(t, byExt.LastUpdated.IsZero())

	byKey, err := store.FindByNaturalKey(ctx, "images/chair.png")
	require.NoError(t, err)
	require.NotNil(t, byKey)
	assert.Equal(t, "F1", byKey.ExternalID)

	byFp, err := store.FindByFingerprint(ctx, "aaaa")
	require.NoError(t, err)
	require.NotNil(t, byFp)

	missing, err := store.FindByExternalID(ctx, "F2")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestGormStore_UpsertOverwritesByExternalID(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, Record{
		ExternalID: "F1", TargetID: "T1", NaturalKey: "a.png", Fingerprint: "h1",
	}))
	require.NoError(t, store.Upsert(ctx, Record{
		ExternalID: "F1", TargetID: "T1", NaturalKey: "a.png", Fingerprint: "h2",
		LastUpdated: time.Now().UTC(),
	}))

	all, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "h2", string(all[0].Fingerprint))
}

func TestGormStore_UpsertIntegrityViolations(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, Record{
		ExternalID: "F1", TargetID: "T1", NaturalKey: "a.png", Fingerprint: "h1",
	}))

	t.Run("duplicate natural key", func(t *testing.T) {
		err := store.Upsert(ctx, Record{
			ExternalID: "F2", TargetID: "T2", NaturalKey: "a.png", Fingerprint: "h2",
		})
		var ie *IntegrityError
		require.ErrorAs(t, err, &ie)
		assert.Equal(t, "natural_key", ie.Column)
	})

	t.Run("duplicate target id", func(t *testing.T) {
		err := store.Upsert(ctx, Record{
			ExternalID: "F2", TargetID: "T1", NaturalKey: "b.png", Fingerprint: "h2",
		})
		var ie *IntegrityError
		require.ErrorAs(t, err, &ie)
		assert.Equal(t, "target_id", ie.Column)
	})

	// The failed upserts must not have written anything.
	all, err := store.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestGormStore_DeleteByTargetID(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, Record{
		ExternalID: "F1", TargetID: "T1", NaturalKey: "a.png", Fingerprint: "h1",
	}))

	deleted, err := store.DeleteByTargetID(ctx, "T1")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = store.DeleteByTargetID(ctx, "T1")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestGormStore_TablesArePerKind(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(db, source.KindFile, source.KindPage))

	ctx := context.Background()
	files := NewGormStore(db, source.KindFile)
	pages := NewGormStore(db, source.KindPage)

	require.NoError(t, files.Upsert(ctx, Record{
		ExternalID: "F1", TargetID: "T1", NaturalKey: "a.png", Fingerprint: "h1",
	}))

	// Same natural key in another kind's table is not a violation.
	require.NoError(t, pages.Upsert(ctx, Record{
		ExternalID: "P1", TargetID: "T1", NaturalKey: "a.png", Fingerprint: "h1",
	}))

	all, err := pages.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
