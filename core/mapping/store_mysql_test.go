package mapping_test

import (
	"context"
	"testing"

	"catalog-sync/core/mapping"
	"catalog-sync/core/source"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// The sqlite-backed tests cover behavior; these verify the SQL shape
// the store emits against the production MySQL dialect.

func newMockedStore(t *testing.T, kind source.Kind) (*mapping.GormStore, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      conn,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	return mapping.NewGormStore(db, kind), mock
}

func TestGormStore_FindByExternalID_MySQL(t *testing.T) {
	store, mock := newMockedStore(t, source.KindFile)

	rows := sqlmock.NewRows([]string{"external_id", "target_id", "natural_key", "fingerprint"}).
		AddRow("F1", "T1", "images/logo.png", "abc")
	mock.ExpectQuery("SELECT \\* FROM `catalog_mappings_file` WHERE external_id = \\?").
		WithArgs("F1", 1).
		WillReturnRows(rows)

	rec, err := store.FindByExternalID(context.Background(), "F1")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "T1", rec.TargetID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_FindByExternalID_NotFound_MySQL(t *testing.T) {
	store, mock := newMockedStore(t, source.KindPrice)

	mock.ExpectQuery("SELECT \\* FROM `catalog_mappings_price` WHERE external_id = \\?").
		WithArgs("P404", 1).
		WillReturnRows(sqlmock.NewRows([]string{"external_id"}))

	rec, err := store.FindByExternalID(context.Background(), "P404")
	require.NoError(t, err)
	assert.Nil(t, rec)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_DeleteByTargetID_MySQL(t *testing.T) {
	store, mock := newMockedStore(t, source.KindRedirect)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `catalog_mappings_redirect` WHERE target_id = \\?").
		WithArgs("T9").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	removed, err := store.DeleteByTargetID(context.Background(), "T9")
	require.NoError(t, err)
	assert.True(t, removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}
