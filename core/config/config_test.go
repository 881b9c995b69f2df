package config_test

import (
	"testing"

	"catalog-sync/core/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, "catalog-files", cfg.Storage.Bucket)
	assert.Equal(t, 250, cfg.Source.PageSize)
	assert.Equal(t, float64(1000), cfg.Target.BucketCapacity)
	assert.Equal(t, float64(50), cfg.Target.RestoreRate)
	assert.Equal(t, "drop", cfg.Sync.OnPartialReferenceFailure)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("SERVER_PORT", "9091")
	t.Setenv("TARGET_MAX_RETRIES", "2")
	t.Setenv("SYNC_ON_PARTIAL_REFERENCE_FAILURE", "fail")

	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "9091", cfg.Server.Port)
	assert.Equal(t, 2, cfg.Target.MaxRetries)
	assert.Equal(t, "fail", cfg.Sync.OnPartialReferenceFailure)
}
