package cmd

import (
	"context"
	"fmt"

	"catalog-sync/core/config"
	"catalog-sync/core/database"
	"catalog-sync/core/mapping"
	"catalog-sync/core/source"
	"catalog-sync/core/storage"
	"catalog-sync/core/syncer"
	"catalog-sync/core/target"
	"catalog-sync/feature/catalog"

	"go.uber.org/zap"
)

// buildEngine wires the sync engine from configuration: mapping store
// database, object storage, the source export client and the
// rate-limited target client, plus one adapter per entity kind.
func buildEngine(cfg *config.Config, logg *zap.Logger) (*syncer.Engine, error) {
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect mapping database: %w", err)
	}
	if err := mapping.Migrate(db, source.Kinds()...); err != nil {
		return nil, fmt.Errorf("migrate mapping tables: %w", err)
	}

	stores := make(map[source.Kind]mapping.Store, len(source.Kinds()))
	for _, kind := range source.Kinds() {
		stores[kind] = mapping.NewGormStore(db, kind)
	}

	store, err := storage.NewClient(cfg.Storage)
	if err != nil {
		// Storage is only used to enrich file entities; sync still
		// works on export metadata alone.
		logg.Warn("Storage client unavailable, file entities will not carry size/etag", zap.Error(err))
		store = nil
	} else if err := storage.VerifyBucket(context.Background(), store, cfg.Storage.Bucket); err != nil {
		logg.Warn("Storage bucket unreachable, file entities will not carry size/etag", zap.Error(err))
		store = nil
	}

	src := source.NewClient(cfg.Source)
	tgt := target.NewLimiter(target.NewClient(cfg.Target), cfg.Target, logg)

	adapters := []syncer.Adapter{
		catalog.NewFileAdapter(src, store, cfg.Storage.Bucket, logg),
		catalog.NewObjectAdapter(src),
		catalog.NewPageAdapter(src),
		catalog.NewCollectionAdapter(src),
		catalog.NewRedirectAdapter(src),
		catalog.NewPriceAdapter(src),
	}

	return syncer.NewEngine(adapters, stores, tgt, cfg.Sync, logg)
}
