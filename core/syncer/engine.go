package syncer

import (
	"context"
	"fmt"
	"time"

	"catalog-sync/core/mapping"
	"catalog-sync/core/source"
	"catalog-sync/core/target"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Engine orchestrates sync runs: it sequences entity kinds in
// dependency order, pages through source entities, drives the
// Reconciler over each, and aggregates per-entity outcomes.
//
// Processing is sequential: one mutation is outstanding at a time
// against the shared rate budget, and later kinds depend on the
// mapping writes of earlier ones.
type Engine struct {
	adapters map[source.Kind]Adapter
	order    []source.Kind
	stores   map[source.Kind]mapping.Store
	client   target.Client
	cfg      Config
	logger   *zap.Logger
}

// KindNotRegisteredError reports a sync request for a kind the engine
// has no adapter for.
type KindNotRegisteredError struct {
	Kind source.Kind
}

func (e *KindNotRegisteredError) Error() string {
	return fmt.Sprintf("no adapter registered for kind %q", e.Kind)
}

// NewEngine wires the engine from per-kind adapters and mapping stores
// plus the (rate-limited) target client. The kind order is derived from
// the adapters' declared dependencies; a dependency cycle or an adapter
// without a store is a construction error.
func NewEngine(adapters []Adapter, stores map[source.Kind]mapping.Store, client target.Client, cfg Config, logger *zap.Logger) (*Engine, error) {
	byKind := make(map[source.Kind]Adapter, len(adapters))
	for _, a := range adapters {
		if _, ok := stores[a.Kind()]; !ok {
			return nil, fmt.Errorf("no mapping store for kind %s", a.Kind())
		}
		byKind[a.Kind()] = a
	}

	order, err := dependencyOrder(adapters)
	if err != nil {
		return nil, err
	}

	return &Engine{
		adapters: byKind,
		order:    order,
		stores:   stores,
		client:   client,
		cfg:      cfg,
		logger:   logger,
	}, nil
}

// dependencyOrder places referenced kinds before referencing kinds,
// keeping the registration order among independent kinds.
func dependencyOrder(adapters []Adapter) ([]source.Kind, error) {
	placed := make(map[source.Kind]bool, len(adapters))
	remaining := append([]Adapter(nil), adapters...)
	order := make([]source.Kind, 0, len(adapters))

	registered := make(map[source.Kind]bool, len(adapters))
	for _, a := range adapters {
		registered[a.Kind()] = true
	}

	for len(remaining) > 0 {
		progressed := false
		next := remaining[:0]
		for _, a := range remaining {
			ready := true
			for _, dep := range a.DependsOn() {
				// Dependencies on unregistered kinds cannot be waited for.
				if registered[dep] && !placed[dep] {
					ready = false
					break
				}
			}
			if ready {
				order = append(order, a.Kind())
				placed[a.Kind()] = true
				progressed = true
			} else {
				next = append(next, a)
			}
		}
		if !progressed {
			return nil, fmt.Errorf("dependency cycle among entity kinds")
		}
		remaining = next
	}

	return order, nil
}

// Kinds returns the engine's processing order.
func (e *Engine) Kinds() []source.Kind {
	out := make([]source.Kind, len(e.order))
	copy(out, e.order)
	return out
}

// SyncAll runs every registered kind in dependency order. A kind whose
// enumeration fails is reported in its summary and does not stop later
// kinds; completed kinds are never rolled back.
func (e *Engine) SyncAll(ctx context.Context, opts Options) (*RunSummary, error) {
	run := &RunSummary{RunID: uuid.NewString()}
	started := time.Now()
	log := e.logger.With(zap.String("run_id", run.RunID))

	caches, err := e.buildCaches(ctx)
	if err != nil {
		return nil, err
	}

	for _, kind := range e.order {
		if err := ctx.Err(); err != nil {
			run.ExecutionTime = time.Since(started).String()
			return run, err
		}
		summary := e.syncKind(ctx, e.adapters[kind], caches, opts, log)
		run.Kinds = append(run.Kinds, *summary)
	}

	run.ExecutionTime = time.Since(started).String()
	log.Info("sync run finished", zap.String("execution_time", run.ExecutionTime))
	return run, nil
}

// SyncKind runs a single kind. Reference lookups read the mapping
// stores of the other kinds as they stand; syncing dependencies first
// is the caller's concern.
func (e *Engine) SyncKind(ctx context.Context, kind source.Kind, opts Options) (*RunSummary, error) {
	adapter, ok := e.adapters[kind]
	if !ok {
		return nil, &KindNotRegisteredError{Kind: kind}
	}

	run := &RunSummary{RunID: uuid.NewString()}
	started := time.Now()
	log := e.logger.With(zap.String("run_id", run.RunID))

	caches, err := e.buildCaches(ctx)
	if err != nil {
		return nil, err
	}

	summary := e.syncKind(ctx, adapter, caches, opts, log)
	run.Kinds = append(run.Kinds, *summary)
	run.ExecutionTime = time.Since(started).String()
	return run, ctx.Err()
}

// buildCaches loads the per-run mapping caches, one ListAll per kind.
func (e *Engine) buildCaches(ctx context.Context) (map[source.Kind]mapping.Store, error) {
	caches := make(map[source.Kind]mapping.Store, len(e.stores))
	for kind, store := range e.stores {
		cache, err := mapping.BuildRunCache(ctx, store)
		if err != nil {
			return nil, fmt.Errorf("load mapping cache for %s: %w", kind, err)
		}
		caches[kind] = cache
	}
	return caches, nil
}

func (e *Engine) syncKind(ctx context.Context, adapter Adapter, caches map[source.Kind]mapping.Store, opts Options, log *zap.Logger) *KindSummary {
	kind := adapter.Kind()
	store := caches[kind]
	summary := &KindSummary{Kind: string(kind), Errors: []string{}}
	started := time.Now()
	log = log.With(zap.String("kind", string(kind)))

	defer func() {
		summary.Duration = time.Since(started).String()
		log.Info("kind pass finished",
			zap.Int("created", summary.Created),
			zap.Int("updated", summary.Updated),
			zap.Int("skipped_unchanged", summary.SkippedUnchanged),
			zap.Int("skipped_missing_reference", summary.SkippedMissingReference),
			zap.Int("deleted", summary.Deleted),
			zap.Int("failed", summary.Failed),
			zap.Int("stale_mappings_removed", summary.StaleMappingsRemoved))
	}()

	if opts.DeleteMode {
		e.deleteKind(ctx, adapter, store, opts, summary, log)
		return summary
	}

	// A mapping whose target record is gone would otherwise satisfy a
	// natural-key lookup and dangle a reference; sweep before syncing.
	removed, err := e.sweepStaleMappings(ctx, kind, store)
	if err != nil {
		summary.FetchError = err.Error()
		log.Error("target enumeration failed, aborting kind pass", zap.Error(err))
		return summary
	}
	summary.StaleMappingsRemoved = removed

	resolver := NewResolver(caches, e.cfg.OnPartialReferenceFailure)
	reconciler := NewReconciler(store, e.client, resolver, log)

	processed := 0
	cursor := ""
	for {
		limit := e.cfg.pageSize()
		if opts.Limit > 0 && opts.Limit-processed < limit {
			limit = opts.Limit - processed
		}
		if limit <= 0 {
			break
		}

		entities, next, err := adapter.FetchPage(ctx, cursor, limit)
		if err != nil {
			summary.FetchError = err.Error()
			log.Error("source fetch failed, aborting kind pass", zap.Error(err))
			return summary
		}

		for _, entity := range entities {
			// Cooperative checkpoint between entities; a cancellation
			// never lands between a mutation and its mapping write.
			if ctx.Err() != nil {
				summary.Aborted = true
				return summary
			}
			res := reconciler.Reconcile(ctx, adapter, entity)
			summary.record(res, e.cfg.errorSampleSize())
			processed++
			if opts.Limit > 0 && processed >= opts.Limit {
				return summary
			}
		}

		if next == "" {
			break
		}
		cursor = next
	}

	return summary
}

// deleteKind retracts previously-synced records: every mapping is
// deleted on the target and then removed from the store.
func (e *Engine) deleteKind(ctx context.Context, adapter Adapter, store mapping.Store, opts Options, summary *KindSummary, log *zap.Logger) {
	records, err := store.ListAll(ctx)
	if err != nil {
		summary.FetchError = err.Error()
		return
	}

	for i, rec := range records {
		if ctx.Err() != nil {
			summary.Aborted = true
			return
		}
		if opts.Limit > 0 && i >= opts.Limit {
			return
		}

		res := EntityResult{ExternalID: rec.ExternalID, NaturalKey: rec.NaturalKey, TargetID: rec.TargetID}
		if _, err := e.client.Delete(ctx, adapter.Kind(), rec.TargetID); err != nil {
			summary.record(failed(res, err), e.cfg.errorSampleSize())
			continue
		}
		// Deletion applied on the target; the mapping removal follows
		// unconditionally, like the mutation/mapping pairing on sync.
		if _, err := store.DeleteByTargetID(context.WithoutCancel(ctx), rec.TargetID); err != nil {
			summary.record(failed(res, err), e.cfg.errorSampleSize())
			continue
		}
		res.Outcome = OutcomeDeleted
		summary.record(res, e.cfg.errorSampleSize())
	}
}

// sweepStaleMappings removes mapping records whose target id no longer
// exists on the platform, so later natural-key lookups cannot return a
// dangling reference.
func (e *Engine) sweepStaleMappings(ctx context.Context, kind source.Kind, store mapping.Store) (int, error) {
	present := make(map[string]struct{})
	cursor := ""
	for {
		page, err := e.client.EnumerateIDs(ctx, kind, cursor)
		if err != nil {
			return 0, fmt.Errorf("enumerate target %s records: %w", kind, err)
		}
		for _, id := range page.IDs {
			present[id] = struct{}{}
		}
		if page.NextCursor == "" {
			break
		}
		cursor = page.NextCursor
	}

	records, err := store.ListAll(ctx)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, rec := range records {
		if _, ok := present[rec.TargetID]; ok {
			continue
		}
		deleted, err := store.DeleteByTargetID(ctx, rec.TargetID)
		if err != nil {
			return removed, err
		}
		if deleted {
			removed++
		}
	}
	return removed, nil
}
