package syncer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"catalog-sync/core/fingerprint"
	"catalog-sync/core/mapping"
	"catalog-sync/core/source"
	"catalog-sync/core/target"

	"go.uber.org/zap"
)

// Reconciler decides and executes the per-entity action: skip when the
// fingerprint matches the last synced state, otherwise create or update
// on the target and write the mapping back.
type Reconciler struct {
	store    mapping.Store
	client   target.Client
	resolver *Resolver
	logger   *zap.Logger
}

// NewReconciler creates a reconciler for one kind's pass. store is
// usually the run's write-through cache for that kind.
func NewReconciler(store mapping.Store, client target.Client, resolver *Resolver, logger *zap.Logger) *Reconciler {
	return &Reconciler{store: store, client: client, resolver: resolver, logger: logger}
}

// Reconcile processes a single source entity. Every path returns an
// EntityResult; errors are folded into the outcome so that one bad
// entity never aborts the pass.
func (r *Reconciler) Reconcile(ctx context.Context, adapter Adapter, e source.Entity) EntityResult {
	kind := adapter.Kind()
	fp := fingerprint.Hash(e)
	result := EntityResult{ExternalID: e.ExternalID, NaturalKey: e.NaturalKey}

	rec, err := r.store.FindByExternalID(ctx, e.ExternalID)
	if err != nil {
		return failed(result, fmt.Errorf("mapping lookup: %w", err))
	}

	// A record found only by natural key means the target record
	// pre-exists outside this sync history. Adopt its target id and
	// rekey the mapping under the current external id.
	adopted := false
	if rec == nil {
		rec, err = r.store.FindByNaturalKey(ctx, e.NaturalKey)
		if err != nil {
			return failed(result, fmt.Errorf("mapping lookup: %w", err))
		}
		adopted = rec != nil
	}

	if rec != nil && !adopted && rec.Fingerprint == fp {
		result.TargetID = rec.TargetID
		result.Outcome = OutcomeSkippedUnchanged
		return result
	}

	rewritten, dropped, err := r.resolver.Rewrite(ctx, e)
	if err != nil {
		var missing *MissingReferenceError
		if errors.As(err, &missing) {
			r.logger.Warn("entity skipped, reference not yet synced",
				zap.String("kind", string(kind)),
				zap.String("external_id", e.ExternalID),
				zap.String("reference", missing.ExternalID),
				zap.String("reference_kind", string(missing.Kind)))
			result.Outcome = OutcomeSkippedMissingReference
			result.Reason = missing.Error()
			return result
		}
		return failed(result, fmt.Errorf("resolve references: %w", err))
	}
	if len(dropped) > 0 {
		r.logger.Warn("unresolved reference entries dropped",
			zap.String("kind", string(kind)),
			zap.String("external_id", e.ExternalID),
			zap.Strings("dropped", dropped))
	}

	payload, err := adapter.BuildPayload(rewritten)
	if err != nil {
		return failed(result, fmt.Errorf("build payload: %w", err))
	}

	targetID := ""
	if rec != nil {
		targetID = rec.TargetID
	} else {
		// Never create blindly: a target record with this natural key
		// may exist even though the mapping store has no memory of it.
		targetID, err = r.client.LookupByNaturalKey(ctx, kind, e.NaturalKey)
		if err != nil {
			return failed(result, fmt.Errorf("natural key lookup: %w", err))
		}
	}

	var mutation *target.MutationResult
	if targetID == "" {
		mutation, err = r.client.Create(ctx, kind, payload)
		result.Outcome = OutcomeCreated
	} else {
		mutation, err = r.client.Update(ctx, kind, targetID, payload)
		result.Outcome = OutcomeUpdated
	}
	if err != nil {
		return failed(result, err)
	}
	if len(mutation.UserErrors) > 0 {
		return failed(result, fmt.Errorf("rejected by target: %s", joinUserErrors(mutation.UserErrors)))
	}

	if mutation.TargetID != "" {
		targetID = mutation.TargetID
	}
	result.TargetID = targetID

	// The mutation is applied; the mapping write must not be separated
	// from it by cancellation, or a later run would duplicate the
	// record. Detach the write from ctx cancellation.
	writeCtx := context.WithoutCancel(ctx)

	// Rekeying an adopted mapping: the old record holds the same
	// natural key under a stale external id and must go first.
	if adopted && rec.ExternalID != e.ExternalID {
		if _, derr := r.store.DeleteByTargetID(writeCtx, rec.TargetID); derr != nil {
			return failed(result, fmt.Errorf("rekey mapping: %w", derr))
		}
	}

	err = r.store.Upsert(writeCtx, mapping.Record{
		ExternalID:  e.ExternalID,
		TargetID:    targetID,
		NaturalKey:  e.NaturalKey,
		Fingerprint: fp,
	})
	if err != nil {
		var integrity *mapping.IntegrityError
		if errors.As(err, &integrity) {
			r.logger.Error("mapping integrity violation, store has drifted from target state",
				zap.String("kind", string(kind)),
				zap.String("external_id", e.ExternalID),
				zap.Error(integrity))
		}
		return failed(result, fmt.Errorf("mapping write: %w", err))
	}

	return result
}

func failed(result EntityResult, err error) EntityResult {
	result.Outcome = OutcomeFailed
	result.Reason = err.Error()
	return result
}

func joinUserErrors(errs []target.UserError) string {
	parts := make([]string, len(errs))
	for i, ue := range errs {
		parts[i] = ue.Field + ": " + ue.Message
	}
	return strings.Join(parts, "; ")
}
