package syncer

import (
	"context"

	"catalog-sync/core/source"
	"catalog-sync/core/target"
)

// Adapter provides the kind-specific strategy for the generic engine:
// where to pull source records, which kinds must be synced first, and
// how a typed entity becomes a target mutation payload.
//
// Adapters are stateless translators; the engine owns the decision
// procedure, mapping writes and pacing.
type Adapter interface {
	// Kind returns the entity kind this adapter syncs.
	Kind() source.Kind

	// DependsOn lists kinds whose mappings must exist before this kind
	// is reconciled, because its entities embed references to them.
	DependsOn() []source.Kind

	// FetchPage pulls one page of source entities. An empty cursor
	// starts from the beginning; an empty next cursor ends the
	// sequence. Enumeration failures are reported as *source.FetchError.
	FetchPage(ctx context.Context, cursor string, limit int) ([]source.Entity, string, error)

	// BuildPayload converts an entity whose reference fields have
	// already been rewritten to target ids into a mutation payload.
	BuildPayload(e source.Entity) (target.Payload, error)
}
