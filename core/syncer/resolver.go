package syncer

import (
	"context"
	"errors"
	"fmt"

	"catalog-sync/core/mapping"
	"catalog-sync/core/source"
)

// MissingReferenceError reports a foreign reference with no mapping
// yet. It is not bad data: kind ordering should provide the mapping on
// a later pass, so the reconciler classifies the entity as skipped
// rather than failed.
type MissingReferenceError struct {
	Kind       source.Kind
	ExternalID string
	Field      string
}

func (e *MissingReferenceError) Error() string {
	return fmt.Sprintf("reference %s=%q (%s) has no mapping yet", e.Field, e.ExternalID, e.Kind)
}

// Resolver rewrites external ids embedded in entity fields to the
// target ids of already-synced entities of other kinds, reading the
// per-kind mapping stores.
type Resolver struct {
	stores map[source.Kind]mapping.Store
	policy string
}

// NewResolver creates a resolver over the given per-kind stores.
// policy is one of PolicyDropUnresolved or PolicyFailEntity and only
// affects list-valued reference fields.
func NewResolver(stores map[source.Kind]mapping.Store, policy string) *Resolver {
	if policy != PolicyFailEntity {
		policy = PolicyDropUnresolved
	}
	return &Resolver{stores: stores, policy: policy}
}

// Resolve returns the target id mapped for the referenced external id.
func (r *Resolver) Resolve(ctx context.Context, kind source.Kind, field, externalID string) (string, error) {
	store, ok := r.stores[kind]
	if !ok {
		return "", fmt.Errorf("no mapping store registered for referenced kind %s", kind)
	}
	rec, err := store.FindByExternalID(ctx, externalID)
	if err != nil {
		return "", err
	}
	if rec == nil {
		return "", &MissingReferenceError{Kind: kind, ExternalID: externalID, Field: field}
	}
	return rec.TargetID, nil
}

// Rewrite returns a copy of the entity with every reference field's
// external ids replaced by target ids. Single references that cannot be
// resolved always fail (they are identity-bearing); unresolved entries
// in list references follow the configured policy. The returned slice
// names the list entries that were dropped.
func (r *Resolver) Rewrite(ctx context.Context, e source.Entity) (source.Entity, []string, error) {
	out := e.Clone()
	var dropped []string

	for i := range out.Fields {
		f := &out.Fields[i]
		switch f.Type {
		case source.FieldReference:
			id, _ := f.Value.(string)
			if id == "" {
				continue
			}
			targetID, err := r.Resolve(ctx, f.RefKind, f.Key, id)
			if err != nil {
				return source.Entity{}, nil, err
			}
			f.Value = targetID

		case source.FieldReferenceList:
			ids, _ := f.Value.([]string)
			resolved := make([]string, 0, len(ids))
			for _, id := range ids {
				targetID, err := r.Resolve(ctx, f.RefKind, f.Key, id)
				if err != nil {
					var missing *MissingReferenceError
					if errors.As(err, &missing) && r.policy == PolicyDropUnresolved {
						dropped = append(dropped, f.Key+"="+id)
						continue
					}
					return source.Entity{}, nil, err
				}
				resolved = append(resolved, targetID)
			}
			f.Value = resolved
		}
	}

	return out, dropped, nil
}
