package catalog

import (
	"context"
	"fmt"

	"catalog-sync/core/source"
	"catalog-sync/core/target"
	"catalog-sync/core/utils"
)

// CollectionAdapter syncs curated groupings of objects. Membership is a
// list-valued reference, so it is subject to the partial reference
// failure policy.
type CollectionAdapter struct {
	client source.Client
}

// NewCollectionAdapter creates the adapter for the "collections" export resource.
func NewCollectionAdapter(client source.Client) *CollectionAdapter {
	return &CollectionAdapter{client: client}
}

func (a *CollectionAdapter) Kind() source.Kind { return source.KindCollection }

func (a *CollectionAdapter) DependsOn() []source.Kind {
	return []source.Kind{source.KindFile, source.KindObject}
}

func (a *CollectionAdapter) FetchPage(ctx context.Context, cursor string, limit int) ([]source.Entity, string, error) {
	return fetchEntities(ctx, a.client, "collections", cursor, limit, a.convert)
}

func (a *CollectionAdapter) convert(_ context.Context, rec source.Record) (source.Entity, error) {
	e := source.Entity{
		Kind:       source.KindCollection,
		ExternalID: utils.ToString(rec["id"]),
		NaturalKey: utils.ToString(rec["handle"]),
		Fields: []source.Field{
			{Key: "handle", Type: source.FieldText, Value: utils.ToString(rec["handle"])},
			{Key: "title", Type: source.FieldText, Value: utils.ToString(rec["title"])},
			{Key: "description", Type: source.FieldText, Value: utils.ToString(rec["description"])},
			{Key: "members", Type: source.FieldReferenceList, Value: utils.ToStringSlice(rec["member_ids"]), RefKind: source.KindObject},
		},
	}

	if img := utils.ToString(rec["image_id"]); img != "" {
		e.SetField(source.Field{Key: "image", Type: source.FieldReference, Value: img, RefKind: source.KindFile})
	}

	return e, nil
}

func (a *CollectionAdapter) BuildPayload(e source.Entity) (target.Payload, error) {
	if e.NaturalKey == "" {
		return target.Payload{}, fmt.Errorf("collection %s has no handle", e.ExternalID)
	}
	return payloadFromEntity(e), nil
}
