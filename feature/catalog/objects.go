package catalog

import (
	"context"
	"fmt"

	"catalog-sync/core/source"
	"catalog-sync/core/target"
	"catalog-sync/core/utils"
)

// ObjectAdapter syncs structured content objects: typed field bags with
// a handle and optional file references.
type ObjectAdapter struct {
	client source.Client
}

// NewObjectAdapter creates the adapter for the "objects" export resource.
func NewObjectAdapter(client source.Client) *ObjectAdapter {
	return &ObjectAdapter{client: client}
}

func (a *ObjectAdapter) Kind() source.Kind { return source.KindObject }

func (a *ObjectAdapter) DependsOn() []source.Kind {
	return []source.Kind{source.KindFile}
}

func (a *ObjectAdapter) FetchPage(ctx context.Context, cursor string, limit int) ([]source.Entity, string, error) {
	return fetchEntities(ctx, a.client, "objects", cursor, limit, a.convert)
}

func (a *ObjectAdapter) convert(_ context.Context, rec source.Record) (source.Entity, error) {
	e := source.Entity{
		Kind:       source.KindObject,
		ExternalID: utils.ToString(rec["id"]),
		NaturalKey: utils.ToString(rec["handle"]),
		Fields: []source.Field{
			{Key: "handle", Type: source.FieldText, Value: utils.ToString(rec["handle"])},
			{Key: "object_type", Type: source.FieldText, Value: utils.ToString(rec["type"])},
			{Key: "title", Type: source.FieldText, Value: utils.ToString(rec["title"])},
			{Key: "description", Type: source.FieldText, Value: utils.ToString(rec["description"])},
			{Key: "tags", Type: source.FieldList, Value: utils.ToStringSlice(rec["tags"])},
		},
	}

	if img := utils.ToString(rec["image_id"]); img != "" {
		e.SetField(source.Field{Key: "image", Type: source.FieldReference, Value: img, RefKind: source.KindFile})
	}
	if att := utils.ToStringSlice(rec["attachment_ids"]); len(att) > 0 {
		e.SetField(source.Field{Key: "attachments", Type: source.FieldReferenceList, Value: att, RefKind: source.KindFile})
	}

	return e, nil
}

func (a *ObjectAdapter) BuildPayload(e source.Entity) (target.Payload, error) {
	if e.NaturalKey == "" {
		return target.Payload{}, fmt.Errorf("object %s has no handle", e.ExternalID)
	}
	return payloadFromEntity(e), nil
}
