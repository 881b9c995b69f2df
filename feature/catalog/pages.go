package catalog

import (
	"context"
	"fmt"

	"catalog-sync/core/source"
	"catalog-sync/core/target"
	"catalog-sync/core/utils"
)

// PageAdapter syncs content documents.
type PageAdapter struct {
	client source.Client
}

// NewPageAdapter creates the adapter for the "pages" export resource.
func NewPageAdapter(client source.Client) *PageAdapter {
	return &PageAdapter{client: client}
}

func (a *PageAdapter) Kind() source.Kind { return source.KindPage }

func (a *PageAdapter) DependsOn() []source.Kind {
	return []source.Kind{source.KindFile}
}

func (a *PageAdapter) FetchPage(ctx context.Context, cursor string, limit int) ([]source.Entity, string, error) {
	return fetchEntities(ctx, a.client, "pages", cursor, limit, a.convert)
}

func (a *PageAdapter) convert(_ context.Context, rec source.Record) (source.Entity, error) {
	e := source.Entity{
		Kind:       source.KindPage,
		ExternalID: utils.ToString(rec["id"]),
		NaturalKey: utils.ToString(rec["handle"]),
		Fields: []source.Field{
			{Key: "handle", Type: source.FieldText, Value: utils.ToString(rec["handle"])},
			{Key: "title", Type: source.FieldText, Value: utils.ToString(rec["title"])},
			{Key: "body", Type: source.FieldText, Value: utils.ToString(rec["body"])},
			{Key: "author", Type: source.FieldText, Value: utils.ToString(rec["author"])},
			{Key: "published", Type: source.FieldBool, Value: utils.ToBool(rec["published"])},
		},
	}

	if hero := utils.ToString(rec["hero_image_id"]); hero != "" {
		e.SetField(source.Field{Key: "hero_image", Type: source.FieldReference, Value: hero, RefKind: source.KindFile})
	}

	return e, nil
}

func (a *PageAdapter) BuildPayload(e source.Entity) (target.Payload, error) {
	if e.NaturalKey == "" {
		return target.Payload{}, fmt.Errorf("page %s has no handle", e.ExternalID)
	}
	return payloadFromEntity(e), nil
}
