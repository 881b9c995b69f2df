package catalog

import (
	"context"
	"fmt"
	"strings"

	"catalog-sync/core/source"
	"catalog-sync/core/target"
	"catalog-sync/core/utils"
)

// RedirectAdapter syncs path-to-path redirect rules.
type RedirectAdapter struct {
	client source.Client
}

// NewRedirectAdapter creates the adapter for the "redirects" export resource.
func NewRedirectAdapter(client source.Client) *RedirectAdapter {
	return &RedirectAdapter{client: client}
}

func (a *RedirectAdapter) Kind() source.Kind { return source.KindRedirect }

func (a *RedirectAdapter) DependsOn() []source.Kind { return nil }

func (a *RedirectAdapter) FetchPage(ctx context.Context, cursor string, limit int) ([]source.Entity, string, error) {
	return fetchEntities(ctx, a.client, "redirects", cursor, limit, a.convert)
}

func (a *RedirectAdapter) convert(_ context.Context, rec source.Record) (source.Entity, error) {
	path := utils.ToString(rec["path"])
	return source.Entity{
		Kind:       source.KindRedirect,
		ExternalID: utils.ToString(rec["id"]),
		NaturalKey: path,
		Fields: []source.Field{
			{Key: "path", Type: source.FieldText, Value: path},
			{Key: "target", Type: source.FieldText, Value: utils.ToString(rec["target"])},
		},
	}, nil
}

func (a *RedirectAdapter) BuildPayload(e source.Entity) (target.Payload, error) {
	if !strings.HasPrefix(e.NaturalKey, "/") {
		return target.Payload{}, fmt.Errorf("redirect %s path %q must start with /", e.ExternalID, e.NaturalKey)
	}
	tgt := e.Field("target")
	if tgt == nil || utils.ToString(tgt.Value) == "" {
		return target.Payload{}, fmt.Errorf("redirect %s has no target", e.ExternalID)
	}
	return payloadFromEntity(e), nil
}
