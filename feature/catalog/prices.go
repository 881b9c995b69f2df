package catalog

import (
	"context"
	"fmt"

	"catalog-sync/core/source"
	"catalog-sync/core/target"
	"catalog-sync/core/utils"
)

// PriceAdapter syncs per-SKU price records.
type PriceAdapter struct {
	client source.Client
}

// NewPriceAdapter creates the adapter for the "prices" export resource.
func NewPriceAdapter(client source.Client) *PriceAdapter {
	return &PriceAdapter{client: client}
}

func (a *PriceAdapter) Kind() source.Kind { return source.KindPrice }

func (a *PriceAdapter) DependsOn() []source.Kind {
	return []source.Kind{source.KindObject}
}

func (a *PriceAdapter) FetchPage(ctx context.Context, cursor string, limit int) ([]source.Entity, string, error) {
	return fetchEntities(ctx, a.client, "prices", cursor, limit, a.convert)
}

func (a *PriceAdapter) convert(_ context.Context, rec source.Record) (source.Entity, error) {
	e := source.Entity{
		Kind:       source.KindPrice,
		ExternalID: utils.ToString(rec["id"]),
		NaturalKey: utils.ToString(rec["sku"]),
		Fields: []source.Field{
			{Key: "sku", Type: source.FieldText, Value: utils.ToString(rec["sku"])},
			{Key: "currency", Type: source.FieldText, Value: utils.ToString(rec["currency"])},
			{Key: "amount", Type: source.FieldNumber, Value: utils.ToFloat(rec["amount"])},
			{Key: "compare_at", Type: source.FieldNumber, Value: utils.ToFloat(rec["compare_at"])},
		},
	}

	if product := utils.ToString(rec["product_id"]); product != "" {
		e.SetField(source.Field{Key: "product", Type: source.FieldReference, Value: product, RefKind: source.KindObject})
	}

	return e, nil
}

func (a *PriceAdapter) BuildPayload(e source.Entity) (target.Payload, error) {
	if e.NaturalKey == "" {
		return target.Payload{}, fmt.Errorf("price %s has no sku", e.ExternalID)
	}
	if amount := e.Field("amount"); amount != nil && utils.ToFloat(amount.Value) < 0 {
		return target.Payload{}, fmt.Errorf("price %s has negative amount", e.ExternalID)
	}
	if cur := e.Field("currency"); cur == nil || len(utils.ToString(cur.Value)) != 3 {
		return target.Payload{}, fmt.Errorf("price %s has invalid currency code", e.ExternalID)
	}
	return payloadFromEntity(e), nil
}
