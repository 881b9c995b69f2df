package catalog

import (
	"context"

	"catalog-sync/core/source"
	"catalog-sync/core/target"
)

// convertFunc turns one raw source record into a typed entity.
type convertFunc func(ctx context.Context, rec source.Record) (source.Entity, error)

// fetchEntities pulls one page of records for a resource and converts
// them. Conversion failures abort the page; enumeration failures arrive
// already wrapped as *source.FetchError by the client.
func fetchEntities(ctx context.Context, client source.Client, resource, cursor string, limit int, convert convertFunc) ([]source.Entity, string, error) {
	page, err := client.List(ctx, resource, cursor, limit)
	if err != nil {
		return nil, "", err
	}

	entities := make([]source.Entity, 0, len(page.Records))
	for _, rec := range page.Records {
		e, err := convert(ctx, rec)
		if err != nil {
			return nil, "", err
		}
		entities = append(entities, e)
	}
	return entities, page.NextCursor, nil
}

// payloadFromEntity maps an entity's fields one-to-one into a mutation
// payload. Reference fields are expected to already carry target ids.
func payloadFromEntity(e source.Entity) target.Payload {
	fields := make(map[string]any, len(e.Fields))
	for _, f := range e.Fields {
		fields[f.Key] = f.Value
	}
	return target.Payload{
		NaturalKey: e.NaturalKey,
		Fields:     fields,
	}
}
