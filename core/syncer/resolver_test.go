package syncer

import (
	"context"
	"errors"
	"testing"

	"catalog-sync/core/mapping"
	"catalog-sync/core/source"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolverFixture(t *testing.T, policy string) *Resolver {
	t.Helper()
	files := mapping.NewMemStore(source.KindFile)
	require.NoError(t, files.Upsert(context.Background(), mapping.Record{
		ExternalID: "F1", TargetID: "TF1", NaturalKey: "a.png", Fingerprint: "h",
	}))
	return NewResolver(map[source.Kind]mapping.Store{source.KindFile: files}, policy)
}

func TestResolver_Resolve(t *testing.T) {
	r := resolverFixture(t, PolicyDropUnresolved)
	ctx := context.Background()

	id, err := r.Resolve(ctx, source.KindFile, "hero", "F1")
	require.NoError(t, err)
	assert.Equal(t, "TF1", id)

	_, err = r.Resolve(ctx, source.KindFile, "hero", "F404")
	var missing *MissingReferenceError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "F404", missing.ExternalID)
	assert.Equal(t, source.KindFile, missing.Kind)

	_, err = r.Resolve(ctx, source.KindPrice, "product", "P1")
	require.Error(t, err)
	var notMissing *MissingReferenceError
	assert.False(t, errors.As(err, &notMissing), "unregistered kind is a configuration error, not a missing reference")
}

func TestResolver_RewriteSingleReference(t *testing.T) {
	r := resolverFixture(t, PolicyDropUnresolved)
	e := source.Entity{
		NaturalKey: "about",
		Fields: []source.Field{
			{Key: "hero", Type: source.FieldReference, Value: "F1", RefKind: source.KindFile},
			{Key: "title", Type: source.FieldText, Value: "About"},
		},
	}

	out, dropped, err := r.Rewrite(context.Background(), e)
	require.NoError(t, err)
	assert.Empty(t, dropped)
	assert.Equal(t, "TF1", out.Field("hero").Value)
	// The input entity is untouched.
	assert.Equal(t, "F1", e.Field("hero").Value)
}

func TestResolver_RewriteEmptyReferenceIsNotAnError(t *testing.T) {
	r := resolverFixture(t, PolicyDropUnresolved)
	e := source.Entity{
		Fields: []source.Field{
			{Key: "hero", Type: source.FieldReference, Value: "", RefKind: source.KindFile},
		},
	}

	_, _, err := r.Rewrite(context.Background(), e)
	assert.NoError(t, err)
}

func TestResolver_RewriteListPolicies(t *testing.T) {
	e := source.Entity{
		Fields: []source.Field{
			{Key: "gallery", Type: source.FieldReferenceList, Value: []string{"F1", "F404"}, RefKind: source.KindFile},
		},
	}

	t.Run("drop", func(t *testing.T) {
		r := resolverFixture(t, PolicyDropUnresolved)
		out, dropped, err := r.Rewrite(context.Background(), e)
		require.NoError(t, err)
		assert.Equal(t, []string{"TF1"}, out.Field("gallery").Value)
		assert.Equal(t, []string{"gallery=F404"}, dropped)
	})

	t.Run("fail", func(t *testing.T) {
		r := resolverFixture(t, PolicyFailEntity)
		_, _, err := r.Rewrite(context.Background(), e)
		var missing *MissingReferenceError
		assert.ErrorAs(t, err, &missing)
	})
}
