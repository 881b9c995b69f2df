package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"sync"
	"testing"

	"catalog-sync/core/mapping"
	"catalog-sync/core/source"
	"catalog-sync/core/syncer"
	"catalog-sync/core/target"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeTarget is an in-memory target platform.
type fakeTarget struct {
	mu     sync.Mutex
	nextID int
	byKey  map[string]string
}

func newFakeTarget() *fakeTarget {
	return &fakeTarget{byKey: map[string]string{}}
}

func (f *fakeTarget) LookupByNaturalKey(_ context.Context, kind source.Kind, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.byKey[string(kind)+"/"+key], nil
}

func (f *fakeTarget) EnumerateIDs(context.Context, source.Kind, string) (*target.IDPage, error) {
	return &target.IDPage{}, nil
}

func (f *fakeTarget) Create(_ context.Context, kind source.Kind, payload target.Payload) (*target.MutationResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	id := fmt.Sprintf("T%d", f.nextID)
	f.byKey[string(kind)+"/"+payload.NaturalKey] = id
	return &target.MutationResult{TargetID: id}, nil
}

func (f *fakeTarget) Update(_ context.Context, _ source.Kind, targetID string, _ target.Payload) (*target.MutationResult, error) {
	return &target.MutationResult{TargetID: targetID}, nil
}

func (f *fakeTarget) Delete(context.Context, source.Kind, string) (bool, error) {
	return true, nil
}

func newTestFeature(t *testing.T) *Feature {
	t.Helper()

	src := &fakeSource{pages: map[string][]source.Record{
		"files": {
			{"id": "F1", "path": "a.png", "alt": "A"},
			{"id": "F2", "path": "b.png", "alt": "B"},
		},
		"redirects": {
			{"id": "R1", "path": "/old", "target": "/new"},
		},
	}}

	adapters := []syncer.Adapter{
		NewFileAdapter(src, nil, "", zap.NewNop()),
		NewRedirectAdapter(src),
	}
	stores := map[source.Kind]mapping.Store{
		source.KindFile:     mapping.NewMemStore(source.KindFile),
		source.KindRedirect: mapping.NewMemStore(source.KindRedirect),
	}

	engine, err := syncer.NewEngine(adapters, stores, newFakeTarget(), syncer.Config{}, zap.NewNop())
	require.NoError(t, err)

	return NewFeature(engine, zap.NewNop())
}

func TestHandleSyncAll(t *testing.T) {
	app := fiber.New()
	feature := newTestFeature(t)
	require.NoError(t, feature.Load(app))

	resp, err := app.Test(httptest.NewRequest("POST", "/sync", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var summary syncer.RunSummary
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&summary))
	assert.NotEmpty(t, summary.RunID)
	require.Len(t, summary.Kinds, 2)

	total := 0
	for _, k := range summary.Kinds {
		total += k.Created
	}
	assert.Equal(t, 3, total)
}

func TestHandleSyncKind(t *testing.T) {
	app := fiber.New()
	feature := newTestFeature(t)
	require.NoError(t, feature.Load(app))

	t.Run("Known", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("POST", "/sync/file?limit=1", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var summary syncer.RunSummary
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&summary))
		require.Len(t, summary.Kinds, 1)
		assert.Equal(t, "file", summary.Kinds[0].Kind)
		assert.Equal(t, 1, summary.Kinds[0].Created)
	})

	t.Run("UnknownKind", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("POST", "/sync/bogus", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("ValidKindWithoutAdapter", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("POST", "/sync/price", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}
