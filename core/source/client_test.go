package source_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"catalog-sync/core/source"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_List(t *testing.T) {
	t.Run("PageWithCursor", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/export/objects", r.URL.Path)
			assert.Equal(t, "c1", r.URL.Query().Get("cursor"))
			assert.Equal(t, "50", r.URL.Query().Get("limit"))
			assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"records":[{"id":"O1","handle":"chair"}],"next_cursor":"c2"}`))
		}))
		defer srv.Close()

		client := source.NewClient(source.Config{BaseURL: srv.URL, Token: "tok"})
		page, err := client.List(context.Background(), "objects", "c1", 50)
		require.NoError(t, err)
		require.Len(t, page.Records, 1)
		assert.Equal(t, "O1", page.Records[0]["id"])
		assert.Equal(t, "c2", page.NextCursor)
	})

	t.Run("LastPage", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Empty(t, r.URL.Query().Get("cursor"))
			w.Write([]byte(`{"records":[]}`))
		}))
		defer srv.Close()

		client := source.NewClient(source.Config{BaseURL: srv.URL})
		page, err := client.List(context.Background(), "files", "", 0)
		require.NoError(t, err)
		assert.Empty(t, page.Records)
		assert.Empty(t, page.NextCursor)
	})

	t.Run("ServerErrorWrapsFetchError", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusBadGateway)
		}))
		defer srv.Close()

		client := source.NewClient(source.Config{BaseURL: srv.URL})
		_, err := client.List(context.Background(), "prices", "", 10)

		var fetchErr *source.FetchError
		require.ErrorAs(t, err, &fetchErr)
		assert.Equal(t, "prices", fetchErr.Resource)
		assert.Contains(t, fetchErr.Error(), "502")
	})

	t.Run("BadJSON", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json`))
		}))
		defer srv.Close()

		client := source.NewClient(source.Config{BaseURL: srv.URL})
		_, err := client.List(context.Background(), "pages", "", 10)

		var fetchErr *source.FetchError
		assert.ErrorAs(t, err, &fetchErr)
	})
}
