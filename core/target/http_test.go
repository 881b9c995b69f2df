package target

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"catalog-sync/core/source"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClient_LookupByNaturalKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin/file/lookup", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("X-Access-Token"))
		if r.URL.Query().Get("key") == "images/chair.png" {
			w.Write([]byte(`{"id":"T1"}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, Token: "secret"})

	id, err := client.LookupByNaturalKey(context.Background(), source.KindFile, "images/chair.png")
	require.NoError(t, err)
	assert.Equal(t, "T1", id)

	id, err = client.LookupByNaturalKey(context.Background(), source.KindFile, "missing.png")
	require.NoError(t, err)
	assert.Empty(t, id)
}

func TestHTTPClient_ThrottleParsing(t *testing.T) {
	t.Run("with budget detail", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"available":3,"restore_rate":50}`))
		}))
		defer srv.Close()

		client := NewClient(Config{BaseURL: srv.URL})
		_, err := client.Create(context.Background(), source.KindFile, Payload{})

		var throttled *ThrottledError
		require.ErrorAs(t, err, &throttled)
		assert.Equal(t, 3.0, throttled.Available)
		assert.Equal(t, 50.0, throttled.RestoreRate)
	})

	t.Run("without budget detail", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer srv.Close()

		client := NewClient(Config{BaseURL: srv.URL})
		_, err := client.Create(context.Background(), source.KindFile, Payload{})
		assert.ErrorIs(t, err, ErrThrottled)
	})
}

func TestHTTPClient_MutationResults(t *testing.T) {
	t.Run("create success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/admin/page", r.URL.Path)
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"id":"T9","user_errors":[]}`))
		}))
		defer srv.Close()

		client := NewClient(Config{BaseURL: srv.URL})
		res, err := client.Create(context.Background(), source.KindPage, Payload{NaturalKey: "about"})
		require.NoError(t, err)
		assert.Equal(t, "T9", res.TargetID)
		assert.Empty(t, res.UserErrors)
	})

	t.Run("validation errors", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(`{"id":"","user_errors":[{"field":"title","message":"can't be blank"}]}`))
		}))
		defer srv.Close()

		client := NewClient(Config{BaseURL: srv.URL})
		res, err := client.Create(context.Background(), source.KindPage, Payload{})
		require.NoError(t, err)
		require.Len(t, res.UserErrors, 1)
		assert.Equal(t, "title", res.UserErrors[0].Field)
	})

	t.Run("server error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		client := NewClient(Config{BaseURL: srv.URL})
		_, err := client.Create(context.Background(), source.KindPage, Payload{})
		var transport *TransportError
		require.ErrorAs(t, err, &transport)
		assert.Equal(t, http.StatusBadGateway, transport.StatusCode)
	})
}

func TestHTTPClient_Delete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		if r.URL.Path == "/admin/redirect/T1" {
			w.Write([]byte(`{}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL})

	deleted, err := client.Delete(context.Background(), source.KindRedirect, "T1")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = client.Delete(context.Background(), source.KindRedirect, "T2")
	require.NoError(t, err)
	assert.False(t, deleted)
}
