package client_test

import (
	"context"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opine-io/opine-client/internal/client"
	"github.com/opine-io/opine-client/pkg/opine"
)

func TestSourcesCreate(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, nethttp.MethodPut, r.Method)
		assert.Equal(t, "/api/v1/sources/acme/reviews", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.JSONEq(t, `{"source": {"title": "Reviews", "language": "en", "should_translate": true}}`, string(body))

		w.WriteHeader(nethttp.StatusOK)
		_, _ = w.Write([]byte(`{
			"status": "ok",
			"source": {"id": "abc123", "owner": "acme", "name": "reviews", "title": "Reviews", "language": "en", "should_translate": true}
		}`))
	}))
	defer server.Close()

	c := client.NewTestClient(server.URL)

	translate := true

	source, err := c.Sources().Create(context.Background(), "acme", "reviews", &opine.SourceCreateRequest{
		Title:           "Reviews",
		Language:        "en",
		ShouldTranslate: &translate,
	})
	require.NoError(t, err)

	assert.Equal(t, "abc123", source.ID)
	assert.Equal(t, "acme/reviews", source.FullName())
	assert.True(t, source.ShouldTranslate)
}

func TestSourcesGetByFullName(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, nethttp.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/sources/acme/reviews", r.URL.Path)

		w.WriteHeader(nethttp.StatusOK)
		_, _ = w.Write([]byte(`{"status": "ok", "source": {"id": "abc123", "owner": "acme", "name": "reviews"}}`))
	}))
	defer server.Close()

	c := client.NewTestClient(server.URL)

	identifier, err := opine.ParseIdentifier(opine.KindSource, "acme/reviews")
	require.NoError(t, err)

	source, err := c.Sources().Get(context.Background(), identifier)
	require.NoError(t, err)
	assert.Equal(t, "abc123", source.ID)
}

func TestSourcesGetByID(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, "/api/v1/sources/id:abc123", r.URL.Path)

		w.WriteHeader(nethttp.StatusOK)
		_, _ = w.Write([]byte(`{"status": "ok", "source": {"id": "abc123", "owner": "acme", "name": "reviews"}}`))
	}))
	defer server.Close()

	c := client.NewTestClient(server.URL)

	source, err := c.Sources().Get(context.Background(), opine.IdentifierFromID("abc123"))
	require.NoError(t, err)
	assert.Equal(t, "reviews", source.Name)
}

func TestSourcesList(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, nethttp.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/sources", r.URL.Path)
		assert.Equal(t, "10", r.URL.Query().Get("limit"))

		w.WriteHeader(nethttp.StatusOK)
		_, _ = w.Write([]byte(`{
			"status": "ok",
			"sources": [
				{"id": "abc123", "owner": "acme", "name": "reviews"},
				{"id": "def456", "owner": "acme", "name": "tickets"}
			]
		}`))
	}))
	defer server.Close()

	c := client.NewTestClient(server.URL)

	sources, err := c.Sources().List(context.Background(), opine.NewQueryParams().WithLimit(10))
	require.NoError(t, err)
	require.Len(t, sources, 2)
	assert.Equal(t, "reviews", sources[0].Name)
	assert.Equal(t, "tickets", sources[1].Name)
}

func TestSourcesUpdate(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, nethttp.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/sources/acme/reviews", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.JSONEq(t, `{"source": {"title": "Renamed"}}`, string(body))

		w.WriteHeader(nethttp.StatusOK)
		_, _ = w.Write([]byte(`{"status": "ok", "source": {"id": "abc123", "owner": "acme", "name": "reviews", "title": "Renamed"}}`))
	}))
	defer server.Close()

	c := client.NewTestClient(server.URL)

	title := "Renamed"
	identifier := opine.IdentifierFromFullName("acme", "reviews")

	source, err := c.Sources().Update(context.Background(), identifier, &opine.SourceUpdateRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", source.Title)
}

func TestSourcesDelete(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, nethttp.MethodDelete, r.Method)
		assert.Equal(t, "/api/v1/sources/id:abc123", r.URL.Path)

		w.WriteHeader(nethttp.StatusOK)
		_, _ = w.Write([]byte(`{"status": "ok"}`))
	}))
	defer server.Close()

	c := client.NewTestClient(server.URL)

	err := c.Sources().Delete(context.Background(), opine.IdentifierFromID("abc123"))
	require.NoError(t, err)
}

func TestSourcesGetNotFound(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.WriteHeader(nethttp.StatusNotFound)
		_, _ = w.Write([]byte(`{"status": "error", "message": "no such source"}`))
	}))
	defer server.Close()

	c := client.NewTestClient(server.URL)

	_, err := c.Sources().Get(context.Background(), opine.IdentifierFromID("abc123"))
	require.Error(t, err)

	var apiErr *opine.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, nethttp.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "no such source", apiErr.Message)
	assert.True(t, opine.IsNotFound(err))
}
