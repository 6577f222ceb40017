package client_test

import (
	"context"
	nethttp "net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opine-io/opine-client/internal/client"
	"github.com/opine-io/opine-client/pkg/opine"
)

func TestResolverIDShortCircuits(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		requests.Add(1)
		w.WriteHeader(nethttp.StatusOK)
		_, _ = w.Write([]byte(`{"status": "ok", "source": {"id": "abc123"}}`))
	}))
	defer server.Close()

	c := client.NewTestClient(server.URL)

	id, err := c.Resolver().ResolveSourceID(context.Background(), opine.IdentifierFromID("abc123"))
	require.NoError(t, err)
	assert.Equal(t, "abc123", id)
	assert.Equal(t, int32(0), requests.Load())
}

func TestResolverFullNameLooksUpOnce(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		requests.Add(1)
		assert.Equal(t, "/api/v1/sources/acme/reviews", r.URL.Path)
		w.WriteHeader(nethttp.StatusOK)
		_, _ = w.Write([]byte(`{"status": "ok", "source": {"id": "abc123", "owner": "acme", "name": "reviews"}}`))
	}))
	defer server.Close()

	c := client.NewTestClient(server.URL)
	identifier := opine.IdentifierFromFullName("acme", "reviews")

	id, err := c.Resolver().ResolveSourceID(context.Background(), identifier)
	require.NoError(t, err)
	assert.Equal(t, "abc123", id)
	assert.Equal(t, int32(1), requests.Load())
}

func TestResolverCachesResolution(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		requests.Add(1)
		w.WriteHeader(nethttp.StatusOK)
		_, _ = w.Write([]byte(`{"status": "ok", "dataset": {"id": "def456", "owner": "acme", "name": "triage"}}`))
	}))
	defer server.Close()

	c := client.NewTestClient(server.URL)
	identifier := opine.IdentifierFromFullName("acme", "triage")

	id, err := c.Resolver().ResolveDatasetID(context.Background(), identifier)
	require.NoError(t, err)
	assert.Equal(t, "def456", id)

	id, err = c.Resolver().ResolveDatasetID(context.Background(), identifier)
	require.NoError(t, err)
	assert.Equal(t, "def456", id)

	assert.Equal(t, int32(1), requests.Load())
}

func TestResolverNotFound(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.WriteHeader(nethttp.StatusNotFound)
		_, _ = w.Write([]byte(`{"status": "error", "message": "no such bucket"}`))
	}))
	defer server.Close()

	c := client.NewTestClient(server.URL)
	identifier := opine.IdentifierFromFullName("acme", "missing")

	_, err := c.Resolver().ResolveBucketID(context.Background(), identifier)
	require.Error(t, err)

	var notFound *opine.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, opine.KindBucket, notFound.Kind)
	assert.Equal(t, "acme/missing", notFound.Identifier.String())
	assert.True(t, opine.IsNotFound(err))
}

func TestResolverResolveSourceReturnsResource(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.WriteHeader(nethttp.StatusOK)
		_, _ = w.Write([]byte(`{"status": "ok", "source": {"id": "abc123", "owner": "acme", "name": "reviews", "title": "Reviews"}}`))
	}))
	defer server.Close()

	c := client.NewTestClient(server.URL)

	source, err := c.Resolver().ResolveSource(context.Background(), opine.IdentifierFromFullName("acme", "reviews"))
	require.NoError(t, err)
	assert.Equal(t, "Reviews", source.Title)
}

func TestResolverOtherErrorsPassThrough(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.WriteHeader(nethttp.StatusForbidden)
		_, _ = w.Write([]byte(`{"status": "error", "message": "permission denied"}`))
	}))
	defer server.Close()

	c := client.NewTestClient(server.URL)

	_, err := c.Resolver().ResolveSourceID(context.Background(), opine.IdentifierFromFullName("acme", "reviews"))
	require.Error(t, err)

	var notFound *opine.NotFoundError
	assert.False(t, opine.IsNotFound(err))
	assert.NotErrorAs(t, err, &notFound)

	var apiErr *opine.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, nethttp.StatusForbidden, apiErr.StatusCode)
}
