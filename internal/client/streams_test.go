package client_test

import (
	"context"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opine-io/opine-client/internal/client"
	"github.com/opine-io/opine-client/pkg/opine"
)

func TestStreamsCreate(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, nethttp.MethodPut, r.Method)
		assert.Equal(t, "/api/v1/datasets/acme/triage/streams/inbox", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.JSONEq(t, `{"stream": {"name": "inbox", "title": "Inbox"}}`, string(body))

		w.WriteHeader(nethttp.StatusOK)
		_, _ = w.Write([]byte(`{"status": "ok", "stream": {"id": "st-1", "name": "inbox", "title": "Inbox"}}`))
	}))
	defer server.Close()

	c := client.NewTestClient(server.URL)
	dataset := opine.IdentifierFromFullName("acme", "triage")

	stream, err := c.Streams().Create(context.Background(), dataset, &opine.StreamCreateRequest{
		Name:  "inbox",
		Title: "Inbox",
	})
	require.NoError(t, err)
	assert.Equal(t, "st-1", stream.ID)
}

func TestStreamsList(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, "/api/v1/datasets/id:def456/streams", r.URL.Path)

		w.WriteHeader(nethttp.StatusOK)
		_, _ = w.Write([]byte(`{
			"status": "ok",
			"streams": [{"id": "st-1", "name": "inbox"}, {"id": "st-2", "name": "escalations"}]
		}`))
	}))
	defer server.Close()

	c := client.NewTestClient(server.URL)

	streams, err := c.Streams().List(context.Background(), opine.IdentifierFromID("def456"))
	require.NoError(t, err)
	require.Len(t, streams, 2)
	assert.Equal(t, "escalations", streams[1].Name)
}

func TestStreamsFetch(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, nethttp.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/datasets/acme/triage/streams/inbox/fetch", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.JSONEq(t, `{"size": 8, "continuation": "tok-1"}`, string(body))

		w.WriteHeader(nethttp.StatusOK)
		_, _ = w.Write([]byte(`{
			"status": "ok",
			"results": [
				{
					"comment": {"id": "cm-1", "messages": [{"body": "slow checkout"}]},
					"prediction": [{"name": ["issue", "performance"], "probability": 0.93}],
					"sequence": "41"
				}
			],
			"continuation": "tok-2",
			"filtered_here": 3
		}`))
	}))
	defer server.Close()

	c := client.NewTestClient(server.URL)
	dataset := opine.IdentifierFromFullName("acme", "triage")

	batch, err := c.Streams().Fetch(context.Background(), dataset, "inbox", 8, "tok-1")
	require.NoError(t, err)

	require.Len(t, batch.Results, 1)
	assert.Equal(t, "cm-1", batch.Results[0].Comment.ID)
	require.Len(t, batch.Results[0].Prediction, 1)
	assert.InDelta(t, 0.93, batch.Results[0].Prediction[0].Probability, 0.0001)
	assert.Equal(t, "tok-2", batch.Continuation)
	assert.Equal(t, 3, batch.FilteredHere)
}

func TestStreamsFetchOmitsEmptyContinuation(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.JSONEq(t, `{"size": 16}`, string(body))

		w.WriteHeader(nethttp.StatusOK)
		_, _ = w.Write([]byte(`{"status": "ok", "results": [], "continuation": "tok-1", "filtered_here": 0}`))
	}))
	defer server.Close()

	c := client.NewTestClient(server.URL)
	dataset := opine.IdentifierFromFullName("acme", "triage")

	batch, err := c.Streams().Fetch(context.Background(), dataset, "inbox", 16, "")
	require.NoError(t, err)
	assert.Empty(t, batch.Results)
}

func TestStreamsAdvance(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, nethttp.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/datasets/acme/triage/streams/inbox/advance", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.JSONEq(t, `{"continuation": "tok-2"}`, string(body))

		w.WriteHeader(nethttp.StatusOK)
		_, _ = w.Write([]byte(`{"status": "ok"}`))
	}))
	defer server.Close()

	c := client.NewTestClient(server.URL)
	dataset := opine.IdentifierFromFullName("acme", "triage")

	err := c.Streams().Advance(context.Background(), dataset, "inbox", "tok-2")
	require.NoError(t, err)
}

func TestStreamsReset(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, "/api/v1/datasets/acme/triage/streams/inbox/reset", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.JSONEq(t, `{"to_timestamp": "2026-03-01T12:30:00Z"}`, string(body))

		w.WriteHeader(nethttp.StatusOK)
		_, _ = w.Write([]byte(`{"status": "ok"}`))
	}))
	defer server.Close()

	c := client.NewTestClient(server.URL)
	dataset := opine.IdentifierFromFullName("acme", "triage")

	// Timestamps are normalized to UTC on the wire.
	at := time.Date(2026, 3, 1, 13, 30, 0, 0, time.FixedZone("CET", 3600))

	err := c.Streams().Reset(context.Background(), dataset, "inbox", at)
	require.NoError(t, err)
}

func TestStreamsDelete(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, nethttp.MethodDelete, r.Method)
		assert.Equal(t, "/api/v1/datasets/acme/triage/streams/inbox", r.URL.Path)

		w.WriteHeader(nethttp.StatusOK)
		_, _ = w.Write([]byte(`{"status": "ok"}`))
	}))
	defer server.Close()

	c := client.NewTestClient(server.URL)
	dataset := opine.IdentifierFromFullName("acme", "triage")

	err := c.Streams().Delete(context.Background(), dataset, "inbox")
	require.NoError(t, err)
}
