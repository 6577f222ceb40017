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

func TestDatasetsCreate(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, nethttp.MethodPut, r.Method)
		assert.Equal(t, "/api/v1/datasets/acme/triage", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.JSONEq(t, `{
			"dataset": {
				"title": "Triage",
				"source_ids": ["abc123"],
				"label_defs": [{"name": "urgent"}]
			}
		}`, string(body))

		w.WriteHeader(nethttp.StatusOK)
		_, _ = w.Write([]byte(`{
			"status": "ok",
			"dataset": {"id": "def456", "owner": "acme", "name": "triage", "title": "Triage"}
		}`))
	}))
	defer server.Close()

	c := client.NewTestClient(server.URL)

	dataset, err := c.Datasets().Create(context.Background(), "acme", "triage", &opine.DatasetCreateRequest{
		Title:     "Triage",
		SourceIDs: []string{"abc123"},
		LabelDefs: []opine.LabelDef{{Name: "urgent"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "def456", dataset.ID)
}

func TestDatasetsGet(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, "/api/v1/datasets/id:def456", r.URL.Path)

		w.WriteHeader(nethttp.StatusOK)
		_, _ = w.Write([]byte(`{"status": "ok", "dataset": {"id": "def456", "owner": "acme", "name": "triage"}}`))
	}))
	defer server.Close()

	c := client.NewTestClient(server.URL)

	dataset, err := c.Datasets().Get(context.Background(), opine.IdentifierFromID("def456"))
	require.NoError(t, err)
	assert.Equal(t, "triage", dataset.Name)
}

func TestDatasetsUpdate(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, nethttp.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/datasets/acme/triage", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.JSONEq(t, `{"dataset": {"description": "support triage queue"}}`, string(body))

		w.WriteHeader(nethttp.StatusOK)
		_, _ = w.Write([]byte(`{
			"status": "ok",
			"dataset": {"id": "def456", "owner": "acme", "name": "triage", "description": "support triage queue"}
		}`))
	}))
	defer server.Close()

	c := client.NewTestClient(server.URL)

	description := "support triage queue"
	identifier := opine.IdentifierFromFullName("acme", "triage")

	dataset, err := c.Datasets().Update(context.Background(), identifier, &opine.DatasetUpdateRequest{
		Description: &description,
	})
	require.NoError(t, err)
	assert.Equal(t, "support triage queue", dataset.Description)
}

func TestDatasetsStatistics(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, nethttp.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/datasets/acme/triage/statistics", r.URL.Path)

		w.WriteHeader(nethttp.StatusOK)
		_, _ = w.Write([]byte(`{
			"status": "ok",
			"statistics": {
				"num_labelled": 1200,
				"num_reviewed": 450,
				"mean_average_precision": 0.8731,
				"updated_at": "2026-02-10T08:00:00Z"
			}
		}`))
	}))
	defer server.Close()

	c := client.NewTestClient(server.URL)

	stats, err := c.Datasets().Statistics(context.Background(), opine.IdentifierFromFullName("acme", "triage"))
	require.NoError(t, err)

	assert.Equal(t, 1200, stats.NumLabelled)
	assert.Equal(t, 450, stats.NumReviewed)
	assert.InDelta(t, 0.8731, stats.MeanAveragePrecision, 0.0001)
}

func TestDatasetsDelete(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, nethttp.MethodDelete, r.Method)
		assert.Equal(t, "/api/v1/datasets/id:def456", r.URL.Path)

		w.WriteHeader(nethttp.StatusOK)
		_, _ = w.Write([]byte(`{"status": "ok"}`))
	}))
	defer server.Close()

	c := client.NewTestClient(server.URL)

	err := c.Datasets().Delete(context.Background(), opine.IdentifierFromID("def456"))
	require.NoError(t, err)
}
