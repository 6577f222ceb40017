package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/opine-io/opine-client/internal/http"
	"github.com/opine-io/opine-client/pkg/opine"
)

// DatasetsClient implements opine.DatasetsClient.
type DatasetsClient struct {
	httpClient *http.Client
}

// NewDatasetsClient creates a new datasets client.
func NewDatasetsClient(httpClient *http.Client) *DatasetsClient {
	return &DatasetsClient{httpClient: httpClient}
}

type datasetResponse struct {
	Dataset opine.Dataset `json:"dataset"`
}

type datasetsResponse struct {
	Datasets []opine.Dataset `json:"datasets"`
}

type statisticsResponse struct {
	Statistics opine.ValidationStatistics `json:"statistics"`
}

// Create implements opine.DatasetsClient.Create.
func (c *DatasetsClient) Create(ctx context.Context, owner, name string, request *opine.DatasetCreateRequest) (*opine.Dataset, error) {
	path := fmt.Sprintf("%s/datasets/%s/%s", apiBase, owner, name)

	resp, err := c.httpClient.Put(ctx, path, map[string]interface{}{"dataset": request})
	if err != nil {
		return nil, fmt.Errorf("creating dataset: %w", err)
	}

	result, err := opine.Decode[datasetResponse](resp.Body, resp.StatusCode)
	if err != nil {
		return nil, fmt.Errorf("creating dataset %s/%s: %w", owner, name, err)
	}

	return &result.Dataset, nil
}

// Get implements opine.DatasetsClient.Get.
func (c *DatasetsClient) Get(ctx context.Context, identifier opine.Identifier) (*opine.Dataset, error) {
	resp, err := c.httpClient.Get(ctx, datasetPath(identifier), nil)
	if err != nil {
		return nil, fmt.Errorf("getting dataset: %w", err)
	}

	result, err := opine.Decode[datasetResponse](resp.Body, resp.StatusCode)
	if err != nil {
		return nil, fmt.Errorf("getting dataset %s: %w", identifier, err)
	}

	return &result.Dataset, nil
}

// List implements opine.DatasetsClient.List.
func (c *DatasetsClient) List(ctx context.Context, params *opine.QueryParams) ([]opine.Dataset, error) {
	var query url.Values
	if params != nil {
		query = params.ToValues()
	}

	resp, err := c.httpClient.Get(ctx, apiBase+"/datasets", query)
	if err != nil {
		return nil, fmt.Errorf("listing datasets: %w", err)
	}

	result, err := opine.Decode[datasetsResponse](resp.Body, resp.StatusCode)
	if err != nil {
		return nil, fmt.Errorf("listing datasets: %w", err)
	}

	return result.Datasets, nil
}

// Update implements opine.DatasetsClient.Update.
func (c *DatasetsClient) Update(ctx context.Context, identifier opine.Identifier, request *opine.DatasetUpdateRequest) (*opine.Dataset, error) {
	resp, err := c.httpClient.Post(ctx, datasetPath(identifier), map[string]interface{}{"dataset": request})
	if err != nil {
		return nil, fmt.Errorf("updating dataset: %w", err)
	}

	result, err := opine.Decode[datasetResponse](resp.Body, resp.StatusCode)
	if err != nil {
		return nil, fmt.Errorf("updating dataset %s: %w", identifier, err)
	}

	return &result.Dataset, nil
}

// Delete implements opine.DatasetsClient.Delete.
func (c *DatasetsClient) Delete(ctx context.Context, identifier opine.Identifier) error {
	resp, err := c.httpClient.Delete(ctx, datasetPath(identifier))
	if err != nil {
		return fmt.Errorf("deleting dataset: %w", err)
	}

	err = opine.DecodeEmpty(resp.Body, resp.StatusCode)
	if err != nil {
		return fmt.Errorf("deleting dataset %s: %w", identifier, err)
	}

	return nil
}

// Statistics implements opine.DatasetsClient.Statistics.
func (c *DatasetsClient) Statistics(ctx context.Context, identifier opine.Identifier) (*opine.ValidationStatistics, error) {
	resp, err := c.httpClient.Get(ctx, datasetPath(identifier)+"/statistics", nil)
	if err != nil {
		return nil, fmt.Errorf("getting dataset statistics: %w", err)
	}

	result, err := opine.Decode[statisticsResponse](resp.Body, resp.StatusCode)
	if err != nil {
		return nil, fmt.Errorf("getting statistics for dataset %s: %w", identifier, err)
	}

	return &result.Statistics, nil
}
