package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/opine-io/opine-client/internal/http"
	"github.com/opine-io/opine-client/pkg/opine"
)

// SourcesClient implements opine.SourcesClient.
type SourcesClient struct {
	httpClient *http.Client
}

// NewSourcesClient creates a new sources client.
func NewSourcesClient(httpClient *http.Client) *SourcesClient {
	return &SourcesClient{httpClient: httpClient}
}

type sourceResponse struct {
	Source opine.Source `json:"source"`
}

type sourcesResponse struct {
	Sources []opine.Source `json:"sources"`
}

// Create implements opine.SourcesClient.Create.
func (c *SourcesClient) Create(ctx context.Context, owner, name string, request *opine.SourceCreateRequest) (*opine.Source, error) {
	path := fmt.Sprintf("%s/sources/%s/%s", apiBase, owner, name)

	resp, err := c.httpClient.Put(ctx, path, map[string]interface{}{"source": request})
	if err != nil {
		return nil, fmt.Errorf("creating source: %w", err)
	}

	result, err := opine.Decode[sourceResponse](resp.Body, resp.StatusCode)
	if err != nil {
		return nil, fmt.Errorf("creating source %s/%s: %w", owner, name, err)
	}

	return &result.Source, nil
}

// Get implements opine.SourcesClient.Get.
func (c *SourcesClient) Get(ctx context.Context, identifier opine.Identifier) (*opine.Source, error) {
	resp, err := c.httpClient.Get(ctx, sourcePath(identifier), nil)
	if err != nil {
		return nil, fmt.Errorf("getting source: %w", err)
	}

	result, err := opine.Decode[sourceResponse](resp.Body, resp.StatusCode)
	if err != nil {
		return nil, fmt.Errorf("getting source %s: %w", identifier, err)
	}

	return &result.Source, nil
}

// List implements opine.SourcesClient.List.
func (c *SourcesClient) List(ctx context.Context, params *opine.QueryParams) ([]opine.Source, error) {
	var query url.Values
	if params != nil {
		query = params.ToValues()
	}

	resp, err := c.httpClient.Get(ctx, apiBase+"/sources", query)
	if err != nil {
		return nil, fmt.Errorf("listing sources: %w", err)
	}

	result, err := opine.Decode[sourcesResponse](resp.Body, resp.StatusCode)
	if err != nil {
		return nil, fmt.Errorf("listing sources: %w", err)
	}

	return result.Sources, nil
}

// Update implements opine.SourcesClient.Update.
func (c *SourcesClient) Update(ctx context.Context, identifier opine.Identifier, request *opine.SourceUpdateRequest) (*opine.Source, error) {
	resp, err := c.httpClient.Post(ctx, sourcePath(identifier), map[string]interface{}{"source": request})
	if err != nil {
		return nil, fmt.Errorf("updating source: %w", err)
	}

	result, err := opine.Decode[sourceResponse](resp.Body, resp.StatusCode)
	if err != nil {
		return nil, fmt.Errorf("updating source %s: %w", identifier, err)
	}

	return &result.Source, nil
}

// Delete implements opine.SourcesClient.Delete.
func (c *SourcesClient) Delete(ctx context.Context, identifier opine.Identifier) error {
	resp, err := c.httpClient.Delete(ctx, sourcePath(identifier))
	if err != nil {
		return fmt.Errorf("deleting source: %w", err)
	}

	err = opine.DecodeEmpty(resp.Body, resp.StatusCode)
	if err != nil {
		return fmt.Errorf("deleting source %s: %w", identifier, err)
	}

	return nil
}
