package client

import (
	"context"
	"fmt"
	"time"

	"github.com/opine-io/opine-client/internal/http"
	"github.com/opine-io/opine-client/pkg/opine"
)

// StreamsClient implements opine.StreamsClient.
type StreamsClient struct {
	httpClient *http.Client
}

// NewStreamsClient creates a new streams client.
func NewStreamsClient(httpClient *http.Client) *StreamsClient {
	return &StreamsClient{httpClient: httpClient}
}

type streamResponse struct {
	Stream opine.Stream `json:"stream"`
}

type streamsResponse struct {
	Streams []opine.Stream `json:"streams"`
}

func streamPath(dataset opine.Identifier, name string) string {
	return datasetPath(dataset) + "/streams/" + name
}

// Create implements opine.StreamsClient.Create.
func (c *StreamsClient) Create(ctx context.Context, dataset opine.Identifier, request *opine.StreamCreateRequest) (*opine.Stream, error) {
	resp, err := c.httpClient.Put(ctx, streamPath(dataset, request.Name), map[string]interface{}{"stream": request})
	if err != nil {
		return nil, fmt.Errorf("creating stream: %w", err)
	}

	result, err := opine.Decode[streamResponse](resp.Body, resp.StatusCode)
	if err != nil {
		return nil, fmt.Errorf("creating stream %s in dataset %s: %w", request.Name, dataset, err)
	}

	return &result.Stream, nil
}

// Get implements opine.StreamsClient.Get.
func (c *StreamsClient) Get(ctx context.Context, dataset opine.Identifier, name string) (*opine.Stream, error) {
	resp, err := c.httpClient.Get(ctx, streamPath(dataset, name), nil)
	if err != nil {
		return nil, fmt.Errorf("getting stream: %w", err)
	}

	result, err := opine.Decode[streamResponse](resp.Body, resp.StatusCode)
	if err != nil {
		return nil, fmt.Errorf("getting stream %s in dataset %s: %w", name, dataset, err)
	}

	return &result.Stream, nil
}

// List implements opine.StreamsClient.List.
func (c *StreamsClient) List(ctx context.Context, dataset opine.Identifier) ([]opine.Stream, error) {
	resp, err := c.httpClient.Get(ctx, datasetPath(dataset)+"/streams", nil)
	if err != nil {
		return nil, fmt.Errorf("listing streams: %w", err)
	}

	result, err := opine.Decode[streamsResponse](resp.Body, resp.StatusCode)
	if err != nil {
		return nil, fmt.Errorf("listing streams in dataset %s: %w", dataset, err)
	}

	return result.Streams, nil
}

// Delete implements opine.StreamsClient.Delete.
func (c *StreamsClient) Delete(ctx context.Context, dataset opine.Identifier, name string) error {
	resp, err := c.httpClient.Delete(ctx, streamPath(dataset, name))
	if err != nil {
		return fmt.Errorf("deleting stream: %w", err)
	}

	err = opine.DecodeEmpty(resp.Body, resp.StatusCode)
	if err != nil {
		return fmt.Errorf("deleting stream %s in dataset %s: %w", name, dataset, err)
	}

	return nil
}

// Fetch implements opine.StreamsClient.Fetch.
func (c *StreamsClient) Fetch(ctx context.Context, dataset opine.Identifier, name string, size int, continuation string) (*opine.StreamBatch, error) {
	body := map[string]interface{}{"size": size}
	if continuation != "" {
		body["continuation"] = continuation
	}

	resp, err := c.httpClient.Post(ctx, streamPath(dataset, name)+"/fetch", body)
	if err != nil {
		return nil, fmt.Errorf("fetching from stream: %w", err)
	}

	result, err := opine.Decode[opine.StreamBatch](resp.Body, resp.StatusCode)
	if err != nil {
		return nil, fmt.Errorf("fetching from stream %s in dataset %s: %w", name, dataset, err)
	}

	return result, nil
}

// Advance implements opine.StreamsClient.Advance.
func (c *StreamsClient) Advance(ctx context.Context, dataset opine.Identifier, name string, continuation string) error {
	body := map[string]interface{}{"continuation": continuation}

	resp, err := c.httpClient.Post(ctx, streamPath(dataset, name)+"/advance", body)
	if err != nil {
		return fmt.Errorf("advancing stream: %w", err)
	}

	err = opine.DecodeEmpty(resp.Body, resp.StatusCode)
	if err != nil {
		return fmt.Errorf("advancing stream %s in dataset %s: %w", name, dataset, err)
	}

	return nil
}

// Reset implements opine.StreamsClient.Reset.
func (c *StreamsClient) Reset(ctx context.Context, dataset opine.Identifier, name string, to time.Time) error {
	body := map[string]interface{}{"to_timestamp": to.UTC().Format(time.RFC3339)}

	resp, err := c.httpClient.Post(ctx, streamPath(dataset, name)+"/reset", body)
	if err != nil {
		return fmt.Errorf("resetting stream: %w", err)
	}

	err = opine.DecodeEmpty(resp.Body, resp.StatusCode)
	if err != nil {
		return fmt.Errorf("resetting stream %s in dataset %s: %w", name, dataset, err)
	}

	return nil
}
