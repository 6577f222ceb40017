package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/opine-io/opine-client/internal/http"
	"github.com/opine-io/opine-client/pkg/opine"
)

// BucketsClient implements opine.BucketsClient.
type BucketsClient struct {
	httpClient *http.Client
}

// NewBucketsClient creates a new buckets client.
func NewBucketsClient(httpClient *http.Client) *BucketsClient {
	return &BucketsClient{httpClient: httpClient}
}

type bucketResponse struct {
	Bucket opine.Bucket `json:"bucket"`
}

type bucketsResponse struct {
	Buckets []opine.Bucket `json:"buckets"`
}

// Create implements opine.BucketsClient.Create.
func (c *BucketsClient) Create(ctx context.Context, owner, name string, request *opine.BucketCreateRequest) (*opine.Bucket, error) {
	path := fmt.Sprintf("%s/buckets/%s/%s", apiBase, owner, name)

	resp, err := c.httpClient.Put(ctx, path, map[string]interface{}{"bucket": request})
	if err != nil {
		return nil, fmt.Errorf("creating bucket: %w", err)
	}

	result, err := opine.Decode[bucketResponse](resp.Body, resp.StatusCode)
	if err != nil {
		return nil, fmt.Errorf("creating bucket %s/%s: %w", owner, name, err)
	}

	return &result.Bucket, nil
}

// Get implements opine.BucketsClient.Get.
func (c *BucketsClient) Get(ctx context.Context, identifier opine.Identifier) (*opine.Bucket, error) {
	resp, err := c.httpClient.Get(ctx, bucketPath(identifier), nil)
	if err != nil {
		return nil, fmt.Errorf("getting bucket: %w", err)
	}

	result, err := opine.Decode[bucketResponse](resp.Body, resp.StatusCode)
	if err != nil {
		return nil, fmt.Errorf("getting bucket %s: %w", identifier, err)
	}

	return &result.Bucket, nil
}

// List implements opine.BucketsClient.List.
func (c *BucketsClient) List(ctx context.Context, params *opine.QueryParams) ([]opine.Bucket, error) {
	var query url.Values
	if params != nil {
		query = params.ToValues()
	}

	resp, err := c.httpClient.Get(ctx, apiBase+"/buckets", query)
	if err != nil {
		return nil, fmt.Errorf("listing buckets: %w", err)
	}

	result, err := opine.Decode[bucketsResponse](resp.Body, resp.StatusCode)
	if err != nil {
		return nil, fmt.Errorf("listing buckets: %w", err)
	}

	return result.Buckets, nil
}

// Delete implements opine.BucketsClient.Delete.
func (c *BucketsClient) Delete(ctx context.Context, identifier opine.Identifier) error {
	resp, err := c.httpClient.Delete(ctx, bucketPath(identifier))
	if err != nil {
		return fmt.Errorf("deleting bucket: %w", err)
	}

	err = opine.DecodeEmpty(resp.Body, resp.StatusCode)
	if err != nil {
		return fmt.Errorf("deleting bucket %s: %w", identifier, err)
	}

	return nil
}
