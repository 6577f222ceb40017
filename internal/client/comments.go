package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/opine-io/opine-client/internal/http"
	"github.com/opine-io/opine-client/pkg/opine"
)

// CommentsClient implements opine.CommentsClient.
type CommentsClient struct {
	httpClient *http.Client
}

// NewCommentsClient creates a new comments client.
func NewCommentsClient(httpClient *http.Client) *CommentsClient {
	return &CommentsClient{httpClient: httpClient}
}

type commentResponse struct {
	Comment opine.Comment `json:"comment"`
}

// Get implements opine.CommentsClient.Get.
func (c *CommentsClient) Get(ctx context.Context, source opine.Identifier, commentID string) (*opine.Comment, error) {
	resp, err := c.httpClient.Get(ctx, sourcePath(source)+"/comments/"+commentID, nil)
	if err != nil {
		return nil, fmt.Errorf("getting comment: %w", err)
	}

	result, err := opine.Decode[commentResponse](resp.Body, resp.StatusCode)
	if err != nil {
		return nil, fmt.Errorf("getting comment %s in source %s: %w", commentID, source, err)
	}

	return &result.Comment, nil
}

// Query implements opine.CommentsClient.Query.
func (c *CommentsClient) Query(ctx context.Context, source opine.Identifier, params *opine.QueryParams) (*opine.CommentsPage, error) {
	var query url.Values
	if params != nil {
		query = params.ToValues()
	}

	resp, err := c.httpClient.Get(ctx, sourcePath(source)+"/comments", query)
	if err != nil {
		return nil, fmt.Errorf("querying comments: %w", err)
	}

	result, err := opine.Decode[opine.CommentsPage](resp.Body, resp.StatusCode)
	if err != nil {
		return nil, fmt.Errorf("querying comments in source %s: %w", source, err)
	}

	return result, nil
}

// Put implements opine.CommentsClient.Put.
func (c *CommentsClient) Put(ctx context.Context, source opine.Identifier, comments []opine.NewComment) error {
	body := map[string]interface{}{"comments": comments}

	resp, err := c.httpClient.Put(ctx, sourcePath(source)+"/comments", body)
	if err != nil {
		return fmt.Errorf("uploading comments: %w", err)
	}

	err = opine.DecodeEmpty(resp.Body, resp.StatusCode)
	if err != nil {
		return fmt.Errorf("uploading %d comments to source %s: %w", len(comments), source, err)
	}

	return nil
}

// Delete implements opine.CommentsClient.Delete.
func (c *CommentsClient) Delete(ctx context.Context, source opine.Identifier, commentID string) error {
	resp, err := c.httpClient.Delete(ctx, sourcePath(source)+"/comments/"+commentID)
	if err != nil {
		return fmt.Errorf("deleting comment: %w", err)
	}

	err = opine.DecodeEmpty(resp.Body, resp.StatusCode)
	if err != nil {
		return fmt.Errorf("deleting comment %s in source %s: %w", commentID, source, err)
	}

	return nil
}
