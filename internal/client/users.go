package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/opine-io/opine-client/internal/http"
	"github.com/opine-io/opine-client/pkg/opine"
)

// UsersClient implements opine.UsersClient.
type UsersClient struct {
	httpClient *http.Client
}

// NewUsersClient creates a new users client.
func NewUsersClient(httpClient *http.Client) *UsersClient {
	return &UsersClient{httpClient: httpClient}
}

type userResponse struct {
	User opine.User `json:"user"`
}

// Create implements opine.UsersClient.Create.
func (c *UsersClient) Create(ctx context.Context, request *opine.UserCreateRequest) (*opine.User, error) {
	resp, err := c.httpClient.Post(ctx, apiBase+"/users", map[string]interface{}{"user": request})
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	result, err := opine.Decode[userResponse](resp.Body, resp.StatusCode)
	if err != nil {
		return nil, fmt.Errorf("creating user %s: %w", request.Username, err)
	}

	return &result.User, nil
}

// Get implements opine.UsersClient.Get.
func (c *UsersClient) Get(ctx context.Context, id string) (*opine.User, error) {
	resp, err := c.httpClient.Get(ctx, apiBase+"/users/id:"+id, nil)
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}

	result, err := opine.Decode[userResponse](resp.Body, resp.StatusCode)
	if err != nil {
		return nil, fmt.Errorf("getting user %s: %w", id, err)
	}

	return &result.User, nil
}

// GetByUsername implements opine.UsersClient.GetByUsername.
func (c *UsersClient) GetByUsername(ctx context.Context, username string) (*opine.User, error) {
	resp, err := c.httpClient.Get(ctx, apiBase+"/users/"+username, nil)
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}

	result, err := opine.Decode[userResponse](resp.Body, resp.StatusCode)
	if err != nil {
		return nil, fmt.Errorf("getting user %s: %w", username, err)
	}

	return &result.User, nil
}

// List implements opine.UsersClient.List.
func (c *UsersClient) List(ctx context.Context, params *opine.QueryParams) (*opine.UsersPage, error) {
	var query url.Values
	if params != nil {
		query = params.ToValues()
	}

	resp, err := c.httpClient.Get(ctx, apiBase+"/users", query)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}

	result, err := opine.Decode[opine.UsersPage](resp.Body, resp.StatusCode)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}

	return result, nil
}

// UpdatePermissions implements opine.UsersClient.UpdatePermissions.
func (c *UsersClient) UpdatePermissions(ctx context.Context, id string, request *opine.UserPermissionsUpdateRequest) (*opine.User, error) {
	resp, err := c.httpClient.Post(ctx, apiBase+"/users/id:"+id+"/permissions", map[string]interface{}{"permissions": request})
	if err != nil {
		return nil, fmt.Errorf("updating user permissions: %w", err)
	}

	result, err := opine.Decode[userResponse](resp.Body, resp.StatusCode)
	if err != nil {
		return nil, fmt.Errorf("updating permissions for user %s: %w", id, err)
	}

	return &result.User, nil
}
