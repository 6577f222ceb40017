package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/opine-io/opine-client/internal/http"
	"github.com/opine-io/opine-client/pkg/opine"
)

// ProjectsClient implements opine.ProjectsClient.
type ProjectsClient struct {
	httpClient *http.Client
}

// NewProjectsClient creates a new projects client.
func NewProjectsClient(httpClient *http.Client) *ProjectsClient {
	return &ProjectsClient{httpClient: httpClient}
}

type projectResponse struct {
	Project opine.Project `json:"project"`
}

type projectsResponse struct {
	Projects []opine.Project `json:"projects"`
}

// Create implements opine.ProjectsClient.Create.
func (c *ProjectsClient) Create(ctx context.Context, name string, request *opine.ProjectCreateRequest) (*opine.Project, error) {
	resp, err := c.httpClient.Put(ctx, apiBase+"/projects/"+name, map[string]interface{}{"project": request})
	if err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}

	result, err := opine.Decode[projectResponse](resp.Body, resp.StatusCode)
	if err != nil {
		return nil, fmt.Errorf("creating project %s: %w", name, err)
	}

	return &result.Project, nil
}

// Get implements opine.ProjectsClient.Get.
func (c *ProjectsClient) Get(ctx context.Context, name string) (*opine.Project, error) {
	resp, err := c.httpClient.Get(ctx, apiBase+"/projects/"+name, nil)
	if err != nil {
		return nil, fmt.Errorf("getting project: %w", err)
	}

	result, err := opine.Decode[projectResponse](resp.Body, resp.StatusCode)
	if err != nil {
		return nil, fmt.Errorf("getting project %s: %w", name, err)
	}

	return &result.Project, nil
}

// List implements opine.ProjectsClient.List.
func (c *ProjectsClient) List(ctx context.Context, params *opine.QueryParams) ([]opine.Project, error) {
	var query url.Values
	if params != nil {
		query = params.ToValues()
	}

	resp, err := c.httpClient.Get(ctx, apiBase+"/projects", query)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}

	result, err := opine.Decode[projectsResponse](resp.Body, resp.StatusCode)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}

	return result.Projects, nil
}

// Update implements opine.ProjectsClient.Update.
func (c *ProjectsClient) Update(ctx context.Context, name string, request *opine.ProjectUpdateRequest) (*opine.Project, error) {
	resp, err := c.httpClient.Post(ctx, apiBase+"/projects/"+name, map[string]interface{}{"project": request})
	if err != nil {
		return nil, fmt.Errorf("updating project: %w", err)
	}

	result, err := opine.Decode[projectResponse](resp.Body, resp.StatusCode)
	if err != nil {
		return nil, fmt.Errorf("updating project %s: %w", name, err)
	}

	return &result.Project, nil
}
