package client

import (
	internalhttp "github.com/opine-io/opine-client/internal/http"
	"github.com/opine-io/opine-client/pkg/opine"
)

// NewTestClient creates a client pointed at a test server, with no token
// manager and retries disabled so failure cases return immediately.
func NewTestClient(baseURL string) *Client {
	httpClient := internalhttp.NewClient(baseURL, nil, internalhttp.WithRetryConfig(0, 0, 0))

	client := &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
	}

	client.initializeResourceClients(opine.NewNoOpCache())

	return client
}
