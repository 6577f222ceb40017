// Package opineclient provides the main entry point for creating Opine
// API clients.
package opineclient

import (
	"fmt"
	"strings"

	"github.com/opine-io/opine-client/internal/client"
	"github.com/opine-io/opine-client/pkg/opine"
)

// New creates a new Opine API client from configuration.
func New(config *opine.Config) (opine.Client, error) {
	if config == nil {
		return nil, opine.ErrConfigRequired
	}

	if config.Endpoint == "" {
		return nil, opine.ErrEndpointRequired
	}

	// Normalize the endpoint
	endpoint := strings.TrimSuffix(config.Endpoint, "/")
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}

	config.Endpoint = endpoint

	apiClient, err := client.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return apiClient, nil
}

// NewWithEndpoint creates a new client with just an endpoint (no auth).
func NewWithEndpoint(endpoint string) (opine.Client, error) {
	return New(&opine.Config{
		Endpoint: endpoint,
	})
}

// NewWithToken creates a new client with an endpoint and bearer token.
func NewWithToken(endpoint, token string) (opine.Client, error) {
	return New(&opine.Config{
		Endpoint: endpoint,
		Token:    token,
	})
}
