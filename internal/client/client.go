// Package client provides the concrete implementation of the opine.Client
// interface: per-resource clients over the retrying JSON transport, plus
// identifier resolution with an optional cache.
package client

import (
	"fmt"

	"github.com/opine-io/opine-client/internal/auth"
	"github.com/opine-io/opine-client/internal/constants"
	"github.com/opine-io/opine-client/internal/http"
	"github.com/opine-io/opine-client/pkg/opine"
)

// Client implements the opine.Client interface.
type Client struct {
	httpClient   *http.Client
	tokenManager auth.TokenManager
	baseURL      string
	logger       opine.Logger

	// Resource clients
	sources  opine.SourcesClient
	datasets opine.DatasetsClient
	buckets  opine.BucketsClient
	streams  opine.StreamsClient
	projects opine.ProjectsClient
	users    opine.UsersClient
	comments opine.CommentsClient
	resolver opine.Resolver
}

// New creates a new API client from configuration.
func New(config *opine.Config) (*Client, error) {
	if config == nil {
		return nil, opine.ErrConfigRequired
	}

	if config.Endpoint == "" {
		return nil, opine.ErrEndpointRequired
	}

	var tokenManager auth.TokenManager
	if config.Token != "" {
		tokenManager = auth.NewStaticTokenManager(config.Token)
	}

	httpClient := http.NewClient(config.Endpoint, tokenManager, httpOptions(config)...)

	cache, err := resolutionCache(config)
	if err != nil {
		return nil, err
	}

	client := &Client{
		httpClient:   httpClient,
		tokenManager: tokenManager,
		baseURL:      config.Endpoint,
		logger:       config.Logger,
	}

	client.initializeResourceClients(cache)

	return client, nil
}

// NewWithTokenManager creates a client with a custom token manager.
func NewWithTokenManager(config *opine.Config, tokenManager auth.TokenManager) (*Client, error) {
	if config == nil {
		return nil, opine.ErrConfigRequired
	}

	if config.Endpoint == "" {
		return nil, opine.ErrEndpointRequired
	}

	httpClient := http.NewClient(config.Endpoint, tokenManager, httpOptions(config)...)

	cache, err := resolutionCache(config)
	if err != nil {
		return nil, err
	}

	client := &Client{
		httpClient:   httpClient,
		tokenManager: tokenManager,
		baseURL:      config.Endpoint,
		logger:       config.Logger,
	}

	client.initializeResourceClients(cache)

	return client, nil
}

func httpOptions(config *opine.Config) []http.Option {
	var opts []http.Option

	if config.Logger != nil {
		opts = append(opts, http.WithLogger(&loggerAdapter{logger: config.Logger}))
	}

	if config.Debug {
		opts = append(opts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		opts = append(opts, http.WithUserAgent(config.UserAgent))
	}

	if config.Interceptors != nil {
		opts = append(opts, http.WithInterceptors(config.Interceptors))
	}

	if config.RetryMax != 0 || config.RetryWaitBase > 0 || config.RetryWaitMax > 0 {
		retryMax := config.RetryMax

		switch {
		case retryMax < 0:
			retryMax = 0
		case retryMax == 0:
			retryMax = constants.DefaultRetryMax
		}

		waitBase := config.RetryWaitBase
		if waitBase <= 0 {
			waitBase = constants.DefaultRetryWaitBase
		}

		waitMax := config.RetryWaitMax
		if waitMax <= 0 {
			waitMax = constants.DefaultRetryWaitMax
		}

		opts = append(opts, http.WithRetryConfig(retryMax, waitBase, waitMax))
	}

	if config.HTTPTimeout > 0 {
		opts = append(opts, http.WithTimeout(config.HTTPTimeout))
	}

	return opts
}

func resolutionCache(config *opine.Config) (opine.Cache, error) {
	if config.ResolutionCache == nil {
		return opine.NewNoOpCache(), nil
	}

	cache, err := opine.NewCacheFromConfig(config.ResolutionCache)
	if err != nil {
		return nil, fmt.Errorf("building resolution cache: %w", err)
	}

	return cache, nil
}

// Sources implements opine.Client.Sources.
func (c *Client) Sources() opine.SourcesClient {
	return c.sources
}

// Datasets implements opine.Client.Datasets.
func (c *Client) Datasets() opine.DatasetsClient {
	return c.datasets
}

// Buckets implements opine.Client.Buckets.
func (c *Client) Buckets() opine.BucketsClient {
	return c.buckets
}

// Streams implements opine.Client.Streams.
func (c *Client) Streams() opine.StreamsClient {
	return c.streams
}

// Projects implements opine.Client.Projects.
func (c *Client) Projects() opine.ProjectsClient {
	return c.projects
}

// Users implements opine.Client.Users.
func (c *Client) Users() opine.UsersClient {
	return c.users
}

// Comments implements opine.Client.Comments.
func (c *Client) Comments() opine.CommentsClient {
	return c.comments
}

// Resolver implements opine.Client.Resolver.
func (c *Client) Resolver() opine.Resolver {
	return c.resolver
}

func (c *Client) initializeResourceClients(cache opine.Cache) {
	c.sources = NewSourcesClient(c.httpClient)
	c.datasets = NewDatasetsClient(c.httpClient)
	c.buckets = NewBucketsClient(c.httpClient)
	c.streams = NewStreamsClient(c.httpClient)
	c.projects = NewProjectsClient(c.httpClient)
	c.users = NewUsersClient(c.httpClient)
	c.comments = NewCommentsClient(c.httpClient)
	c.resolver = NewResolver(c.sources, c.datasets, c.buckets, cache)
}

// loggerAdapter adapts opine.Logger to http.Logger.
type loggerAdapter struct {
	logger opine.Logger
}

func (l *loggerAdapter) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, fields)
}

func (l *loggerAdapter) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, fields)
}

func (l *loggerAdapter) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, fields)
}

func (l *loggerAdapter) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, fields)
}
