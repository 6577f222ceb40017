// Package http implements the authenticated retrying JSON transport used
// by the concrete API client. It builds requests with a bearer token and
// JSON body, applies the retry policy (HTTP 5xx, 429, and transient
// transport errors, with exponential backoff), and returns the raw
// status code and body. Envelope interpretation happens upstream, in
// pkg/opine, which needs both signals uninterpreted.
package http

import (
	"bytes"
	"context"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/opine-io/opine-client/internal/auth"
	"github.com/opine-io/opine-client/internal/constants"
	"github.com/opine-io/opine-client/pkg/opine"
)

// Logger interface for transport logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Request is one API request.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    interface{}
	Headers map[string]string
}

// Response is the raw result of one API request. Non-2xx statuses are not
// errors at this layer.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Client sends authenticated JSON requests with retries.
type Client struct {
	baseURL      string
	tokenManager auth.TokenManager
	logger       Logger
	debug        bool
	userAgent    string

	retryMax      int
	retryWaitBase time.Duration
	retryWaitMax  time.Duration
	timeout       time.Duration

	interceptors *opine.InterceptorChain
}

// Option configures the client.
type Option func(*Client)

// WithLogger sets the transport logger.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithRetryConfig tunes the retry policy: retryMax retries after the
// first attempt, waitBase backoff doubled per retry, capped at waitMax.
func WithRetryConfig(retryMax int, waitBase, waitMax time.Duration) Option {
	return func(c *Client) {
		c.retryMax = retryMax
		c.retryWaitBase = waitBase
		c.retryWaitMax = waitMax
	}
}

// WithInterceptors installs hooks run around every request.
func WithInterceptors(chain *opine.InterceptorChain) Option {
	return func(c *Client) {
		c.interceptors = chain
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// NewClient creates a transport client for the given base URL. A nil
// token manager sends unauthenticated requests.
func NewClient(baseURL string, tokenManager auth.TokenManager, opts ...Option) *Client {
	client := &Client{
		baseURL:       strings.TrimSuffix(baseURL, "/"),
		tokenManager:  tokenManager,
		userAgent:     "opine-client/1.0",
		retryMax:      constants.DefaultRetryMax,
		retryWaitBase: constants.DefaultRetryWaitBase,
		retryWaitMax:  constants.DefaultRetryWaitMax,
		timeout:       constants.DefaultHTTPTimeout,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Do sends a request and returns the raw response. Only transport-level
// failures (timeout, connection, request build) produce an error; any
// HTTP status comes back in the Response for the caller to decode.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	httpReq, err := c.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	// Interceptors share the request's header map, so header-setting
	// hooks take effect on the outgoing request.
	interceptReq := &opine.Request{Method: req.Method, Path: req.Path, Headers: httpReq.Header}

	if c.interceptors != nil {
		err = c.interceptors.ExecuteRequestInterceptors(ctx, interceptReq)
		if err != nil {
			return nil, err
		}
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    httpReq.URL.String(),
		})
	}

	httpResp, err := c.retryClient().Do(httpReq)
	if err != nil {
		if c.interceptors != nil {
			_ = c.interceptors.ExecuteResponseInterceptors(ctx, interceptReq, &opine.Response{Error: err})
		}

		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       body,
	}

	if c.interceptors != nil {
		err = c.interceptors.ExecuteResponseInterceptors(ctx, interceptReq, &opine.Response{
			StatusCode: resp.StatusCode,
			Headers:    resp.Headers,
			Body:       resp.Body,
		})
		if err != nil {
			return nil, err
		}
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"method": req.Method,
			"url":    httpReq.URL.String(),
			"status": resp.StatusCode,
		})
	}

	return resp, nil
}

// Get sends a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post sends a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// Put sends a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Body: body})
}

// Delete sends a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path})
}

func (c *Client) buildRequest(ctx context.Context, req *Request) (*retryablehttp.Request, error) {
	fullURL := c.baseURL + req.Path
	if len(req.Query) > 0 {
		fullURL += "?" + req.Query.Encode()
	}

	var rawBody []byte

	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}

		rawBody = data
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, bytes.NewReader(rawBody))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	if c.tokenManager != nil {
		token, err := c.tokenManager.GetToken(ctx)
		if err != nil {
			return nil, fmt.Errorf("getting token: %w", err)
		}

		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	return httpReq, nil
}

// retryClient builds a retryablehttp client implementing the retry
// policy: retryMax retries after the first attempt, triggered by 5xx,
// 429, or transient transport errors; backoff doubles per retry starting
// at retryWaitBase; the final attempt's result is returned as-is.
func (c *Client) retryClient() *retryablehttp.Client {
	retry := retryablehttp.NewClient()
	retry.RetryMax = c.retryMax
	retry.RetryWaitMin = c.retryWaitBase
	retry.RetryWaitMax = c.retryWaitMax
	retry.HTTPClient.Timeout = c.timeout
	retry.Logger = nil
	retry.CheckRetry = checkRetry
	retry.Backoff = c.backoff

	return retry
}

// Transport errors that retrying cannot cure, matched the same way the
// retry library's default policy matches them.
var (
	redirectsErrorRe     = regexp.MustCompile(`stopped after \d+ redirects\z`)
	schemeErrorRe        = regexp.MustCompile(`unsupported protocol scheme`)
	invalidHeaderErrorRe = regexp.MustCompile(`invalid header`)
	notTrustedErrorRe    = regexp.MustCompile(`certificate is not trusted`)
)

func checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	if err != nil {
		if isPermanentTransportError(err) {
			return false, err
		}

		return true, nil
	}

	if resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests {
		return true, nil
	}

	return false, nil
}

// isPermanentTransportError reports whether a transport error cannot
// succeed on retry: redirect loops, unsupported URL schemes, malformed
// headers, and TLS certificate verification failures. Timeouts and
// connection errors stay retryable.
func isPermanentTransportError(err error) bool {
	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		return false
	}

	msg := urlErr.Error()
	if redirectsErrorRe.MatchString(msg) || schemeErrorRe.MatchString(msg) ||
		invalidHeaderErrorRe.MatchString(msg) || notTrustedErrorRe.MatchString(msg) {
		return true
	}

	var unknownAuthority x509.UnknownAuthorityError
	if errors.As(urlErr.Err, &unknownAuthority) {
		return true
	}

	var certInvalid x509.CertificateInvalidError

	return errors.As(urlErr.Err, &certInvalid)
}

// backoff computes the exponential delay before a retry and logs it. It
// runs once per retry, never after the final attempt.
func (c *Client) backoff(minWait, maxWait time.Duration, attemptNum int, resp *http.Response) time.Duration {
	delay := minWait << uint(attemptNum)
	if delay > maxWait || delay <= 0 {
		delay = maxWait
	}

	if c.logger != nil {
		fields := map[string]interface{}{
			"attempt": attemptNum + 1,
			"delay":   delay.String(),
		}
		if resp != nil {
			fields["status"] = resp.StatusCode
		}

		c.logger.Warn("Retrying request", fields)
	}

	return delay
}
