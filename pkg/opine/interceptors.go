package opine

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Request represents an HTTP request that can be intercepted.
type Request struct {
	Method   string
	Path     string
	Headers  http.Header
	Body     []byte
	Metadata map[string]interface{}
}

// Response represents an HTTP response that can be intercepted.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	Error      error
}

// RequestInterceptor is called before a request is sent.
type RequestInterceptor func(ctx context.Context, req *Request) error

// ResponseInterceptor is called after a response is received.
type ResponseInterceptor func(ctx context.Context, req *Request, resp *Response) error

// InterceptorChain manages a chain of interceptors.
type InterceptorChain struct {
	requestInterceptors  []RequestInterceptor
	responseInterceptors []ResponseInterceptor
}

// NewInterceptorChain creates a new interceptor chain.
func NewInterceptorChain() *InterceptorChain {
	return &InterceptorChain{
		requestInterceptors:  make([]RequestInterceptor, 0),
		responseInterceptors: make([]ResponseInterceptor, 0),
	}
}

// AddRequestInterceptor adds a request interceptor to the chain.
func (c *InterceptorChain) AddRequestInterceptor(interceptor RequestInterceptor) {
	c.requestInterceptors = append(c.requestInterceptors, interceptor)
}

// AddResponseInterceptor adds a response interceptor to the chain.
func (c *InterceptorChain) AddResponseInterceptor(interceptor ResponseInterceptor) {
	c.responseInterceptors = append(c.responseInterceptors, interceptor)
}

// ExecuteRequestInterceptors runs all request interceptors.
func (c *InterceptorChain) ExecuteRequestInterceptors(ctx context.Context, req *Request) error {
	for _, interceptor := range c.requestInterceptors {
		err := interceptor(ctx, req)
		if err != nil {
			return fmt.Errorf("request interceptor failed: %w", err)
		}
	}

	return nil
}

// ExecuteResponseInterceptors runs all response interceptors.
func (c *InterceptorChain) ExecuteResponseInterceptors(ctx context.Context, req *Request, resp *Response) error {
	for _, interceptor := range c.responseInterceptors {
		err := interceptor(ctx, req, resp)
		if err != nil {
			return fmt.Errorf("response interceptor failed: %w", err)
		}
	}

	return nil
}

// Common interceptors

// AuthInterceptor sets the bearer token on every request.
func AuthInterceptor(token func(ctx context.Context) (string, error)) RequestInterceptor {
	return func(ctx context.Context, req *Request) error {
		value, err := token(ctx)
		if err != nil {
			return fmt.Errorf("getting token: %w", err)
		}

		if req.Headers == nil {
			req.Headers = http.Header{}
		}

		req.Headers.Set("Authorization", "Bearer "+value)

		return nil
	}
}

// UserAgentInterceptor sets the User-Agent header.
func UserAgentInterceptor(userAgent string) RequestInterceptor {
	return func(ctx context.Context, req *Request) error {
		if req.Headers == nil {
			req.Headers = http.Header{}
		}

		req.Headers.Set("User-Agent", userAgent)

		return nil
	}
}

// LoggingInterceptor logs requests at debug level.
func LoggingInterceptor(logger Logger) RequestInterceptor {
	return func(ctx context.Context, req *Request) error {
		logger.Debug("API Request", map[string]interface{}{
			"method": req.Method,
			"path":   req.Path,
		})

		return nil
	}
}

// ResponseLoggingInterceptor logs responses at debug level.
func ResponseLoggingInterceptor(logger Logger) ResponseInterceptor {
	return func(ctx context.Context, req *Request, resp *Response) error {
		fields := map[string]interface{}{
			"method": req.Method,
			"path":   req.Path,
			"status": resp.StatusCode,
		}
		if resp.Error != nil {
			fields["error"] = resp.Error.Error()
		}

		logger.Debug("API Response", fields)

		return nil
	}
}

// TimingInterceptor records request start time in metadata and logs the
// elapsed duration when the response arrives.
func TimingInterceptor(logger Logger) (RequestInterceptor, ResponseInterceptor) {
	requestInterceptor := func(ctx context.Context, req *Request) error {
		if req.Metadata == nil {
			req.Metadata = make(map[string]interface{})
		}

		req.Metadata["start_time"] = time.Now()

		return nil
	}

	responseInterceptor := func(ctx context.Context, req *Request, resp *Response) error {
		start, ok := req.Metadata["start_time"].(time.Time)
		if !ok {
			return nil
		}

		logger.Debug("API Timing", map[string]interface{}{
			"method":      req.Method,
			"path":        req.Path,
			"duration_ms": time.Since(start).Milliseconds(),
		})

		return nil
	}

	return requestInterceptor, responseInterceptor
}
