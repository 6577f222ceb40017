package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick operations.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry limits.
const (
	// DefaultRetryMax is the default number of retries after the first
	// attempt, i.e. three attempts total.
	DefaultRetryMax = 2

	// DefaultRetryWaitBase is the base backoff before the first retry.
	// Each subsequent retry doubles it.
	DefaultRetryWaitBase = 5 * time.Second

	// DefaultRetryWaitMax caps the backoff between retries.
	DefaultRetryWaitMax = 30 * time.Second
)

// Concurrency and batching limits.
const (
	// DefaultConcurrencyLimit limits concurrent batch operations.
	DefaultConcurrencyLimit = 3

	// StreamBufferSize is the default buffer size for page channels.
	StreamBufferSize = 10
)

// Pagination limits.
const (
	// DefaultPageSize is the default number of items per page.
	DefaultPageSize = 20

	// MaxPageSize is the largest page size the API accepts.
	MaxPageSize = 1024

	// CommentBatchSize is the number of comments uploaded per request.
	CommentBatchSize = 128
)

// Cache defaults.
const (
	// DefaultCacheSize is the maximum number of cached resolutions.
	DefaultCacheSize = 1000

	// DefaultCacheTTL is how long a cached resolution stays valid.
	DefaultCacheTTL = 5 * time.Minute
)
