package opine

import (
	"context"
	"time"
)

// SourcesClient manages comment sources.
type SourcesClient interface {
	Create(ctx context.Context, owner, name string, request *SourceCreateRequest) (*Source, error)
	Get(ctx context.Context, identifier Identifier) (*Source, error)
	List(ctx context.Context, params *QueryParams) ([]Source, error)
	Update(ctx context.Context, identifier Identifier, request *SourceUpdateRequest) (*Source, error)
	Delete(ctx context.Context, identifier Identifier) error
}

// DatasetsClient manages datasets.
type DatasetsClient interface {
	Create(ctx context.Context, owner, name string, request *DatasetCreateRequest) (*Dataset, error)
	Get(ctx context.Context, identifier Identifier) (*Dataset, error)
	List(ctx context.Context, params *QueryParams) ([]Dataset, error)
	Update(ctx context.Context, identifier Identifier, request *DatasetUpdateRequest) (*Dataset, error)
	Delete(ctx context.Context, identifier Identifier) error
	Statistics(ctx context.Context, identifier Identifier) (*ValidationStatistics, error)
}

// BucketsClient manages raw document buckets.
type BucketsClient interface {
	Create(ctx context.Context, owner, name string, request *BucketCreateRequest) (*Bucket, error)
	Get(ctx context.Context, identifier Identifier) (*Bucket, error)
	List(ctx context.Context, params *QueryParams) ([]Bucket, error)
	Delete(ctx context.Context, identifier Identifier) error
}

// StreamsClient manages streams over a dataset.
type StreamsClient interface {
	Create(ctx context.Context, dataset Identifier, request *StreamCreateRequest) (*Stream, error)
	Get(ctx context.Context, dataset Identifier, name string) (*Stream, error)
	List(ctx context.Context, dataset Identifier) ([]Stream, error)
	Delete(ctx context.Context, dataset Identifier, name string) error

	// Fetch returns up to size results past the stream's committed
	// position, or past continuation when one is supplied.
	Fetch(ctx context.Context, dataset Identifier, name string, size int, continuation string) (*StreamBatch, error)

	// Advance commits the stream up to and including the batch that
	// produced continuation.
	Advance(ctx context.Context, dataset Identifier, name string, continuation string) error

	// Reset moves the stream's committed position to the given time.
	Reset(ctx context.Context, dataset Identifier, name string, to time.Time) error
}

// ProjectsClient manages projects.
type ProjectsClient interface {
	Create(ctx context.Context, name string, request *ProjectCreateRequest) (*Project, error)
	Get(ctx context.Context, name string) (*Project, error)
	List(ctx context.Context, params *QueryParams) ([]Project, error)
	Update(ctx context.Context, name string, request *ProjectUpdateRequest) (*Project, error)
}

// UsersClient manages users.
type UsersClient interface {
	Create(ctx context.Context, request *UserCreateRequest) (*User, error)
	Get(ctx context.Context, id string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	List(ctx context.Context, params *QueryParams) (*UsersPage, error)
	UpdatePermissions(ctx context.Context, id string, request *UserPermissionsUpdateRequest) (*User, error)
}

// CommentsClient manages comments within a source.
type CommentsClient interface {
	Get(ctx context.Context, source Identifier, commentID string) (*Comment, error)
	Query(ctx context.Context, source Identifier, params *QueryParams) (*CommentsPage, error)
	Put(ctx context.Context, source Identifier, comments []NewComment) error
	Delete(ctx context.Context, source Identifier, commentID string) error
}

// Resolver turns identifiers into concrete resources. Id-form identifiers
// short-circuit without a network call when only the id is needed;
// full-name identifiers cost exactly one lookup.
type Resolver interface {
	ResolveSourceID(ctx context.Context, identifier Identifier) (string, error)
	ResolveSource(ctx context.Context, identifier Identifier) (*Source, error)
	ResolveDatasetID(ctx context.Context, identifier Identifier) (string, error)
	ResolveDataset(ctx context.Context, identifier Identifier) (*Dataset, error)
	ResolveBucketID(ctx context.Context, identifier Identifier) (string, error)
	ResolveBucket(ctx context.Context, identifier Identifier) (*Bucket, error)
}

// Client is the full API surface.
type Client interface {
	Sources() SourcesClient
	Datasets() DatasetsClient
	Buckets() BucketsClient
	Streams() StreamsClient
	Projects() ProjectsClient
	Users() UsersClient
	Comments() CommentsClient
	Resolver() Resolver
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration.
//
// Endpoint is the API base URL (e.g. "https://api.opine.example"). Token
// is a pre-issued bearer token; both are resolved externally (flags,
// environment, or the saved config file) before the client is built.
//
// Retry behavior can be tuned via RetryMax/RetryWaitBase/RetryWaitMax;
// transient failures (HTTP 5xx, 429, and transport errors) are retried
// with exponential backoff, other failures are returned immediately.
type Config struct {
	// Endpoint: base URL for the API.
	Endpoint string

	// Token: bearer token used for the Authorization header.
	Token string

	// HTTPTimeout: per-request timeout. Zero means the default.
	HTTPTimeout time.Duration

	// RetryMax: retries after the first attempt. A negative value
	// disables retries; zero means the default (2, i.e. 3 attempts).
	RetryMax int

	// RetryWaitBase: base backoff, doubled per retry. Zero means the
	// default (5s).
	RetryWaitBase time.Duration

	// RetryWaitMax: backoff cap. Zero means the default (30s).
	RetryWaitMax time.Duration

	// Debug: enables request/response logging when a Logger is set.
	Debug bool

	// Logger: optional structured logger used by the transport.
	Logger Logger

	// UserAgent: overrides the default User-Agent header.
	UserAgent string

	// ResolutionCache: optional cache for name-to-id resolutions. Nil
	// disables caching.
	ResolutionCache *CacheConfig

	// Interceptors: optional hooks run around every request.
	Interceptors *InterceptorChain
}
