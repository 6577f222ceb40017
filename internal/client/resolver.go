package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/opine-io/opine-client/internal/constants"
	"github.com/opine-io/opine-client/pkg/opine"
)

// Resolver implements opine.Resolver. Id-form identifiers short-circuit
// without touching the network; full names cost exactly one lookup, with
// the name-to-id result memoized in the configured cache.
type Resolver struct {
	sources  opine.SourcesClient
	datasets opine.DatasetsClient
	buckets  opine.BucketsClient
	cache    opine.Cache
	cacheTTL time.Duration
}

// NewResolver creates a resolver backed by the given resource clients and cache.
func NewResolver(sources opine.SourcesClient, datasets opine.DatasetsClient, buckets opine.BucketsClient, cache opine.Cache) *Resolver {
	if cache == nil {
		cache = opine.NewNoOpCache()
	}

	return &Resolver{
		sources:  sources,
		datasets: datasets,
		buckets:  buckets,
		cache:    cache,
		cacheTTL: constants.DefaultCacheTTL,
	}
}

// ResolveSourceID implements opine.Resolver.ResolveSourceID.
func (r *Resolver) ResolveSourceID(ctx context.Context, identifier opine.Identifier) (string, error) {
	if id, ok := identifier.ID(); ok {
		return id, nil
	}

	if id, ok := r.cachedID(ctx, opine.KindSource, identifier); ok {
		return id, nil
	}

	source, err := r.lookupSource(ctx, identifier)
	if err != nil {
		return "", err
	}

	r.storeID(ctx, opine.KindSource, identifier, source.ID)

	return source.ID, nil
}

// ResolveSource implements opine.Resolver.ResolveSource.
func (r *Resolver) ResolveSource(ctx context.Context, identifier opine.Identifier) (*opine.Source, error) {
	source, err := r.lookupSource(ctx, identifier)
	if err != nil {
		return nil, err
	}

	r.storeID(ctx, opine.KindSource, identifier, source.ID)

	return source, nil
}

// ResolveDatasetID implements opine.Resolver.ResolveDatasetID.
func (r *Resolver) ResolveDatasetID(ctx context.Context, identifier opine.Identifier) (string, error) {
	if id, ok := identifier.ID(); ok {
		return id, nil
	}

	if id, ok := r.cachedID(ctx, opine.KindDataset, identifier); ok {
		return id, nil
	}

	dataset, err := r.lookupDataset(ctx, identifier)
	if err != nil {
		return "", err
	}

	r.storeID(ctx, opine.KindDataset, identifier, dataset.ID)

	return dataset.ID, nil
}

// ResolveDataset implements opine.Resolver.ResolveDataset.
func (r *Resolver) ResolveDataset(ctx context.Context, identifier opine.Identifier) (*opine.Dataset, error) {
	dataset, err := r.lookupDataset(ctx, identifier)
	if err != nil {
		return nil, err
	}

	r.storeID(ctx, opine.KindDataset, identifier, dataset.ID)

	return dataset, nil
}

// ResolveBucketID implements opine.Resolver.ResolveBucketID.
func (r *Resolver) ResolveBucketID(ctx context.Context, identifier opine.Identifier) (string, error) {
	if id, ok := identifier.ID(); ok {
		return id, nil
	}

	if id, ok := r.cachedID(ctx, opine.KindBucket, identifier); ok {
		return id, nil
	}

	bucket, err := r.lookupBucket(ctx, identifier)
	if err != nil {
		return "", err
	}

	r.storeID(ctx, opine.KindBucket, identifier, bucket.ID)

	return bucket.ID, nil
}

// ResolveBucket implements opine.Resolver.ResolveBucket.
func (r *Resolver) ResolveBucket(ctx context.Context, identifier opine.Identifier) (*opine.Bucket, error) {
	bucket, err := r.lookupBucket(ctx, identifier)
	if err != nil {
		return nil, err
	}

	r.storeID(ctx, opine.KindBucket, identifier, bucket.ID)

	return bucket, nil
}

func (r *Resolver) lookupSource(ctx context.Context, identifier opine.Identifier) (*opine.Source, error) {
	source, err := r.sources.Get(ctx, identifier)
	if err != nil {
		return nil, mapNotFound(err, opine.KindSource, identifier)
	}

	return source, nil
}

func (r *Resolver) lookupDataset(ctx context.Context, identifier opine.Identifier) (*opine.Dataset, error) {
	dataset, err := r.datasets.Get(ctx, identifier)
	if err != nil {
		return nil, mapNotFound(err, opine.KindDataset, identifier)
	}

	return dataset, nil
}

func (r *Resolver) lookupBucket(ctx context.Context, identifier opine.Identifier) (*opine.Bucket, error) {
	bucket, err := r.buckets.Get(ctx, identifier)
	if err != nil {
		return nil, mapNotFound(err, opine.KindBucket, identifier)
	}

	return bucket, nil
}

// cachedID checks the resolution cache for a previously resolved name.
// Cache failures degrade to a miss.
func (r *Resolver) cachedID(ctx context.Context, kind opine.ResourceKind, identifier opine.Identifier) (string, bool) {
	entry, err := r.cache.Get(ctx, resolutionKey(kind, identifier))
	if err != nil || entry == nil || entry.Expired() {
		return "", false
	}

	return string(entry.Data), true
}

// storeID memoizes a name-to-id resolution. Id-form identifiers are not
// stored, and cache write failures are ignored.
func (r *Resolver) storeID(ctx context.Context, kind opine.ResourceKind, identifier opine.Identifier, id string) {
	if identifier.IsID() || id == "" {
		return
	}

	entry := &opine.CacheEntry{
		Data:      []byte(id),
		ExpiresAt: time.Now().Add(r.cacheTTL),
	}
	_ = r.cache.Set(ctx, resolutionKey(kind, identifier), entry)
}

func resolutionKey(kind opine.ResourceKind, identifier opine.Identifier) string {
	return fmt.Sprintf("%s:%s", kind, identifier)
}

// mapNotFound converts an API 404 into a resolution NotFoundError naming
// the identifier and kind. Other errors pass through unchanged.
func mapNotFound(err error, kind opine.ResourceKind, identifier opine.Identifier) error {
	apiErr := &opine.APIError{}
	if errors.As(err, &apiErr) && apiErr.StatusCode == 404 {
		return &opine.NotFoundError{Kind: kind, Identifier: identifier}
	}

	return err
}
