// Package opine provides types, interfaces, and helpers for working with
// the Opine text-analytics API.
//
// # Overview
//
// The opine package defines the domain types (Source, Dataset, Bucket,
// Stream, Project, User, Comment) and the interfaces for resource-oriented
// clients (SourcesClient, DatasetsClient, and so on). A concrete
// implementation is provided by internal/client and constructed through
// the opineclient package entry point.
//
// # Identifiers
//
// Resources are addressed either by their opaque hex id or by an
// owner-qualified name. ParseIdentifier turns a human-provided string into
// an Identifier, and the Resolver interface turns identifiers into
// concrete resources, short-circuiting id-form identifiers without a
// network call.
//
//	source, err := opine.ParseIdentifier(opine.KindSource, "acme/support-emails")
//	if err != nil { /* bad input */ }
//
// # Envelope decoding
//
// Every API response carries a JSON envelope with a "status" field of
// "ok" or "error". Decode reconciles that tag with the HTTP status code:
// a response where the two disagree is a ProtocolError, distinct from a
// plain APIError, so callers can tell a service defect apart from an
// expected failure.
//
// # Pagination
//
// List endpoints that page results return an opaque continuation token.
// PageIterator, FetchAllPages, and StreamPages drive repeated fetches
// until the service stops returning a token:
//
//	it := opine.NewPageIterator(ctx, func(ctx context.Context, continuation string) ([]opine.Comment, string, error) {
//	  page, err := client.Comments().Query(ctx, source, opine.NewQueryParams().WithContinuation(continuation))
//	  if err != nil { return nil, "", err }
//	  return page.Comments, page.Continuation, nil
//	})
//	for it.HasNext() {
//	  comment, err := it.Next()
//	  if err != nil { break }
//	  _ = comment
//	}
//
// # Errors
//
// API failures are APIError values; envelope/status mismatches are
// ProtocolError values; failed resolutions are NotFoundError values.
// Helpers such as IsNotFound and IsUnauthorized branch on common cases.
//
// # Caching and batching
//
// The package includes a pluggable Cache (memory, NATS KV, or none) used
// to memoize name-to-id resolutions, and a BatchExecutor that runs
// independent per-resource operations with bounded concurrency.
package opine
