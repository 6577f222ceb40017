package opine

import (
	"context"
	"errors"

	"github.com/opine-io/opine-client/internal/constants"
)

// PageFetcher fetches one page of items. An empty continuation requests
// the first page; the returned continuation is passed to the next call,
// and an empty returned continuation signals the end of data.
type PageFetcher[T any] func(ctx context.Context, continuation string) (items []T, next string, err error)

// PaginationOptions configures bulk page fetching.
type PaginationOptions struct {
	// MaxPages limits the number of pages fetched; 0 means no limit.
	MaxPages int
}

// DefaultPaginationOptions returns the default pagination options.
func DefaultPaginationOptions() *PaginationOptions {
	return &PaginationOptions{}
}

// PageIterator lazily walks a continuation-paginated endpoint, yielding
// items in the order the service returns them. It is finite as long as
// the service eventually stops returning a continuation, and it cannot
// be restarted.
type PageIterator[T any] struct {
	ctx          context.Context
	fetch        PageFetcher[T]
	buffer       []T
	continuation string
	started      bool
	done         bool
}

// NewPageIterator creates an iterator over a paginated endpoint.
func NewPageIterator[T any](ctx context.Context, fetch PageFetcher[T]) *PageIterator[T] {
	return &PageIterator[T]{
		ctx:   ctx,
		fetch: fetch,
	}
}

// HasNext reports whether another item may be available. It returns true
// before the first fetch.
func (it *PageIterator[T]) HasNext() bool {
	return len(it.buffer) > 0 || !it.done
}

// Next returns the next item, fetching pages as needed. After the last
// item it returns ErrNoMoreItems.
func (it *PageIterator[T]) Next() (T, error) {
	var zero T

	for len(it.buffer) == 0 {
		if it.done {
			return zero, ErrNoMoreItems
		}

		err := it.fetchPage()
		if err != nil {
			return zero, err
		}
	}

	item := it.buffer[0]
	it.buffer = it.buffer[1:]

	return item, nil
}

// All drains the iterator and returns every remaining item.
func (it *PageIterator[T]) All() ([]T, error) {
	var all []T

	for it.HasNext() {
		item, err := it.Next()
		if err != nil {
			if errors.Is(err, ErrNoMoreItems) {
				break
			}

			return nil, err
		}

		all = append(all, item)
	}

	return all, nil
}

// ForEach applies fn to every remaining item, stopping on the first error.
func (it *PageIterator[T]) ForEach(fn func(T) error) error {
	for it.HasNext() {
		item, err := it.Next()
		if err != nil {
			if errors.Is(err, ErrNoMoreItems) {
				return nil
			}

			return err
		}

		err = fn(item)
		if err != nil {
			return err
		}
	}

	return nil
}

func (it *PageIterator[T]) fetchPage() error {
	items, next, err := it.fetch(it.ctx, it.continuation)
	if err != nil {
		return err
	}

	it.started = true
	it.buffer = append(it.buffer, items...)
	it.continuation = next

	if next == "" {
		it.done = true
	}

	return nil
}

// FetchAllPages collects every item from a paginated endpoint, in order.
func FetchAllPages[T any](ctx context.Context, fetch PageFetcher[T], options *PaginationOptions) ([]T, error) {
	if options == nil {
		options = DefaultPaginationOptions()
	}

	var (
		all          []T
		continuation string
		pages        int
	)

	for {
		items, next, err := fetch(ctx, continuation)
		if err != nil {
			return nil, err
		}

		all = append(all, items...)
		pages++

		if next == "" {
			return all, nil
		}

		if options.MaxPages > 0 && pages >= options.MaxPages {
			return all, nil
		}

		continuation = next
	}
}

// PageResult is one page delivered by StreamPages.
type PageResult[T any] struct {
	Items        []T
	Continuation string
	Err          error
}

// StreamPages fetches pages in a background goroutine and delivers them
// on a channel. The channel closes after the last page, after the first
// error, or when ctx is cancelled.
func StreamPages[T any](ctx context.Context, fetch PageFetcher[T]) <-chan PageResult[T] {
	results := make(chan PageResult[T], constants.StreamBufferSize)

	go func() {
		defer close(results)

		var continuation string

		for {
			items, next, err := fetch(ctx, continuation)

			result := PageResult[T]{Items: items, Continuation: next, Err: err}
			select {
			case results <- result:
			case <-ctx.Done():
				return
			}

			if err != nil || next == "" {
				return
			}

			continuation = next
		}
	}()

	return results
}
