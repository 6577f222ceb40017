package opine_test

import (
	"context"
	"errors"
	"testing"

	"github.com/opine-io/opine-client/pkg/opine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errFetchFailed = errors.New("fetch failed")

// pagedFetcher serves fixed pages keyed by continuation token and counts
// calls.
func pagedFetcher(pages map[string]struct {
	items []string
	next  string
}, calls *int,
) opine.PageFetcher[string] {
	return func(ctx context.Context, continuation string) ([]string, string, error) {
		*calls++

		page, ok := pages[continuation]
		if !ok {
			return nil, "", errFetchFailed
		}

		return page.items, page.next, nil
	}
}

func threePages() map[string]struct {
	items []string
	next  string
} {
	return map[string]struct {
		items []string
		next  string
	}{
		"":   {items: []string{"a", "b"}, next: "t1"},
		"t1": {items: []string{"c"}, next: "t2"},
		"t2": {items: []string{"d", "e"}, next: ""},
	}
}

func TestPageIterator_WalksAllPagesInOrder(t *testing.T) {
	t.Parallel()

	calls := 0
	iterator := opine.NewPageIterator(context.Background(), pagedFetcher(threePages(), &calls))

	var items []string

	for iterator.HasNext() {
		item, err := iterator.Next()
		if errors.Is(err, opine.ErrNoMoreItems) {
			break
		}

		require.NoError(t, err)

		items = append(items, item)
	}

	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, items)
	assert.Equal(t, 3, calls)
}

func TestPageIterator_IsLazy(t *testing.T) {
	t.Parallel()

	calls := 0
	iterator := opine.NewPageIterator(context.Background(), pagedFetcher(threePages(), &calls))

	// Creating the iterator fetches nothing.
	assert.Equal(t, 0, calls)
	assert.True(t, iterator.HasNext())
	assert.Equal(t, 0, calls)

	// Items already buffered do not trigger another fetch.
	_, err := iterator.Next()
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	_, err = iterator.Next()
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestPageIterator_All(t *testing.T) {
	t.Parallel()

	calls := 0
	iterator := opine.NewPageIterator(context.Background(), pagedFetcher(threePages(), &calls))

	items, err := iterator.All()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, items)

	// The iterator is exhausted.
	_, err = iterator.Next()
	require.ErrorIs(t, err, opine.ErrNoMoreItems)
}

func TestPageIterator_ForEach(t *testing.T) {
	t.Parallel()

	calls := 0
	iterator := opine.NewPageIterator(context.Background(), pagedFetcher(threePages(), &calls))

	var seen []string

	err := iterator.ForEach(func(item string) error {
		seen = append(seen, item)

		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, seen)
}

func TestPageIterator_PropagatesFetchError(t *testing.T) {
	t.Parallel()

	fetcher := func(ctx context.Context, continuation string) ([]string, string, error) {
		if continuation == "" {
			return []string{"a"}, "bad", nil
		}

		return nil, "", errFetchFailed
	}

	iterator := opine.NewPageIterator(context.Background(), fetcher)

	item, err := iterator.Next()
	require.NoError(t, err)
	assert.Equal(t, "a", item)

	_, err = iterator.Next()
	require.ErrorIs(t, err, errFetchFailed)
}

func TestFetchAllPages(t *testing.T) {
	t.Parallel()

	calls := 0

	items, err := opine.FetchAllPages(context.Background(), pagedFetcher(threePages(), &calls), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, items)
	assert.Equal(t, 3, calls)
}

func TestFetchAllPages_MaxPages(t *testing.T) {
	t.Parallel()

	calls := 0
	options := &opine.PaginationOptions{MaxPages: 2}

	items, err := opine.FetchAllPages(context.Background(), pagedFetcher(threePages(), &calls), options)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, items)
	assert.Equal(t, 2, calls)
}

func TestStreamPages(t *testing.T) {
	t.Parallel()

	calls := 0
	results := opine.StreamPages(context.Background(), pagedFetcher(threePages(), &calls))

	var items []string

	for result := range results {
		require.NoError(t, result.Err)

		items = append(items, result.Items...)
	}

	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, items)
}

func TestStreamPages_DeliversError(t *testing.T) {
	t.Parallel()

	fetcher := func(ctx context.Context, continuation string) ([]string, string, error) {
		return nil, "", errFetchFailed
	}

	results := opine.StreamPages(context.Background(), fetcher)

	result, ok := <-results
	require.True(t, ok)
	require.ErrorIs(t, result.Err, errFetchFailed)

	_, ok = <-results
	assert.False(t, ok)
}
