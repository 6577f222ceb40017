package opine

import (
	"net/url"
	"strconv"
	"strings"
)

// QueryParams represents common query options for list endpoints.
type QueryParams struct {
	// Limit is the maximum number of items per page.
	Limit int

	// Continuation is the opaque cursor returned by the previous page.
	Continuation string

	// Filters holds additional filter parameters; multiple values for a
	// key are joined with commas.
	Filters map[string][]string
}

// NewQueryParams creates empty query parameters.
func NewQueryParams() *QueryParams {
	return &QueryParams{
		Filters: make(map[string][]string),
	}
}

// WithLimit sets the page size.
func (q *QueryParams) WithLimit(limit int) *QueryParams {
	q.Limit = limit

	return q
}

// WithContinuation sets the continuation token.
func (q *QueryParams) WithContinuation(token string) *QueryParams {
	q.Continuation = token

	return q
}

// WithFilter adds a filter value.
func (q *QueryParams) WithFilter(key string, values ...string) *QueryParams {
	if q.Filters == nil {
		q.Filters = make(map[string][]string)
	}

	q.Filters[key] = append(q.Filters[key], values...)

	return q
}

// ToValues converts the parameters to url.Values.
func (q *QueryParams) ToValues() url.Values {
	values := url.Values{}

	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}

	if q.Continuation != "" {
		values.Set("continuation", q.Continuation)
	}

	for key, filterValues := range q.Filters {
		if len(filterValues) > 0 {
			values.Set(key, strings.Join(filterValues, ","))
		}
	}

	return values
}
