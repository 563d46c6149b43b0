package hubspot

import (
	"context"
	"net/url"
	"strconv"
)

// ResourceIteratee is a caller-supplied callback invoked once per fetched
// item, in page order and in item order within a page. A non-nil return
// aborts the remaining iteration and propagates unchanged.
type ResourceIteratee[T any] func(item T) error

// PageQuerier issues a single authenticated GET against a resource path and
// decodes the JSON response into out. It is the query primitive under both
// pagination variants; the transport in internal/http implements it.
type PageQuerier interface {
	GetJSON(ctx context.Context, path string, query url.Values, out any) error
}

// PageFunc fetches the next page of a resource. It returns the page's items
// and whether another page should be requested. Implementations carry the
// continuation state (cursor or offset) between calls.
type PageFunc[T any] func(ctx context.Context) (items []T, more bool, err error)

// Iterator walks a paginated resource one page at a time. The same iterator
// drives both HubSpot pagination protocols; the variant is chosen by the
// PageFunc it is built on. Iterators are single-use and not safe for
// concurrent use; pages are always fetched strictly sequentially.
type Iterator[T any] struct {
	next    PageFunc[T]
	hasNext bool
}

// NewIterator creates an iterator over the given page source.
func NewIterator[T any](next PageFunc[T]) *Iterator[T] {
	return &Iterator[T]{
		next:    next,
		hasNext: true,
	}
}

// NewCursorIterator creates an iterator over a v3 collection endpoint that
// pages with a paging.next.after cursor.
func NewCursorIterator[T any](querier PageQuerier, path string, params url.Values) *Iterator[T] {
	return NewIterator(CursorPages[T](querier, path, params))
}

// NewOffsetIterator creates an iterator over a legacy v2 endpoint that pages
// with offset/count and a hasMore flag.
func NewOffsetIterator[T any](querier PageQuerier, path string, params url.Values, count int) *Iterator[T] {
	return NewIterator(OffsetPages[T](querier, path, params, count))
}

// HasNext reports whether another page may be available.
func (it *Iterator[T]) HasNext() bool {
	return it.hasNext
}

// NextPage fetches the next page. It returns ErrNoMoreItems once the
// resource is exhausted, and any fetch failure ends the iteration.
func (it *Iterator[T]) NextPage(ctx context.Context) ([]T, error) {
	if !it.hasNext {
		return nil, ErrNoMoreItems
	}

	items, more, err := it.next(ctx)
	if err != nil {
		it.hasNext = false

		return nil, err
	}

	it.hasNext = more

	return items, nil
}

// ForEach drains the iterator, invoking fn once per item. Every callback for
// page N returns before page N+1 is requested; a callback error aborts the
// iteration and is returned unchanged.
func (it *Iterator[T]) ForEach(ctx context.Context, fn ResourceIteratee[T]) error {
	if fn == nil {
		return ErrNilIteratee
	}

	for it.HasNext() {
		if err := ctx.Err(); err != nil {
			return err
		}

		items, err := it.NextPage(ctx)
		if err != nil {
			return err
		}

		for _, item := range items {
			err := fn(item)
			if err != nil {
				return err
			}
		}
	}

	return nil
}

// All drains the iterator and returns every item.
func (it *Iterator[T]) All(ctx context.Context) ([]T, error) {
	var all []T

	err := it.ForEach(ctx, func(item T) error {
		all = append(all, item)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return all, nil
}

// CursorPages returns a page source that follows paging.next.after cursors,
// merging the prior page's cursor into the next request under the `after`
// key. Iteration continues while a page has results and exposes a cursor.
func CursorPages[T any](querier PageQuerier, path string, params url.Values) PageFunc[T] {
	after := ""

	return func(ctx context.Context) ([]T, bool, error) {
		query := cloneValues(params)
		if after != "" {
			query.Set("after", after)
		}

		var page CollectionResponse[T]

		err := querier.GetJSON(ctx, path, query, &page)
		if err != nil {
			return nil, false, err
		}

		after = page.NextAfter()
		more := len(page.Results) > 0 && after != ""

		return page.Results, more, nil
	}
}

// OffsetPages returns a page source for the legacy offset/count protocol.
// The page size is fixed for the whole iteration; the offset of each request
// is the offset reported by the prior response (zero first). Any extra
// params, notably `since`, pass through unchanged on every page.
// Iteration continues while the response has results and reports hasMore.
func OffsetPages[T any](querier PageQuerier, path string, params url.Values, count int) PageFunc[T] {
	offset := int64(0)

	return func(ctx context.Context) ([]T, bool, error) {
		query := cloneValues(params)
		query.Set("count", strconv.Itoa(count))
		query.Set("offset", strconv.FormatInt(offset, 10))

		var page LegacyCollectionResponse[T]

		err := querier.GetJSON(ctx, path, query, &page)
		if err != nil {
			return nil, false, err
		}

		offset = page.Offset
		more := page.HasMore && len(page.Results) > 0

		return page.Results, more, nil
	}
}

func cloneValues(values url.Values) url.Values {
	clone := url.Values{}

	for key, vals := range values {
		for _, val := range vals {
			clone.Add(key, val)
		}
	}

	return clone
}
