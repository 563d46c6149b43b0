package hubspot_test

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphwell-io/hubsync/pkg/hubspot"
)

type pageItem struct {
	ID string `json:"id"`
}

// cursorQuerier implements PageQuerier with canned v3 pages keyed by the
// requested after cursor.
type cursorQuerier struct {
	pages map[string]hubspot.CollectionResponse[pageItem]
	calls []url.Values
}

func (q *cursorQuerier) GetJSON(_ context.Context, _ string, query url.Values, out any) error {
	q.calls = append(q.calls, query)

	page, ok := q.pages[query.Get("after")]
	if !ok {
		return errors.New("unexpected cursor " + query.Get("after"))
	}

	*out.(*hubspot.CollectionResponse[pageItem]) = page

	return nil
}

// offsetQuerier implements PageQuerier with canned legacy pages keyed by the
// requested offset.
type offsetQuerier struct {
	pages map[string]hubspot.LegacyCollectionResponse[pageItem]
	calls []url.Values
}

func (q *offsetQuerier) GetJSON(_ context.Context, _ string, query url.Values, out any) error {
	q.calls = append(q.calls, query)

	page, ok := q.pages[query.Get("offset")]
	if !ok {
		return errors.New("unexpected offset " + query.Get("offset"))
	}

	*out.(*hubspot.LegacyCollectionResponse[pageItem]) = page

	return nil
}

type failingQuerier struct {
	err error
}

func (q *failingQuerier) GetJSON(context.Context, string, url.Values, any) error {
	return q.err
}

func itemIDs(items []pageItem) []string {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}

	return ids
}

func TestCursorIterator_WalksAllPages(t *testing.T) {
	querier := &cursorQuerier{
		pages: map[string]hubspot.CollectionResponse[pageItem]{
			"": {
				Results: []pageItem{{ID: "1"}, {ID: "2"}},
				Paging:  &hubspot.Paging{Next: &hubspot.PagingNext{After: "c1"}},
			},
			"c1": {
				Results: []pageItem{{ID: "3"}},
			},
		},
	}

	iterator := hubspot.NewCursorIterator[pageItem](querier, hubspot.OwnersEndpoint, url.Values{
		"limit": []string{"100"},
	})

	items, err := iterator.All(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, itemIDs(items))

	// One request per page, cursor threaded through, limit preserved.
	require.Len(t, querier.calls, 2)
	assert.Empty(t, querier.calls[0].Get("after"))
	assert.Equal(t, "100", querier.calls[0].Get("limit"))
	assert.Equal(t, "c1", querier.calls[1].Get("after"))
	assert.Equal(t, "100", querier.calls[1].Get("limit"))

	assert.False(t, iterator.HasNext())

	_, err = iterator.NextPage(context.Background())
	assert.ErrorIs(t, err, hubspot.ErrNoMoreItems)
}

func TestCursorIterator_EmptyFirstPage(t *testing.T) {
	querier := &cursorQuerier{
		pages: map[string]hubspot.CollectionResponse[pageItem]{
			"": {},
		},
	}

	iterator := hubspot.NewCursorIterator[pageItem](querier, hubspot.OwnersEndpoint, nil)

	items, err := iterator.All(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Len(t, querier.calls, 1)
}

func TestOffsetIterator_WalksAllPages(t *testing.T) {
	querier := &offsetQuerier{
		pages: map[string]hubspot.LegacyCollectionResponse[pageItem]{
			"0": {
				Results: []pageItem{{ID: "a"}, {ID: "b"}},
				HasMore: true,
				Offset:  2,
			},
			"2": {
				Results: []pageItem{{ID: "c"}},
				HasMore: false,
				Offset:  3,
			},
		},
	}

	iterator := hubspot.NewOffsetIterator[pageItem](querier, hubspot.RecentCompaniesEndpoint, url.Values{
		"since": []string{"1700000000000"},
	}, 2)

	items, err := iterator.All(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, itemIDs(items))

	// The offset of each request is the offset reported by the prior page,
	// and the since bound rides along on every page.
	require.Len(t, querier.calls, 2)
	assert.Equal(t, "0", querier.calls[0].Get("offset"))
	assert.Equal(t, "2", querier.calls[1].Get("offset"))

	for _, call := range querier.calls {
		assert.Equal(t, "2", call.Get("count"))
		assert.Equal(t, "1700000000000", call.Get("since"))
	}
}

func TestIterator_FetchErrorStopsIteration(t *testing.T) {
	errBackend := errors.New("backend unavailable")
	iterator := hubspot.NewCursorIterator[pageItem](&failingQuerier{err: errBackend}, hubspot.OwnersEndpoint, nil)

	_, err := iterator.NextPage(context.Background())
	assert.ErrorIs(t, err, errBackend)
	assert.False(t, iterator.HasNext())

	_, err = iterator.NextPage(context.Background())
	assert.ErrorIs(t, err, hubspot.ErrNoMoreItems)
}

func TestIterator_ForEachCallbackError(t *testing.T) {
	errStop := errors.New("stop here")
	querier := &cursorQuerier{
		pages: map[string]hubspot.CollectionResponse[pageItem]{
			"": {
				Results: []pageItem{{ID: "1"}, {ID: "2"}},
				Paging:  &hubspot.Paging{Next: &hubspot.PagingNext{After: "c1"}},
			},
		},
	}

	iterator := hubspot.NewCursorIterator[pageItem](querier, hubspot.OwnersEndpoint, nil)

	var seen []string

	err := iterator.ForEach(context.Background(), func(item pageItem) error {
		seen = append(seen, item.ID)

		return errStop
	})

	assert.ErrorIs(t, err, errStop)
	assert.Equal(t, []string{"1"}, seen)
	assert.Len(t, querier.calls, 1)
}

func TestIterator_ForEachNilIteratee(t *testing.T) {
	iterator := hubspot.NewCursorIterator[pageItem](&cursorQuerier{}, hubspot.OwnersEndpoint, nil)

	err := iterator.ForEach(context.Background(), nil)
	assert.ErrorIs(t, err, hubspot.ErrNilIteratee)
}

func TestIterator_ForEachCanceledContext(t *testing.T) {
	querier := &cursorQuerier{}
	iterator := hubspot.NewCursorIterator[pageItem](querier, hubspot.OwnersEndpoint, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := iterator.ForEach(ctx, func(pageItem) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, querier.calls)
}
