package client

import (
	"context"

	"github.com/graphwell-io/hubsync/internal/constants"
	"github.com/graphwell-io/hubsync/internal/http"
	"github.com/graphwell-io/hubsync/pkg/hubspot"
)

// OwnersClient implements hubspot.OwnersClient.
type OwnersClient struct {
	httpClient *http.Client
}

// NewOwnersClient creates a new owners client.
func NewOwnersClient(httpClient *http.Client) *OwnersClient {
	return &OwnersClient{
		httpClient: httpClient,
	}
}

// List implements hubspot.OwnersClient.List.
func (c *OwnersClient) List(ctx context.Context, params *hubspot.ListParams) (*hubspot.CollectionResponse[hubspot.Owner], error) {
	var page hubspot.CollectionResponse[hubspot.Owner]

	err := c.httpClient.GetJSON(ctx, hubspot.OwnersEndpoint, params.ToValues(), &page)
	if err != nil {
		return nil, hubspot.NewAPIError(hubspot.OwnersEndpoint, err)
	}

	return &page, nil
}

// Each implements hubspot.OwnersClient.Each. Pages are fetched with the
// largest page size the endpoint accepts, following paging.next.after
// cursors until a page has no cursor or no results.
func (c *OwnersClient) Each(ctx context.Context, fn hubspot.ResourceIteratee[hubspot.Owner]) error {
	params := hubspot.NewListParams().WithLimit(constants.DefaultPageLimit)

	pages := hubspot.CursorPages[hubspot.Owner](c.httpClient, hubspot.OwnersEndpoint, params.ToValues())
	iterator := hubspot.NewIterator(wrapPageErrors(hubspot.OwnersEndpoint, pages))

	return iterator.ForEach(ctx, fn)
}
