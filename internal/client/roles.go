package client

import (
	"context"

	"github.com/graphwell-io/hubsync/internal/constants"
	"github.com/graphwell-io/hubsync/internal/http"
	"github.com/graphwell-io/hubsync/pkg/hubspot"
)

// RolesClient implements hubspot.RolesClient.
type RolesClient struct {
	httpClient *http.Client
}

// NewRolesClient creates a new roles client.
func NewRolesClient(httpClient *http.Client) *RolesClient {
	return &RolesClient{
		httpClient: httpClient,
	}
}

// List implements hubspot.RolesClient.List.
func (c *RolesClient) List(ctx context.Context, params *hubspot.ListParams) (*hubspot.CollectionResponse[hubspot.Role], error) {
	var page hubspot.CollectionResponse[hubspot.Role]

	err := c.httpClient.GetJSON(ctx, hubspot.RolesEndpoint, params.ToValues(), &page)
	if err != nil {
		return nil, hubspot.NewAPIError(hubspot.RolesEndpoint, err)
	}

	return &page, nil
}

// Each implements hubspot.RolesClient.Each. Accounts rarely carry more than
// one page of roles, but the cursor protocol is followed regardless.
func (c *RolesClient) Each(ctx context.Context, fn hubspot.ResourceIteratee[hubspot.Role]) error {
	params := hubspot.NewListParams().WithLimit(constants.DefaultPageLimit)

	pages := hubspot.CursorPages[hubspot.Role](c.httpClient, hubspot.RolesEndpoint, params.ToValues())
	iterator := hubspot.NewIterator(wrapPageErrors(hubspot.RolesEndpoint, pages))

	return iterator.ForEach(ctx, fn)
}
