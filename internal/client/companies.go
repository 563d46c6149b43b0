package client

import (
	"context"
	"net/url"
	"strconv"

	"github.com/graphwell-io/hubsync/internal/constants"
	"github.com/graphwell-io/hubsync/internal/http"
	"github.com/graphwell-io/hubsync/pkg/hubspot"
)

// CompaniesClient implements hubspot.CompaniesClient against the legacy v2
// companies API.
type CompaniesClient struct {
	httpClient *http.Client
	history    *hubspot.ExecutionHistory
}

// NewCompaniesClient creates a new companies client. The execution history
// supplies the incremental watermark; nil means no prior successful run.
func NewCompaniesClient(httpClient *http.Client, history *hubspot.ExecutionHistory) *CompaniesClient {
	return &CompaniesClient{
		httpClient: httpClient,
		history:    history,
	}
}

// RecentlyModified implements hubspot.CompaniesClient.RecentlyModified.
func (c *CompaniesClient) RecentlyModified(ctx context.Context, params *hubspot.RecentlyModifiedParams) (*hubspot.LegacyCollectionResponse[hubspot.Company], error) {
	var page hubspot.LegacyCollectionResponse[hubspot.Company]

	err := c.httpClient.GetJSON(ctx, hubspot.RecentCompaniesEndpoint, params.ToValues(), &page)
	if err != nil {
		return nil, hubspot.NewAPIError(hubspot.RecentCompaniesEndpoint, err)
	}

	return &page, nil
}

// EachRecentlyModified implements hubspot.CompaniesClient.EachRecentlyModified.
// The legacy endpoint pages by offset with a fixed count of 30; `since` is
// the start of the last successful run in epoch milliseconds and is sent on
// every page, explicitly as 0 when no successful run exists so a first sync
// requests the full modification history.
func (c *CompaniesClient) EachRecentlyModified(ctx context.Context, fn hubspot.ResourceIteratee[hubspot.Company]) error {
	params := url.Values{}
	params.Set("since", strconv.FormatInt(c.history.SinceMillis(), 10))

	pages := hubspot.OffsetPages[hubspot.Company](c.httpClient, hubspot.RecentCompaniesEndpoint, params, constants.LegacyPageSize)
	iterator := hubspot.NewIterator(wrapPageErrors(hubspot.RecentCompaniesEndpoint, pages))

	return iterator.ForEach(ctx, fn)
}
