package client

import (
	"context"

	"github.com/graphwell-io/hubsync/internal/http"
	"github.com/graphwell-io/hubsync/pkg/hubspot"
)

// PropertiesClient implements hubspot.PropertiesClient.
type PropertiesClient struct {
	httpClient *http.Client
}

// NewPropertiesClient creates a new properties client.
func NewPropertiesClient(httpClient *http.Client) *PropertiesClient {
	return &PropertiesClient{
		httpClient: httpClient,
	}
}

// List implements hubspot.PropertiesClient.List.
func (c *PropertiesClient) List(ctx context.Context, objectType string) (*hubspot.CollectionResponse[hubspot.Property], error) {
	if objectType == "" {
		return nil, hubspot.ErrObjectTypeRequired
	}

	path := "/crm/v3/properties/" + objectType

	var page hubspot.CollectionResponse[hubspot.Property]

	err := c.httpClient.GetJSON(ctx, path, nil, &page)
	if err != nil {
		return nil, hubspot.NewAPIError(hubspot.PropertiesEndpoint, err)
	}

	return &page, nil
}
