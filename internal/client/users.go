package client

import (
	"context"

	"github.com/graphwell-io/hubsync/internal/http"
	"github.com/graphwell-io/hubsync/pkg/hubspot"
)

// UsersClient implements hubspot.UsersClient.
type UsersClient struct {
	httpClient *http.Client
}

// NewUsersClient creates a new users client.
func NewUsersClient(httpClient *http.Client) *UsersClient {
	return &UsersClient{
		httpClient: httpClient,
	}
}

// Get implements hubspot.UsersClient.Get. Failures carry the endpoint path
// template, never the resolved user URL.
func (c *UsersClient) Get(ctx context.Context, userID string) (*hubspot.User, error) {
	if userID == "" {
		return nil, hubspot.ErrUserIDRequired
	}

	path := "/settings/v3/users/" + userID

	var user hubspot.User

	err := c.httpClient.GetJSON(ctx, path, nil, &user)
	if err != nil {
		return nil, hubspot.NewAPIError(hubspot.UserEndpoint, err)
	}

	return &user, nil
}
