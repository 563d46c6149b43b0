// Package client implements the hubspot.Client facade and the resource
// clients behind it. Construction normally goes through pkg/hsclient, which
// assembles the transport from a hubspot.Config.
package client

import (
	"context"

	"github.com/graphwell-io/hubsync/internal/http"
	"github.com/graphwell-io/hubsync/pkg/hubspot"
)

// Client implements the hubspot.Client interface.
type Client struct {
	httpClient *http.Client
	baseURL    string
	history    *hubspot.ExecutionHistory
	logger     hubspot.Logger

	// Resource clients
	owners     hubspot.OwnersClient
	roles      hubspot.RolesClient
	users      hubspot.UsersClient
	companies  hubspot.CompaniesClient
	properties hubspot.PropertiesClient
}

// New creates a client facade over an assembled transport. The execution
// history bounds the incremental companies fetch and may be nil for a full
// sync.
func New(httpClient *http.Client, baseURL string, history *hubspot.ExecutionHistory) *Client {
	client := &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		history:    history,
	}

	client.initializeResourceClients()

	return client
}

// WithLogger attaches a logger used by the facade-level operations.
func (c *Client) WithLogger(logger hubspot.Logger) *Client {
	c.logger = logger

	return c
}

// initializeResourceClients creates all resource clients.
func (c *Client) initializeResourceClients() {
	c.owners = NewOwnersClient(c.httpClient)
	c.roles = NewRolesClient(c.httpClient)
	c.users = NewUsersClient(c.httpClient)
	c.companies = NewCompaniesClient(c.httpClient, c.history)
	c.properties = NewPropertiesClient(c.httpClient)
}

// Owners returns the owners resource client.
func (c *Client) Owners() hubspot.OwnersClient {
	return c.owners
}

// Roles returns the roles resource client.
func (c *Client) Roles() hubspot.RolesClient {
	return c.roles
}

// Users returns the users resource client.
func (c *Client) Users() hubspot.UsersClient {
	return c.users
}

// Companies returns the companies resource client.
func (c *Client) Companies() hubspot.CompaniesClient {
	return c.companies
}

// Properties returns the properties resource client.
func (c *Client) Properties() hubspot.PropertiesClient {
	return c.properties
}

// VerifyAuthentication implements hubspot.Client.VerifyAuthentication. It
// probes the contact property definitions, a lightweight endpoint every
// integration token can read. Any failure, including a 2xx response with
// an empty body, is reported as an *hubspot.AuthenticationError carrying
// the cause.
func (c *Client) VerifyAuthentication(ctx context.Context) error {
	var page hubspot.CollectionResponse[hubspot.Property]

	err := c.httpClient.GetJSON(ctx, hubspot.ContactPropertiesEndpoint, nil, &page)
	if err != nil {
		return hubspot.NewAuthenticationError(hubspot.ContactPropertiesEndpoint, err)
	}

	if c.logger != nil {
		c.logger.Debug("authentication verified", map[string]interface{}{
			"endpoint":   hubspot.ContactPropertiesEndpoint,
			"properties": len(page.Results),
		})
	}

	return nil
}

// wrapPageErrors decorates a page source so fetch failures surface as
// resource-scoped API errors carrying the endpoint path template. Iteratee
// errors never pass through here; they propagate from ForEach unchanged.
func wrapPageErrors[T any](endpoint string, next hubspot.PageFunc[T]) hubspot.PageFunc[T] {
	return func(ctx context.Context) ([]T, bool, error) {
		items, more, err := next(ctx)
		if err != nil {
			return nil, false, hubspot.NewAPIError(endpoint, err)
		}

		return items, more, nil
	}
}
