package hubspot

import (
	"context"
)

// OwnersClient provides access to CRM owner records.
type OwnersClient interface {
	// List fetches a single page of owners.
	List(ctx context.Context, params *ListParams) (*CollectionResponse[Owner], error)
	// Each iterates every owner, cursor page by cursor page, invoking fn
	// once per record.
	Each(ctx context.Context, fn ResourceIteratee[Owner]) error
}

// RolesClient provides access to account role records.
type RolesClient interface {
	// List fetches a single page of roles.
	List(ctx context.Context, params *ListParams) (*CollectionResponse[Role], error)
	// Each iterates every role, cursor page by cursor page, invoking fn once
	// per record.
	Each(ctx context.Context, fn ResourceIteratee[Role]) error
}

// UsersClient provides access to account user records.
type UsersClient interface {
	// Get fetches a single user by id.
	Get(ctx context.Context, userID string) (*User, error)
}

// CompaniesClient provides access to company records via the legacy v2 API.
type CompaniesClient interface {
	// RecentlyModified fetches a single page of recently modified companies.
	RecentlyModified(ctx context.Context, params *RecentlyModifiedParams) (*LegacyCollectionResponse[Company], error)
	// EachRecentlyModified iterates every company modified since the last
	// successful run (the full history when no run succeeded yet), invoking
	// fn once per record.
	EachRecentlyModified(ctx context.Context, fn ResourceIteratee[Company]) error
}

// PropertiesClient provides access to CRM property definitions.
type PropertiesClient interface {
	// List fetches the property definitions of an object type, e.g.
	// "contacts".
	List(ctx context.Context, objectType string) (*CollectionResponse[Property], error)
}

// CRMClients provides access to CRM-surface resource clients.
type CRMClients interface {
	Owners() OwnersClient
	Companies() CompaniesClient
	Properties() PropertiesClient
}

// SettingsClients provides access to account-settings resource clients.
type SettingsClients interface {
	Users() UsersClient
	Roles() RolesClient
}

// Client is the facade over the collected HubSpot surface. The hsclient
// package builds the concrete implementation.
type Client interface {
	CRMClients
	SettingsClients

	// VerifyAuthentication probes a lightweight endpoint to prove the
	// configured credentials work. Any failure, including a successful
	// response with an empty body, is reported as an
	// *AuthenticationError.
	VerifyAuthentication(ctx context.Context) error
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}
