package hubspot

import (
	"time"
)

// Paging carries the cursor block of a v3 collection response.
type Paging struct {
	Next *PagingNext `json:"next,omitempty" yaml:"next,omitempty"`
}

// PagingNext holds the opaque cursor for the next page.
type PagingNext struct {
	After string `json:"after"          yaml:"after"`
	Link  string `json:"link,omitempty" yaml:"link,omitempty"`
}

// CollectionResponse is the envelope returned by v3 collection endpoints.
// A nil Paging (or a nil Paging.Next) marks the final page.
type CollectionResponse[T any] struct {
	Results []T     `json:"results"          yaml:"results"`
	Paging  *Paging `json:"paging,omitempty" yaml:"paging,omitempty"`
}

// NextAfter returns the cursor for the next page, or "" on the final page.
func (r *CollectionResponse[T]) NextAfter() string {
	if r == nil || r.Paging == nil || r.Paging.Next == nil {
		return ""
	}

	return r.Paging.Next.After
}

// LegacyCollectionResponse is the envelope returned by legacy v2 endpoints.
// The final page is marked by HasMore being false or by an empty Results.
type LegacyCollectionResponse[T any] struct {
	Results []T   `json:"results"         yaml:"results"`
	HasMore bool  `json:"hasMore"         yaml:"hasMore"`
	Offset  int64 `json:"offset"          yaml:"offset"`
	Total   int64 `json:"total,omitempty" yaml:"total,omitempty"`
}

// Owner is a CRM owner record from /crm/v3/owners.
type Owner struct {
	ID        string      `json:"id"               yaml:"id"`
	Email     string      `json:"email"            yaml:"email"`
	FirstName string      `json:"firstName"        yaml:"firstName"`
	LastName  string      `json:"lastName"         yaml:"lastName"`
	UserID    int64       `json:"userId,omitempty" yaml:"userId,omitempty"`
	Archived  bool        `json:"archived"         yaml:"archived"`
	Teams     []OwnerTeam `json:"teams,omitempty"  yaml:"teams,omitempty"`
	CreatedAt time.Time   `json:"createdAt"        yaml:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"        yaml:"updatedAt"`
}

// OwnerTeam is a team membership embedded in an owner record.
type OwnerTeam struct {
	ID      string `json:"id"      yaml:"id"`
	Name    string `json:"name"    yaml:"name"`
	Primary bool   `json:"primary" yaml:"primary"`
}

// Role is an account role record from /settings/v3/users/roles.
type Role struct {
	ID                   string `json:"id"                             yaml:"id"`
	Name                 string `json:"name"                           yaml:"name"`
	RequiresBillingWrite bool   `json:"requiresBillingWrite,omitempty" yaml:"requiresBillingWrite,omitempty"`
}

// User is an account user record from /settings/v3/users/{userId}.
type User struct {
	ID               string   `json:"id"                         yaml:"id"`
	Email            string   `json:"email"                      yaml:"email"`
	RoleID           string   `json:"roleId,omitempty"           yaml:"roleId,omitempty"`
	PrimaryTeamID    string   `json:"primaryTeamId,omitempty"    yaml:"primaryTeamId,omitempty"`
	SecondaryTeamIDs []string `json:"secondaryTeamIds,omitempty" yaml:"secondaryTeamIds,omitempty"`
	SuperAdmin       bool     `json:"superAdmin,omitempty"       yaml:"superAdmin,omitempty"`
}

// Company is a company record from the legacy v2 companies API. Property
// values arrive as a versioned map rather than flat fields.
type Company struct {
	CompanyID  int64                      `json:"companyId"           yaml:"companyId"`
	PortalID   int64                      `json:"portalId,omitempty"  yaml:"portalId,omitempty"`
	IsDeleted  bool                       `json:"isDeleted,omitempty" yaml:"isDeleted,omitempty"`
	Properties map[string]CompanyProperty `json:"properties"          yaml:"properties"`
}

// CompanyProperty is a single versioned property value on a legacy company
// record.
type CompanyProperty struct {
	Value     string `json:"value"               yaml:"value"`
	Timestamp int64  `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
	Source    string `json:"source,omitempty"    yaml:"source,omitempty"`
	SourceID  string `json:"sourceId,omitempty"  yaml:"sourceId,omitempty"`
}

// Property returns the value of a named company property, or "" when the
// property is absent.
func (c *Company) Property(name string) string {
	if c == nil || c.Properties == nil {
		return ""
	}

	return c.Properties[name].Value
}

// Property is a CRM property definition from /crm/v3/properties/{objectType}.
type Property struct {
	Name      string `json:"name"                yaml:"name"`
	Label     string `json:"label"               yaml:"label"`
	Type      string `json:"type"                yaml:"type"`
	FieldType string `json:"fieldType"           yaml:"fieldType"`
	GroupName string `json:"groupName,omitempty" yaml:"groupName,omitempty"`
	Archived  bool   `json:"archived,omitempty"  yaml:"archived,omitempty"`
}
