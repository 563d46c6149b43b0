// Package mapper converts HubSpot records into graph entities and
// relationships. The mapping is a fixed contract: keys, types, and classes
// are stable across runs so downstream consumers can rely on them.
package mapper

import (
	"fmt"
	"strconv"
	"time"

	"github.com/graphwell-io/hubsync/pkg/graph"
	"github.com/graphwell-io/hubsync/pkg/hubspot"
)

// Entity types and classes.
const (
	EntityTypeUser    = "hubspot_user"
	EntityTypeRole    = "hubspot_role"
	EntityTypeCompany = "hubspot_company"

	EntityClassUser         = "User"
	EntityClassAccessRole   = "AccessRole"
	EntityClassOrganization = "Organization"
)

// Relationship types and classes.
const (
	RelationshipTypeAssignedRole = "hubspot_user_assigned_role"
	RelationshipTypeOwnsCompany  = "hubspot_user_owns_company"

	RelationshipClassAssigned = "ASSIGNED"
	RelationshipClassOwns     = "OWNS"
)

// OwnerIDProperty is the company property naming the owning owner's id.
const OwnerIDProperty = "hubspot_owner_id"

// UserKey returns the graph key of the user entity for an owner id.
func UserKey(ownerID string) string {
	return EntityTypeUser + ":" + ownerID
}

// RoleKey returns the graph key of a role entity.
func RoleKey(roleID string) string {
	return EntityTypeRole + ":" + roleID
}

// CompanyKey returns the graph key of a company entity.
func CompanyKey(companyID int64) string {
	return EntityTypeCompany + ":" + strconv.FormatInt(companyID, 10)
}

// OwnerEntity maps a CRM owner to its user entity.
func OwnerEntity(owner hubspot.Owner) graph.Entity {
	props := map[string]interface{}{
		"ownerId":   owner.ID,
		"email":     owner.Email,
		"firstName": owner.FirstName,
		"lastName":  owner.LastName,
		"archived":  owner.Archived,
	}

	if owner.UserID != 0 {
		props["userId"] = owner.UserID
	}

	if !owner.CreatedAt.IsZero() {
		props["createdAt"] = owner.CreatedAt.UTC().Format(time.RFC3339)
	}

	if !owner.UpdatedAt.IsZero() {
		props["updatedAt"] = owner.UpdatedAt.UTC().Format(time.RFC3339)
	}

	return graph.Entity{
		Key:        UserKey(owner.ID),
		Type:       EntityTypeUser,
		Class:      EntityClassUser,
		Properties: props,
	}
}

// RoleEntity maps an account role to its access-role entity.
func RoleEntity(role hubspot.Role) graph.Entity {
	return graph.Entity{
		Key:   RoleKey(role.ID),
		Type:  EntityTypeRole,
		Class: EntityClassAccessRole,
		Properties: map[string]interface{}{
			"roleId":               role.ID,
			"name":                 role.Name,
			"requiresBillingWrite": role.RequiresBillingWrite,
		},
	}
}

// CompanyEntity maps a legacy company record to its organization entity.
// The versioned property map flattens to plain name→value fields.
func CompanyEntity(company hubspot.Company) graph.Entity {
	props := map[string]interface{}{
		"companyId": company.CompanyID,
		"isDeleted": company.IsDeleted,
	}

	if company.PortalID != 0 {
		props["portalId"] = company.PortalID
	}

	for name, prop := range company.Properties {
		props[name] = prop.Value
	}

	return graph.Entity{
		Key:        CompanyKey(company.CompanyID),
		Type:       EntityTypeCompany,
		Class:      EntityClassOrganization,
		Properties: props,
	}
}

// CompanyOwnerID returns the owner id a company names in its
// hubspot_owner_id property, or "" when unowned.
func CompanyOwnerID(company hubspot.Company) string {
	return company.Property(OwnerIDProperty)
}

// AssignedRoleRelationship links an owner's user entity to the role named
// by the owner's user record.
func AssignedRoleRelationship(ownerID, roleID string) graph.Relationship {
	return graph.Relationship{
		Key:     fmt.Sprintf("%s:%s:%s", RelationshipTypeAssignedRole, ownerID, roleID),
		Type:    RelationshipTypeAssignedRole,
		Class:   RelationshipClassAssigned,
		FromKey: UserKey(ownerID),
		ToKey:   RoleKey(roleID),
	}
}

// OwnsCompanyRelationship links an owner's user entity to a company it owns.
func OwnsCompanyRelationship(ownerID string, companyID int64) graph.Relationship {
	return graph.Relationship{
		Key:     fmt.Sprintf("%s:%s:%d", RelationshipTypeOwnsCompany, ownerID, companyID),
		Type:    RelationshipTypeOwnsCompany,
		Class:   RelationshipClassOwns,
		FromKey: UserKey(ownerID),
		ToKey:   CompanyKey(companyID),
	}
}
