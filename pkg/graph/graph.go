// Package graph defines the entity/relationship model the connector emits
// and the Store interface graph backends implement.
package graph

import (
	"context"
)

// Entity is a node to upsert into the graph, identified by its Key.
type Entity struct {
	// Key uniquely identifies the entity across the whole graph, e.g.
	// "hubspot_user:101".
	Key string `json:"key" yaml:"key"`
	// Type is the source-scoped entity type, e.g. "hubspot_user".
	Type string `json:"type" yaml:"type"`
	// Class is the cross-source classification, e.g. "User"; graph backends
	// derive node labels from it.
	Class string `json:"class" yaml:"class"`
	// Properties are the entity's attributes.
	Properties map[string]interface{} `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// Relationship is a directed edge between two entities identified by key.
type Relationship struct {
	// Key uniquely identifies the relationship.
	Key string `json:"key" yaml:"key"`
	// Type is the source-scoped relationship type, e.g.
	// "hubspot_user_assigned_role".
	Type string `json:"type" yaml:"type"`
	// Class is the cross-source classification, e.g. "ASSIGNED"; graph
	// backends derive edge types from it.
	Class string `json:"class" yaml:"class"`
	// FromKey and ToKey name the endpoint entities.
	FromKey string `json:"fromKey" yaml:"fromKey"`
	ToKey   string `json:"toKey"   yaml:"toKey"`
	// Properties are the relationship's attributes.
	Properties map[string]interface{} `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// Store persists entities and relationships. Implementations upsert: adding
// the same key twice updates the stored record instead of duplicating it.
type Store interface {
	// AddEntities upserts a batch of entities.
	AddEntities(ctx context.Context, entities []Entity) error
	// AddRelationships upserts a batch of relationships. Both endpoints
	// should already exist; backends may drop edges whose endpoints are
	// missing.
	AddRelationships(ctx context.Context, relationships []Relationship) error
	// Close releases backend resources.
	Close(ctx context.Context) error
}
