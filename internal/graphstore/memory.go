package graphstore

import (
	"context"
	"sync"

	"github.com/graphwell-io/hubsync/pkg/graph"
)

// MemoryStore is an in-memory graph.Store with upsert semantics, used by
// tests and `sync --dry-run`. Endpoint existence is not enforced. Safe for
// concurrent use.
type MemoryStore struct {
	mu                sync.RWMutex
	entities          map[string]graph.Entity
	entityOrder       []string
	relationships     map[string]graph.Relationship
	relationshipOrder []string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entities:      make(map[string]graph.Entity),
		relationships: make(map[string]graph.Relationship),
	}
}

// AddEntities implements graph.Store.AddEntities.
func (s *MemoryStore) AddEntities(ctx context.Context, entities []graph.Entity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, entity := range entities {
		if _, exists := s.entities[entity.Key]; !exists {
			s.entityOrder = append(s.entityOrder, entity.Key)
		}

		entity.Properties = cloneProps(entity.Properties)
		s.entities[entity.Key] = entity
	}

	return nil
}

// AddRelationships implements graph.Store.AddRelationships.
func (s *MemoryStore) AddRelationships(ctx context.Context, relationships []graph.Relationship) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rel := range relationships {
		if _, exists := s.relationships[rel.Key]; !exists {
			s.relationshipOrder = append(s.relationshipOrder, rel.Key)
		}

		rel.Properties = cloneProps(rel.Properties)
		s.relationships[rel.Key] = rel
	}

	return nil
}

// Close implements graph.Store.Close.
func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}

// Entities returns every stored entity in first-insertion order.
func (s *MemoryStore) Entities() []graph.Entity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]graph.Entity, 0, len(s.entityOrder))
	for _, key := range s.entityOrder {
		out = append(out, s.entities[key])
	}

	return out
}

// Relationships returns every stored relationship in first-insertion order.
func (s *MemoryStore) Relationships() []graph.Relationship {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]graph.Relationship, 0, len(s.relationshipOrder))
	for _, key := range s.relationshipOrder {
		out = append(out, s.relationships[key])
	}

	return out
}

// Entity returns a stored entity by key.
func (s *MemoryStore) Entity(key string) (graph.Entity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entity, ok := s.entities[key]

	return entity, ok
}

// Relationship returns a stored relationship by key.
func (s *MemoryStore) Relationship(key string) (graph.Relationship, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rel, ok := s.relationships[key]

	return rel, ok
}

func cloneProps(props map[string]interface{}) map[string]interface{} {
	if props == nil {
		return nil
	}

	clone := make(map[string]interface{}, len(props))
	for key, value := range props {
		clone[key] = value
	}

	return clone
}
