// Package graphstore provides the graph.Store backends: a Neo4j store for
// real runs and an in-memory store for tests and dry runs.
package graphstore

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/graphwell-io/hubsync/pkg/graph"
)

// Static errors for err113 compliance.
var (
	ErrMissingURI        = errors.New("graph store URI is required")
	ErrInvalidIdentifier = errors.New("class is not usable as a label or relationship type")
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// Options configure the Neo4j-backed store.
type Options struct {
	URI            string
	Username       string
	Password       string
	Database       string
	MaxConnections int
}

// Neo4jStore persists entities and relationships into Neo4j over Bolt.
// Node labels come from entity classes and edge types from relationship
// classes; everything is keyed on the graph key, so re-running a sync
// updates nodes in place.
type Neo4jStore struct {
	driver   neo4j.DriverWithContext
	database string
}

// NewNeo4jStore establishes a Bolt connection and verifies connectivity
// before returning the store.
func NewNeo4jStore(ctx context.Context, opts Options) (*Neo4jStore, error) {
	if opts.URI == "" {
		return nil, ErrMissingURI
	}

	auth := neo4j.NoAuth()
	if opts.Username != "" {
		auth = neo4j.BasicAuth(opts.Username, opts.Password, "")
	}

	driver, err := neo4j.NewDriverWithContext(opts.URI, auth, func(c *neo4j.Config) {
		if opts.MaxConnections > 0 {
			c.MaxConnectionPoolSize = opts.MaxConnections
		}
	})
	if err != nil {
		return nil, fmt.Errorf("creating neo4j driver: %w", err)
	}

	err = driver.VerifyConnectivity(ctx)
	if err != nil {
		_ = driver.Close(ctx)

		return nil, fmt.Errorf("verifying graph connectivity: %w", err)
	}

	return &Neo4jStore{
		driver:   driver,
		database: opts.Database,
	}, nil
}

// AddEntities implements graph.Store.AddEntities. Entities are grouped by
// class and upserted per group with a single UNWIND/MERGE statement.
func (s *Neo4jStore) AddEntities(ctx context.Context, entities []graph.Entity) error {
	for class, rows := range entityRows(entities) {
		label, err := identifier(class)
		if err != nil {
			return err
		}

		query := fmt.Sprintf(`UNWIND $rows AS row
MERGE (n:%s {key: row.key})
SET n += row.props
SET n.entity_type = row.type`, label)

		err = s.write(ctx, query, map[string]any{"rows": rows})
		if err != nil {
			return fmt.Errorf("upserting %s entities: %w", class, err)
		}
	}

	return nil
}

// AddRelationships implements graph.Store.AddRelationships. Edges whose
// endpoints are missing match nothing and are dropped.
func (s *Neo4jStore) AddRelationships(ctx context.Context, relationships []graph.Relationship) error {
	for class, rows := range relationshipRows(relationships) {
		relType, err := identifier(class)
		if err != nil {
			return err
		}

		query := fmt.Sprintf(`UNWIND $rows AS row
MATCH (from {key: row.fromKey})
MATCH (to {key: row.toKey})
MERGE (from)-[r:%s {key: row.key}]->(to)
SET r += row.props
SET r.relationship_type = row.type`, relType)

		err = s.write(ctx, query, map[string]any{"rows": rows})
		if err != nil {
			return fmt.Errorf("upserting %s relationships: %w", class, err)
		}
	}

	return nil
}

// VerifyConnectivity checks the Bolt connection.
func (s *Neo4jStore) VerifyConnectivity(ctx context.Context) error {
	err := s.driver.VerifyConnectivity(ctx)
	if err != nil {
		return fmt.Errorf("verifying graph connectivity: %w", err)
	}

	return nil
}

// Close implements graph.Store.Close.
func (s *Neo4jStore) Close(ctx context.Context) error {
	err := s.driver.Close(ctx)
	if err != nil {
		return fmt.Errorf("closing neo4j driver: %w", err)
	}

	return nil
}

func (s *Neo4jStore) write(ctx context.Context, cypher string, params map[string]any) error {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: s.database,
		AccessMode:   neo4j.AccessModeWrite,
	})
	defer session.Close(ctx)

	res, err := session.Run(ctx, cypher, params)
	if err != nil {
		return err
	}

	_, err = res.Consume(ctx)

	return err
}

func entityRows(entities []graph.Entity) map[string][]map[string]any {
	byClass := make(map[string][]map[string]any)

	for _, entity := range entities {
		byClass[entity.Class] = append(byClass[entity.Class], map[string]any{
			"key":   entity.Key,
			"type":  entity.Type,
			"props": nonNil(entity.Properties),
		})
	}

	return byClass
}

func relationshipRows(relationships []graph.Relationship) map[string][]map[string]any {
	byClass := make(map[string][]map[string]any)

	for _, rel := range relationships {
		byClass[rel.Class] = append(byClass[rel.Class], map[string]any{
			"key":     rel.Key,
			"type":    rel.Type,
			"fromKey": rel.FromKey,
			"toKey":   rel.ToKey,
			"props":   nonNil(rel.Properties),
		})
	}

	return byClass
}

// identifier validates a class before it is interpolated into a Cypher
// statement; parameters cannot carry labels or relationship types.
func identifier(class string) (string, error) {
	if !identifierPattern.MatchString(class) {
		return "", fmt.Errorf("%w: %q", ErrInvalidIdentifier, class)
	}

	return class, nil
}

func nonNil(props map[string]interface{}) map[string]interface{} {
	if props == nil {
		return map[string]interface{}{}
	}

	return props
}
