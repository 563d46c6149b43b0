// Package sync runs the ordered collection pipeline against one HubSpot
// app: verify credentials, then fetch owners, roles, users, and recently
// modified companies, mapping each record into graph entities and
// relationships.
//
// Steps execute sequentially and share the run's collected owner and role
// indices. The incremental watermark only advances when every step
// succeeds; failed runs leave the previous state untouched so the next run
// refetches the same window.
package sync

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/graphwell-io/hubsync/internal/constants"
	"github.com/graphwell-io/hubsync/internal/logging"
	"github.com/graphwell-io/hubsync/internal/mapper"
	"github.com/graphwell-io/hubsync/internal/state"
	"github.com/graphwell-io/hubsync/pkg/graph"
	"github.com/graphwell-io/hubsync/pkg/hubspot"
)

// Static errors for err113 compliance.
var (
	// ErrAppIDRequired indicates the engine was built without an app id.
	ErrAppIDRequired = errors.New("app id is required")

	// ErrClientFactoryRequired indicates the engine was built without a
	// client factory.
	ErrClientFactoryRequired = errors.New("client factory is required")

	// ErrStateStoreRequired indicates the engine was built without a
	// state store.
	ErrStateStoreRequired = errors.New("state store is required")

	// ErrGraphStoreRequired indicates the engine was built without a
	// graph store.
	ErrGraphStoreRequired = errors.New("graph store is required")
)

// ClientFactory builds a HubSpot client bound to the run's execution
// history. The engine resolves the watermark from the state store before a
// client exists, so construction is deferred until the run starts.
type ClientFactory func(ctx context.Context, history *hubspot.ExecutionHistory) (hubspot.Client, error)

// Options configures an Engine.
type Options struct {
	// AppID identifies the HubSpot app. It keys the persisted sync state.
	AppID string

	// NewClient builds the API client for a run.
	NewClient ClientFactory

	// States persists run state between executions.
	States state.Store

	// Graph receives the collected entities and relationships.
	Graph graph.Store

	// Logger receives run progress. Defaults to a no-op logger.
	Logger hubspot.Logger
}

// Engine coordinates sync runs for one HubSpot app.
type Engine struct {
	appID     string
	newClient ClientFactory
	states    state.Store
	graph     graph.Store
	logger    hubspot.Logger
}

// New creates an engine from options.
func New(opts Options) (*Engine, error) {
	if opts.AppID == "" {
		return nil, ErrAppIDRequired
	}

	if opts.NewClient == nil {
		return nil, ErrClientFactoryRequired
	}

	if opts.States == nil {
		return nil, ErrStateStoreRequired
	}

	if opts.Graph == nil {
		return nil, ErrGraphStoreRequired
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	return &Engine{
		appID:     opts.AppID,
		newClient: opts.NewClient,
		states:    opts.States,
		graph:     opts.Graph,
		logger:    logger,
	}, nil
}

// Run executes one full collection and returns its summary. The watermark
// only advances when every step succeeds.
func (e *Engine) Run(ctx context.Context) (*Summary, error) {
	startedAt := time.Now()
	runID := uuid.NewString()

	history, err := e.loadHistory(ctx)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		RunID:       runID,
		AppID:       e.appID,
		StartedOn:   startedAt.UnixMilli(),
		SinceMillis: history.SinceMillis(),
	}

	e.logger.Info("starting sync run", map[string]interface{}{
		"run_id": runID,
		"app_id": e.appID,
		"since":  history.SinceMillis(),
	})

	client, err := e.newClient(ctx, history)
	if err != nil {
		return nil, fmt.Errorf("building client: %w", err)
	}

	err = e.runSteps(ctx, client, summary)
	if err != nil {
		return nil, err
	}

	completedAt := time.Now()
	summary.CompletedOn = completedAt.UnixMilli()
	summary.Duration = completedAt.Sub(startedAt)

	err = e.states.Save(ctx, e.appID, &state.SyncState{
		RunID:       runID,
		StartedOn:   summary.StartedOn,
		CompletedOn: summary.CompletedOn,
	})
	if err != nil {
		return nil, fmt.Errorf("saving sync state: %w", err)
	}

	e.logger.Info("sync run complete", map[string]interface{}{
		"run_id":        runID,
		"entities":      summary.Entities,
		"relationships": summary.Relationships,
		"duration":      summary.Duration.String(),
	})

	return summary, nil
}

// loadHistory resolves the incremental watermark from the persisted state.
// Absent state means no run has succeeded yet and the full modification
// history is fetched.
func (e *Engine) loadHistory(ctx context.Context) (*hubspot.ExecutionHistory, error) {
	prior, err := e.states.Get(ctx, e.appID)
	if err != nil {
		if errors.Is(err, state.ErrNotFound) {
			return nil, nil
		}

		return nil, fmt.Errorf("loading sync state: %w", err)
	}

	return &hubspot.ExecutionHistory{
		LastSuccessful: &hubspot.RunRecord{StartedOn: prior.StartedOn},
	}, nil
}

func (e *Engine) runSteps(ctx context.Context, client hubspot.Client, summary *Summary) error {
	stepStart := time.Now()

	err := client.VerifyAuthentication(ctx)
	if err != nil {
		return fmt.Errorf("verifying authentication: %w", err)
	}

	summary.addStep(StepResult{
		Name:     StepVerifyAuthentication,
		Duration: time.Since(stepStart),
	})

	owners, err := e.collectOwners(ctx, client, summary)
	if err != nil {
		return err
	}

	roles, err := e.collectRoles(ctx, client, summary)
	if err != nil {
		return err
	}

	err = e.collectUsers(ctx, client, summary, owners, roles)
	if err != nil {
		return err
	}

	return e.collectCompanies(ctx, client, summary, owners)
}

// collectOwners fetches every owner and writes one User entity per owner.
// The collected owners feed the user and company steps.
func (e *Engine) collectOwners(ctx context.Context, client hubspot.Client, summary *Summary) ([]hubspot.Owner, error) {
	stepStart := time.Now()

	var (
		owners   []hubspot.Owner
		entities []graph.Entity
	)

	err := client.Owners().Each(ctx, func(owner hubspot.Owner) error {
		owners = append(owners, owner)
		entities = append(entities, mapper.OwnerEntity(owner))

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetching owners: %w", err)
	}

	err = e.graph.AddEntities(ctx, entities)
	if err != nil {
		return nil, fmt.Errorf("storing owner entities: %w", err)
	}

	summary.addStep(StepResult{
		Name:     StepOwners,
		Entities: len(entities),
		Duration: time.Since(stepStart),
	})

	e.logger.Info("collected owners", map[string]interface{}{
		"count": len(entities),
	})

	return owners, nil
}

// collectRoles fetches every account role and writes one AccessRole entity
// per role. The returned index backs role-relationship resolution.
func (e *Engine) collectRoles(ctx context.Context, client hubspot.Client, summary *Summary) (map[string]hubspot.Role, error) {
	stepStart := time.Now()

	roles := make(map[string]hubspot.Role)

	var entities []graph.Entity

	err := client.Roles().Each(ctx, func(role hubspot.Role) error {
		roles[role.ID] = role
		entities = append(entities, mapper.RoleEntity(role))

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetching roles: %w", err)
	}

	err = e.graph.AddEntities(ctx, entities)
	if err != nil {
		return nil, fmt.Errorf("storing role entities: %w", err)
	}

	summary.addStep(StepResult{
		Name:     StepRoles,
		Entities: len(entities),
		Duration: time.Since(stepStart),
	})

	e.logger.Info("collected roles", map[string]interface{}{
		"count": len(entities),
	})

	return roles, nil
}

// collectUsers resolves each owner's user record and links the owner to its
// role. Owners without a linked user account are skipped, as are user
// records that no longer exist; any other user fetch failure aborts the
// run.
func (e *Engine) collectUsers(ctx context.Context, client hubspot.Client, summary *Summary, owners []hubspot.Owner, roles map[string]hubspot.Role) error {
	stepStart := time.Now()

	var (
		relationships []graph.Relationship
		skipped       int
	)

	for _, owner := range owners {
		if owner.UserID == 0 {
			skipped++

			e.logger.Debug("owner has no user account", map[string]interface{}{
				"owner_id": owner.ID,
			})

			continue
		}

		user, err := client.Users().Get(ctx, strconv.FormatInt(owner.UserID, 10))
		if err != nil {
			if hubspot.IsNotFound(err) {
				skipped++

				e.logger.Warn("user no longer exists, skipping", map[string]interface{}{
					"owner_id": owner.ID,
					"user_id":  owner.UserID,
				})

				continue
			}

			return fmt.Errorf("fetching user %d: %w", owner.UserID, err)
		}

		if user.RoleID == "" {
			skipped++

			continue
		}

		if _, ok := roles[user.RoleID]; !ok {
			skipped++

			e.logger.Warn("user references unknown role", map[string]interface{}{
				"user_id": user.ID,
				"role_id": user.RoleID,
			})

			continue
		}

		relationships = append(relationships, mapper.AssignedRoleRelationship(owner.ID, user.RoleID))
	}

	err := e.graph.AddRelationships(ctx, relationships)
	if err != nil {
		return fmt.Errorf("storing role relationships: %w", err)
	}

	summary.addStep(StepResult{
		Name:          StepUsers,
		Relationships: len(relationships),
		Skipped:       skipped,
		Duration:      time.Since(stepStart),
	})

	e.logger.Info("resolved user roles", map[string]interface{}{
		"relationships": len(relationships),
		"skipped":       skipped,
	})

	return nil
}

// collectCompanies fetches every company modified since the watermark,
// writing Organization entities and ownership relationships in batches. A
// company owned by an owner outside the collected set gets an entity but no
// relationship.
func (e *Engine) collectCompanies(ctx context.Context, client hubspot.Client, summary *Summary, owners []hubspot.Owner) error {
	stepStart := time.Now()

	known := make(map[string]struct{}, len(owners))
	for _, owner := range owners {
		known[owner.ID] = struct{}{}
	}

	var (
		entities      []graph.Entity
		relationships []graph.Relationship
		entityCount   int
		relCount      int
		skipped       int
	)

	flush := func() error {
		if len(entities) > 0 {
			err := e.graph.AddEntities(ctx, entities)
			if err != nil {
				return fmt.Errorf("storing company entities: %w", err)
			}

			entityCount += len(entities)
			entities = entities[:0]
		}

		if len(relationships) > 0 {
			err := e.graph.AddRelationships(ctx, relationships)
			if err != nil {
				return fmt.Errorf("storing ownership relationships: %w", err)
			}

			relCount += len(relationships)
			relationships = relationships[:0]
		}

		return nil
	}

	err := client.Companies().EachRecentlyModified(ctx, func(company hubspot.Company) error {
		entities = append(entities, mapper.CompanyEntity(company))

		ownerID := mapper.CompanyOwnerID(company)
		if ownerID != "" {
			if _, ok := known[ownerID]; ok {
				relationships = append(relationships, mapper.OwnsCompanyRelationship(ownerID, company.CompanyID))
			} else {
				skipped++

				e.logger.Debug("company owner not in collected set", map[string]interface{}{
					"company_id": company.CompanyID,
					"owner_id":   ownerID,
				})
			}
		}

		if len(entities) >= constants.GraphBatchSize {
			return flush()
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("collecting companies: %w", err)
	}

	err = flush()
	if err != nil {
		return err
	}

	summary.addStep(StepResult{
		Name:          StepCompanies,
		Entities:      entityCount,
		Relationships: relCount,
		Skipped:       skipped,
		Duration:      time.Since(stepStart),
	})

	e.logger.Info("collected companies", map[string]interface{}{
		"entities":      entityCount,
		"relationships": relCount,
	})

	return nil
}
