package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/graphwell-io/hubsync/internal/graphstore"
	"github.com/graphwell-io/hubsync/internal/state"
	internalsync "github.com/graphwell-io/hubsync/internal/sync"
	"github.com/graphwell-io/hubsync/pkg/graph"
	"github.com/graphwell-io/hubsync/pkg/hubspot"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewSyncCommand creates the sync command
func NewSyncCommand() *cobra.Command {
	var (
		dryRun        bool
		full          bool
		backend       string
		stateDir      string
		natsURL       string
		natsBucket    string
		neo4jURI      string
		neo4jUsername string
		neo4jPassword string
		neo4jDatabase string
	)

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Collect HubSpot data into the graph",
		Long: "Run the collection pipeline: verify credentials, fetch owners, roles, users,\n" +
			"and recently modified companies, and upsert them into the graph store",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			appID := viper.GetString("app_id")
			if appID == "" {
				return fmt.Errorf("%w, use 'hubsync login' or --app-id", ErrAppIDMissing)
			}

			states, err := buildStateStore(dryRun, backend, stateDir, natsURL, natsBucket)
			if err != nil {
				return err
			}

			graphStore, err := buildGraphStore(ctx, dryRun, neo4jURI, neo4jUsername, neo4jPassword, neo4jDatabase)
			if err != nil {
				return err
			}
			defer func() { _ = graphStore.Close(ctx) }()

			if full && !dryRun {
				err = states.Delete(ctx, appID)
				if err != nil {
					return fmt.Errorf("failed to clear sync state: %w", err)
				}
			}

			var collector *hubspot.MetricsCollector

			engine, err := internalsync.New(internalsync.Options{
				AppID: appID,
				NewClient: func(ctx context.Context, history *hubspot.ExecutionHistory) (hubspot.Client, error) {
					client, metrics, err := createClient(ctx, history)
					if err != nil {
						return nil, err
					}

					collector = metrics

					return client, nil
				},
				States: states,
				Graph:  graphStore,
				Logger: commandLogger(),
			})
			if err != nil {
				return err
			}

			summary, err := engine.Run(ctx)

			reportMetrics(collector)

			if err != nil {
				return fmt.Errorf("sync failed: %w", err)
			}

			return renderSummary(summary, dryRun)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "collect into memory only, do not touch state or Neo4j")
	cmd.Flags().BoolVar(&full, "full", false, "clear the stored watermark and fetch everything")
	cmd.Flags().StringVar(&backend, "state", "", "state backend: memory, file, nats, or none")
	cmd.Flags().StringVar(&stateDir, "state-dir", "", "directory for the file state backend")
	cmd.Flags().StringVar(&natsURL, "nats-url", "", "NATS server URL for the nats state backend")
	cmd.Flags().StringVar(&natsBucket, "nats-bucket", "", "NATS KV bucket for the nats state backend")
	cmd.Flags().StringVar(&neo4jURI, "neo4j-uri", "", "Neo4j bolt URI; empty collects into memory")
	cmd.Flags().StringVar(&neo4jUsername, "neo4j-username", "", "Neo4j username")
	cmd.Flags().StringVar(&neo4jPassword, "neo4j-password", "", "Neo4j password")
	cmd.Flags().StringVar(&neo4jDatabase, "neo4j-database", "", "Neo4j database name")

	return cmd
}

// buildStateStore resolves the state backend from flags with config-file
// fallbacks. Dry runs never touch persisted state.
func buildStateStore(dryRun bool, backend, dir, natsURL, natsBucket string) (state.Store, error) {
	if dryRun {
		return state.NewNoOpStore(), nil
	}

	if backend == "" {
		backend = viper.GetString("state.backend")
	}

	if backend == "" {
		backend = string(state.TypeFile)
	}

	if dir == "" {
		dir = viper.GetString("state.directory")
	}

	if natsURL == "" {
		natsURL = viper.GetString("state.nats_url")
	}

	if natsBucket == "" {
		natsBucket = viper.GetString("state.nats_bucket")
	}

	builder := state.NewBuilder().WithType(state.Type(backend))

	if dir != "" {
		builder = builder.WithFileConfig(dir)
	}

	if natsURL != "" {
		builder = builder.WithNATSConfig(&state.NATSConfig{URL: natsURL, Bucket: natsBucket})
	}

	store, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build state store: %w", err)
	}

	return store, nil
}

// buildGraphStore connects to Neo4j when a URI is configured; otherwise the
// run collects into an in-memory store. Dry runs always use memory.
func buildGraphStore(ctx context.Context, dryRun bool, uri, username, password, database string) (graph.Store, error) {
	if uri == "" {
		uri = viper.GetString("neo4j.uri")
	}

	if dryRun || uri == "" {
		return graphstore.NewMemoryStore(), nil
	}

	if username == "" {
		username = viper.GetString("neo4j.username")
	}

	if password == "" {
		password = viper.GetString("neo4j.password")
	}

	if database == "" {
		database = viper.GetString("neo4j.database")
	}

	store, err := graphstore.NewNeo4jStore(ctx, graphstore.Options{
		URI:      uri,
		Username: username,
		Password: password,
		Database: database,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Neo4j: %w", err)
	}

	return store, nil
}

func renderSummary(summary *internalsync.Summary, dryRun bool) error {
	return renderOutput(summary, func() error {
		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Step", "Entities", "Relationships", "Skipped", "Duration")

		for _, step := range summary.Steps {
			_ = table.Append(stepTitle(step.Name),
				strconv.Itoa(step.Entities),
				strconv.Itoa(step.Relationships),
				strconv.Itoa(step.Skipped),
				step.Duration.Round(time.Millisecond).String())
		}

		_ = table.Append("Total",
			strconv.Itoa(summary.Entities),
			strconv.Itoa(summary.Relationships),
			"",
			summary.Duration.Round(time.Millisecond).String())

		if err := table.Render(); err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		note := ""
		if dryRun {
			note = " (dry run, nothing persisted)"
		}

		fmt.Printf("\nRun %s completed%s\n", summary.RunID, note)

		return nil
	})
}
