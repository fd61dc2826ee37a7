package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/m-mizutani/fireconf"
	"github.com/m-mizutani/goerr/v2"
	"github.com/memoraid/memoraid/pkg/repository/firestore"
	"github.com/memoraid/memoraid/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdMigrate() *cli.Command {
	var projectID string
	var databaseID string
	var collectionPrefix string
	var dryRun bool

	return &cli.Command{
		Name:    "migrate",
		Aliases: []string{"m"},
		Usage:   "Migrate Firestore indexes",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "firestore-project-id",
				Usage:       "Firestore Project ID (required)",
				Required:    true,
				Sources:     cli.EnvVars("MEMORAID_FIRESTORE_PROJECT_ID"),
				Destination: &projectID,
			},
			&cli.StringFlag{
				Name:        "firestore-database-id",
				Usage:       "Firestore Database ID",
				Value:       "(default)",
				Sources:     cli.EnvVars("MEMORAID_FIRESTORE_DATABASE_ID"),
				Destination: &databaseID,
			},
			&cli.StringFlag{
				Name:        "firestore-collection-prefix",
				Usage:       "Prefix of Firestore collection names",
				Sources:     cli.EnvVars("MEMORAID_FIRESTORE_COLLECTION_PREFIX"),
				Destination: &collectionPrefix,
			},
			&cli.BoolFlag{
				Name:        "dry-run",
				Usage:       "Preview changes without applying",
				Destination: &dryRun,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			logger.Info("Migrate configuration",
				"projectID", projectID,
				"databaseID", databaseID,
				"collectionPrefix", collectionPrefix,
				"dryRun", dryRun)

			// Get index configuration
			indexConfig := getIndexConfig(collectionPrefix)

			opts := []fireconf.Option{
				fireconf.WithLogger(logger),
				fireconf.WithDryRun(dryRun),
			}
			client, err := fireconf.New(ctx, projectID, databaseID, indexConfig, opts...)
			if err != nil {
				return goerr.Wrap(err, "failed to create fireconf client")
			}
			defer func() {
				if err := client.Close(); err != nil {
					logger.Error("failed to close fireconf client", "error", err.Error())
				}
			}()

			if dryRun {
				logger.Info("Dry run mode - previewing changes")
				names := make([]string, 0, len(indexConfig.Collections))
				for _, col := range indexConfig.Collections {
					names = append(names, col.Name)
				}

				current, err := client.Import(ctx, names...)
				if err != nil {
					return goerr.Wrap(err, "failed to import current indexes")
				}
				diff, err := client.DiffConfigs(current)
				if err != nil {
					return goerr.Wrap(err, "failed to compare indexes")
				}

				steps := migrationSteps(diff)
				if len(steps) == 0 {
					logger.Info("No changes required")
					return nil
				}
				for _, step := range steps {
					logger.Info("Migration step", "step", step)
				}
				return nil
			}

			logger.Info("Applying migrations")
			if err := client.Migrate(ctx); err != nil {
				return goerr.Wrap(err, "failed to apply migrations")
			}
			logger.Info("Migrations applied successfully")

			return nil
		},
	}
}

// migrationSteps describes every index change of diff, one line per index
func migrationSteps(diff *fireconf.DiffResult) []string {
	var steps []string
	for _, col := range diff.Collections {
		for _, idx := range col.IndexesToAdd {
			steps = append(steps, fmt.Sprintf("create index on %s: %s", col.Name, indexFields(idx)))
		}
		for _, idx := range col.IndexesToDelete {
			steps = append(steps, fmt.Sprintf("delete index on %s: %s", col.Name, indexFields(idx)))
		}
	}
	return steps
}

func indexFields(idx fireconf.Index) string {
	fields := make([]string, 0, len(idx.Fields))
	for _, f := range idx.Fields {
		fields = append(fields, f.Path+" "+string(f.Order))
	}
	return strings.Join(fields, ", ")
}

// getIndexConfig returns the composite indexes the repository queries need
func getIndexConfig(prefix string) *fireconf.Config {
	patientNewestFirst := fireconf.Index{
		Fields: []fireconf.IndexField{
			{Path: "patient_id", Order: fireconf.OrderAscending},
			{Path: "created_at", Order: fireconf.OrderDescending},
		},
	}

	return &fireconf.Config{
		Collections: []fireconf.Collection{
			{
				Name: firestore.CollectionName(prefix, firestore.CollectionMemories),
				Indexes: []fireconf.Index{
					// ListByPatient: patient_id ASC, created_at DESC
					patientNewestFirst,
				},
			},
			{
				Name: firestore.CollectionName(prefix, firestore.CollectionContributors),
				Indexes: []fireconf.Index{
					// ListByUser: user_id ASC, name ASC
					{
						Fields: []fireconf.IndexField{
							{Path: "user_id", Order: fireconf.OrderAscending},
							{Path: "name", Order: fireconf.OrderAscending},
						},
					},
				},
			},
			{
				Name: firestore.CollectionName(prefix, firestore.CollectionQuestions),
				Indexes: []fireconf.Index{
					// ListByMemory: memory_id ASC, difficulty ASC, created_at ASC
					{
						Fields: []fireconf.IndexField{
							{Path: "memory_id", Order: fireconf.OrderAscending},
							{Path: "difficulty", Order: fireconf.OrderAscending},
							{Path: "created_at", Order: fireconf.OrderAscending},
						},
					},
					// ListByPatient: patient_id ASC, created_at DESC
					patientNewestFirst,
				},
			},
			{
				Name: firestore.CollectionName(prefix, firestore.CollectionQuizAttempts),
				Indexes: []fireconf.Index{
					patientNewestFirst,
				},
			},
		},
	}
}
