package main

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	database "cloud.google.com/go/spanner/admin/database/apiv1"
	databasepb "cloud.google.com/go/spanner/admin/database/apiv1/databasepb"
	"github.com/spf13/cobra"

	"github.com/murkotick/invoice-dashboard-service/internal/pkg/committer"
	"github.com/murkotick/invoice-dashboard-service/internal/pkg/config"
	sqldb "github.com/murkotick/invoice-dashboard-service/internal/pkg/database"
	"github.com/murkotick/invoice-dashboard-service/internal/seed"
	"github.com/murkotick/invoice-dashboard-service/migrations"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "migrate",
		Short:         "Manage the invoice dashboard schema",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newUpCmd())
	cmd.AddCommand(newSeedCmd())
	return cmd
}

func newUpCmd() *cobra.Command {
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "up",
		Short: "Apply the schema for STORE_DRIVER",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadStoreConfig()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			var n int
			if cfg.Driver == config.DriverSpanner {
				n, err = spannerUp(ctx, cfg.SpannerDatabase)
			} else {
				n, err = sqlUp(ctx, cfg)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Applied %d DDL statements (%s)\n", n, cfg.Driver)
			return nil
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall deadline")
	return cmd
}

func newSeedCmd() *cobra.Command {
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert the demo user, customers and invoices",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadStoreConfig()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			if cfg.Driver == config.DriverSpanner {
				if err := spannerSeed(ctx, cfg.SpannerDatabase); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Seeded spanner database")
				return nil
			}

			db, err := sqldb.Open(ctx, cfg)
			if err != nil {
				return err
			}
			defer db.Close()
			c, err := seed.SQL(ctx, db)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d users, %d customers, %d invoices\n", c.Users, c.Customers, c.Invoices)
			return nil
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall deadline")
	return cmd
}

// loadStoreConfig reads the store settings only; the migrate tool needs no
// auth secret.
func loadStoreConfig() (config.StoreConfig, error) {
	cfg, err := config.Read()
	if err != nil {
		return config.StoreConfig{}, err
	}
	if err := cfg.Store.Validate(); err != nil {
		return config.StoreConfig{}, err
	}
	return cfg.Store, nil
}

func sqlUp(ctx context.Context, cfg config.StoreConfig) (int, error) {
	db, err := sqldb.Open(ctx, cfg)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	dialect := migrations.Postgres
	if cfg.Driver == config.DriverSQLite {
		dialect = migrations.SQLite
	}
	return migrations.Apply(ctx, db, dialect)
}

func spannerUp(ctx context.Context, db string) (int, error) {
	stmts, err := migrations.Statements(migrations.Spanner)
	if err != nil {
		return 0, err
	}

	admin, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		return 0, fmt.Errorf("database admin client: %w", err)
	}
	defer admin.Close()

	op, err := admin.UpdateDatabaseDdl(ctx, &databasepb.UpdateDatabaseDdlRequest{
		Database:   db,
		Statements: stmts,
	})
	if err != nil {
		return 0, fmt.Errorf("UpdateDatabaseDdl: %w", err)
	}
	if err := op.Wait(ctx); err != nil {
		return 0, fmt.Errorf("UpdateDatabaseDdl wait: %w", err)
	}
	return len(stmts), nil
}

func spannerSeed(ctx context.Context, db string) error {
	client, err := spanner.NewClient(ctx, db)
	if err != nil {
		return fmt.Errorf("spanner.NewClient: %w", err)
	}
	defer client.Close()

	ms, err := seed.Mutations()
	if err != nil {
		return err
	}
	return committer.NewAdapter(client).Apply(ctx, committer.NewPlan(ms...))
}
