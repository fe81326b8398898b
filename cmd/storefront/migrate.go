package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/dmitrymomot/storefront/catalog"
	"github.com/dmitrymomot/storefront/pkg/db"
	"github.com/dmitrymomot/storefront/pkg/job"
)

func migrateAction(ctx context.Context, _ *cli.Command) error {
	cfg, log, flush, err := setup()
	if err != nil {
		return err
	}
	defer flush()

	pool, err := db.Connect(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool, catalog.Migrations, cfg.DB.MigrationsTable, log); err != nil {
		return err
	}
	return job.Migrate(ctx, pool, log)
}
