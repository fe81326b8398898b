// Package db connects to PostgreSQL through pgx and applies goose
// migrations.
//
//	pool, err := db.Connect(ctx, cfg.Database)
//	if err != nil {
//		return err
//	}
//	if err := db.Migrate(ctx, pool, catalog.Migrations, cfg.Database.MigrationsTable, log); err != nil {
//		return err
//	}
//
// [Healthcheck] and [Shutdown] return closures for the readiness probe and
// the shutdown hook list.
package db
