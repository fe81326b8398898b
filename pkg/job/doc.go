// Package job runs background tasks on River, a Postgres-native queue.
//
// Tasks are plain structs discovered by method shape, so task packages do not
// import anything from here:
//
//	type WarmCatalog struct{ catalog *catalog.Catalog }
//
//	func (t *WarmCatalog) Name() string { return "catalog.warm" }
//	func (t *WarmCatalog) Handle(ctx context.Context, _ struct{}) error {
//		return t.catalog.Warm(ctx)
//	}
//
// Periodic tasks add a Schedule method returning a five-field cron expression
// and take no payload:
//
//	func (t *RefreshPopular) Schedule() string { return "0 3 * * *" }
//	func (t *RefreshPopular) Handle(ctx context.Context) error { ... }
//
// Every task shares one River job kind. The task name and JSON payload travel
// in the job args and are dispatched by name on the worker side.
//
//	m, err := job.New(pool,
//		job.WithTask[struct{}](tasks.NewWarmCatalog(c)),
//		job.WithPeriodicTask(tasks.NewRefreshPopular(c)),
//		job.WithLogger(log),
//	)
//	_ = m.Enqueue(ctx, "catalog.warm", nil, job.UniqueFor(time.Minute))
//
// River's own tables are created by Migrate.
package job
