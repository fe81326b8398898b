package main

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v3"

	"github.com/dmitrymomot/storefront"
	"github.com/dmitrymomot/storefront/catalog"
	"github.com/dmitrymomot/storefront/handlers"
	"github.com/dmitrymomot/storefront/middlewares"
	"github.com/dmitrymomot/storefront/pkg/cache"
	"github.com/dmitrymomot/storefront/pkg/db"
	"github.com/dmitrymomot/storefront/pkg/i18n"
	"github.com/dmitrymomot/storefront/pkg/job"
	"github.com/dmitrymomot/storefront/pkg/logger"
	"github.com/dmitrymomot/storefront/pkg/memo"
	"github.com/dmitrymomot/storefront/pkg/redis"
	"github.com/dmitrymomot/storefront/pkg/storage"
	"github.com/dmitrymomot/storefront/tasks"
)

const flushTimeout = 2 * time.Second

// setup opens the logger; the returned func flushes it.
func setup() (config, *slog.Logger, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return config{}, nil, nil, err
	}
	log, flush := logger.New(cfg.Log, middlewares.RequestIDExtractor())
	log = log.With(slog.String("component", "storefront"))
	return cfg, log, func() { flush(flushTimeout) }, nil
}

// openCache returns the memo store for the configured driver. The redis
// client is nil for the memory driver.
func openCache(ctx context.Context, cfg config) (cache.Store[memo.Entry[[]catalog.Product]], goredis.UniversalClient, error) {
	if cfg.CacheDriver != cacheRedis {
		return cache.NewMemory[memo.Entry[[]catalog.Product]](), nil, nil
	}
	client, err := redis.Open(ctx, cfg.Redis)
	if err != nil {
		return nil, nil, err
	}
	store := cache.NewRedis[memo.Entry[[]catalog.Product]](client, nil, cache.WithNamespace(cfg.CachePrefix))
	return store, client, nil
}

func serveAction(ctx context.Context, _ *cli.Command) error {
	cfg, log, flush, err := setup()
	if err != nil {
		return err
	}
	defer flush()

	cookies, err := cfg.cookies()
	if err != nil {
		return err
	}

	pool, err := db.Connect(ctx, cfg.DB)
	if err != nil {
		return err
	}

	store, err := storage.New(cfg.Storage)
	if err != nil {
		pool.Close()
		return err
	}

	entries, redisClient, err := openCache(ctx, cfg)
	if err != nil {
		pool.Close()
		return err
	}

	repo := catalog.NewRepository(pool)
	cat := catalog.New(repo, memo.New(entries, memo.WithLogger(log)))

	runOpts := []storefront.RunOption{
		storefront.Address(cfg.HTTPAddr),
		storefront.Logger(log),
		storefront.ShutdownTimeout(cfg.ShutdownTimeout),
		storefront.WithContext(ctx),
	}
	healthOpts := []storefront.HealthOption{
		storefront.WithReadinessCheck("db", db.Healthcheck(pool)),
	}
	pipelineOpts := []catalog.PipelineOption{catalog.WithLogger(log)}

	if cfg.JobsEnabled {
		manager, err := job.New(pool,
			job.WithTask[struct{}](tasks.NewWarmCatalog(cat)),
			job.WithPeriodicTask(tasks.NewRefreshPopular(cat)),
			job.WithMaxWorkers(cfg.JobsMaxWorkers),
			job.WithLogger(log.With(slog.String("component", "jobs"))),
		)
		if err != nil {
			_ = entries.Close()
			if redisClient != nil {
				_ = redisClient.Close()
			}
			pool.Close()
			return err
		}
		pipelineOpts = append(pipelineOpts, catalog.WithEnqueuer(manager))
		healthOpts = append(healthOpts, storefront.WithReadinessCheck("jobs", manager.Healthcheck))
		runOpts = append(runOpts,
			storefront.StartupHook(manager.StartFunc()),
			storefront.ShutdownHook(manager.Shutdown()),
		)
	}

	if redisClient != nil {
		healthOpts = append(healthOpts, storefront.WithReadinessCheck("redis", redis.Healthcheck(redisClient)))
	}
	runOpts = append(runOpts, storefront.ShutdownHook(func(context.Context) error {
		return entries.Close()
	}))
	if redisClient != nil {
		runOpts = append(runOpts, storefront.ShutdownHook(redis.Shutdown(redisClient)))
	}
	runOpts = append(runOpts, storefront.ShutdownHook(db.Shutdown(pool)))

	pipeline := catalog.NewPipeline(repo, store, cat, pipelineOpts...)

	appOpts := []storefront.Option{
		storefront.WithLogger(log),
		storefront.WithMiddleware(
			middlewares.RequestID(),
			middlewares.Recover(),
			middlewares.AccessLog(),
			middlewares.Locale(i18n.NewRegistry(cfg.locale())),
			middlewares.Timeout(cfg.RequestTimeout),
		),
		storefront.WithErrorHandler(handlers.ErrorHandler()),
		storefront.WithNotFoundHandler(handlers.NotFound),
		storefront.WithHealthChecks(healthOpts...),
		storefront.WithHandlers(
			handlers.NewStorefront(cat, store),
			handlers.NewAdminProducts(cat, pipeline, cookies, cfg.uploadMaxSize()),
		),
	}
	// Only product images are public; uploaded product files stay private.
	if local, ok := store.(*storage.Local); ok {
		pattern := strings.TrimSuffix(cfg.Storage.PublicURL, "/") + "/" + catalog.ImagesPrefix
		appOpts = append(appOpts, storefront.WithStaticFiles(pattern, local.FileServer(catalog.ImagesPrefix)))
	}

	err = storefront.New(appOpts...).Run(runOpts...)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
