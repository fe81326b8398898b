package job

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
)

const defaultMaxWorkers = 10

// Manager owns the River client. Jobs can be enqueued before Start; they are
// picked up once workers run.
type Manager struct {
	pool     *pgxpool.Pool
	client   *river.Client[pgx.Tx]
	handlers map[string]handler
	logger   *slog.Logger

	mu      sync.Mutex
	started bool
}

func New(pool *pgxpool.Pool, opts ...Option) (*Manager, error) {
	if pool == nil {
		return nil, ErrPoolRequired
	}

	cfg := &config{
		handlers:   make(map[string]handler),
		queues:     make(map[string]int),
		logger:     slog.New(slog.DiscardHandler),
		maxWorkers: defaultMaxWorkers,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.err != nil {
		return nil, cfg.err
	}

	queues := map[string]river.QueueConfig{
		river.QueueDefault: {MaxWorkers: cfg.maxWorkers},
	}
	for name, n := range cfg.queues {
		queues[name] = river.QueueConfig{MaxWorkers: n}
	}

	periodicJobs := make([]*river.PeriodicJob, 0, len(cfg.periodics))
	for _, p := range cfg.periodics {
		name := p.name
		periodicJobs = append(periodicJobs, river.NewPeriodicJob(
			p.schedule,
			func() (river.JobArgs, *river.InsertOpts) {
				return taskArgs{Task: name}, nil
			},
			&river.PeriodicJobOpts{RunOnStart: false},
		))
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, &taskWorker{handlers: cfg.handlers, logger: cfg.logger})

	client, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Queues:       queues,
		Workers:      workers,
		PeriodicJobs: periodicJobs,
		Logger:       cfg.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("job: create client: %w", err)
	}

	return &Manager{
		pool:     pool,
		client:   client,
		handlers: cfg.handlers,
		logger:   cfg.logger,
	}, nil
}

func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.started {
		return ErrAlreadyStarted
	}
	if err := m.client.Start(ctx); err != nil {
		return fmt.Errorf("job: start client: %w", err)
	}
	m.started = true
	m.logger.Info("job workers started", slog.Any("tasks", m.Tasks()))
	return nil
}

// Stop waits for running jobs to finish or ctx to expire.
func (m *Manager) Stop(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.started {
		return ErrNotStarted
	}
	if err := m.client.Stop(ctx); err != nil {
		return fmt.Errorf("job: stop client: %w", err)
	}
	m.started = false
	m.logger.Info("job workers stopped")
	return nil
}

// Enqueue inserts a job for a registered task.
func (m *Manager) Enqueue(ctx context.Context, name string, payload any, opts ...EnqueueOption) error {
	args, ins, err := m.prepare(name, payload, opts...)
	if err != nil {
		return err
	}
	if _, err := m.client.Insert(ctx, args, ins); err != nil {
		return errors.Join(ErrEnqueue, err)
	}
	return nil
}

// EnqueueTx inserts a job that becomes visible when tx commits.
func (m *Manager) EnqueueTx(ctx context.Context, tx pgx.Tx, name string, payload any, opts ...EnqueueOption) error {
	args, ins, err := m.prepare(name, payload, opts...)
	if err != nil {
		return err
	}
	if _, err := m.client.InsertTx(ctx, tx, args, ins); err != nil {
		return errors.Join(ErrEnqueue, err)
	}
	return nil
}

// Tasks lists registered task names, sorted.
func (m *Manager) Tasks() []string {
	return slices.Sorted(maps.Keys(m.handlers))
}

func (m *Manager) prepare(name string, payload any, opts ...EnqueueOption) (taskArgs, *river.InsertOpts, error) {
	if _, ok := m.handlers[name]; !ok {
		return taskArgs{}, nil, fmt.Errorf("%w: %s", ErrUnknownTask, name)
	}
	return buildArgs(name, payload, opts...)
}

// Healthcheck reports whether workers run and the queue database answers.
func (m *Manager) Healthcheck(ctx context.Context) error {
	m.mu.Lock()
	started := m.started
	m.mu.Unlock()

	if !started {
		return errors.Join(ErrHealthcheckFailed, ErrNotStarted)
	}
	if err := m.pool.Ping(ctx); err != nil {
		return errors.Join(ErrHealthcheckFailed, err)
	}
	return nil
}

// StartFunc and Shutdown adapt the manager to app lifecycle hooks.
func (m *Manager) StartFunc() func(context.Context) error { return m.Start }

func (m *Manager) Shutdown() func(context.Context) error { return m.Stop }

type taskWorker struct {
	river.WorkerDefaults[taskArgs]
	handlers map[string]handler
	logger   *slog.Logger
}

func (w *taskWorker) Work(ctx context.Context, j *river.Job[taskArgs]) error {
	h, ok := w.handlers[j.Args.Task]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTask, j.Args.Task)
	}

	log := w.logger.With(
		slog.String("task", j.Args.Task),
		slog.Int64("job_id", j.ID),
		slog.Int("attempt", j.Attempt),
	)
	log.DebugContext(ctx, "running task")

	if err := h(ctx, j.Args.Payload); err != nil {
		log.ErrorContext(ctx, "task failed", slog.Any("error", err))
		return err
	}
	log.DebugContext(ctx, "task done")
	return nil
}
