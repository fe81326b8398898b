package job

import (
	"context"
	"log/slog"
)

type config struct {
	handlers   map[string]handler
	periodics  []periodic
	queues     map[string]int
	logger     *slog.Logger
	maxWorkers int
	err        error
}

// Option configures a Manager.
type Option func(*config)

// WithTask registers a task by its Name. The payload type is inferred from
// the Handle signature.
func WithTask[P any, T interface {
	Name() string
	Handle(context.Context, P) error
}](task T) Option {
	return func(c *config) {
		c.handlers[task.Name()] = typedHandler(task.Handle)
	}
}

// WithPeriodicTask registers a payload-less task inserted on its cron Schedule.
func WithPeriodicTask[T interface {
	Name() string
	Schedule() string
	Handle(context.Context) error
}](task T) Option {
	return func(c *config) {
		sched, err := parseSchedule(task.Schedule())
		if err != nil {
			c.err = err
			return
		}
		c.handlers[task.Name()] = typedHandler(func(ctx context.Context, _ struct{}) error {
			return task.Handle(ctx)
		})
		c.periodics = append(c.periodics, periodic{name: task.Name(), schedule: sched})
	}
}

// WithQueue adds a named queue with its own worker limit.
func WithQueue(name string, workers int) Option {
	return func(c *config) {
		if name != "" && workers > 0 {
			c.queues[name] = workers
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMaxWorkers bounds the default queue. Defaults to 10.
func WithMaxWorkers(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxWorkers = n
		}
	}
}
