package job

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/riverqueue/river"
)

type enqueueConfig struct {
	scheduledAt time.Time
	queue       string
	tags        []string
	maxAttempts int
	priority    int
	uniqueFor   time.Duration
}

// EnqueueOption adjusts a single insert.
type EnqueueOption func(*enqueueConfig)

func InQueue(name string) EnqueueOption {
	return func(c *enqueueConfig) { c.queue = name }
}

func ScheduledAt(t time.Time) EnqueueOption {
	return func(c *enqueueConfig) { c.scheduledAt = t }
}

func ScheduledIn(d time.Duration) EnqueueOption {
	return func(c *enqueueConfig) { c.scheduledAt = time.Now().Add(d) }
}

// MaxAttempts caps retries. River's default is 25.
func MaxAttempts(n int) EnqueueOption {
	return func(c *enqueueConfig) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

// Priority orders jobs within a queue, 1 (highest) to 4.
func Priority(p int) EnqueueOption {
	return func(c *enqueueConfig) { c.priority = p }
}

func Tags(tags ...string) EnqueueOption {
	return func(c *enqueueConfig) { c.tags = append(c.tags, tags...) }
}

// UniqueFor drops an insert when a job with the same task and payload was
// already inserted within the current period of length d.
func UniqueFor(d time.Duration) EnqueueOption {
	return func(c *enqueueConfig) { c.uniqueFor = d }
}

func buildArgs(name string, payload any, opts ...EnqueueOption) (taskArgs, *river.InsertOpts, error) {
	args := taskArgs{Task: name}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return taskArgs{}, nil, errors.Join(ErrInvalidPayload, err)
		}
		args.Payload = raw
	}

	cfg := &enqueueConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	ins := &river.InsertOpts{
		Queue:       cfg.queue,
		ScheduledAt: cfg.scheduledAt,
		MaxAttempts: cfg.maxAttempts,
		Priority:    cfg.priority,
		Tags:        cfg.tags,
	}
	if cfg.uniqueFor > 0 {
		ins.UniqueOpts = river.UniqueOpts{ByArgs: true, ByPeriod: cfg.uniqueFor}
	}
	return args, ins, nil
}
