package job

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/riverqueue/river"
	"github.com/robfig/cron/v3"
)

// taskKind is the single River kind every storefront task is inserted under.
const taskKind = "storefront:task"

type taskArgs struct {
	Task    string          `json:"task"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func (taskArgs) Kind() string { return taskKind }

// handler is a task with its payload type erased.
type handler func(ctx context.Context, raw json.RawMessage) error

func typedHandler[P any](fn func(context.Context, P) error) handler {
	return func(ctx context.Context, raw json.RawMessage) error {
		var p P
		if len(raw) > 0 && string(raw) != "null" {
			if err := json.Unmarshal(raw, &p); err != nil {
				return errors.Join(ErrInvalidPayload, err)
			}
		}
		return fn(ctx, p)
	}
}

type periodic struct {
	name     string
	schedule river.PeriodicSchedule
}

// cronSchedule adapts a robfig/cron schedule to River's periodic schedule.
type cronSchedule struct {
	cron.Schedule
}

func (s cronSchedule) Next(t time.Time) time.Time { return s.Schedule.Next(t) }

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

func parseSchedule(expr string) (river.PeriodicSchedule, error) {
	s, err := cronParser.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrInvalidSchedule, expr, err)
	}
	return cronSchedule{s}, nil
}
