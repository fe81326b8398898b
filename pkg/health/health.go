// Package health serves liveness and readiness probes.
//
// Liveness answers as long as the process can serve HTTP. Readiness runs
// every dependency check (database, cache, job queue) in parallel under a
// shared timeout and answers 503 if any fails.
package health

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const (
	StatusUp   = "up"
	StatusDown = "down"
)

// Check reports whether one dependency is usable.
type Check func(ctx context.Context) error

// Report is the readiness payload.
type Report struct {
	Status string            `json:"status"`
	Checks map[string]Result `json:"checks,omitempty"`
}

type Result struct {
	Status   string `json:"status"`
	Error    string `json:"error,omitempty"`
	Duration string `json:"duration"`
}

// Run executes checks concurrently. Each check sees ctx bounded by timeout.
func Run(ctx context.Context, checks map[string]Check, timeout time.Duration, log *slog.Logger) Report {
	rep := Report{Status: StatusUp, Checks: make(map[string]Result, len(checks))}
	if len(checks) == 0 {
		return rep
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for name, check := range checks {
		wg.Add(1)
		go func() {
			defer wg.Done()

			start := time.Now()
			err := check(ctx)
			res := Result{Status: StatusUp, Duration: time.Since(start).Round(time.Microsecond).String()}
			if err != nil {
				res.Status = StatusDown
				res.Error = err.Error()
				log.WarnContext(ctx, "readiness check failed", slog.String("check", name), slog.Any("error", err))
			}

			mu.Lock()
			defer mu.Unlock()
			rep.Checks[name] = res
			if err != nil {
				rep.Status = StatusDown
			}
		}()
	}
	wg.Wait()

	return rep
}
