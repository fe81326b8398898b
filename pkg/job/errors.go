package job

import "errors"

var (
	ErrPoolRequired      = errors.New("job: pool is required")
	ErrUnknownTask       = errors.New("job: unknown task")
	ErrInvalidPayload    = errors.New("job: invalid payload")
	ErrInvalidSchedule   = errors.New("job: invalid cron schedule")
	ErrAlreadyStarted    = errors.New("job: already started")
	ErrNotStarted        = errors.New("job: not started")
	ErrEnqueue           = errors.New("job: enqueue failed")
	ErrMigrate           = errors.New("job: migration failed")
	ErrHealthcheckFailed = errors.New("job: healthcheck failed")
)
