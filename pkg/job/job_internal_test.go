package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/riverqueue/river"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type greetPayload struct {
	Name string `json:"name"`
}

type greetTask struct {
	got greetPayload
	err error
}

func (t *greetTask) Name() string { return "greet" }

func (t *greetTask) Handle(_ context.Context, p greetPayload) error {
	t.got = p
	return t.err
}

type nightlyTask struct {
	schedule string
	runs     int
}

func (t *nightlyTask) Name() string     { return "nightly" }
func (t *nightlyTask) Schedule() string { return t.schedule }
func (t *nightlyTask) Handle(context.Context) error {
	t.runs++
	return nil
}

func newConfig(opts ...Option) *config {
	cfg := &config{handlers: map[string]handler{}, queues: map[string]int{}}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func TestTypedHandler(t *testing.T) {
	t.Parallel()

	t.Run("decodes payload", func(t *testing.T) {
		t.Parallel()
		task := &greetTask{}
		h := typedHandler(task.Handle)
		require.NoError(t, h(context.Background(), json.RawMessage(`{"name":"ada"}`)))
		assert.Equal(t, "ada", task.got.Name)
	})

	t.Run("empty and null payloads give zero value", func(t *testing.T) {
		t.Parallel()
		task := &greetTask{got: greetPayload{Name: "x"}}
		h := typedHandler(task.Handle)
		require.NoError(t, h(context.Background(), nil))
		assert.Empty(t, task.got.Name)
		require.NoError(t, h(context.Background(), json.RawMessage("null")))
	})

	t.Run("bad json", func(t *testing.T) {
		t.Parallel()
		h := typedHandler((&greetTask{}).Handle)
		err := h(context.Background(), json.RawMessage(`{`))
		assert.ErrorIs(t, err, ErrInvalidPayload)
	})

	t.Run("handler error passes through", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		h := typedHandler((&greetTask{err: boom}).Handle)
		assert.ErrorIs(t, h(context.Background(), nil), boom)
	})
}

func TestParseSchedule(t *testing.T) {
	t.Parallel()

	s, err := parseSchedule("0 3 * * *")
	require.NoError(t, err)

	from := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 1, 2, 3, 0, 0, 0, time.UTC), s.Next(from))

	_, err = parseSchedule("every day")
	require.ErrorIs(t, err, ErrInvalidSchedule)

	_, err = parseSchedule("0 0 3 * * *")
	require.ErrorIs(t, err, ErrInvalidSchedule, "seconds field is not accepted")
}

func TestOptions(t *testing.T) {
	t.Parallel()

	t.Run("tasks register by name", func(t *testing.T) {
		t.Parallel()
		nightly := &nightlyTask{schedule: "*/5 * * * *"}
		cfg := newConfig(WithTask(&greetTask{}), WithPeriodicTask(nightly))

		require.NoError(t, cfg.err)
		assert.Contains(t, cfg.handlers, "greet")
		assert.Contains(t, cfg.handlers, "nightly")
		require.Len(t, cfg.periodics, 1)
		assert.Equal(t, "nightly", cfg.periodics[0].name)

		require.NoError(t, cfg.handlers["nightly"](context.Background(), nil))
		assert.Equal(t, 1, nightly.runs)
	})

	t.Run("bad schedule is reported", func(t *testing.T) {
		t.Parallel()
		cfg := newConfig(WithPeriodicTask(&nightlyTask{schedule: "nope"}))
		assert.ErrorIs(t, cfg.err, ErrInvalidSchedule)
		assert.Empty(t, cfg.periodics)
	})

	t.Run("queues and workers ignore non-positive values", func(t *testing.T) {
		t.Parallel()
		cfg := newConfig(WithQueue("mail", 0), WithQueue("bulk", 2), WithMaxWorkers(-1))
		assert.Equal(t, map[string]int{"bulk": 2}, cfg.queues)
		assert.Zero(t, cfg.maxWorkers)
	})
}

func TestBuildArgs(t *testing.T) {
	t.Parallel()

	t.Run("nil payload", func(t *testing.T) {
		t.Parallel()
		args, ins, err := buildArgs("greet", nil)
		require.NoError(t, err)
		assert.Equal(t, "greet", args.Task)
		assert.Empty(t, args.Payload)
		assert.Equal(t, river.UniqueOpts{}, ins.UniqueOpts)
	})

	t.Run("options", func(t *testing.T) {
		t.Parallel()
		at := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
		args, ins, err := buildArgs("greet", greetPayload{Name: "ada"},
			InQueue("mail"),
			ScheduledAt(at),
			MaxAttempts(3),
			Priority(2),
			Tags("catalog"),
			UniqueFor(time.Minute),
		)
		require.NoError(t, err)
		assert.JSONEq(t, `{"name":"ada"}`, string(args.Payload))
		assert.Equal(t, "mail", ins.Queue)
		assert.Equal(t, at, ins.ScheduledAt)
		assert.Equal(t, 3, ins.MaxAttempts)
		assert.Equal(t, 2, ins.Priority)
		assert.Equal(t, []string{"catalog"}, ins.Tags)
		assert.True(t, ins.UniqueOpts.ByArgs)
		assert.Equal(t, time.Minute, ins.UniqueOpts.ByPeriod)
	})

	t.Run("unencodable payload", func(t *testing.T) {
		t.Parallel()
		_, _, err := buildArgs("greet", make(chan int))
		assert.ErrorIs(t, err, ErrInvalidPayload)
	})
}

func TestTaskArgsKind(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "storefront:task", taskArgs{}.Kind())
}

func TestManagerGuards(t *testing.T) {
	t.Parallel()

	_, err := New(nil)
	require.ErrorIs(t, err, ErrPoolRequired)

	m := &Manager{handlers: map[string]handler{"greet": nil}}
	err = m.Healthcheck(context.Background())
	require.ErrorIs(t, err, ErrHealthcheckFailed)
	require.ErrorIs(t, err, ErrNotStarted)

	require.ErrorIs(t, m.Stop(context.Background()), ErrNotStarted)

	_, _, err = m.prepare("missing", nil)
	require.ErrorIs(t, err, ErrUnknownTask)
	assert.Equal(t, []string{"greet"}, m.Tasks())

	require.ErrorIs(t, Migrate(context.Background(), nil, nil), ErrPoolRequired)
}
