// Package logger builds the application's slog logger: JSON to stdout,
// optionally mirrored to Sentry, with request-scoped attributes pulled from
// the context on every record.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// Config is read from the environment.
type Config struct {
	Level             string `env:"LOG_LEVEL" envDefault:"info"`
	Format            string `env:"LOG_FORMAT" envDefault:"json"`
	SentryDSN         string `env:"SENTRY_DSN"`
	SentryEnvironment string `env:"SENTRY_ENVIRONMENT" envDefault:"production"`
	SentryRelease     string `env:"SENTRY_RELEASE"`
}

// Extractor pulls one attribute out of a context, e.g. the request id.
type Extractor func(ctx context.Context) (slog.Attr, bool)

// New returns the logger and a flush func to call before exit. Without a
// DSN, or when Sentry fails to start, only stdout is used.
func New(cfg Config, extractors ...Extractor) (*slog.Logger, func(time.Duration)) {
	return newLogger(os.Stdout, cfg, extractors...)
}

func newLogger(out io.Writer, cfg Config, extractors ...Extractor) (*slog.Logger, func(time.Duration)) {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

	var base slog.Handler = slog.NewJSONHandler(out, opts)
	if strings.EqualFold(cfg.Format, "text") {
		base = slog.NewTextHandler(out, opts)
	}

	noflush := func(time.Duration) {}
	if cfg.SentryDSN == "" {
		return slog.New(withContext(base, extractors...)), noflush
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.SentryDSN,
		Environment: cfg.SentryEnvironment,
		Release:     cfg.SentryRelease,
		EnableLogs:  true,
	})
	if err != nil {
		slog.New(base).Error("sentry disabled", slog.String("error", err.Error()))
		return slog.New(withContext(base, extractors...)), noflush
	}

	// Errors open Sentry issues; warnings are kept as searchable logs.
	toSentry := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   []slog.Level{slog.LevelWarn, slog.LevelError},
	}.NewSentryHandler(context.Background())

	h := withContext(fanout{base, toSentry}, extractors...)
	return slog.New(h), func(d time.Duration) { sentry.Flush(d) }
}

// Discard drops everything; handy in tests and one-shot commands.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func parseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return l
}
