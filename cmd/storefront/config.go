package main

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/storefront/pkg/cookie"
	"github.com/dmitrymomot/storefront/pkg/db"
	"github.com/dmitrymomot/storefront/pkg/logger"
	"github.com/dmitrymomot/storefront/pkg/redis"
	"github.com/dmitrymomot/storefront/pkg/storage"
	"github.com/dmitrymomot/storefront/requests"
)

// Cache drivers accepted in CACHE_DRIVER.
const (
	cacheMemory = "memory"
	cacheRedis  = "redis"
)

type config struct {
	HTTPAddr        string        `env:"HTTP_ADDR" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
	UploadMaxSize   int64         `env:"UPLOAD_MAX_SIZE" envDefault:"33554432"`
	DefaultLocale   string        `env:"DEFAULT_LOCALE" envDefault:"en-US"`

	CacheDriver string `env:"CACHE_DRIVER" envDefault:"memory"`
	CachePrefix string `env:"CACHE_PREFIX" envDefault:"storefront"`

	JobsEnabled    bool `env:"JOBS_ENABLED" envDefault:"true"`
	JobsMaxWorkers int  `env:"JOBS_MAX_WORKERS" envDefault:"10"`

	// Empty means a per-process random key.
	CookieSecret string `env:"COOKIE_SECRET"`
	CookieSecure bool   `env:"COOKIE_SECURE" envDefault:"false"`

	Log     logger.Config
	DB      db.Config
	Redis   redis.Config
	Storage storage.Config
}

func loadConfig() (config, error) {
	cfg, err := env.ParseAs[config]()
	if err != nil {
		return config{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return config{}, err
	}
	return cfg, nil
}

func (c config) validate() error {
	switch c.CacheDriver {
	case cacheMemory, cacheRedis:
	default:
		return fmt.Errorf("config: unknown CACHE_DRIVER %q", c.CacheDriver)
	}
	if _, err := language.Parse(c.DefaultLocale); err != nil {
		return fmt.Errorf("config: DEFAULT_LOCALE: %w", err)
	}
	if c.CookieSecret != "" && len(c.CookieSecret) < 32 {
		return fmt.Errorf("config: COOKIE_SECRET must be at least 32 bytes")
	}
	return nil
}

// locale is the fallback tag for the i18n registry.
func (c config) locale() language.Tag {
	tag, err := language.Parse(c.DefaultLocale)
	if err != nil {
		return language.AmericanEnglish
	}
	return tag
}

func (c config) uploadMaxSize() int64 {
	if c.UploadMaxSize <= 0 {
		return requests.DefaultMaxUploadSize
	}
	return c.UploadMaxSize
}

// cookies builds the flash cookie manager. It opens nothing, so serve
// calls it before connecting to anything.
func (c config) cookies() (*cookie.Manager, error) {
	return cookie.New(c.CookieSecret, cookie.WithSecure(c.CookieSecure))
}
