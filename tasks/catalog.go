// Package tasks holds the storefront's background jobs.
package tasks

import (
	"context"

	"github.com/dmitrymomot/storefront/catalog"
)

// RefreshPopularSchedule runs the popular-list refresh daily at 03:00.
const RefreshPopularSchedule = "0 3 * * *"

// Catalog is the part of *catalog.Catalog the tasks use.
type Catalog interface {
	Warm(ctx context.Context) error
	RefreshPopular(ctx context.Context) error
}

// WarmCatalog recomputes the memoized product lists. The admin pipeline
// enqueues it after every mutation.
type WarmCatalog struct {
	catalog Catalog
}

func NewWarmCatalog(c Catalog) *WarmCatalog { return &WarmCatalog{catalog: c} }

func (t *WarmCatalog) Name() string { return catalog.WarmTask }

func (t *WarmCatalog) Handle(ctx context.Context, _ struct{}) error {
	return t.catalog.Warm(ctx)
}

// RefreshPopular recomputes the popular list ahead of its 24h expiry.
type RefreshPopular struct {
	catalog Catalog
}

func NewRefreshPopular(c Catalog) *RefreshPopular { return &RefreshPopular{catalog: c} }

func (t *RefreshPopular) Name() string     { return "catalog.refresh_popular" }
func (t *RefreshPopular) Schedule() string { return RefreshPopularSchedule }

func (t *RefreshPopular) Handle(ctx context.Context) error {
	return t.catalog.RefreshPopular(ctx)
}
