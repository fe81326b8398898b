package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/storefront/pkg/memo"
)

// Section sizes for the home page.
const (
	PopularLimit = 6
	NewestLimit  = 6
)

// PopularRevalidate bounds how stale the popular list may get.
const PopularRevalidate = 24 * time.Hour

var (
	popularKey = []string{"/", "getMostPopularProducts"}
	newestKey  = []string{"/", "getNewestProducts"}
	allKey     = []string{"/products", "getProducts"}
)

// Catalog serves product lists through a Memo so pages share one query
// per validity window.
type Catalog struct {
	products Products
	memo     *memo.Memo[[]Product]

	popular memo.Func[[]Product]
	newest  memo.Func[[]Product]
	all     memo.Func[[]Product]
}

// New wires the memoized list functions over products.
func New(products Products, m *memo.Memo[[]Product]) *Catalog {
	c := &Catalog{products: products, memo: m}

	c.popular = m.Wrap(func(ctx context.Context) ([]Product, error) {
		return products.MostPopular(ctx, PopularLimit)
	}, popularKey, memo.WithRevalidate(PopularRevalidate))

	c.newest = m.Wrap(func(ctx context.Context) ([]Product, error) {
		return products.Newest(ctx, NewestLimit)
	}, newestKey)

	c.all = m.Wrap(products.ListAvailable, allKey)

	return c
}

// PopularProducts returns the most ordered available products, recomputed
// at most once per PopularRevalidate.
func (c *Catalog) PopularProducts(ctx context.Context) ([]Product, error) { return c.popular(ctx) }

// NewestProducts returns the latest available products until the next
// invalidation.
func (c *Catalog) NewestProducts(ctx context.Context) ([]Product, error) { return c.newest(ctx) }

// AllProducts returns every available product by name until the next
// invalidation.
func (c *Catalog) AllProducts(ctx context.Context) ([]Product, error) { return c.all(ctx) }

// Get bypasses the memo.
func (c *Catalog) Get(ctx context.Context, id uuid.UUID) (Product, error) {
	return c.products.Get(ctx, id)
}

// ListAll is the admin table source and is never memoized.
func (c *Catalog) ListAll(ctx context.Context) ([]Product, error) {
	return c.products.ListAll(ctx)
}

// Invalidate drops every memoized list.
func (c *Catalog) Invalidate(ctx context.Context) error {
	return errors.Join(
		c.memo.Invalidate(ctx, popularKey...),
		c.memo.Invalidate(ctx, newestKey...),
		c.memo.Invalidate(ctx, allKey...),
	)
}

// Warm invalidates and recomputes every list.
func (c *Catalog) Warm(ctx context.Context) error {
	if err := c.Invalidate(ctx); err != nil {
		return err
	}
	for _, fn := range []memo.Func[[]Product]{c.popular, c.newest, c.all} {
		if _, err := fn(ctx); err != nil {
			return err
		}
	}
	return nil
}

// RefreshPopular recomputes the popular list ahead of its TTL.
func (c *Catalog) RefreshPopular(ctx context.Context) error {
	if err := c.memo.Invalidate(ctx, popularKey...); err != nil {
		return err
	}
	_, err := c.popular(ctx)
	return err
}
