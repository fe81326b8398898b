// Package memo memoizes expensive, request-independent computations such
// as product list queries.
//
// A [Memo] wraps a function under a key made of string segments. The first
// call computes and stores the value; later calls reuse it until it goes
// stale ([WithRevalidate]) or is dropped with [Memo.Invalidate]. Concurrent
// callers on a cold key share a single computation.
//
//	m := memo.New(cache.NewMemory[memo.Entry[[]catalog.Product]]())
//	popular := m.Wrap(repo.Popular, []string{"/", "getMostPopularProducts"},
//		memo.WithRevalidate(24*time.Hour))
//
//	products, err := popular(ctx)
//
// Staleness is judged by the Memo's clock, not by the store, so a shared
// Redis store and the in-process store behave the same.
package memo
