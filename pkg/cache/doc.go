// Package cache holds the key-value stores that back memoized queries.
//
// Two implementations satisfy [Store]:
//
//   - [Memory] keeps entries in the process, with optional capacity bound
//     and background sweeping of expired entries.
//   - [Redis] keeps encoded entries in Redis so every instance of the
//     application sees the same values.
//
// Expiry is per entry: a positive TTL expires it, anything else keeps it
// until Delete.
//
//	store := cache.NewMemory[[]catalog.Product](cache.WithSweepInterval(time.Minute))
//	defer store.Close()
//
//	rdb := redis.MustOpen(ctx, cfg.RedisURL)
//	shared := cache.NewRedis[[]catalog.Product](rdb, nil, cache.WithNamespace("storefront"))
package cache
