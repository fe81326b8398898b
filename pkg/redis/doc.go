// Package redis opens the go-redis client used by the shared cache store.
package redis
