package memo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/dmitrymomot/storefront/pkg/cache"
)

// Entry is what a Memo keeps in its store.
type Entry[V any] struct {
	Value    V             `json:"value"`
	StoredAt time.Time     `json:"stored_at"`
	TTL      time.Duration `json:"ttl"`
}

// Fresh reports whether the entry is still valid at now. A zero TTL never
// goes stale.
func (e Entry[V]) Fresh(now time.Time) bool {
	if e.TTL <= 0 {
		return true
	}
	return now.Sub(e.StoredAt) < e.TTL
}

// Func is a memoized computation.
type Func[V any] func(ctx context.Context) (V, error)

// Memo memoizes computations of one result type across requests.
// It is safe for concurrent use.
type Memo[V any] struct {
	store   cache.Store[Entry[V]]
	flight  singleflight.Group
	now     func() time.Time
	log     *slog.Logger
	timeout time.Duration

	mu  sync.Mutex
	gen map[string]uint64
}

// New returns a Memo persisting its entries in store.
func New[V any](store cache.Store[Entry[V]], opts ...Option) *Memo[V] {
	cfg := config{now: time.Now, log: slog.New(slog.DiscardHandler), timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Memo[V]{
		store:   store,
		now:     cfg.now,
		log:     cfg.log,
		timeout: cfg.timeout,
		gen:     make(map[string]uint64),
	}
}

// Key joins key segments into the store key.
func Key(segments ...string) string {
	return strings.Join(segments, ":")
}

// Wrap returns fn memoized under key. Within the validity window the stored
// value is returned without calling fn; concurrent misses share one call.
// Failed calls are never stored.
//
// The shared call runs detached from the caller's cancellation, bounded by
// the Memo timeout. A caller whose context ends stops waiting and gets its
// context error; the others still receive the result.
func (m *Memo[V]) Wrap(fn Func[V], key []string, opts ...WrapOption) Func[V] {
	var wc wrapConfig
	for _, opt := range opts {
		opt(&wc)
	}
	k := Key(key...)

	return func(ctx context.Context) (V, error) {
		if e, ok := m.lookup(ctx, k); ok {
			return e.Value, nil
		}

		ch := m.flight.DoChan(k, func() (any, error) {
			// Shared by every waiter: detached from the starter's cancellation.
			fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), m.timeout)
			defer cancel()

			// Another caller may have filled the entry while this one waited
			// to enter the flight.
			if e, ok := m.lookup(fctx, k); ok {
				return e.Value, nil
			}

			gen := m.generation(k)
			val, err := fn(fctx)
			if err != nil {
				return nil, err
			}

			// An Invalidate that landed mid-computation wins: the value is
			// handed to this flight's callers but not stored.
			if gen != m.generation(k) {
				return val, nil
			}

			e := Entry[V]{Value: val, StoredAt: m.now(), TTL: wc.revalidate}
			if err := m.store.Set(fctx, k, e, wc.revalidate); err != nil {
				m.log.WarnContext(fctx, "memo: store write failed",
					slog.String("key", k), slog.Any("error", err))
			}
			return val, nil
		})

		var zero V
		select {
		case <-ctx.Done():
			return zero, fmt.Errorf("memo %s: %w", k, ctx.Err())
		case res := <-ch:
			if res.Err != nil {
				return zero, fmt.Errorf("memo %s: %w", k, res.Err)
			}
			val, _ := res.Val.(V)
			return val, nil
		}
	}
}

// Invalidate drops the entry under key so the next call recomputes it.
func (m *Memo[V]) Invalidate(ctx context.Context, key ...string) error {
	k := Key(key...)

	m.mu.Lock()
	m.gen[k]++
	m.mu.Unlock()

	m.flight.Forget(k)
	if err := m.store.Delete(ctx, k); err != nil {
		return errors.Join(ErrInvalidate, err)
	}
	return nil
}

func (m *Memo[V]) lookup(ctx context.Context, k string) (Entry[V], bool) {
	e, err := m.store.Get(ctx, k)
	switch {
	case errors.Is(err, cache.ErrNotFound):
		return e, false
	case err != nil:
		m.log.WarnContext(ctx, "memo: store read failed",
			slog.String("key", k), slog.Any("error", err))
		return e, false
	}
	return e, e.Fresh(m.now())
}

func (m *Memo[V]) generation(k string) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gen[k]
}
