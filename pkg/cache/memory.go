package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

type item[V any] struct {
	key       string
	value     V
	expiresAt time.Time
}

func (it *item[V]) expired(now time.Time) bool {
	return !it.expiresAt.IsZero() && !now.Before(it.expiresAt)
}

// Memory is a process-local Store. Lookups go through a map; a list keeps
// read recency so a capacity bound can drop the coldest entry first.
type Memory[V any] struct {
	mu      sync.Mutex
	cfg     memoryConfig
	index   map[string]*list.Element
	recency *list.List
	stop    chan struct{}
	closed  bool
}

// NewMemory returns an empty Memory store. A background sweeper runs only
// when WithSweepInterval is given a positive duration.
func NewMemory[V any](opts ...MemoryOption) *Memory[V] {
	cfg := memoryConfig{now: time.Now}
	for _, opt := range opts {
		opt(&cfg)
	}

	m := &Memory[V]{
		cfg:     cfg,
		index:   make(map[string]*list.Element),
		recency: list.New(),
		stop:    make(chan struct{}),
	}

	if cfg.sweepInterval > 0 {
		go m.sweepLoop()
	}

	return m
}

func (m *Memory[V]) Get(_ context.Context, key string) (V, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zero V
	if m.closed {
		return zero, ErrClosed
	}

	el, ok := m.index[key]
	if !ok {
		return zero, ErrNotFound
	}

	it := el.Value.(*item[V])
	if it.expired(m.cfg.now()) {
		m.drop(el)
		return zero, ErrNotFound
	}

	m.recency.MoveToFront(el)
	return it.value, nil
}

func (m *Memory[V]) Set(_ context.Context, key string, value V, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = m.cfg.now().Add(ttl)
	}

	if el, ok := m.index[key]; ok {
		it := el.Value.(*item[V])
		it.value = value
		it.expiresAt = expiresAt
		m.recency.MoveToFront(el)
		return nil
	}

	if m.cfg.capacity > 0 && len(m.index) >= m.cfg.capacity {
		if last := m.recency.Back(); last != nil {
			m.drop(last)
		}
	}

	m.index[key] = m.recency.PushFront(&item[V]{key: key, value: value, expiresAt: expiresAt})
	return nil
}

func (m *Memory[V]) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	if el, ok := m.index[key]; ok {
		m.drop(el)
	}
	return nil
}

// Len reports the number of entries, expired ones included until swept.
func (m *Memory[V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.index)
}

// Close stops the sweeper. Calling it twice is safe.
func (m *Memory[V]) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.closed {
		m.closed = true
		close(m.stop)
	}
	return nil
}

func (m *Memory[V]) sweepLoop() {
	t := time.NewTicker(m.cfg.sweepInterval)
	defer t.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-t.C:
			m.sweep()
		}
	}
}

func (m *Memory[V]) sweep() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.cfg.now()
	for el := m.recency.Back(); el != nil; {
		prev := el.Prev()
		if el.Value.(*item[V]).expired(now) {
			m.drop(el)
		}
		el = prev
	}
}

// drop must be called with mu held.
func (m *Memory[V]) drop(el *list.Element) {
	m.recency.Remove(el)
	delete(m.index, el.Value.(*item[V]).key)
}

var _ Store[struct{}] = (*Memory[struct{}])(nil)
