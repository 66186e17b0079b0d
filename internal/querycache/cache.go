// Package querycache is a keyed cache of API query results with staleness,
// invalidation, deduplicated fetches and bounded retries.
package querycache

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"cpmsdash/internal/metrics"
)

type Status int

const (
	StatusIdle Status = iota
	StatusPending
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	}
	return "idle"
}

type entry struct {
	key         Key
	value       any
	hasValue    bool
	err         error
	status      Status
	updatedAt   time.Time
	lastAccess  time.Time
	invalidated bool
	gen         uint64
	fetching    int
}

// State is a snapshot of one cache entry.
type State struct {
	Status    Status
	Err       error
	UpdatedAt time.Time
	Stale     bool
	Fetching  bool
}

type Client struct {
	opts Options
	log  *zap.Logger

	mu      sync.Mutex
	entries map[string]*entry
	epoch   uint64

	group  singleflight.Group
	stopCh chan struct{}
	once   sync.Once
}

// New starts a client whose janitor evicts entries unused for CacheTime.
func New(opts Options, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Client{
		opts:    opts.withDefaults(),
		log:     log,
		entries: make(map[string]*entry),
		stopCh:  make(chan struct{}),
	}

	interval := c.opts.CacheTime / 2
	if interval > time.Minute {
		interval = time.Minute
	}
	go c.cleanupLoop(interval)
	return c
}

func (c *Client) Options() Options { return c.opts }

func (c *Client) Close() error {
	c.once.Do(func() { close(c.stopCh) })
	return nil
}

// Invalidate marks every entry under the given prefixes stale so the next
// read refetches. It returns the number of entries affected.
func (c *Client) Invalidate(prefixes ...Key) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, e := range c.entries {
		for _, p := range prefixes {
			if e.key.HasPrefix(p) {
				e.invalidated = true
				e.gen++
				n++
				metrics.CacheInvalidationsTotal.WithLabelValues(e.key.Namespace()).Inc()
				break
			}
		}
	}
	if n > 0 {
		c.log.Debug("query cache invalidated", zap.Int("entries", n), zap.Int("prefixes", len(prefixes)))
	}
	return n
}

// Clear drops every entry. In-flight fetches started before Clear do not
// repopulate the cache.
func (c *Client) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*entry)
	c.epoch++
}

func (c *Client) State(key Key) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key.String()]
	if !ok {
		return State{Status: StatusIdle}
	}
	return State{
		Status:    e.status,
		Err:       e.err,
		UpdatedAt: e.updatedAt,
		Stale:     c.staleLocked(e),
		Fetching:  e.fetching > 0,
	}
}

// Len is the number of entries currently cached.
func (c *Client) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Client) staleLocked(e *entry) bool {
	if !e.hasValue || e.invalidated {
		return true
	}
	return c.opts.Now().Sub(e.updatedAt) >= c.opts.StaleTime
}

func (c *Client) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.evict()
		case <-c.stopCh:
			return
		}
	}
}

func (c *Client) evict() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.opts.Now()
	evicted := 0
	for k, e := range c.entries {
		if e.fetching == 0 && now.Sub(e.lastAccess) >= c.opts.CacheTime {
			delete(c.entries, k)
			evicted++
		}
	}
	if evicted > 0 {
		c.log.Debug("query cache cleanup completed", zap.Int("evicted_entries", evicted))
	}
	return evicted
}

// retry runs fn until it succeeds, the error is not transient, or max
// retries have been spent.
func (c *Client) retry(ctx context.Context, max int, kind string, fn func(context.Context) (any, error)) (any, error) {
	for attempt := 0; ; attempt++ {
		v, err := fn(ctx)
		if err == nil {
			return v, nil
		}
		if attempt >= max || !c.opts.ShouldRetry(err) {
			return nil, err
		}

		delay := c.opts.Backoff(attempt)
		metrics.QueryRetriesTotal.WithLabelValues(kind).Inc()
		c.log.Debug("retrying after transient error",
			zap.String("kind", kind),
			zap.Int("attempt", attempt+1),
			zap.Duration("delay", delay),
			zap.Error(err),
		)

		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, err
		case <-t.C:
		}
	}
}
