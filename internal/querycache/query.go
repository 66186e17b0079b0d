package querycache

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"cpmsdash/internal/metrics"
)

// ErrDisabled is returned without any network call when a query's required
// identifier is missing.
var ErrDisabled = errors.New("query disabled")

type Query[T any] struct {
	Key     Key
	Fn      func(ctx context.Context) (T, error)
	Enabled bool
}

// NewQuery returns an enabled query.
func NewQuery[T any](key Key, fn func(ctx context.Context) (T, error)) Query[T] {
	return Query[T]{Key: key, Fn: fn, Enabled: true}
}

// When returns a copy of q enabled only if cond holds.
func (q Query[T]) When(cond bool) Query[T] {
	q.Enabled = q.Enabled && cond
	return q
}

type result struct {
	value any
	err   error
}

// Fetch serves q from cache while fresh, otherwise runs q.Fn with retries.
// Concurrent fetches of one key share a single call unless the cache was
// cleared or the key invalidated in between. Cancelling ctx abandons
// the wait; the call itself completes and populates the cache.
func Fetch[T any](ctx context.Context, c *Client, q Query[T]) (T, error) {
	var zero T
	if !q.Enabled {
		return zero, ErrDisabled
	}
	ks := q.Key.String()
	ns := q.Key.Namespace()

	c.mu.Lock()
	e, ok := c.entries[ks]
	if !ok {
		e = &entry{key: q.Key}
		c.entries[ks] = e
	}
	e.lastAccess = c.opts.Now()
	if e.status == StatusSuccess && !c.staleLocked(e) {
		if v, ok := e.value.(T); ok {
			c.mu.Unlock()
			metrics.CacheLookupsTotal.WithLabelValues(ns, "hit").Inc()
			return v, nil
		}
	}
	gen, epoch := e.gen, c.epoch
	if e.status != StatusSuccess {
		e.status = StatusPending
	}
	c.mu.Unlock()
	metrics.CacheLookupsTotal.WithLabelValues(ns, "miss").Inc()

	fetchCtx := context.WithoutCancel(ctx)
	flight := ks + "#" + strconv.FormatUint(epoch, 10) + "#" + strconv.FormatUint(gen, 10)
	ch := c.group.DoChan(flight, func() (any, error) {
		c.beginFetch(ks)
		v, err := c.retry(fetchCtx, c.opts.MaxRetries, "query", func(ctx context.Context) (any, error) {
			return q.Fn(ctx)
		})
		c.store(ks, q.Key, gen, epoch, v, err)
		return result{value: v, err: err}, nil
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return zero, r.Err
		}
		res := r.Val.(result)
		if res.err != nil {
			return zero, res.err
		}
		v, ok := res.value.(T)
		if !ok {
			return zero, fmt.Errorf("query %s: cached %T is not %T", ks, res.value, zero)
		}
		return v, nil
	}
}

// Peek returns the cached value for key regardless of staleness.
func Peek[T any](c *Client, key Key) (T, bool) {
	var zero T
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key.String()]
	if !ok || !e.hasValue {
		return zero, false
	}
	v, ok := e.value.(T)
	return v, ok
}

func (c *Client) beginFetch(ks string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[ks]; ok {
		e.fetching++
	}
}

func (c *Client) store(ks string, key Key, gen, epoch uint64, v any, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// entries recreated after Clear never counted this fetch
	if c.epoch != epoch {
		return
	}
	e, ok := c.entries[ks]
	if ok && e.fetching > 0 {
		e.fetching--
	}
	if !ok {
		e = &entry{key: key, lastAccess: c.opts.Now()}
		c.entries[ks] = e
	}

	if err != nil {
		e.err = err
		e.status = StatusError
		return
	}
	e.value = v
	e.hasValue = true
	e.err = nil
	e.status = StatusSuccess
	e.updatedAt = c.opts.Now()
	// an invalidation that raced this fetch keeps the entry stale
	if e.gen == gen {
		e.invalidated = false
	}
}
