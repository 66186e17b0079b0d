package querycache

import (
	"context"
	"sync"
)

type Mutation[V, R any] struct {
	Fn func(ctx context.Context, vars V) (R, error)
	// Invalidate lists the key prefixes made stale by a successful call.
	Invalidate func(vars V, res R) []Key
}

// Mutate runs m with at most one retry on a transient error and invalidates
// the affected keys on success.
func Mutate[V, R any](ctx context.Context, c *Client, m Mutation[V, R], vars V) (R, error) {
	var zero R
	v, err := c.retry(ctx, c.opts.MutationRetries, "mutation", func(ctx context.Context) (any, error) {
		return m.Fn(ctx, vars)
	})
	if err != nil {
		return zero, err
	}
	res, _ := v.(R)
	if m.Invalidate != nil {
		if keys := m.Invalidate(vars, res); len(keys) > 0 {
			c.Invalidate(keys...)
		}
	}
	return res, nil
}

// Mutator tracks the lifecycle of repeated runs of one mutation.
type Mutator[V, R any] struct {
	c *Client
	m Mutation[V, R]

	mu     sync.Mutex
	status Status
	err    error
	data   R
}

func NewMutator[V, R any](c *Client, m Mutation[V, R]) *Mutator[V, R] {
	return &Mutator[V, R]{c: c, m: m}
}

func (mt *Mutator[V, R]) Run(ctx context.Context, vars V) (R, error) {
	mt.mu.Lock()
	mt.status = StatusPending
	mt.err = nil
	mt.mu.Unlock()

	res, err := Mutate(ctx, mt.c, mt.m, vars)

	mt.mu.Lock()
	defer mt.mu.Unlock()
	if err != nil {
		mt.status = StatusError
		mt.err = err
		return res, err
	}
	mt.status = StatusSuccess
	mt.data = res
	return res, nil
}

func (mt *Mutator[V, R]) Status() Status {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	return mt.status
}

func (mt *Mutator[V, R]) Err() error {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	return mt.err
}

func (mt *Mutator[V, R]) Data() R {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	return mt.data
}

// Reset returns the mutator to idle.
func (mt *Mutator[V, R]) Reset() {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	var zero R
	mt.status, mt.err, mt.data = StatusIdle, nil, zero
}
