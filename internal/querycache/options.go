package querycache

import (
	"context"
	"errors"
	"time"
)

const (
	DefaultStaleTime       = 5 * time.Minute
	DefaultCacheTime       = 10 * time.Minute
	DefaultMaxRetries      = 3
	DefaultMutationRetries = 1
	DefaultBackoffBase     = time.Second
	DefaultBackoffCap      = 30 * time.Second
)

type Options struct {
	// MaxRetries bounds query retries after the first attempt.
	MaxRetries int
	// Backoff returns the delay before retry number attempt (0 based).
	Backoff func(attempt int) time.Duration
	// StaleTime is how long a successful result is served without refetching.
	StaleTime time.Duration
	// CacheTime is how long an unused entry is kept before eviction.
	CacheTime time.Duration
	// MutationRetries bounds mutation retries; values above 1 are capped.
	MutationRetries int
	// ShouldRetry classifies an error as transient.
	ShouldRetry func(err error) bool
	// Now is the clock used for staleness and eviction.
	Now func() time.Time
}

func DefaultOptions() Options {
	return Options{
		MaxRetries:      DefaultMaxRetries,
		Backoff:         ExponentialBackoff(DefaultBackoffBase, DefaultBackoffCap),
		StaleTime:       DefaultStaleTime,
		CacheTime:       DefaultCacheTime,
		MutationRetries: DefaultMutationRetries,
		ShouldRetry:     DefaultShouldRetry,
		Now:             time.Now,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.MaxRetries < 0 {
		o.MaxRetries = 0
	}
	if o.Backoff == nil {
		o.Backoff = d.Backoff
	}
	if o.StaleTime < 0 {
		o.StaleTime = 0
	}
	if o.CacheTime <= 0 {
		o.CacheTime = d.CacheTime
	}
	if o.MutationRetries < 0 {
		o.MutationRetries = 0
	}
	if o.MutationRetries > 1 {
		o.MutationRetries = 1
	}
	if o.ShouldRetry == nil {
		o.ShouldRetry = d.ShouldRetry
	}
	if o.Now == nil {
		o.Now = d.Now
	}
	return o
}

// ExponentialBackoff doubles base per attempt up to max.
func ExponentialBackoff(base, max time.Duration) func(int) time.Duration {
	return func(attempt int) time.Duration {
		if attempt < 0 {
			attempt = 0
		}
		d := base
		for i := 0; i < attempt; i++ {
			d *= 2
			if d >= max {
				return max
			}
		}
		if d > max {
			return max
		}
		return d
	}
}

// DefaultShouldRetry retries only errors that declare themselves retryable.
// Application errors, validation errors and cancellations are final.
func DefaultShouldRetry(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	var r interface{ Retryable() bool }
	if errors.As(err, &r) {
		return r.Retryable()
	}
	return false
}
