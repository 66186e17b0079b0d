// Package queries binds every API resource to the query cache: reads are
// cached under the resource's namespace and mutations invalidate the keys
// they make stale.
package queries

import (
	"context"

	"cpmsdash/internal/envelope"
	"cpmsdash/internal/models"
	"cpmsdash/internal/querycache"
	"cpmsdash/internal/resource"
)

// unwrap turns a service call into a query result.
func unwrap[U any](resp *envelope.Response[U], err error) (U, error) {
	if err != nil {
		var zero U
		return zero, err
	}
	return envelope.Extract(resp)
}

// Set is the cached view of one resource.
type Set[T, C, U any] struct {
	c   *querycache.Client
	res *resource.Resource[T, C, U]
	ns  string
	// related lists keys outside the namespace made stale by a change to a record.
	related func(T) []querycache.Key
	// uncached replaces related for a record whose previous state is unknown.
	uncached []querycache.Key
}

func NewSet[T, C, U any](c *querycache.Client, res *resource.Resource[T, C, U], ns string) *Set[T, C, U] {
	return &Set[T, C, U]{c: c, res: res, ns: ns}
}

// WithRelated registers the extra keys a change to a record invalidates.
// A record can move between owners, so updates and deletes cover both its
// previous and its new state; when the previous state was never cached the
// fallback prefixes are invalidated instead.
func (s *Set[T, C, U]) WithRelated(fn func(T) []querycache.Key, fallback ...querycache.Key) *Set[T, C, U] {
	s.related = fn
	s.uncached = fallback
	return s
}

func (s *Set[T, C, U]) Namespace() string { return s.ns }

func (s *Set[T, C, U]) All(ctx context.Context) ([]T, error) {
	return querycache.Fetch(ctx, s.c, querycache.NewQuery(AllKey(s.ns), func(ctx context.Context) ([]T, error) {
		return unwrap(s.res.GetAll(ctx))
	}))
}

// ByID is disabled for id 0.
func (s *Set[T, C, U]) ByID(ctx context.Context, id int) (T, error) {
	return querycache.Fetch(ctx, s.c, querycache.NewQuery(DetailKey(s.ns, id), func(ctx context.Context) (T, error) {
		return unwrap(s.res.GetByID(ctx, id))
	}).When(id != 0))
}

func (s *Set[T, C, U]) ListBy(ctx context.Context, relation string, id int) ([]T, error) {
	return querycache.Fetch(ctx, s.c, querycache.NewQuery(RelationKey(s.ns, relation, id), func(ctx context.Context) ([]T, error) {
		return unwrap(s.res.ListBy(ctx, relation, id))
	}).When(id != 0))
}

func (s *Set[T, C, U]) GetBy(ctx context.Context, relation string, id int) (T, error) {
	return querycache.Fetch(ctx, s.c, querycache.NewQuery(RelationKey(s.ns, relation, id), func(ctx context.Context) (T, error) {
		return unwrap(s.res.GetBy(ctx, relation, id))
	}).When(id != 0))
}

func (s *Set[T, C, U]) Create(ctx context.Context, data C) (T, error) {
	return querycache.Mutate(ctx, s.c, querycache.Mutation[C, T]{
		Fn: func(ctx context.Context, data C) (T, error) {
			return unwrap(s.res.Create(ctx, data))
		},
		Invalidate: func(_ C, created T) []querycache.Key {
			return s.withRelated([]querycache.Key{AllKey(s.ns)}, created)
		},
	}, data)
}

type updateVars[U any] struct {
	id   int
	data U
}

func (s *Set[T, C, U]) Update(ctx context.Context, id int, data U) (T, error) {
	before, cached := querycache.Peek[T](s.c, DetailKey(s.ns, id))
	return querycache.Mutate(ctx, s.c, querycache.Mutation[updateVars[U], T]{
		Fn: func(ctx context.Context, v updateVars[U]) (T, error) {
			return unwrap(s.res.Update(ctx, v.id, v.data))
		},
		Invalidate: func(v updateVars[U], updated T) []querycache.Key {
			keys := s.withRelated([]querycache.Key{DetailKey(s.ns, v.id), AllKey(s.ns)}, updated)
			return s.withPrevious(keys, before, cached)
		},
	}, updateVars[U]{id: id, data: data})
}

// Delete invalidates the related keys of the record as last cached.
func (s *Set[T, C, U]) Delete(ctx context.Context, id int) (models.Deleted, error) {
	before, cached := querycache.Peek[T](s.c, DetailKey(s.ns, id))
	return querycache.Mutate(ctx, s.c, querycache.Mutation[int, models.Deleted]{
		Fn: func(ctx context.Context, id int) (models.Deleted, error) {
			return unwrap(s.res.Delete(ctx, id))
		},
		Invalidate: func(id int, _ models.Deleted) []querycache.Key {
			return s.withPrevious([]querycache.Key{AllKey(s.ns), DetailKey(s.ns, id)}, before, cached)
		},
	}, id)
}

func (s *Set[T, C, U]) withRelated(keys []querycache.Key, rec T) []querycache.Key {
	if s.related == nil {
		return keys
	}
	return append(keys, s.related(rec)...)
}

func (s *Set[T, C, U]) withPrevious(keys []querycache.Key, before T, cached bool) []querycache.Key {
	if s.related == nil {
		return keys
	}
	if !cached {
		return append(keys, s.uncached...)
	}
	return append(keys, s.related(before)...)
}
