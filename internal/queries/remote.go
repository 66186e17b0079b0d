package queries

import (
	"context"

	"cpmsdash/internal/envelope"
	"cpmsdash/internal/models"
	"cpmsdash/internal/querycache"
)

func (q *Queries) Connections(ctx context.Context) (envelope.ConnectionsResponse, error) {
	return querycache.Fetch(ctx, q.Cache, querycache.NewQuery(ConnectionsKey(), q.remote.Connections))
}

// chargePointKeys are made stale by every command sent to a charge point.
func chargePointKeys(cpID int, withSessions bool) []querycache.Key {
	keys := []querycache.Key{DetailKey(NSChargePoints, cpID), AllKey(NSChargePoints), connectorsOf(cpID)}
	if withSessions {
		keys = append(keys, AllKey(NSSessions))
	}
	return keys
}

type command[T any] struct {
	cpID int
	req  T
}

func remoteCommand[T any](ctx context.Context, q *Queries, cpID int, req T, withSessions bool,
	fn func(context.Context, int, T) (*envelope.Response[models.CommandResult], error)) (models.CommandResult, error) {
	return querycache.Mutate(ctx, q.Cache, querycache.Mutation[command[T], models.CommandResult]{
		Fn: func(ctx context.Context, c command[T]) (models.CommandResult, error) {
			return unwrap(fn(ctx, c.cpID, c.req))
		},
		Invalidate: func(c command[T], _ models.CommandResult) []querycache.Key {
			return chargePointKeys(c.cpID, withSessions)
		},
	}, command[T]{cpID: cpID, req: req})
}

func (q *Queries) RemoteStart(ctx context.Context, cpID int, req models.RemoteStart) (models.CommandResult, error) {
	return remoteCommand(ctx, q, cpID, req, true, q.remote.RemoteStart)
}

func (q *Queries) RemoteStop(ctx context.Context, cpID int, req models.RemoteStop) (models.CommandResult, error) {
	return remoteCommand(ctx, q, cpID, req, true, q.remote.RemoteStop)
}

func (q *Queries) Reset(ctx context.Context, cpID int, req models.Reset) (models.CommandResult, error) {
	return remoteCommand(ctx, q, cpID, req, false, q.remote.Reset)
}
