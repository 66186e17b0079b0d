package queries

import (
	"context"

	"cpmsdash/internal/models"
	"cpmsdash/internal/querycache"
	"cpmsdash/internal/services"
)

func connectorsOf(cpID int) querycache.Key {
	return RelationKey(NSConnectors, services.RelChargePoint, cpID)
}

func (q *Queries) ConnectorsByChargePoint(ctx context.Context, cpID int) ([]models.Connector, error) {
	return querycache.Fetch(ctx, q.Cache, querycache.NewQuery(connectorsOf(cpID), func(ctx context.Context) ([]models.Connector, error) {
		return unwrap(q.catalog.Connectors.ByChargePoint(ctx, cpID))
	}).When(cpID != 0))
}

func (q *Queries) CreateConnector(ctx context.Context, data models.ConnectorCreate) (models.Connector, error) {
	return querycache.Mutate(ctx, q.Cache, querycache.Mutation[models.ConnectorCreate, models.Connector]{
		Fn: func(ctx context.Context, data models.ConnectorCreate) (models.Connector, error) {
			return unwrap(q.catalog.Connectors.Create(ctx, data))
		},
		Invalidate: func(data models.ConnectorCreate, _ models.Connector) []querycache.Key {
			return []querycache.Key{connectorsOf(data.CPID)}
		},
	}, data)
}

type connectorUpdate struct {
	id   int
	data models.ConnectorUpdate
}

func (q *Queries) UpdateConnector(ctx context.Context, connectorID int, data models.ConnectorUpdate) (models.Connector, error) {
	return querycache.Mutate(ctx, q.Cache, querycache.Mutation[connectorUpdate, models.Connector]{
		Fn: func(ctx context.Context, v connectorUpdate) (models.Connector, error) {
			return unwrap(q.catalog.Connectors.Update(ctx, v.id, v.data))
		},
		Invalidate: func(v connectorUpdate, _ models.Connector) []querycache.Key {
			return []querycache.Key{connectorsOf(v.data.CPID)}
		},
	}, connectorUpdate{id: connectorID, data: data})
}

type connectorRef struct{ id, cpID int }

func (q *Queries) DeleteConnector(ctx context.Context, connectorID, cpID int) (models.Deleted, error) {
	return querycache.Mutate(ctx, q.Cache, querycache.Mutation[connectorRef, models.Deleted]{
		Fn: func(ctx context.Context, r connectorRef) (models.Deleted, error) {
			return unwrap(q.catalog.Connectors.Delete(ctx, r.id, r.cpID))
		},
		Invalidate: func(r connectorRef, _ models.Deleted) []querycache.Key {
			return []querycache.Key{connectorsOf(r.cpID)}
		},
	}, connectorRef{id: connectorID, cpID: cpID})
}
