package services

import (
	"context"
	"fmt"

	"cpmsdash/internal/apiclient"
	"cpmsdash/internal/envelope"
	"cpmsdash/internal/models"
	"cpmsdash/internal/resource"
)

// ConnectorService addresses connectors by number and charge point together.
type ConnectorService struct {
	api *apiclient.Client
	res *resource.Resource[models.Connector, models.ConnectorCreate, models.ConnectorUpdate]
}

func NewConnectorService(api *apiclient.Client) *ConnectorService {
	return &ConnectorService{
		api: api,
		res: resource.New[models.Connector, models.ConnectorCreate, models.ConnectorUpdate](api, ConnectorsSpec),
	}
}

func (s *ConnectorService) ByChargePoint(ctx context.Context, cpID int) (*envelope.Response[[]models.Connector], error) {
	return s.res.ListBy(ctx, RelChargePoint, cpID)
}

func (s *ConnectorService) Create(ctx context.Context, data models.ConnectorCreate) (*envelope.Response[models.Connector], error) {
	return s.res.Create(ctx, data)
}

// Update carries the charge point inside data.
func (s *ConnectorService) Update(ctx context.Context, connectorID int, data models.ConnectorUpdate) (*envelope.Response[models.Connector], error) {
	return s.res.Update(ctx, connectorID, data)
}

func (s *ConnectorService) Delete(ctx context.Context, connectorID, cpID int) (*envelope.Response[models.Deleted], error) {
	body := map[string]int{"connector_id": connectorID, "connector_cp_id": cpID}
	return apiclient.Delete[map[string]int, models.Deleted](ctx, s.api, fmt.Sprintf("%s/%d", ConnectorsSpec.Path, connectorID), body)
}
