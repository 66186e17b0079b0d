package services

import (
	"context"
	"fmt"

	"cpmsdash/internal/apiclient"
	"cpmsdash/internal/envelope"
	"cpmsdash/internal/models"
	"cpmsdash/internal/resource"
)

// ChargeSessionService has no generic update: sessions change only through
// the energy, stop and payment-status actions.
type ChargeSessionService struct {
	*resource.Resource[models.ChargeSession, models.ChargeSessionCreate, struct{}]
	api *apiclient.Client
}

func NewChargeSessionService(api *apiclient.Client) *ChargeSessionService {
	return &ChargeSessionService{
		Resource: resource.New[models.ChargeSession, models.ChargeSessionCreate, struct{}](api, ChargeSessionsSpec),
		api:      api,
	}
}

func (s *ChargeSessionService) ByDriver(ctx context.Context, driverID int) (*envelope.Response[[]models.ChargeSession], error) {
	return s.ListBy(ctx, RelDriver, driverID)
}

func (s *ChargeSessionService) ByChargePoint(ctx context.Context, cpID int) (*envelope.Response[[]models.ChargeSession], error) {
	return s.ListBy(ctx, RelChargePoint, cpID)
}

func (s *ChargeSessionService) UpdateEnergy(ctx context.Context, id int, energyKWh string) (*envelope.Response[models.ChargeSession], error) {
	return action(ctx, s.api, id, "energy", models.SessionEnergy{EnergyKWh: energyKWh})
}

func (s *ChargeSessionService) Stop(ctx context.Context, id int, data models.SessionStop) (*envelope.Response[models.ChargeSession], error) {
	return action(ctx, s.api, id, "stop", data)
}

func (s *ChargeSessionService) UpdatePaymentStatus(ctx context.Context, id int, status string) (*envelope.Response[models.ChargeSession], error) {
	return action(ctx, s.api, id, "payment-status", models.SessionPayment{PaymentStatus: status})
}

func action[T any](ctx context.Context, api *apiclient.Client, id int, name string, data T) (*envelope.Response[models.ChargeSession], error) {
	path := fmt.Sprintf("%s/%d/%s", ChargeSessionsSpec.Path, id, name)
	return apiclient.Put[models.SessionAction[T], models.ChargeSession](ctx, api, path, models.SessionAction[T]{SessionID: id, Data: data})
}
