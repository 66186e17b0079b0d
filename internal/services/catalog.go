// Package services binds every CPMS collection to its endpoint and adds the
// endpoints that do not fit the plain CRUD shape.
package services

import (
	"context"

	"cpmsdash/internal/apiclient"
	"cpmsdash/internal/envelope"
	"cpmsdash/internal/models"
	"cpmsdash/internal/resource"
)

type (
	Companies          = resource.Resource[models.Company, models.CompanyCreate, models.CompanyUpdate]
	Sites              = resource.Resource[models.Site, models.SiteCreate, models.SiteUpdate]
	SitesGroups        = resource.Resource[models.SitesGroup, models.SitesGroupCreate, models.SitesGroupUpdate]
	SitesGroupManagers = resource.Resource[models.SitesGroupManager, models.SitesGroupManagerCreate, models.SitesGroupManagerUpdate]
	Users              = resource.Resource[models.User, models.NewUser, models.UserUpdate]
	UserRoles          = resource.Resource[models.UserRole, models.UserRoleCreate, models.UserRoleUpdate]
	Drivers            = resource.Resource[models.Driver, models.DriverCreate, models.DriverUpdate]
	DriversGroups      = resource.Resource[models.DriversGroup, models.DriversGroupCreate, models.DriversGroupUpdate]
	Tariffs            = resource.Resource[models.Tariff, models.TariffCreate, models.TariffUpdate]
	ChargePoints       = resource.Resource[models.ChargePoint, models.ChargePointCreate, models.ChargePointUpdate]
)

// Resource specs, one per collection.
var (
	CompaniesSpec          = resource.Spec{Path: "/companies", IDField: "company_id", DataField: "company_data"}
	SitesSpec              = resource.Spec{Path: "/sites", IDField: "site_id", DataField: "site_data"}
	SitesGroupsSpec        = resource.Spec{Path: "/sites-groups", IDField: "site_group_id", DataField: "site_group_data"}
	SitesGroupManagersSpec = resource.Spec{Path: "/sites-group-managers", IDField: "id", DataField: "manager_data"}
	UsersSpec              = resource.Spec{Path: "/users", IDField: "user_id", DataField: "user_data", RawCreate: true}
	UserRolesSpec          = resource.Spec{Path: "/user_roles", IDField: "user_role_id", DataField: "user_role_data"}
	DriversSpec            = resource.Spec{Path: "/drivers", IDField: "driver_id", DataField: "driver_data"}
	DriversGroupsSpec      = resource.Spec{Path: "/drivers-groups", IDField: "drivers_group_id", DataField: "drivers_group_data"}
	TariffsSpec            = resource.Spec{Path: "/tariffs", IDField: "tariffs_id", DataField: "tariff_data"}
	RFIDCardsSpec          = resource.Spec{Path: "/rfidcards", IDField: "rfid_card_id", DataField: "rfid_card_data"}
	ChargePointsSpec       = resource.Spec{Path: "/chargepoints", IDField: "cp_id", DataField: "cp_data"}
	ConnectorsSpec         = resource.Spec{Path: "/connectors", IDField: "connector_id", DataField: "connector_data", NoDelete: true}
	ChargeSessionsSpec     = resource.Spec{Path: "/chargesessions", IDField: "charge_session_id", DataField: "session_data", NoUpdate: true}
)

// Relation path segments.
const (
	RelDriver      = "driver"
	RelChargePoint = "chargepoint"
)

type Catalog struct {
	Companies          *Companies
	Sites              *Sites
	SitesGroups        *SitesGroups
	SitesGroupManagers *SitesGroupManagers
	Users              *Users
	UserRoles          *UserRoles
	Drivers            *Drivers
	DriversGroups      *DriversGroups
	Tariffs            *Tariffs
	RFIDCards          *RFIDCardService
	ChargePoints       *ChargePoints
	Connectors         *ConnectorService
	ChargeSessions     *ChargeSessionService
}

func NewCatalog(api *apiclient.Client) *Catalog {
	return &Catalog{
		Companies:          resource.New[models.Company, models.CompanyCreate, models.CompanyUpdate](api, CompaniesSpec),
		Sites:              resource.New[models.Site, models.SiteCreate, models.SiteUpdate](api, SitesSpec),
		SitesGroups:        resource.New[models.SitesGroup, models.SitesGroupCreate, models.SitesGroupUpdate](api, SitesGroupsSpec),
		SitesGroupManagers: resource.New[models.SitesGroupManager, models.SitesGroupManagerCreate, models.SitesGroupManagerUpdate](api, SitesGroupManagersSpec),
		Users:              resource.New[models.User, models.NewUser, models.UserUpdate](api, UsersSpec),
		UserRoles:          resource.New[models.UserRole, models.UserRoleCreate, models.UserRoleUpdate](api, UserRolesSpec),
		Drivers:            resource.New[models.Driver, models.DriverCreate, models.DriverUpdate](api, DriversSpec),
		DriversGroups:      resource.New[models.DriversGroup, models.DriversGroupCreate, models.DriversGroupUpdate](api, DriversGroupsSpec),
		Tariffs:            resource.New[models.Tariff, models.TariffCreate, models.TariffUpdate](api, TariffsSpec),
		RFIDCards:          NewRFIDCardService(api),
		ChargePoints:       resource.New[models.ChargePoint, models.ChargePointCreate, models.ChargePointUpdate](api, ChargePointsSpec),
		Connectors:         NewConnectorService(api),
		ChargeSessions:     NewChargeSessionService(api),
	}
}

type RFIDCardService struct {
	*resource.Resource[models.RFIDCard, models.RFIDCardCreate, models.RFIDCardUpdate]
}

func NewRFIDCardService(api *apiclient.Client) *RFIDCardService {
	return &RFIDCardService{resource.New[models.RFIDCard, models.RFIDCardCreate, models.RFIDCardUpdate](api, RFIDCardsSpec)}
}

// ByDriver returns the driver's card; a driver holds at most one.
func (s *RFIDCardService) ByDriver(ctx context.Context, driverID int) (*envelope.Response[models.RFIDCard], error) {
	return s.GetBy(ctx, RelDriver, driverID)
}
