package queries

import (
	"context"

	"golang.org/x/sync/errgroup"

	"cpmsdash/internal/envelope"
	"cpmsdash/internal/models"
	"cpmsdash/internal/querycache"
	"cpmsdash/internal/services"
	"cpmsdash/internal/session"
)

type (
	CompanySet           = Set[models.Company, models.CompanyCreate, models.CompanyUpdate]
	SiteSet              = Set[models.Site, models.SiteCreate, models.SiteUpdate]
	SitesGroupSet        = Set[models.SitesGroup, models.SitesGroupCreate, models.SitesGroupUpdate]
	SitesGroupManagerSet = Set[models.SitesGroupManager, models.SitesGroupManagerCreate, models.SitesGroupManagerUpdate]
	UserSet              = Set[models.User, models.NewUser, models.UserUpdate]
	UserRoleSet          = Set[models.UserRole, models.UserRoleCreate, models.UserRoleUpdate]
	DriverSet            = Set[models.Driver, models.DriverCreate, models.DriverUpdate]
	DriversGroupSet      = Set[models.DriversGroup, models.DriversGroupCreate, models.DriversGroupUpdate]
	TariffSet            = Set[models.Tariff, models.TariffCreate, models.TariffUpdate]
	RFIDCardSet          = Set[models.RFIDCard, models.RFIDCardCreate, models.RFIDCardUpdate]
	ChargePointSet       = Set[models.ChargePoint, models.ChargePointCreate, models.ChargePointUpdate]
	ChargeSessionSet     = Set[models.ChargeSession, models.ChargeSessionCreate, struct{}]
)

// Queries is the cached API surface used by the dashboard handlers.
type Queries struct {
	Cache *querycache.Client

	Companies          *CompanySet
	Sites              *SiteSet
	SitesGroups        *SitesGroupSet
	SitesGroupManagers *SitesGroupManagerSet
	Users              *UserSet
	UserRoles          *UserRoleSet
	Drivers            *DriverSet
	DriversGroups      *DriversGroupSet
	Tariffs            *TariffSet
	RFIDCards          *RFIDCardSet
	ChargePoints       *ChargePointSet
	Sessions           *ChargeSessionSet

	catalog *services.Catalog
	remote  *services.RemoteCommandService
	auth    *services.AuthService
}

func New(c *querycache.Client, catalog *services.Catalog, remote *services.RemoteCommandService, auth *services.AuthService) *Queries {
	q := &Queries{
		Cache:              c,
		Companies:          NewSet(c, catalog.Companies, NSCompanies),
		Sites:              NewSet(c, catalog.Sites, NSSites).WithRelated(func(s models.Site) []querycache.Key { return overviewOf(s.CompanyID) }, AllKey(NSCompanies)),
		SitesGroups:        NewSet(c, catalog.SitesGroups, NSSitesGroups),
		SitesGroupManagers: NewSet(c, catalog.SitesGroupManagers, NSSitesGroupManagers),
		Users:              NewSet(c, catalog.Users, NSUsers).WithRelated(func(u models.User) []querycache.Key { return overviewOf(models.Deref(u.CompanyID)) }, AllKey(NSCompanies)),
		UserRoles:          NewSet(c, catalog.UserRoles, NSUserRoles),
		Drivers:            NewSet(c, catalog.Drivers, NSDrivers),
		DriversGroups:      NewSet(c, catalog.DriversGroups, NSDriversGroups),
		Tariffs:            NewSet(c, catalog.Tariffs, NSTariffs),
		RFIDCards:          NewSet(c, catalog.RFIDCards.Resource, NSRFIDCards),
		ChargePoints:       NewSet(c, catalog.ChargePoints, NSChargePoints).WithRelated(func(cp models.ChargePoint) []querycache.Key { return overviewOf(cp.CompanyID) }, AllKey(NSCompanies)),
		Sessions:           NewSet(c, catalog.ChargeSessions.Resource, NSSessions),
		catalog:            catalog,
		remote:             remote,
		auth:               auth,
	}
	if auth != nil {
		auth.OnLogout(func(context.Context) { c.Clear() })
	}
	return q
}

func overviewOf(companyID int) []querycache.Key {
	if companyID == 0 {
		return nil
	}
	return []querycache.Key{OverviewKey(companyID)}
}

// CompanyOverview loads the company with the sites and users that belong to it.
func (q *Queries) CompanyOverview(ctx context.Context, companyID int) (models.CompanyOverview, error) {
	return querycache.Fetch(ctx, q.Cache, querycache.NewQuery(OverviewKey(companyID), func(ctx context.Context) (models.CompanyOverview, error) {
		var (
			out   models.CompanyOverview
			sites []models.Site
			users []models.User
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			out.Company, err = unwrap(q.catalog.Companies.GetByID(gctx, companyID))
			return err
		})
		g.Go(func() (err error) {
			sites, err = unwrap(q.catalog.Sites.GetAll(gctx))
			return err
		})
		g.Go(func() (err error) {
			users, err = unwrap(q.catalog.Users.GetAll(gctx))
			return err
		})
		if err := g.Wait(); err != nil {
			return models.CompanyOverview{}, err
		}
		out.Sites = make([]models.Site, 0, len(sites))
		for _, s := range sites {
			if s.CompanyID == companyID {
				out.Sites = append(out.Sites, s)
			}
		}
		out.Users = make([]models.User, 0, len(users))
		for _, u := range users {
			if models.Deref(u.CompanyID) == companyID {
				out.Users = append(out.Users, u)
			}
		}
		return out, nil
	}).When(companyID != 0))
}

// RFIDCardByDriver returns the single card held by a driver.
func (q *Queries) RFIDCardByDriver(ctx context.Context, driverID int) (models.RFIDCard, error) {
	return q.RFIDCards.GetBy(ctx, services.RelDriver, driverID)
}

func (q *Queries) SessionsByDriver(ctx context.Context, driverID int) ([]models.ChargeSession, error) {
	return q.Sessions.ListBy(ctx, services.RelDriver, driverID)
}

func (q *Queries) SessionsByChargePoint(ctx context.Context, cpID int) ([]models.ChargeSession, error) {
	return q.Sessions.ListBy(ctx, services.RelChargePoint, cpID)
}

type sessionVars[T any] struct {
	id   int
	data T
}

func sessionAction[T any](ctx context.Context, q *Queries, id int, data T, fn func(context.Context, int, T) (*envelope.Response[models.ChargeSession], error)) (models.ChargeSession, error) {
	return querycache.Mutate(ctx, q.Cache, querycache.Mutation[sessionVars[T], models.ChargeSession]{
		Fn: func(ctx context.Context, v sessionVars[T]) (models.ChargeSession, error) {
			return unwrap(fn(ctx, v.id, v.data))
		},
		Invalidate: func(v sessionVars[T], _ models.ChargeSession) []querycache.Key {
			return []querycache.Key{DetailKey(NSSessions, v.id), AllKey(NSSessions)}
		},
	}, sessionVars[T]{id: id, data: data})
}

func (q *Queries) UpdateSessionEnergy(ctx context.Context, id int, energyKWh string) (models.ChargeSession, error) {
	return sessionAction(ctx, q, id, energyKWh, q.catalog.ChargeSessions.UpdateEnergy)
}

func (q *Queries) StopSession(ctx context.Context, id int, data models.SessionStop) (models.ChargeSession, error) {
	return sessionAction(ctx, q, id, data, q.catalog.ChargeSessions.Stop)
}

func (q *Queries) UpdateSessionPaymentStatus(ctx context.Context, id int, status string) (models.ChargeSession, error) {
	return sessionAction(ctx, q, id, status, q.catalog.ChargeSessions.UpdatePaymentStatus)
}

// CurrentUser reads the signed-in operator from the stored token.
func (q *Queries) CurrentUser(ctx context.Context) (session.Claims, error) {
	return querycache.Fetch(ctx, q.Cache, querycache.NewQuery(CurrentUserKey(), q.auth.CurrentUser))
}

// Login drops everything cached for a previous operator.
func (q *Queries) Login(ctx context.Context, creds models.Credentials, qr *models.QRParams) (models.LoginResult, error) {
	res, err := querycache.Mutate(ctx, q.Cache, querycache.Mutation[models.Credentials, models.LoginResult]{
		Fn: func(ctx context.Context, creds models.Credentials) (models.LoginResult, error) {
			return q.auth.Login(ctx, creds, qr)
		},
	}, creds)
	if err == nil {
		q.Cache.Clear()
	}
	return res, err
}

func (q *Queries) Logout(ctx context.Context) error {
	return q.auth.Logout(ctx)
}
