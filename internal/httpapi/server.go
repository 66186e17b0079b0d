// Package httpapi serves the dashboard's JSON API on top of the cached
// CPMS queries.
package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"cpmsdash/internal/config"
	"cpmsdash/internal/forms"
	"cpmsdash/internal/models"
	"cpmsdash/internal/queries"
	"cpmsdash/internal/services"
)

// CommandHistory lists the audited remote commands of a charge point.
type CommandHistory interface {
	ListByChargePoint(ctx context.Context, cpID, limit int) ([]models.CommandRecord, error)
}

type Server struct {
	Cfg   config.Config
	Q     *queries.Queries
	Auth  *services.AuthService
	Forms *forms.Validator
	// Commands is nil when the audit log is disabled.
	Commands CommandHistory
	Log      *zap.Logger
}

func NewServer(cfg config.Config, q *queries.Queries, auth *services.AuthService, commands CommandHistory, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{Cfg: cfg, Q: q, Auth: auth, Forms: forms.New(), Commands: commands, Log: log}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Handle("/metrics", RequireBearer(s.Cfg.HTTP.MetricsToken, promhttp.Handler()))

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", s.Login)
		r.Post("/logout", s.Logout)
		r.With(s.requireSession).Get("/me", s.Me)
	})

	r.Route("/v1", func(r chi.Router) {
		r.Use(s.requireSession)

		r.Route("/companies", func(r chi.Router) {
			r.Get("/{id}/overview", s.CompanyOverview)
			mountCRUD(s, r, s.Q.Companies, models.DefaultCompanyCreate, true)
		})
		r.Route("/sites", func(r chi.Router) {
			mountCRUD(s, r, s.Q.Sites, models.DefaultSiteCreate, true)
		})
		r.Route("/sites-groups", func(r chi.Router) {
			mountCRUD(s, r, s.Q.SitesGroups, models.DefaultSitesGroupCreate, true)
		})
		r.Route("/sites-group-managers", func(r chi.Router) {
			mountCRUD(s, r, s.Q.SitesGroupManagers, nil, true)
		})
		r.Route("/drivers", func(r chi.Router) {
			mountCRUD(s, r, s.Q.Drivers, models.DefaultDriverCreate, true)
		})
		r.Route("/drivers-groups", func(r chi.Router) {
			mountCRUD(s, r, s.Q.DriversGroups, models.DefaultDriversGroupCreate, true)
		})
		r.Route("/users", func(r chi.Router) {
			mountCRUD(s, r, s.Q.Users, nil, true)
		})
		r.Route("/user_roles", func(r chi.Router) {
			mountCRUD(s, r, s.Q.UserRoles, models.DefaultUserRoleCreate, true)
		})
		r.Route("/tariffs", func(r chi.Router) {
			mountCRUD(s, r, s.Q.Tariffs, models.DefaultTariffCreate, true)
		})
		r.Route("/rfidcards", func(r chi.Router) {
			r.Get("/driver/{driverID}", s.RFIDCardByDriver)
			mountCRUD(s, r, s.Q.RFIDCards, models.DefaultRFIDCardCreate, true)
		})
		r.Route("/chargepoints", func(r chi.Router) {
			r.Route("/{id}/connectors", func(r chi.Router) {
				r.Get("/", s.ListConnectors)
				r.Post("/", s.CreateConnector)
				r.Put("/{connectorID}", s.UpdateConnector)
				r.Delete("/{connectorID}", s.DeleteConnector)
			})
			r.Post("/{id}/remote-start", s.RemoteStart)
			r.Post("/{id}/remote-stop", s.RemoteStop)
			r.Post("/{id}/reset", s.Reset)
			r.Get("/{id}/commands", s.ListCommands)
			mountCRUD(s, r, s.Q.ChargePoints, models.DefaultChargePointCreate, true)
		})
		r.Route("/chargesessions", func(r chi.Router) {
			r.Get("/driver/{driverID}", s.SessionsByDriver)
			r.Get("/chargepoint/{cpID}", s.SessionsByChargePoint)
			r.Put("/{id}/energy", s.UpdateSessionEnergy)
			r.Put("/{id}/stop", s.StopSession)
			r.Put("/{id}/payment-status", s.UpdateSessionPaymentStatus)
			mountCRUD(s, r, s.Q.Sessions, models.DefaultChargeSessionCreate, false)
		})
		r.Get("/connections", s.Connections)
	})
	return r
}
