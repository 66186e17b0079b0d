package httpapi

import (
	"net/http"
	"strconv"

	"cpmsdash/internal/forms"
	"cpmsdash/internal/models"
)

func (s *Server) CompanyOverview(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	ov, err := s.Q.CompanyOverview(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ov)
}

func (s *Server) RFIDCardByDriver(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "driverID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	card, err := s.Q.RFIDCardByDriver(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

func (s *Server) SessionsByDriver(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "driverID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	items, err := s.Q.SessionsByDriver(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(items))
}

func (s *Server) SessionsByChargePoint(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "cpID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	items, err := s.Q.SessionsByChargePoint(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(items))
}

func (s *Server) UpdateSessionEnergy(w http.ResponseWriter, r *http.Request) {
	id, form, ok := sessionForm[models.SessionEnergy](s, w, r)
	if !ok {
		return
	}
	s.sessionResult(w, r)(s.Q.UpdateSessionEnergy(r.Context(), id, form.EnergyKWh))
}

func (s *Server) StopSession(w http.ResponseWriter, r *http.Request) {
	id, form, ok := sessionForm[models.SessionStop](s, w, r)
	if !ok {
		return
	}
	s.sessionResult(w, r)(s.Q.StopSession(r.Context(), id, form))
}

func (s *Server) UpdateSessionPaymentStatus(w http.ResponseWriter, r *http.Request) {
	id, form, ok := sessionForm[models.SessionPayment](s, w, r)
	if !ok {
		return
	}
	s.sessionResult(w, r)(s.Q.UpdateSessionPaymentStatus(r.Context(), id, form.PaymentStatus))
}

func sessionForm[T any](s *Server, w http.ResponseWriter, r *http.Request) (int, T, bool) {
	var form T
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return 0, form, false
	}
	if err := decodeJSON(r, &form); err != nil {
		badRequest(w, err)
		return 0, form, false
	}
	if err := s.Forms.Struct(form); err != nil {
		s.writeError(w, r, err)
		return 0, form, false
	}
	return id, form, true
}

func (s *Server) sessionResult(w http.ResponseWriter, r *http.Request) func(models.ChargeSession, error) {
	return func(cs models.ChargeSession, err error) {
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, cs)
	}
}

func (s *Server) ListConnectors(w http.ResponseWriter, r *http.Request) {
	cpID, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	items, err := s.Q.ConnectorsByChargePoint(r.Context(), cpID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(items))
}

// CreateConnector takes the charge point from the path.
func (s *Server) CreateConnector(w http.ResponseWriter, r *http.Request) {
	cpID, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	form := models.DefaultConnectorCreate()
	if err := decodeJSON(r, &form); err != nil {
		badRequest(w, err)
		return
	}
	form.CPID = cpID
	if err := s.Forms.Struct(form); err != nil {
		s.writeError(w, r, err)
		return
	}
	c, err := s.Q.CreateConnector(r.Context(), form)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) UpdateConnector(w http.ResponseWriter, r *http.Request) {
	cpID, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	connectorID, err := pathID(r, "connectorID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var form models.ConnectorUpdate
	if err := decodeJSON(r, &form); err != nil {
		badRequest(w, err)
		return
	}
	form.CPID = cpID
	if err := s.Forms.Struct(form); err != nil {
		s.writeError(w, r, err)
		return
	}
	c, err := s.Q.UpdateConnector(r.Context(), connectorID, form)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// DeleteConnector requires the connector number typed as confirmation.
func (s *Server) DeleteConnector(w http.ResponseWriter, r *http.Request) {
	cpID, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	connectorID, err := pathID(r, "connectorID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req deleteReq
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, err)
		return
	}
	if err := forms.Confirm(strconv.Itoa(connectorID), req.Confirm); err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.Q.DeleteConnector(r.Context(), connectorID, cpID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
