package httpapi

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"cpmsdash/internal/models"
)

const defaultHistoryLimit = 50

func (s *Server) RemoteStart(w http.ResponseWriter, r *http.Request) {
	cpID, form, ok := commandForm[models.RemoteStart](s, w, r, models.RemoteStart{})
	if !ok {
		return
	}
	s.commandResult(w, r, "remote_start", cpID)(s.Q.RemoteStart(r.Context(), cpID, form))
}

func (s *Server) RemoteStop(w http.ResponseWriter, r *http.Request) {
	cpID, form, ok := commandForm[models.RemoteStop](s, w, r, models.RemoteStop{})
	if !ok {
		return
	}
	s.commandResult(w, r, "remote_stop", cpID)(s.Q.RemoteStop(r.Context(), cpID, form))
}

func (s *Server) Reset(w http.ResponseWriter, r *http.Request) {
	cpID, form, ok := commandForm[models.Reset](s, w, r, models.DefaultReset())
	if !ok {
		return
	}
	s.commandResult(w, r, "reset", cpID)(s.Q.Reset(r.Context(), cpID, form))
}

func commandForm[T any](s *Server, w http.ResponseWriter, r *http.Request, form T) (int, T, bool) {
	cpID, err := pathID(r, "id")
	if err == nil && cpID == 0 {
		err = errBadID
	}
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
	return cpID, form, true
}

// commandResult answers 200 whether or not the charger accepted; the
// outcome is in status.status.
func (s *Server) commandResult(w http.ResponseWriter, r *http.Request, command string, cpID int) func(models.CommandResult, error) {
	return func(res models.CommandResult, err error) {
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		if !res.Accepted() {
			s.Log.Info("remote command not accepted", zap.String("command", command), zap.Int("cp_id", cpID), zap.String("status", res.Status.Status))
		}
		writeJSON(w, http.StatusOK, res)
	}
}

func (s *Server) Connections(w http.ResponseWriter, r *http.Request) {
	conns, err := s.Q.Connections(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if conns.Data.ConnectedChargers == nil {
		conns.Data.ConnectedChargers = []string{}
	}
	writeJSON(w, http.StatusOK, conns)
}

// ListCommands returns the audit history of a charge point, newest first.
func (s *Server) ListCommands(w http.ResponseWriter, r *http.Request) {
	if s.Commands == nil {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "command audit log is disabled"})
		return
	}
	cpID, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	limit := defaultHistoryLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	items, err := s.Commands.ListByChargePoint(r.Context(), cpID, limit)
	if err != nil {
		s.Log.Error("list commands", zap.Int("cp_id", cpID), zap.Error(err))
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(items))
}
