package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"cpmsdash/internal/apiclient"
	"cpmsdash/internal/envelope"
	"cpmsdash/internal/forms"
	"cpmsdash/internal/querycache"
	"cpmsdash/internal/resource"
)

const maxBodyBytes = 1 << 20

var errBadID = errors.New("invalid id")

func readAll(r *http.Request, limit int64) ([]byte, error) {
	body := http.MaxBytesReader(nil, r.Body, limit)
	defer body.Close()
	return io.ReadAll(body)
}

// decodeJSON fills dst from the request body; an empty body leaves dst untouched.
func decodeJSON(r *http.Request, dst any) error {
	raw, err := readAll(r, maxBodyBytes)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	return nil
}

func pathID(r *http.Request, name string) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || id < 0 {
		return 0, errBadID
	}
	return id, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func badRequest(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
}

// writeError maps query, form and transport failures to a status and body.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		verrs  forms.ValidationErrors
		apiErr *envelope.APIError
		tErr   *apiclient.TransportError
	)
	switch {
	case errors.As(err, &verrs):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"error": "validation failed", "fields": verrs})
	case errors.Is(err, forms.ErrConfirmationMismatch):
		writeJSON(w, http.StatusConflict, map[string]any{"error": err.Error()})
	case errors.Is(err, querycache.ErrDisabled), errors.Is(err, errBadID):
		badRequest(w, err)
	case errors.Is(err, resource.ErrUnsupported):
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"error": err.Error()})
	case errors.As(err, &apiErr):
		body := map[string]any{"error": apiErr.Message}
		if apiErr.Code != "" {
			body["error_code"] = apiErr.Code
		}
		if len(apiErr.Details) > 0 {
			body["error_details"] = apiErr.Details
		}
		writeJSON(w, http.StatusBadRequest, body)
	case apiclient.IsUnauthorized(err):
		s.unauthorized(w)
	case errors.As(err, &tErr):
		s.Log.Warn("upstream request failed", zap.String("path", r.URL.Path), zap.Error(err))
		writeJSON(w, http.StatusBadGateway, map[string]any{"error": tErr.Error()})
	case errors.Is(err, context.DeadlineExceeded):
		writeJSON(w, http.StatusGatewayTimeout, map[string]any{"error": "upstream timeout"})
	default:
		s.Log.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal error"})
	}
}

func (s *Server) unauthorized(w http.ResponseWriter) {
	writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "not signed in", "redirect": s.signInRoute()})
}

func (s *Server) signInRoute() string {
	if s.Cfg.API.SignInRoute != "" {
		return s.Cfg.API.SignInRoute
	}
	return apiclient.DefaultSignInRoute
}
