package httpapi

import (
	"net/http"

	"cpmsdash/internal/models"
)

// Login accepts ch and co query parameters from a charger QR code.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := decodeJSON(r, &creds); err != nil {
		badRequest(w, err)
		return
	}
	if err := s.Forms.Struct(creds); err != nil {
		s.writeError(w, r, err)
		return
	}
	var qr *models.QRParams
	if ch, co := r.URL.Query().Get("ch"), r.URL.Query().Get("co"); ch != "" && co != "" {
		qr = &models.QRParams{Charger: ch, Connector: co}
	}
	res, err := s.Q.Login(r.Context(), creds, qr)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"token_type":   res.TokenType,
		"expires_in":   res.ExpiresIn,
		"charger_info": res.ChargerInfo,
	})
}

func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	if err := s.Q.Logout(r.Context()); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"redirect": s.signInRoute()})
}

func (s *Server) Me(w http.ResponseWriter, r *http.Request) {
	info, err := s.Auth.ChargerInfo(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	body := map[string]any{"user": nil, "charger_info": info}
	// opaque tokens carry no claims
	if claims, err := s.Q.CurrentUser(r.Context()); err == nil {
		body["user"] = claims
	}
	writeJSON(w, http.StatusOK, body)
}
