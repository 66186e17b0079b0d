package models

import "cpmsdash/internal/session"

type Credentials struct {
	Username string `json:"username" validate:"notblank"`
	Password string `json:"password" validate:"required"`
}

// QRParams come from a charger QR code: charger name and connector.
type QRParams struct {
	Charger   string `json:"ch"`
	Connector string `json:"co"`
}

type LoginResult struct {
	AccessToken  string               `json:"access_token"`
	TokenType    string               `json:"token_type"`
	ExpiresIn    int                  `json:"expires_in"`
	RefreshToken *string              `json:"refresh_token,omitempty"`
	ChargerInfo  *session.ChargerInfo `json:"charger_info,omitempty"`
}

func (l LoginResult) Session() session.Session {
	return session.Session{
		AccessToken:  l.AccessToken,
		RefreshToken: Deref(l.RefreshToken),
		TokenType:    l.TokenType,
		ExpiresIn:    l.ExpiresIn,
		ChargerInfo:  l.ChargerInfo,
	}
}
