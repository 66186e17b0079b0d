// Package session holds the authenticated operator's tokens and the stores
// they are persisted in.
package session

import (
	"context"
	"errors"
	"time"
)

// Storage keys. RedisStore uses them as hash fields.
const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
	KeyTokenType    = "token_type"
	KeyExpiresIn    = "expires_in"
	KeyChargerInfo  = "charger_info"
)

// Keys lists every key cleared on logout or on an unauthorized response.
var Keys = []string{KeyAccessToken, KeyRefreshToken, KeyTokenType, KeyExpiresIn, KeyChargerInfo}

var ErrNoSession = errors.New("session: not signed in")

// ChargerInfo is returned by the API when the login came from a charger QR code.
type ChargerInfo struct {
	CPID        int    `json:"cp_id"`
	CPName      string `json:"cp_name"`
	ConnectorID int    `json:"connector_id"`
}

type Session struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
	ExpiresIn    int
	ChargerInfo  *ChargerInfo
}

func (s Session) Authenticated() bool { return s.AccessToken != "" }

// TTL is the token lifetime, zero when the API did not report one.
func (s Session) TTL() time.Duration {
	if s.ExpiresIn <= 0 {
		return 0
	}
	return time.Duration(s.ExpiresIn) * time.Second
}

// Store persists a single session. Load returns ErrNoSession when nothing is stored.
type Store interface {
	Load(ctx context.Context) (Session, error)
	Save(ctx context.Context, s Session) error
	Clear(ctx context.Context) error
}

// Token returns the access token from st, or "" when not signed in.
func Token(ctx context.Context, st Store) (string, error) {
	s, err := st.Load(ctx)
	if errors.Is(err, ErrNoSession) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return s.AccessToken, nil
}
