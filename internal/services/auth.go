package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"

	"go.uber.org/zap"

	"cpmsdash/internal/apiclient"
	"cpmsdash/internal/envelope"
	"cpmsdash/internal/models"
	"cpmsdash/internal/security"
	"cpmsdash/internal/session"
)

const loginPath = "/auth/login"

type AuthService struct {
	api   *apiclient.Client
	store session.Store
	nav   apiclient.Navigator
	log   *zap.Logger

	mu       sync.Mutex
	onLogout []func(context.Context)
}

func NewAuthService(api *apiclient.Client, store session.Store, nav apiclient.Navigator, log *zap.Logger) *AuthService {
	if log == nil {
		log = zap.NewNop()
	}
	if nav == nil {
		nav = apiclient.NavigatorFunc(func(context.Context, string) {})
	}
	return &AuthService{api: api, store: store, nav: nav, log: log}
}

// OnLogout registers fn to run after the session has been cleared.
func (s *AuthService) OnLogout(fn func(context.Context)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onLogout = append(s.onLogout, fn)
}

// LoginPath appends the QR parameters only when both are present.
func LoginPath(qr *models.QRParams) string {
	if qr == nil || qr.Charger == "" || qr.Connector == "" {
		return loginPath
	}
	q := url.Values{}
	q.Set("ch", qr.Charger)
	q.Set("co", qr.Connector)
	return loginPath + "?" + q.Encode()
}

// Login authenticates and stores the resulting session.
func (s *AuthService) Login(ctx context.Context, creds models.Credentials, qr *models.QRParams) (models.LoginResult, error) {
	resp, err := apiclient.Post[models.Credentials, models.LoginResult](ctx, s.api, LoginPath(qr), creds)
	if err != nil {
		return models.LoginResult{}, err
	}
	res, err := envelope.Extract(resp)
	if err != nil {
		return models.LoginResult{}, err
	}
	if res.AccessToken == "" {
		return models.LoginResult{}, &envelope.APIError{Message: "login response carried no access token", RequestID: resp.ID}
	}
	if err := s.store.Save(ctx, res.Session()); err != nil {
		return models.LoginResult{}, fmt.Errorf("store session: %w", err)
	}
	s.log.Info("signed in",
		zap.String("username", creds.Username),
		zap.String("token", security.Fingerprint(res.AccessToken)),
		zap.Bool("qr", res.ChargerInfo != nil),
	)
	return res, nil
}

// Logout clears every session key and returns to the sign-in route.
func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.mu.Lock()
	hooks := append([]func(context.Context){}, s.onLogout...)
	s.mu.Unlock()
	for _, fn := range hooks {
		fn(ctx)
	}
	s.nav.Navigate(ctx, s.api.SignInRoute())
	return nil
}

func (s *AuthService) IsAuthenticated(ctx context.Context) bool {
	sess, err := s.store.Load(ctx)
	return err == nil && sess.Authenticated()
}

// ChargerInfo is set only for QR code logins.
func (s *AuthService) ChargerInfo(ctx context.Context) (*session.ChargerInfo, error) {
	sess, err := s.store.Load(ctx)
	if errors.Is(err, session.ErrNoSession) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return sess.ChargerInfo, nil
}

// CurrentUser reads the display claims of the stored access token.
func (s *AuthService) CurrentUser(ctx context.Context) (session.Claims, error) {
	sess, err := s.store.Load(ctx)
	if err != nil {
		return session.Claims{}, err
	}
	return session.ParseClaims(sess.AccessToken)
}
