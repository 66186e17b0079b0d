// Package apiclient is the single HTTP transport used for every CPMS API call.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"cpmsdash/internal/metrics"
	"cpmsdash/internal/security"
	"cpmsdash/internal/session"
)

const (
	DefaultBaseURL     = "http://localhost:8000/api/v1"
	DefaultTimeout     = 30 * time.Second
	DefaultSignInRoute = "/login"

	maxResponseBytes = 8 << 20
)

// Navigator moves the operator to another route of the dashboard.
type Navigator interface {
	Navigate(ctx context.Context, route string)
}

type NavigatorFunc func(ctx context.Context, route string)

func (f NavigatorFunc) Navigate(ctx context.Context, route string) { f(ctx, route) }

type Options struct {
	BaseURL     string
	Timeout     time.Duration
	SignInRoute string
	// Breaker is nil when the circuit breaker is disabled.
	Breaker *BreakerSettings
	// HTTP overrides the underlying client; its Timeout is left untouched.
	HTTP *http.Client
}

type Client struct {
	baseURL string
	signIn  string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
	store   session.Store
	nav     Navigator
	log     *zap.Logger

	mu             sync.Mutex
	onUnauthorized []func(context.Context)
}

func New(opts Options, store session.Store, nav Navigator, log *zap.Logger) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.SignInRoute == "" {
		opts.SignInRoute = DefaultSignInRoute
	}
	if log == nil {
		log = zap.NewNop()
	}
	if nav == nil {
		nav = NavigatorFunc(func(context.Context, string) {})
	}
	hc := opts.HTTP
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}

	c := &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		signIn:  opts.SignInRoute,
		http:    hc,
		store:   store,
		nav:     nav,
		log:     log,
	}
	if opts.Breaker != nil {
		c.breaker = newBreaker(*opts.Breaker, log)
	}
	return c
}

func (c *Client) BaseURL() string     { return c.baseURL }
func (c *Client) SignInRoute() string { return c.signIn }

// OnUnauthorized registers fn to run after the session has been cleared by a 401.
func (c *Client) OnUnauthorized(fn func(ctx context.Context)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = append(c.onUnauthorized, fn)
}

type rawResponse struct {
	status int
	body   []byte
}

// Do sends body as JSON and decodes the 2xx response into out. out may be nil.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	token, err := session.Token(ctx, c.store)
	if err != nil {
		c.log.Warn("session store unavailable", zap.Error(err))
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	raw, err := c.send(req)
	elapsed := time.Since(start)
	metrics.UpstreamLatency.WithLabelValues(method).Observe(elapsed.Seconds())

	status := 0
	if raw != nil {
		status = raw.status
	}
	metrics.UpstreamRequestsTotal.WithLabelValues(method, metrics.StatusClass(status)).Inc()
	c.log.Debug("cpms api request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", status),
		zap.Duration("elapsed", elapsed),
		zap.String("token", security.Fingerprint(token)),
	)

	if raw == nil {
		return &TransportError{Method: method, Path: path, Message: errMessage(err), Err: err}
	}

	if raw.status == http.StatusUnauthorized {
		c.handleUnauthorized(ctx)
		return newStatusError(method, path, raw, ErrUnauthorized)
	}
	if raw.status < 200 || raw.status > 299 {
		return newStatusError(method, path, raw, nil)
	}

	if out == nil || len(raw.body) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw.body, out); err != nil {
		return &TransportError{Method: method, Path: path, StatusCode: raw.status, Body: raw.body,
			Message: "malformed response body", Err: err}
	}
	return nil
}

// send returns a nil response only when no HTTP response was received.
func (c *Client) send(req *http.Request) (*rawResponse, error) {
	if c.breaker == nil {
		return c.roundTrip(req)
	}
	var got *rawResponse
	_, err := c.breaker.Execute(func() (interface{}, error) {
		raw, err := c.roundTrip(req)
		got = raw
		if err != nil {
			return nil, err
		}
		if raw.status >= 500 {
			return raw, fmt.Errorf("server error: %d", raw.status)
		}
		return raw, nil
	})
	if got != nil {
		return got, nil
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		c.log.Warn("circuit breaker open, request blocked", zap.String("url", req.URL.String()))
	}
	return nil, err
}

func (c *Client) roundTrip(req *http.Request) (*rawResponse, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return &rawResponse{status: resp.StatusCode, body: b}, nil
}

func (c *Client) handleUnauthorized(ctx context.Context) {
	metrics.ForcedLogoutsTotal.Inc()
	// the session must be gone even if the caller's context was cancelled
	clearCtx := context.WithoutCancel(ctx)
	if err := c.store.Clear(clearCtx); err != nil {
		c.log.Error("clear session after 401", zap.Error(err))
	}

	c.mu.Lock()
	hooks := append([]func(context.Context){}, c.onUnauthorized...)
	c.mu.Unlock()
	for _, fn := range hooks {
		fn(clearCtx)
	}

	c.log.Info("session expired, redirecting to sign-in", zap.String("route", c.signIn))
	c.nav.Navigate(clearCtx, c.signIn)
}

func errMessage(err error) string {
	if err == nil {
		return "no response"
	}
	return err.Error()
}
