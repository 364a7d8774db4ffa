// Package agent keeps a client continuously authenticated against the
// session API: it polls the validation endpoint, refreshes the access token
// proactively before expiry, and retries failed authenticated requests once
// after a refresh. Concurrent refresh attempts collapse into a single
// network call.
package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// ErrSessionExpired is returned by Do when a 401 could not be recovered by
// refreshing; the caller should send the user back to sign-in.
var ErrSessionExpired = errors.New("session expired")

const (
	defaultPollInterval   = 5 * time.Minute
	defaultRefreshBuffer  = 10 * time.Second
	defaultRequestTimeout = 10 * time.Second

	sessionPath = "/api/v1/session"
	refreshPath = "/api/v1/token/refresh"
	signOutPath = "/api/v1/sign-out"

	csrfHeader = "X-CSRF-Token"
)

type Config struct {
	BaseURL string

	// PollInterval is how often Run re-validates the session.
	PollInterval time.Duration
	// RefreshBuffer is how long before the estimated access-token expiry
	// the proactive renewal fires.
	RefreshBuffer  time.Duration
	RequestTimeout time.Duration

	// HTTPClient, when nil, defaults to a client with its own cookie jar
	// so the token cookies round-trip automatically.
	HTTPClient *http.Client
	Logger     zerolog.Logger
}

// State is a snapshot of the agent's view of the session.
type State struct {
	Authenticated bool
	Loading       bool
	ExpiresIn     int
	CSRFToken     string
}

type Agent struct {
	baseURL string
	poll    time.Duration
	buffer  time.Duration
	client  *http.Client
	log     zerolog.Logger

	flight singleflight.Group
	wake   chan struct{}

	mu         sync.Mutex
	state      State
	renewTimer *time.Timer
}

func New(cfg Config) (*Agent, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("agent: BaseURL required")
	}

	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}
	if cfg.RefreshBuffer <= 0 {
		cfg.RefreshBuffer = defaultRefreshBuffer
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}

	client := cfg.HTTPClient
	if client == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("agent: cookie jar: %w", err)
		}
		client = &http.Client{Jar: jar, Timeout: cfg.RequestTimeout}
	}

	return &Agent{
		baseURL: cfg.BaseURL,
		poll:    cfg.PollInterval,
		buffer:  cfg.RefreshBuffer,
		client:  client,
		log:     cfg.Logger,
		wake:    make(chan struct{}, 1),
	}, nil
}

// SetCSRFToken seeds the CSRF secret obtained out-of-band, typically from
// the sign-in response body. Refreshes replace it automatically afterwards.
func (a *Agent) SetCSRFToken(token string) {
	a.mu.Lock()
	a.state.CSRFToken = token
	a.mu.Unlock()
}

// State returns a snapshot of the current session state.
func (a *Agent) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.state
}

type sessionResponse struct {
	Valid     bool   `json:"valid"`
	UserID    string `json:"userId"`
	ExpiresIn int    `json:"expiresIn"`
	Error     string `json:"error"`
}

type refreshResponse struct {
	Success   bool   `json:"success"`
	CSRFToken string `json:"csrfToken"`
}

// CheckSession asks the server whether the session is still valid. A 401
// triggers exactly one refresh attempt before the agent gives up and marks
// itself unauthenticated. Safe to call concurrently with itself.
func (a *Agent) CheckSession(ctx context.Context) error {
	a.setLoading(true)
	defer a.setLoading(false)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+sessionPath, nil)
	if err != nil {
		return err
	}

	resp, err := a.client.Do(req)
	if err != nil {
		a.markUnauthenticated()
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		var body sessionResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			a.markUnauthenticated()
			return err
		}
		if !body.Valid {
			a.markUnauthenticated()
			return nil
		}

		a.mu.Lock()
		a.state.Authenticated = true
		a.state.ExpiresIn = body.ExpiresIn
		a.mu.Unlock()

		a.scheduleRenewal(body.ExpiresIn)

	case resp.StatusCode == http.StatusUnauthorized:
		if !a.Refresh(ctx) {
			a.markUnauthenticated()
		}

	default:
		a.markUnauthenticated()
	}

	return nil
}

// Refresh rotates the access token, with at-most-one-in-flight semantics:
// callers arriving while a refresh is pending share its outcome instead of
// issuing a second round trip. Two racing refreshes would each rotate the
// session server-side and invalidate the loser's new access token.
func (a *Agent) Refresh(ctx context.Context) bool {
	v, err, _ := a.flight.Do("refresh", func() (interface{}, error) {
		return a.doRefresh(ctx)
	})
	if err != nil {
		a.log.Debug().Err(err).Msg("refresh failed")
		a.markUnauthenticated()

		return false
	}

	return v.(bool)
}

func (a *Agent) doRefresh(ctx context.Context) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+refreshPath, nil)
	if err != nil {
		return false, err
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		a.markUnauthenticated()
		return false, nil
	}

	var body refreshResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false, err
	}

	a.mu.Lock()
	a.state.Authenticated = true
	a.state.CSRFToken = body.CSRFToken
	a.mu.Unlock()

	return true, nil
}

// Do issues an authenticated request. On a 401 it refreshes and retries
// the request exactly once; if the refresh fails it reports
// ErrSessionExpired. The request should carry GetBody (http.NewRequest
// sets it for common body types) for the retry to replay a body.
func (a *Agent) Do(req *http.Request) (*http.Response, error) {
	a.decorate(req)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}
	resp.Body.Close()

	if !a.Refresh(req.Context()) {
		a.markUnauthenticated()
		return nil, ErrSessionExpired
	}

	retry := req.Clone(req.Context())
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, err
		}
		retry.Body = body
	}
	a.decorate(retry)

	return a.client.Do(retry)
}

// SignOut ends the session server-side and resets local state.
func (a *Agent) SignOut(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+signOutPath, nil)
	if err != nil {
		return err
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	a.markUnauthenticated()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("sign-out returned %d", resp.StatusCode)
	}

	return nil
}

// Run drives the scheduling triggers: an immediate check, a periodic poll,
// and Wake deliveries. It returns when ctx is cancelled, stopping every
// timer so nothing fires a refresh after teardown.
func (a *Agent) Run(ctx context.Context) {
	_ = a.CheckSession(ctx)

	ticker := time.NewTicker(a.poll)
	defer ticker.Stop()
	defer a.stopRenewTimer()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = a.CheckSession(ctx)
		case <-a.wake:
			_ = a.CheckSession(ctx)
		}
	}
}

// Wake requests an immediate session check from Run, coalescing bursts.
// Hook it to focus/visibility-style events of the host application.
func (a *Agent) Wake() {
	select {
	case a.wake <- struct{}{}:
	default:
	}
}

// scheduleRenewal arms the proactive one-shot refresh a fixed buffer ahead
// of the estimated access-token expiry.
func (a *Agent) scheduleRenewal(expiresIn int) {
	delay := time.Duration(expiresIn)*time.Second - a.buffer
	if delay < 0 {
		delay = 0
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.renewTimer != nil {
		a.renewTimer.Stop()
	}

	a.renewTimer = time.AfterFunc(delay, func() {
		ctx, cancel := context.WithTimeout(context.Background(), a.client.Timeout+time.Second)
		defer cancel()

		if !a.Refresh(ctx) {
			a.markUnauthenticated()
		}
	})
}

func (a *Agent) markUnauthenticated() {
	a.mu.Lock()
	a.state.Authenticated = false
	a.state.ExpiresIn = 0
	a.state.CSRFToken = ""
	timer := a.renewTimer
	a.renewTimer = nil
	a.mu.Unlock()

	if timer != nil {
		timer.Stop()
	}
}

func (a *Agent) stopRenewTimer() {
	a.mu.Lock()
	timer := a.renewTimer
	a.renewTimer = nil
	a.mu.Unlock()

	if timer != nil {
		timer.Stop()
	}
}

func (a *Agent) setLoading(v bool) {
	a.mu.Lock()
	a.state.Loading = v
	a.mu.Unlock()
}

func (a *Agent) decorate(req *http.Request) {
	a.mu.Lock()
	csrf := a.state.CSRFToken
	a.mu.Unlock()

	if csrf != "" {
		req.Header.Set(csrfHeader, csrf)
	}
}
