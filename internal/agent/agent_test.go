package agent_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/h-hub/secure-webapp/internal/agent"
)

func newAgent(t *testing.T, baseURL string) *agent.Agent {
	t.Helper()

	a, err := agent.New(agent.Config{
		BaseURL:        baseURL,
		PollInterval:   time.Hour,
		RefreshBuffer:  time.Second,
		RequestTimeout: 5 * time.Second,
		Logger:         zerolog.Nop(),
	})
	require.NoError(t, err)

	return a
}

func TestNewRequiresBaseURL(t *testing.T) {
	_, err := agent.New(agent.Config{})
	assert.Error(t, err)
}

func TestCheckSessionValid(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/session", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"valid":true,"userId":"user-123","expiresIn":3600}`)
	}))
	defer srv.Close()

	a := newAgent(t, srv.URL)
	require.NoError(t, a.CheckSession(context.Background()))

	state := a.State()
	assert.True(t, state.Authenticated)
	assert.False(t, state.Loading)
	assert.Equal(t, 3600, state.ExpiresIn)
}

func TestCheckSessionUnauthorizedRecoversViaRefresh(t *testing.T) {
	var refreshCalls int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/v1/session":
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"valid":false,"error":"access-invalid"}`)
		case "/api/v1/token/refresh":
			atomic.AddInt32(&refreshCalls, 1)
			fmt.Fprint(w, `{"success":true,"csrfToken":"fresh-secret"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	a := newAgent(t, srv.URL)
	require.NoError(t, a.CheckSession(context.Background()))

	state := a.State()
	assert.True(t, state.Authenticated)
	assert.Equal(t, "fresh-secret", state.CSRFToken)
	assert.Equal(t, int32(1), atomic.LoadInt32(&refreshCalls))
}

func TestCheckSessionGivesUpWhenRefreshFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	a := newAgent(t, srv.URL)
	require.NoError(t, a.CheckSession(context.Background()))

	assert.False(t, a.State().Authenticated)
}

func TestCheckSessionServerUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	a := newAgent(t, srv.URL)
	assert.Error(t, a.CheckSession(context.Background()))
	assert.False(t, a.State().Authenticated)
}

// TestRefreshDeduplicatesConcurrentCalls pins the at-most-one-in-flight
// property: callers that arrive while a refresh is pending share its result
// instead of issuing their own round trip.
func TestRefreshDeduplicatesConcurrentCalls(t *testing.T) {
	var refreshCalls int32
	firstArrived := make(chan struct{})
	release := make(chan struct{})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/token/refresh" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if atomic.AddInt32(&refreshCalls, 1) == 1 {
			close(firstArrived)
		}
		<-release
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"success":true,"csrfToken":"shared-secret"}`)
	}))
	defer srv.Close()

	a := newAgent(t, srv.URL)

	const callers = 10
	results := make(chan bool, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- a.Refresh(context.Background())
		}()
	}

	// Let every caller pile onto the in-flight request before it completes.
	<-firstArrived
	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()
	close(results)

	for ok := range results {
		assert.True(t, ok)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&refreshCalls))
	assert.Equal(t, "shared-secret", a.State().CSRFToken)
}

func TestDoRetriesOnceAfterRefresh(t *testing.T) {
	var apiCalls, refreshCalls int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/v1/token/refresh":
			atomic.AddInt32(&refreshCalls, 1)
			fmt.Fprint(w, `{"success":true,"csrfToken":"rotated-secret"}`)
		case "/api/v1/profile":
			if atomic.AddInt32(&apiCalls, 1) == 1 {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			// The retry must carry the CSRF secret from the refresh.
			assert.Equal(t, "rotated-secret", r.Header.Get("X-CSRF-Token"))
			fmt.Fprint(w, `{"id":"user-123","email":"a@x.com"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	a := newAgent(t, srv.URL)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/v1/profile", nil)
	require.NoError(t, err)

	resp, err := a.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(2), atomic.LoadInt32(&apiCalls))
	assert.Equal(t, int32(1), atomic.LoadInt32(&refreshCalls))
}

func TestDoReplaysBodyOnRetry(t *testing.T) {
	var apiCalls int32
	bodies := make(chan string, 2)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/v1/token/refresh":
			fmt.Fprint(w, `{"success":true,"csrfToken":"rotated-secret"}`)
		case "/api/v1/update":
			b, _ := io.ReadAll(r.Body)
			bodies <- string(b)
			if atomic.AddInt32(&apiCalls, 1) == 1 {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	a := newAgent(t, srv.URL)

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/v1/update",
		strings.NewReader(`{"name":"alice"}`))
	require.NoError(t, err)

	resp, err := a.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `{"name":"alice"}`, <-bodies)
	assert.Equal(t, `{"name":"alice"}`, <-bodies)
}

func TestDoReportsSessionExpired(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	a := newAgent(t, srv.URL)
	a.SetCSRFToken("stale-secret")

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/v1/profile", nil)
	require.NoError(t, err)

	_, err = a.Do(req)
	assert.ErrorIs(t, err, agent.ErrSessionExpired)

	state := a.State()
	assert.False(t, state.Authenticated)
	assert.Empty(t, state.CSRFToken)
}

func TestDoSendsCSRFHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "seeded-secret", r.Header.Get("X-CSRF-Token"))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	a := newAgent(t, srv.URL)
	a.SetCSRFToken("seeded-secret")

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/v1/profile", nil)
	require.NoError(t, err)

	resp, err := a.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
}

func TestSignOutResetsState(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/sign-out", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"success":true}`)
	}))
	defer srv.Close()

	a := newAgent(t, srv.URL)
	a.SetCSRFToken("live-secret")

	require.NoError(t, a.SignOut(context.Background()))

	state := a.State()
	assert.False(t, state.Authenticated)
	assert.Empty(t, state.CSRFToken)
}

func TestSignOutClearsStateEvenOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	a := newAgent(t, srv.URL)
	a.SetCSRFToken("live-secret")

	assert.Error(t, a.SignOut(context.Background()))
	assert.False(t, a.State().Authenticated)
}

func TestProactiveRenewalFiresBeforeExpiry(t *testing.T) {
	var refreshCalls int32
	refreshed := make(chan struct{}, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/v1/session":
			// An expiry inside the refresh buffer arms the renewal timer at
			// zero delay, so it fires right away.
			fmt.Fprint(w, `{"valid":true,"userId":"user-123","expiresIn":1}`)
		case "/api/v1/token/refresh":
			if atomic.AddInt32(&refreshCalls, 1) == 1 {
				refreshed <- struct{}{}
			}
			fmt.Fprint(w, `{"success":true,"csrfToken":"renewed-secret"}`)
		}
	}))
	defer srv.Close()

	a, err := agent.New(agent.Config{
		BaseURL:       srv.URL,
		PollInterval:  time.Hour,
		RefreshBuffer: 5 * time.Second,
		Logger:        zerolog.Nop(),
	})
	require.NoError(t, err)

	require.NoError(t, a.CheckSession(context.Background()))

	select {
	case <-refreshed:
	case <-time.After(2 * time.Second):
		t.Fatal("proactive renewal never fired")
	}
}

func TestRunRespondsToWakeAndCancel(t *testing.T) {
	var sessionCalls int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/session" {
			atomic.AddInt32(&sessionCalls, 1)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"valid":true,"userId":"user-123","expiresIn":3600}`)
	}))
	defer srv.Close()

	a := newAgent(t, srv.URL)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		a.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&sessionCalls) >= 1
	}, 2*time.Second, 10*time.Millisecond)

	a.Wake()
	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&sessionCalls) >= 2
	}, 2*time.Second, 10*time.Millisecond)

	// A burst of wakes coalesces instead of blocking the caller.
	a.Wake()
	a.Wake()
	a.Wake()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
