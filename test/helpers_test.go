package test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	partsclient "github.com/mandalaparts/partsclient"
	"github.com/mandalaparts/partsclient/store"
)

const (
	testBasicUser    = "client-id"
	testBasicPass    = "client-secret"
	testAccountEmail = "alice@example.com"
	testAccountPass  = "correct-horse"
	testBearerToken  = "tok-1"
	testSessionID    = "sess-1"
)

// backendServer is an httptest-backed fake of the real API speaking the
// status/message/data envelope over form posts.
type backendServer struct {
	*httptest.Server

	mu          sync.Mutex
	logoutCalls int
	// forceUnauthorized makes every bearer-authenticated call answer 401,
	// simulating a bearer token the backend no longer accepts.
	forceUnauthorized bool
}

func newBackendServer(t *testing.T) *backendServer {
	t.Helper()

	srv := &backendServer{}
	mux := http.NewServeMux()

	mux.HandleFunc("POST /oauth/token", func(w http.ResponseWriter, r *http.Request) {
		u, p, ok := r.BasicAuth()
		if !ok || u != testBasicUser || p != testBasicPass {
			w.WriteHeader(http.StatusUnauthorized)
			writeEnvelope(w, 0, []string{"Invalid client"}, nil)
			return
		}
		writeEnvelope(w, 1, nil, map[string]string{"token": testBearerToken})
	})

	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		if srv.rejectStaleBearer(w, r) {
			return
		}
		if r.FormValue("email") != testAccountEmail || r.FormValue("password") != testAccountPass {
			writeEnvelope(w, 0, []string{"Wrong email or password"}, nil)
			return
		}
		writeEnvelope(w, 1, nil, map[string]string{
			"session_id": testSessionID,
			"id_role":    partsclient.RoleSalesman,
			"name":       "Alice",
			"email":      testAccountEmail,
		})
	})

	mux.HandleFunc("POST /auth/logout", func(w http.ResponseWriter, r *http.Request) {
		srv.mu.Lock()
		srv.logoutCalls++
		srv.mu.Unlock()
		writeEnvelope(w, 1, []string{"Signed out"}, nil)
	})

	mux.HandleFunc("GET /home", func(w http.ResponseWriter, r *http.Request) {
		if srv.rejectStaleBearer(w, r) {
			return
		}
		writeEnvelope(w, 1, nil, map[string]string{"greeting": "welcome"})
	})

	srv.Server = httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func (b *backendServer) rejectStaleBearer(w http.ResponseWriter, r *http.Request) bool {
	b.mu.Lock()
	unauthorized := b.forceUnauthorized
	b.mu.Unlock()

	if unauthorized || r.Header.Get("Authorization") != "Bearer "+testBearerToken {
		w.WriteHeader(http.StatusUnauthorized)
		writeEnvelope(w, 0, []string{"Unauthorized"}, nil)
		return true
	}
	return false
}

func (b *backendServer) setForceUnauthorized(v bool) {
	b.mu.Lock()
	b.forceUnauthorized = v
	b.mu.Unlock()
}

func (b *backendServer) logoutCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.logoutCalls
}

func writeEnvelope(w http.ResponseWriter, status int, messages []string, data any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":  status,
		"message": messages,
		"data":    data,
	})
}

func newEngine(t *testing.T, srv *backendServer, s store.Store) *partsclient.Engine {
	t.Helper()

	cfg := partsclient.DefaultConfig()
	cfg.API.BaseURL = srv.URL
	cfg.API.BasicAuthUser = testBasicUser
	cfg.API.BasicAuthPass = testBasicPass

	engine, err := partsclient.New().
		WithConfig(cfg).
		WithStore(s).
		WithMetricsEnabled(true).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(engine.Close)
	return engine
}
