package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{
		BaseURL:       srv.URL + "/api/",
		Timeout:       2 * time.Second,
		BasicAuthUser: "webservice",
		BasicAuthPass: "secret",
		TokenSource: func(context.Context) (string, bool) {
			return "T1", true
		},
	})
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	return client, srv
}

func writeEnvelope(w http.ResponseWriter, code, status int, messages []string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":  status,
		"message": messages,
		"data":    data,
	})
}

func TestBearerAttachedToAuthenticatedCalls(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeEnvelope(w, http.StatusOK, StatusSuccess, nil, nil)
	}))

	if _, err := client.Profile(context.Background()); err != nil {
		t.Fatalf("profile failed: %v", err)
	}
	if gotAuth != "Bearer T1" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
}

func TestOAuthTokenUsesBasicAuth(t *testing.T) {
	var user, pass string
	var ok bool
	var bearer string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok = r.BasicAuth()
		bearer = r.Header.Get("Authorization")
		writeEnvelope(w, http.StatusOK, StatusSuccess, nil, map[string]string{"token": "T1"})
	}))

	resp, err := client.OAuthToken(context.Background())
	if err != nil {
		t.Fatalf("oauth token failed: %v", err)
	}
	if !ok || user != "webservice" || pass != "secret" {
		t.Fatalf("expected basic auth pair, got %q/%q ok=%v", user, pass, ok)
	}
	if len(bearer) > 0 && bearer[:6] == "Bearer" {
		t.Fatalf("token acquisition must not carry a bearer token, got %q", bearer)
	}

	var payload TokenPayload
	if err := resp.DecodeData(&payload); err != nil || payload.Token != "T1" {
		t.Fatalf("expected token payload T1, got %+v err=%v", payload, err)
	}
}

func TestFormOmitsAbsentFields(t *testing.T) {
	var form map[string][]string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		form = r.PostForm
		writeEnvelope(w, http.StatusOK, StatusSuccess, nil, nil)
	}))

	_, err := client.Dashboard(context.Background(), DashboardRequest{
		Category: "order",
		Month:    "08",
		Year:     "2026",
		// DealerID deliberately absent.
	})
	if err != nil {
		t.Fatalf("dashboard failed: %v", err)
	}
	if _, present := form["ms_dealer_id"]; present {
		t.Fatalf("absent field must be omitted from the body, got %v", form)
	}
	if got := form["category"]; len(got) != 1 || got[0] != "order" {
		t.Fatalf("expected category=order, got %v", form)
	}
}

func TestGetUsesQueryParams(t *testing.T) {
	var query string
	var method string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		query = r.URL.RawQuery
		writeEnvelope(w, http.StatusOK, StatusSuccess, nil, nil)
	}))

	if _, err := client.BrosurPromo(context.Background(), 3); err != nil {
		t.Fatalf("brosur promo failed: %v", err)
	}
	if method != http.MethodGet {
		t.Fatalf("expected GET, got %s", method)
	}
	if query != "page=3" {
		t.Fatalf("expected page=3 query, got %q", query)
	}
}

func TestTransportFailureSynthesized(t *testing.T) {
	client, srv := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	resp, err := client.Home(context.Background())
	if err != nil {
		t.Fatalf("expected synthesized envelope, got error %v", err)
	}
	if resp.OK() || !resp.TransportFailed() {
		t.Fatalf("expected transport-failure envelope, got %+v", resp)
	}
	if resp.FirstMessage("") != NetworkErrorMessage {
		t.Fatalf("expected network error message, got %v", resp.Message)
	}
}

func TestAuthExpiredHookRunsOn401(t *testing.T) {
	var teardownCalls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusUnauthorized, StatusError, []string{"token expired"}, nil)
	}))
	defer srv.Close()

	client, err := NewClient(Config{
		BaseURL:       srv.URL,
		BasicAuthUser: "webservice",
		BasicAuthPass: "secret",
		OnAuthExpired: func(context.Context) {
			teardownCalls.Add(1)
		},
	})
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}

	// Any authenticated call triggers teardown, not just auth endpoints.
	resp, err := client.Dashboard(context.Background(), DashboardRequest{Category: "order"})
	if err != nil {
		t.Fatalf("dashboard failed: %v", err)
	}
	if resp.OK() {
		t.Fatal("expected error envelope")
	}
	if teardownCalls.Load() != 1 {
		t.Fatalf("expected exactly one teardown call, got %d", teardownCalls.Load())
	}
	if resp.FirstMessage("") != "token expired" {
		t.Fatalf("expected envelope to surface after teardown, got %v", resp.Message)
	}
}

func TestErrorEnvelopePassedThrough(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusBadRequest, StatusError, []string{"invalid basic auth"}, nil)
	}))

	resp, err := client.OAuthToken(context.Background())
	if err != nil {
		t.Fatalf("expected envelope, got error %v", err)
	}
	if resp.OK() || resp.FirstMessage("") != "invalid basic auth" {
		t.Fatalf("expected application-level failure envelope, got %+v", resp)
	}
}

func TestUndecodableErrorBody(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))

	resp, err := client.Home(context.Background())
	if err != nil {
		t.Fatalf("expected envelope, got error %v", err)
	}
	if resp.OK() {
		t.Fatal("expected error envelope")
	}
	if resp.FirstMessage("") != http.StatusText(http.StatusBadGateway) {
		t.Fatalf("expected status text message, got %v", resp.Message)
	}
}

func TestRequestIDHeaderPresent(t *testing.T) {
	var requestID string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID = r.Header.Get("X-Request-ID")
		writeEnvelope(w, http.StatusOK, StatusSuccess, nil, nil)
	}))

	if _, err := client.Leaderboard(context.Background()); err != nil {
		t.Fatalf("leaderboard failed: %v", err)
	}
	if requestID == "" {
		t.Fatal("expected X-Request-ID header")
	}
}

func TestNewClientValidation(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
	}{
		{"missing base url", Config{BasicAuthUser: "u", BasicAuthPass: "p"}},
		{"missing basic auth", Config{BaseURL: "https://example.com/api/"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewClient(tc.cfg); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
