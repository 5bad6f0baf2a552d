package test

import (
	"context"
	"path/filepath"
	"testing"

	partsclient "github.com/mandalaparts/partsclient"
	"github.com/mandalaparts/partsclient/store"
)

func TestLoginLifecycleAgainstHTTPBackend(t *testing.T) {
	ctx := context.Background()
	srv := newBackendServer(t)
	s := store.NewMemory()
	engine := newEngine(t, srv, s)

	user, err := engine.Login(ctx, testAccountEmail, testAccountPass)
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if user.Name != "Alice" || user.Email != testAccountEmail || user.IDRole != partsclient.RoleSalesman {
		t.Fatalf("unexpected user snapshot: %+v", user)
	}

	token, ok, err := store.AccessToken(ctx, s)
	if err != nil || !ok || token != testBearerToken {
		t.Fatalf("expected persisted token %q, got %q ok=%v err=%v", testBearerToken, token, ok, err)
	}
	sid, ok, err := store.SessionID(ctx, s)
	if err != nil || !ok || sid != testSessionID {
		t.Fatalf("expected persisted session id %q, got %q ok=%v err=%v", testSessionID, sid, ok, err)
	}
	obfuscated, ok, err := store.Password(ctx, s)
	if err != nil || !ok {
		t.Fatalf("expected persisted password, ok=%v err=%v", ok, err)
	}
	if obfuscated == testAccountPass {
		t.Fatal("persisted password must not be the plaintext")
	}

	if !engine.IsLoggedIn(ctx) {
		t.Fatal("expected IsLoggedIn after login")
	}

	if err := engine.Logout(ctx); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if got := srv.logoutCount(); got != 1 {
		t.Fatalf("expected 1 remote logout call, got %d", got)
	}
	if engine.IsLoggedIn(ctx) {
		t.Fatal("expected logged out after Logout")
	}
	for _, key := range store.SessionKeys {
		if _, ok, _ := s.Get(ctx, key); ok {
			t.Fatalf("expected key %q cleared after logout", key)
		}
	}
}

func TestAuthExpiryTearsDownSession(t *testing.T) {
	ctx := context.Background()
	srv := newBackendServer(t)
	s := store.NewMemory()
	engine := newEngine(t, srv, s)

	if _, err := engine.Login(ctx, testAccountEmail, testAccountPass); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	srv.setForceUnauthorized(true)

	resp, err := engine.Gateway().Home(ctx)
	if err != nil {
		t.Fatalf("Home failed: %v", err)
	}
	if resp.OK() {
		t.Fatal("expected error envelope from 401 response")
	}

	if _, ok, _ := s.Get(ctx, store.KeyAccessToken); ok {
		t.Fatal("expected access token cleared after 401")
	}
	if _, ok, _ := s.Get(ctx, store.KeySessionID); ok {
		t.Fatal("expected session id cleared after 401")
	}
	if user, err := store.LoadUser(ctx, s); err != nil || user != nil {
		t.Fatalf("expected user snapshot cleared after 401, got %+v err=%v", user, err)
	}
	// Convenience fields survive until an explicit logout.
	if _, ok, _ := s.Get(ctx, store.KeyPassword); !ok {
		t.Fatal("expected obfuscated password untouched by 401 teardown")
	}

	snap := engine.MetricsSnapshot()
	if got := snap.Counters[partsclient.MetricAuthExpired]; got != 1 {
		t.Fatalf("expected 1 auth-expired teardown, got %d", got)
	}
}

func TestWrongPasswordKeepsStepOneToken(t *testing.T) {
	ctx := context.Background()
	srv := newBackendServer(t)
	s := store.NewMemory()
	engine := newEngine(t, srv, s)

	_, err := engine.Login(ctx, testAccountEmail, "not-the-password")
	if err == nil {
		t.Fatal("expected login rejection")
	}
	if err.Error() != "Wrong email or password" {
		t.Fatalf("expected backend message surfaced, got %q", err.Error())
	}

	// The token exchange succeeded before the credential check failed.
	token, ok, _ := store.AccessToken(ctx, s)
	if !ok || token != testBearerToken {
		t.Fatalf("expected step-one token persisted, got %q ok=%v", token, ok)
	}
	if engine.IsLoggedIn(ctx) {
		t.Fatal("expected not logged in after rejection")
	}
}

func TestFileStoreSessionSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	srv := newBackendServer(t)
	path := filepath.Join(t.TempDir(), "session.json")

	first, err := store.NewFile(path)
	if err != nil {
		t.Fatalf("NewFile failed: %v", err)
	}
	engine := newEngine(t, srv, first)

	if _, err := engine.Login(ctx, testAccountEmail, testAccountPass); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	engine.Close()

	second, err := store.NewFile(path)
	if err != nil {
		t.Fatalf("NewFile reopen failed: %v", err)
	}
	reborn := newEngine(t, srv, second)

	if !reborn.IsLoggedIn(ctx) {
		t.Fatal("expected session to survive process restart")
	}
	user, err := reborn.CurrentUser(ctx)
	if err != nil {
		t.Fatalf("CurrentUser failed: %v", err)
	}
	if user.Email != testAccountEmail {
		t.Fatalf("expected restored user %q, got %q", testAccountEmail, user.Email)
	}
}
