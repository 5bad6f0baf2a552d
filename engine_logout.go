package partsclient

import (
	"context"

	"go.uber.org/zap"

	"github.com/mandalaparts/partsclient/store"
)

// Logout invalidates the server-side session on a best-effort basis and
// then unconditionally clears every persisted session field. The remote
// call's failure never blocks the local transition: the user-visible intent
// "I am logged out on this device" always succeeds.
//
// Logout is idempotent; a second call with nothing to clear is a no-op.
func (e *Engine) Logout(ctx context.Context) error {
	if e == nil || e.backend == nil {
		return ErrEngineNotReady
	}

	if resp, err := e.backend.Logout(ctx); err != nil {
		e.logger.Debug("remote logout failed", zap.Error(err))
	} else {
		e.noteResponse(resp)
		if !resp.OK() {
			e.logger.Debug("remote logout rejected", zap.Strings("message", resp.Message))
		}
	}

	if err := store.ClearAll(ctx, e.store); err != nil {
		return err
	}

	e.metricInc(MetricLogout)
	e.emitAudit(ctx, auditEventLogout, true, "", "", "", nil, nil)
	e.logger.Debug("local session cleared")
	return nil
}

// IsLoggedIn reports whether a current-user snapshot is persisted. It never
// validates the token against the backend; a token invalidated server-side
// reads as logged in until the next gateway call hits a 401.
func (e *Engine) IsLoggedIn(ctx context.Context) bool {
	if e == nil || e.store == nil {
		return false
	}
	user, err := store.LoadUser(ctx, e.store)
	return err == nil && user != nil
}

// CurrentUser returns the persisted current-user snapshot, or
// [ErrNotAuthenticated] when none exists.
func (e *Engine) CurrentUser(ctx context.Context) (*User, error) {
	if e == nil || e.store == nil {
		return nil, ErrEngineNotReady
	}
	user, err := store.LoadUser(ctx, e.store)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotAuthenticated
	}
	return user, nil
}

// SessionState derives the lifecycle state: authenticating while a login
// sequence is in flight, otherwise logged in or out by snapshot presence.
func (e *Engine) SessionState(ctx context.Context) SessionState {
	if e == nil {
		return StateLoggedOut
	}
	if e.authInFlight.Load() > 0 {
		return StateAuthenticating
	}
	if e.IsLoggedIn(ctx) {
		return StateLoggedIn
	}
	return StateLoggedOut
}
