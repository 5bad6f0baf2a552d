package partsclient

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/mandalaparts/partsclient/gateway"
	"github.com/mandalaparts/partsclient/password"
	"github.com/mandalaparts/partsclient/store"
)

// Login runs the full authentication handshake: acquire an OAuth bearer
// token with the fixed basic-auth pair, persist it, submit the user's
// credentials, and persist the resulting session state. The steps are
// strictly ordered; a failure aborts the sequence and leaves the
// installation logged out.
//
// The returned error carries the backend's first message string when the
// envelope provides one.
func (e *Engine) Login(ctx context.Context, username, pass string) (*User, error) {
	if e == nil || e.backend == nil {
		return nil, ErrEngineNotReady
	}

	e.authInFlight.Add(1)
	defer e.authInFlight.Add(-1)
	started := time.Now()

	if err := e.acquireToken(ctx); err != nil {
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLoginFailure, false, username, "", "", err, nil)
		return nil, err
	}

	regID, ok, err := store.FcmID(ctx, e.store)
	if err != nil || !ok || regID == "" {
		regID = e.config.Push.PlaceholderRegID
	}

	resp, err := e.backend.Login(ctx, gateway.LoginRequest{
		Email:    username,
		Password: pass,
		RegID:    regID,
	})
	if err != nil {
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLoginFailure, false, username, "", "", err, nil)
		return nil, err
	}
	e.noteResponse(resp)

	if !resp.OK() || !resp.HasData() {
		failure := errors.New(resp.FirstMessage(fallbackLoginMessage))
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLoginFailure, false, username, "", "", failure, func() map[string]string {
			return map[string]string{
				"identifier": username,
			}
		})
		e.logger.Debug("login rejected", zap.String("identifier", username))
		return nil, failure
	}

	var payload gateway.LoginPayload
	if err := resp.DecodeData(&payload); err != nil {
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLoginFailure, false, username, "", "", err, nil)
		return nil, err
	}

	if payload.SessionID != "" {
		if err := store.SaveSessionID(ctx, e.store, payload.SessionID); err != nil {
			return nil, err
		}
	}
	if err := store.SaveUserID(ctx, e.store, username); err != nil {
		return nil, err
	}
	if err := store.SavePassword(ctx, e.store, password.Obfuscate(pass)); err != nil {
		return nil, err
	}
	if err := store.SaveIDRole(ctx, e.store, payload.IDRole); err != nil {
		return nil, err
	}

	// The login endpoint returns no numeric identifier; zero is the
	// documented default.
	user := User{
		IDUser:   0,
		IDRole:   payload.IDRole,
		Name:     payload.Name,
		Email:    payload.Email,
		Username: username,
	}
	if err := store.SaveUser(ctx, e.store, user); err != nil {
		return nil, err
	}

	e.metricInc(MetricLoginSuccess)
	if e.metrics.LatencyEnabled() {
		e.metrics.Observe(MetricLoginLatency, time.Since(started))
	}
	e.emitAudit(ctx, auditEventLoginSuccess, true, username, payload.IDRole, payload.SessionID, nil, nil)
	e.logger.Debug("login completed",
		zap.String("identifier", username),
		zap.String("role", payload.IDRole),
	)
	return &user, nil
}

// acquireToken performs step one of the handshake and persists the bearer
// token immediately on success, before credentials are ever submitted.
func (e *Engine) acquireToken(ctx context.Context) error {
	resp, err := e.backend.OAuthToken(ctx)
	if err != nil {
		e.metricInc(MetricTokenFailure)
		e.emitAudit(ctx, auditEventTokenFailure, false, "", "", "", err, nil)
		return err
	}
	e.noteResponse(resp)

	if !resp.OK() || !resp.HasData() {
		failure := errors.New(resp.FirstMessage(fallbackTokenMessage))
		e.metricInc(MetricTokenFailure)
		e.emitAudit(ctx, auditEventTokenFailure, false, "", "", "", failure, nil)
		return failure
	}

	var payload gateway.TokenPayload
	if err := resp.DecodeData(&payload); err != nil {
		e.metricInc(MetricTokenFailure)
		return err
	}
	if payload.Token == "" {
		failure := errors.New(resp.FirstMessage(fallbackTokenMessage))
		e.metricInc(MetricTokenFailure)
		e.emitAudit(ctx, auditEventTokenFailure, false, "", "", "", failure, nil)
		return failure
	}

	if err := store.SaveAccessToken(ctx, e.store, payload.Token); err != nil {
		return err
	}
	e.metricInc(MetricTokenAcquired)
	return nil
}
