package partsclient

import (
	"context"
	"errors"
	"time"

	"github.com/mandalaparts/partsclient/gateway"
	"github.com/mandalaparts/partsclient/store"
	"github.com/mandalaparts/partsclient/token"
)

// TokenExpiringWithin reports whether the persisted bearer token is a JWT
// expiring inside d. With no persisted token, or an opaque one, it reports
// false — such tokens only die on a server-side 401. A zero d falls back to
// the configured renewal leeway.
func (e *Engine) TokenExpiringWithin(ctx context.Context, d time.Duration) bool {
	if e == nil || e.store == nil {
		return false
	}
	if d <= 0 {
		d = e.config.Token.RenewLeeway
	}
	bearer, ok, err := store.AccessToken(ctx, e.store)
	if err != nil || !ok {
		return false
	}
	return token.ExpiringWithin(bearer, d)
}

// RenewToken exchanges the account password for a fresh bearer token and
// persists it. [ErrTokenNotRenewable] is returned when no token is
// persisted; renewal without a prior login is meaningless.
func (e *Engine) RenewToken(ctx context.Context, pass string) error {
	if e == nil || e.backend == nil {
		return ErrEngineNotReady
	}

	if _, ok, err := store.AccessToken(ctx, e.store); err != nil {
		return err
	} else if !ok {
		return ErrTokenNotRenewable
	}

	resp, err := e.backend.RenewToken(ctx, pass)
	if err != nil {
		e.metricInc(MetricRenewFailure)
		e.emitAudit(ctx, auditEventRenewFailure, false, "", "", "", err, nil)
		return err
	}
	e.noteResponse(resp)

	if !resp.OK() || !resp.HasData() {
		failure := errors.New(resp.FirstMessage(fallbackRenewMessage))
		e.metricInc(MetricRenewFailure)
		e.emitAudit(ctx, auditEventRenewFailure, false, "", "", "", failure, nil)
		return failure
	}

	var payload gateway.TokenPayload
	if err := resp.DecodeData(&payload); err != nil {
		e.metricInc(MetricRenewFailure)
		return err
	}
	if payload.Token == "" {
		e.metricInc(MetricRenewFailure)
		return errors.New(resp.FirstMessage(fallbackRenewMessage))
	}

	if err := store.SaveAccessToken(ctx, e.store, payload.Token); err != nil {
		return err
	}
	e.metricInc(MetricRenewSuccess)
	e.emitAudit(ctx, auditEventRenewSuccess, true, "", "", "", nil, nil)
	return nil
}

// ForgotPassword starts the password-recovery flow. Application-level
// rejection surfaces as an error carrying the backend's message.
func (e *Engine) ForgotPassword(ctx context.Context, email string) error {
	if e == nil || e.backend == nil {
		return ErrEngineNotReady
	}
	resp, err := e.backend.ForgotPassword(ctx, email)
	if err != nil {
		return err
	}
	e.noteResponse(resp)
	if !resp.OK() {
		return errors.New(resp.FirstMessage(fallbackForgotMessage))
	}
	return nil
}

// ChangePassword sets a new account password for the logged-in user.
func (e *Engine) ChangePassword(ctx context.Context, pass string) error {
	if e == nil || e.backend == nil {
		return ErrEngineNotReady
	}
	resp, err := e.backend.ChangePassword(ctx, pass)
	if err != nil {
		return err
	}
	e.noteResponse(resp)
	if !resp.OK() {
		return errors.New(resp.FirstMessage(fallbackChangeMessage))
	}
	return nil
}
