package partsclient

import (
	"context"
	"time"
)

const (
	auditEventLoginSuccess = "login_success"
	auditEventLoginFailure = "login_failure"
	auditEventTokenFailure = "token_failure"
	auditEventLogout       = "logout"
	auditEventAuthExpired  = "auth_expired"
	auditEventRenewSuccess = "renew_success"
	auditEventRenewFailure = "renew_failure"
)

// emitAudit builds the event lazily: metadataFn only runs when a dispatcher
// is attached.
func (e *Engine) emitAudit(ctx context.Context, eventType string, success bool, userID, role, sessionID string, err error, metadataFn func() map[string]string) {
	if e == nil || e.audit == nil {
		return
	}

	event := AuditEvent{
		Timestamp: time.Now(),
		EventType: eventType,
		UserID:    userID,
		Role:      role,
		SessionID: sessionID,
		Success:   success,
	}
	if err != nil {
		event.Error = err.Error()
	}
	if metadataFn != nil {
		event.Metadata = metadataFn()
	}

	e.audit.Emit(ctx, event)
}
