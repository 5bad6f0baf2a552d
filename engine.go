package partsclient

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/mandalaparts/partsclient/gateway"
	"github.com/mandalaparts/partsclient/store"
)

// Backend is the subset of gateway calls the Engine drives. *gateway.Client
// satisfies it; tests inject counting stubs.
type Backend interface {
	OAuthToken(ctx context.Context) (*gateway.Response, error)
	Login(ctx context.Context, req gateway.LoginRequest) (*gateway.Response, error)
	Logout(ctx context.Context) (*gateway.Response, error)
	RenewToken(ctx context.Context, password string) (*gateway.Response, error)
	ForgotPassword(ctx context.Context, email string) (*gateway.Response, error)
	ChangePassword(ctx context.Context, password string) (*gateway.Response, error)
}

// Engine defines a public type used by partsclient APIs.
//
// Engine instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Engine struct {
	config  Config
	store   store.Store
	backend Backend
	client  *gateway.Client
	audit   *auditDispatcher
	metrics *Metrics
	logger  *zap.Logger

	authInFlight atomic.Int32
}

// Close flushes and stops the audit dispatcher.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	if e.audit != nil {
		e.audit.Close()
	}
}

// Store exposes the persisted session store, letting the UI layer re-query
// persisted state directly.
func (e *Engine) Store() store.Store {
	if e == nil {
		return nil
	}
	return e.store
}

// Gateway returns the HTTP client built by the Builder for the remaining
// backend surface (dashboard, leaderboard, catalogue, promos). It is nil
// when a custom [Backend] was injected instead.
func (e *Engine) Gateway() *gateway.Client {
	if e == nil {
		return nil
	}
	return e.client
}

// AuditDropped reports how many audit events were dropped under
// backpressure.
func (e *Engine) AuditDropped() uint64 {
	if e == nil || e.audit == nil {
		return 0
	}
	return e.audit.Dropped()
}

// MetricsSnapshot returns a point-in-time deep copy of all metrics.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return e.metrics.Snapshot()
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Inc(id)
}

// noteResponse bumps the network-error counter for synthesized envelopes.
func (e *Engine) noteResponse(resp *gateway.Response) {
	if resp.TransportFailed() {
		e.metricInc(MetricNetworkError)
	}
}
