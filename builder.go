package partsclient

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/mandalaparts/partsclient/gateway"
	"github.com/mandalaparts/partsclient/store"
)

// Builder defines a public type used by partsclient APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config Config

	store      store.Store
	backend    Backend
	httpClient *http.Client
	auditSink  AuditSink
	logger     *zap.Logger

	built bool
}

// New returns a Builder initialized with defaults.
func New() *Builder {
	return &Builder{
		config: DefaultConfig(),
	}
}

// WithConfig replaces the whole configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithStore injects the persisted session store. A [store.Memory] is used
// when none is provided.
func (b *Builder) WithStore(s store.Store) *Builder {
	b.store = s
	return b
}

// WithBackend injects a custom backend, bypassing gateway construction.
// Intended for tests with stub backends.
func (b *Builder) WithBackend(backend Backend) *Builder {
	b.backend = backend
	return b
}

// WithHTTPClient overrides the underlying HTTP client used by the gateway.
func (b *Builder) WithHTTPClient(client *http.Client) *Builder {
	b.httpClient = client
	return b
}

// WithAuditSink attaches an audit sink; events flow only when
// Config.Audit.Enabled is true.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithLogger attaches a zap logger for debug-level lifecycle logging.
func (b *Builder) WithLogger(logger *zap.Logger) *Builder {
	b.logger = logger
	return b
}

// WithMetricsEnabled toggles metric collection.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms toggles login-latency histogram collection.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build validates the configuration, wires the store, gateway, metrics,
// and audit dispatcher, and returns a ready Engine.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)

	sessionStore := b.store
	if sessionStore == nil {
		sessionStore = store.NewMemory()
	}

	logger := b.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	metrics := NewMetrics(cfg.Metrics)
	audit := newAuditDispatcher(cfg.Audit, b.auditSink)

	engine := &Engine{
		config:  cfg,
		store:   sessionStore,
		metrics: metrics,
		audit:   audit,
		logger:  logger,
	}

	if b.backend != nil {
		engine.backend = b.backend
		b.built = true
		return engine, nil
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client, err := gateway.NewClient(gateway.Config{
		BaseURL:       cfg.API.BaseURL,
		Timeout:       cfg.API.Timeout,
		BasicAuthUser: cfg.API.BasicAuthUser,
		BasicAuthPass: cfg.API.BasicAuthPass,
		HTTPClient:    b.httpClient,
		TokenSource: func(ctx context.Context) (string, bool) {
			tok, ok, err := store.AccessToken(ctx, sessionStore)
			if err != nil || !ok {
				return "", false
			}
			return tok, true
		},
		OnAuthExpired: func(ctx context.Context) {
			// Token, session id, and snapshot go together; the remaining
			// convenience fields survive until an explicit logout.
			if err := sessionStore.Remove(ctx, store.KeyAccessToken, store.KeySessionID, store.KeyUserData); err != nil {
				logger.Debug("auth-expired teardown failed", zap.Error(err))
			}
			engine.metricInc(MetricAuthExpired)
			engine.emitAudit(ctx, auditEventAuthExpired, false, "", "", "", nil, nil)
			logger.Debug("session torn down after auth expiry")
		},
	})
	if err != nil {
		return nil, err
	}

	engine.backend = client
	engine.client = client
	b.built = true
	return engine, nil
}
