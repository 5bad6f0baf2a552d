package partsclient

import (
	"errors"
	"time"
)

// Config defines a public type used by partsclient APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	API     APIConfig
	Push    PushConfig
	Token   TokenConfig
	Audit   AuditConfig
	Metrics MetricsConfig
}

/*
====================================
API CONFIG
====================================
*/

// APIConfig describes one backend deployment. The basic-auth pair is a
// deployment secret: inject it from the environment, never compile it in.
type APIConfig struct {
	BaseURL       string
	Timeout       time.Duration
	BasicAuthUser string
	BasicAuthPass string
}

/*
====================================
PUSH CONFIG
====================================
*/

// PushConfig controls the push-registration id submitted at login.
type PushConfig struct {
	// PlaceholderRegID is sent when no registration id has been persisted
	// yet for this installation.
	PlaceholderRegID string
}

/*
====================================
TOKEN CONFIG
====================================
*/

// TokenConfig controls proactive bearer-token renewal.
type TokenConfig struct {
	// RenewLeeway is how close to its expiry a JWT bearer token must be
	// before [Engine.TokenExpiringWithin] reports it as renewable by
	// default. Opaque tokens never report as expiring.
	RenewLeeway time.Duration
}

/*
====================================
AUDIT CONFIG
====================================
*/

// AuditConfig defines a public type used by partsclient APIs.
//
// AuditConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig defines a public type used by partsclient APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

// DefaultConfig returns the baseline configuration: 30s call timeout,
// the placeholder push registration id, and a 5 minute renew leeway.
// Audit and metrics start disabled.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			Timeout: 30 * time.Second,
		},
		Push: PushConfig{
			PlaceholderRegID: "placeholder-fcm-token",
		},
		Token: TokenConfig{
			RenewLeeway: 5 * time.Minute,
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 1024,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                 false,
			EnableLatencyHistograms: false,
		},
	}
}

func cloneConfig(cfg Config) Config {
	return cfg
}

/*
====================================
VALIDATION
====================================
*/

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
// Validate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return errors.New("API BaseURL required")
	}
	if c.API.Timeout < 0 {
		return errors.New("API Timeout must be >= 0")
	}
	if c.API.BasicAuthUser == "" || c.API.BasicAuthPass == "" {
		return errors.New("API basic auth pair required")
	}
	if c.Token.RenewLeeway < 0 {
		return errors.New("Token RenewLeeway must be >= 0")
	}
	if c.Push.PlaceholderRegID == "" {
		return errors.New("Push PlaceholderRegID required")
	}
	return nil
}
