package internaldefs

import (
	partsclient "github.com/mandalaparts/partsclient"
)

// CounterDef binds one engine counter to its exported metric name.
type CounterDef struct {
	ID   partsclient.MetricID
	Name string
	Help string
}

// HistogramDef binds one engine histogram to its exported metric name.
type HistogramDef struct {
	ID   partsclient.MetricID
	Name string
	Help string
}

// CounterDefs lists every exported counter.
var CounterDefs = []CounterDef{
	{ID: partsclient.MetricLoginSuccess, Name: "partsclient_login_success_total", Help: "Completed login sequences."},
	{ID: partsclient.MetricLoginFailure, Name: "partsclient_login_failure_total", Help: "Login sequences rejected or aborted."},
	{ID: partsclient.MetricTokenAcquired, Name: "partsclient_token_acquired_total", Help: "Successful OAuth token acquisitions."},
	{ID: partsclient.MetricTokenFailure, Name: "partsclient_token_failure_total", Help: "Failed OAuth token acquisitions."},
	{ID: partsclient.MetricRenewSuccess, Name: "partsclient_renew_success_total", Help: "Successful token renewals."},
	{ID: partsclient.MetricRenewFailure, Name: "partsclient_renew_failure_total", Help: "Failed token renewals."},
	{ID: partsclient.MetricLogout, Name: "partsclient_logout_total", Help: "Logout operations."},
	{ID: partsclient.MetricAuthExpired, Name: "partsclient_auth_expired_total", Help: "401-triggered local session teardowns."},
	{ID: partsclient.MetricNetworkError, Name: "partsclient_network_error_total", Help: "Calls normalized into the network-error envelope."},
}

// HistogramDefs lists every exported histogram.
var HistogramDefs = []HistogramDef{
	{ID: partsclient.MetricLoginLatency, Name: "partsclient_login_latency_seconds", Help: "Whole-login-sequence latency histogram."},
}

// HistogramBoundSuffix names the upper bound of each bucket in exported
// metric names.
var HistogramBoundSuffix = []string{
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"1",
	"2_5",
	"5",
	"inf",
}

// NormalizeBuckets pads or trims a raw bucket slice to the fixed width.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets converts per-bucket counts into cumulative counts.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
