// Package gateway is the single outbound HTTP client for the storefront
// backend.
//
// # Wire contract
//
// Every endpoint answers with the same JSON envelope:
//
//	{"status": 1|0, "message": ["..."], "data": {...}}
//
// status 1 is success, 0 is error. Callers branch on the envelope; the
// client turns transport-level failures (no response received) into a
// synthesized error envelope instead of propagating them, so the only
// thrown errors are catastrophic ones such as an unbuildable request or an
// undecodable success body.
//
// # Authentication
//
// The persisted bearer token is attached to every call automatically. The
// one exception is token acquisition, which authenticates with a fixed
// basic-auth pair. A 401 from any endpoint tears down the local session
// (token, session id, user snapshot) through the configured hook before the
// response is surfaced, so a stale token is never retried.
//
// # What this package must NOT do
//
//   - Retry, queue, or back off. Every call is fire-once with one fixed
//     timeout.
//   - Import the root or store packages; persistence is reached only
//     through the TokenSource and OnAuthExpired hooks.
package gateway
