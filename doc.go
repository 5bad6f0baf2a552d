// Package partsclient implements the session and authentication lifecycle
// of the dealer storefront app: OAuth token acquisition, credential login,
// persisted-session state, logout, and the query gating navigation
// ("is a user logged in on this installation").
//
// The package is the public surface. It exposes [Engine], [Builder],
// [Config], and value types (User, MetricsSnapshot, AuditEvent). Transport
// plumbing lives in gateway/, persistence in store/, the local-storage
// password transform in password/, and bearer-token inspection in token/.
//
// Engine methods are safe to call from multiple goroutines after
// initialization through [Builder.Build], but the design deliberately
// provides no mutual exclusion between two concurrent Login sequences for
// the same installation — the persisted record may interleave fields from
// both attempts, matching the backend contract.
//
// # Architecture boundaries
//
//   - The current-user snapshot in the store is the single source of truth
//     for "is authenticated". The Engine never validates the token against
//     the backend to answer that query.
//   - A 401 from any backend call tears down the local session before the
//     response surfaces; the Engine only observes the aftermath.
//
// # What this package must NOT do
//
//   - Retry or queue backend calls.
//   - Treat the obfuscated stored password as a credential; it is written
//     once at login and never read back for comparison.
package partsclient
