// Package token inspects bearer tokens issued by the storefront backend.
//
// The backend treats its tokens as opaque, but in practice it issues JWTs.
// This package reads the expiry claim without verifying the signature — the
// client holds no verification key and never trusts claims for
// authorization, only for scheduling proactive renewal. A token that does
// not parse as a JWT simply reports no expiry.
package token
