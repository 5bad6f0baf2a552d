// Package store provides the durable key-value facility that holds the
// persisted session record for a single installation.
//
// # Design
//
// The [Store] interface is a thin asynchronous key-value contract: Set, Get,
// Remove. Keys are stable names forming the on-device schema; renaming any
// key invalidates sessions on already-installed devices, so the key
// constants must never change.
//
// Three implementations are provided: [Memory] for tests and ephemeral use,
// [File] for single-device durable storage (whole-record rewrite through a
// temp file and rename), and [Redis] for installations that keep their
// session record in a Redis namespace.
//
// # Architecture boundaries
//
// This package owns raw persistence and the typed helpers over it. It must
// not perform network calls to the storefront backend and must not import
// the gateway or root packages.
package store
