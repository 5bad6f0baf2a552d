package store

import "context"

// Storage key names. These form the on-device schema: an installed session
// written under these keys must stay readable across releases.
const (
	KeyAccessToken = "@access_token"
	KeySessionID   = "@session_id"
	KeyUserID      = "@user_id"
	KeyPassword    = "@password_encrypted"
	KeyIDRole      = "@id_role"
	KeyFcmID       = "@fcm_id"
	KeyUserData    = "@user_data"
)

// SessionKeys lists every key belonging to the persisted session record.
// Logout clears all of them as one logical unit.
var SessionKeys = []string{
	KeyAccessToken,
	KeySessionID,
	KeyUserID,
	KeyPassword,
	KeyIDRole,
	KeyFcmID,
	KeyUserData,
}

// Store is the durable key-value contract scoped to one installation.
//
// All operations are idempotent and order-independent across distinct keys.
// Get reports absence as ("", false, nil), never as an error. Remove is a
// best-effort bulk delete: on partial failure, already-removed keys stay
// removed and no rollback is attempted.
type Store interface {
	Set(ctx context.Context, key, value string) error
	Get(ctx context.Context, key string) (string, bool, error)
	Remove(ctx context.Context, keys ...string) error
}
