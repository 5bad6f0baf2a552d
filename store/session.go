package store

import (
	"context"
	"encoding/json"
	"fmt"
)

// User is the persisted current-user snapshot. Its presence in the store is
// the single source of truth for "a user is logged in on this installation".
type User struct {
	IDUser   int    `json:"idUser"`
	IDRole   string `json:"id_role"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Username string `json:"username,omitempty"`
}

// SaveAccessToken persists the bearer token.
func SaveAccessToken(ctx context.Context, s Store, token string) error {
	return s.Set(ctx, KeyAccessToken, token)
}

// AccessToken returns the persisted bearer token, if any.
func AccessToken(ctx context.Context, s Store) (string, bool, error) {
	return s.Get(ctx, KeyAccessToken)
}

// SaveSessionID persists the server-issued session identifier.
func SaveSessionID(ctx context.Context, s Store, sessionID string) error {
	return s.Set(ctx, KeySessionID, sessionID)
}

// SessionID returns the persisted session identifier, if any.
func SessionID(ctx context.Context, s Store) (string, bool, error) {
	return s.Get(ctx, KeySessionID)
}

// SaveUserID persists the login handle.
func SaveUserID(ctx context.Context, s Store, userID string) error {
	return s.Set(ctx, KeyUserID, userID)
}

// UserID returns the persisted login handle, if any.
func UserID(ctx context.Context, s Store) (string, bool, error) {
	return s.Get(ctx, KeyUserID)
}

// SavePassword persists the already-obfuscated password. The value is
// stored for convenience only and is never read back for comparison.
func SavePassword(ctx context.Context, s Store, obfuscated string) error {
	return s.Set(ctx, KeyPassword, obfuscated)
}

// Password returns the persisted obfuscated password, if any.
func Password(ctx context.Context, s Store) (string, bool, error) {
	return s.Get(ctx, KeyPassword)
}

// SaveIDRole persists the role code of the current user.
func SaveIDRole(ctx context.Context, s Store, idRole string) error {
	return s.Set(ctx, KeyIDRole, idRole)
}

// IDRole returns the persisted role code, if any.
func IDRole(ctx context.Context, s Store) (string, bool, error) {
	return s.Get(ctx, KeyIDRole)
}

// SaveFcmID persists the push-notification registration id.
func SaveFcmID(ctx context.Context, s Store, fcmID string) error {
	return s.Set(ctx, KeyFcmID, fcmID)
}

// FcmID returns the persisted push-registration id, if any.
func FcmID(ctx context.Context, s Store) (string, bool, error) {
	return s.Get(ctx, KeyFcmID)
}

// SaveUser persists the current-user snapshot as JSON.
func SaveUser(ctx context.Context, s Store, user User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("store: encode user: %w", err)
	}
	return s.Set(ctx, KeyUserData, string(data))
}

// LoadUser returns the persisted current-user snapshot, or (nil, nil) when
// no user is logged in.
func LoadUser(ctx context.Context, s Store) (*User, error) {
	raw, ok, err := s.Get(ctx, KeyUserData)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var user User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, fmt.Errorf("store: decode user: %w", err)
	}
	return &user, nil
}

// ClearAll removes every persisted session field as one logical unit.
func ClearAll(ctx context.Context, s Store) error {
	return s.Remove(ctx, SessionKeys...)
}
