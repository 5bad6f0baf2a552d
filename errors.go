package partsclient

import "errors"

var (
	// ErrEngineNotReady is returned when an Engine method runs before a
	// successful [Builder.Build].
	ErrEngineNotReady = errors.New("engine not initialized")
	// ErrNotAuthenticated is returned by [Engine.CurrentUser] when no
	// current-user snapshot is persisted.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrTokenNotRenewable is returned by [Engine.RenewToken] when no
	// bearer token is persisted to renew.
	ErrTokenNotRenewable = errors.New("no persisted token to renew")
)

// Fallback messages surfaced when an error envelope carries no text.
const (
	fallbackTokenMessage  = "Failed to get OAuth token"
	fallbackLoginMessage  = "Login failed"
	fallbackRenewMessage  = "Token renewal failed"
	fallbackChangeMessage = "Password change failed"
	fallbackForgotMessage = "Password recovery failed"
)
