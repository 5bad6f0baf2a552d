package partsclient

import (
	"github.com/mandalaparts/partsclient/store"
)

// User is the persisted current-user snapshot.
//
//	Alias of [store.User]; its presence in the store defines LoggedIn.
type User = store.User

// Role codes returned by the login endpoint. The set is closed; the backend
// issues nothing else.
const (
	// RoleAdmin is the back-office administrator role.
	RoleAdmin = "1"
	// RoleSalesman is the field salesman role (check-in/check-out flows).
	RoleSalesman = "2"
	// RoleNonChannel is the restricted role with order and dealer-collection
	// features hidden.
	RoleNonChannel = "3"
	// RoleDealer is the dealer storefront role.
	RoleDealer = "4"
)

// IsNonChannel reports whether roleID is the restricted non-channel role.
func IsNonChannel(roleID string) bool {
	return roleID == RoleNonChannel
}

// SessionState is the derived lifecycle state of this installation's
// session. It is never persisted; [Engine.SessionState] computes it from
// the store and in-flight login bookkeeping.
type SessionState uint8

const (
	// StateLoggedOut means no current-user snapshot is persisted.
	StateLoggedOut SessionState = iota
	// StateAuthenticating means a login sequence is in flight.
	StateAuthenticating
	// StateLoggedIn means a current-user snapshot is persisted.
	StateLoggedIn
)

// String returns the lowercase state name.
func (s SessionState) String() string {
	switch s {
	case StateAuthenticating:
		return "authenticating"
	case StateLoggedIn:
		return "logged_in"
	default:
		return "logged_out"
	}
}
