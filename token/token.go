package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Expiry returns the exp claim of the bearer token. The second result is
// false when the token is not a JWT or carries no expiry; such tokens are
// treated as never expiring locally and only die on a server-side 401.
func Expiry(bearer string) (time.Time, bool) {
	if bearer == "" {
		return time.Time{}, false
	}

	parser := jwt.NewParser()
	claims := jwt.RegisteredClaims{}
	if _, _, err := parser.ParseUnverified(bearer, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// ExpiringWithin reports whether the token expires inside the next d, using
// [Expiry]. Tokens without a readable expiry never report as expiring.
func ExpiringWithin(bearer string, d time.Duration) bool {
	exp, ok := Expiry(bearer)
	if !ok {
		return false
	}
	return time.Until(exp) <= d
}
