package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
)

// Session is the locally persisted authentication state. It is owned by the
// session store and only mutated through the login, logout and profile-fetch
// flows.
type Session struct {
	AccessToken string
	UserID      int
	Username    string
	Role        Role
	FullName    string
	LoggedIn    bool
	CartTotal   decimal.Decimal
}

// SessionUpdate carries a partial write into the session store. Nil fields
// are left untouched, so a token can be saved before the profile fields
// arrive.
type SessionUpdate struct {
	AccessToken *string
	UserID      *int
	Username    *string
	Role        *Role
	FullName    *string
}

// Active reports whether the session can still authenticate requests: the
// logged-in flag is set, a token is present, and the token has not expired.
// Tokens that are not parseable JWTs are treated as opaque and never expire
// locally; the backend remains the authority on their validity.
func (s Session) Active() bool {
	if !s.LoggedIn || s.AccessToken == "" {
		return false
	}
	return !tokenExpired(s.AccessToken, time.Now())
}

func tokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}
