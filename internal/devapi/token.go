package devapi

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// issueToken signs an HS256 JWT for an authenticated user, matching the
// claim shape the real backend emits.
func issueToken(secret string, ttl time.Duration, username, role string, userID int) (string, error) {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	claims := jwt.MapClaims{
		"sub":     username,
		"role":    role,
		"user_id": userID,
		"exp":     time.Now().Add(ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}
