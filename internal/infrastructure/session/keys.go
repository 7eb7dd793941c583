// Package session provides the durable session store implementations: a
// JSON file store for interactive use and a Redis-backed store for headless
// deployments. Both persist the same flat key→value map.
package session

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/fooddelivery/marketplace-go/internal/core/domain"
)

// Persisted keys. These names are part of the on-disk contract and must not
// change across releases or existing sessions become unreadable.
const (
	keyAccessToken = "access_token"
	keyUserID      = "user_id"
	keyUsername    = "username"
	keyUserRole    = "user_role"
	keyIsLoggedIn  = "is_logged_in"
	keyFullName    = "user_full_name"
	keyCartTotal   = "cart_total"
)

func applyUpdate(data map[string]string, update domain.SessionUpdate) {
	if update.AccessToken != nil {
		data[keyAccessToken] = *update.AccessToken
	}
	if update.UserID != nil {
		data[keyUserID] = strconv.Itoa(*update.UserID)
	}
	if update.Username != nil {
		data[keyUsername] = *update.Username
	}
	if update.Role != nil {
		data[keyUserRole] = string(*update.Role)
	}
	if update.FullName != nil {
		data[keyFullName] = *update.FullName
	}
}

func sessionFromMap(data map[string]string) domain.Session {
	s := domain.Session{
		AccessToken: data[keyAccessToken],
		Username:    data[keyUsername],
		Role:        domain.RoleUnknown,
		FullName:    data[keyFullName],
		CartTotal:   decimal.Zero,
	}
	if v, ok := data[keyUserRole]; ok {
		s.Role = domain.ParseRole(v)
	}
	if v, ok := data[keyUserID]; ok {
		if id, err := strconv.Atoi(v); err == nil {
			s.UserID = id
		}
	}
	if v, ok := data[keyIsLoggedIn]; ok {
		s.LoggedIn = v == "true"
	}
	if v, ok := data[keyCartTotal]; ok {
		if total, err := decimal.NewFromString(v); err == nil {
			s.CartTotal = total
		}
	}
	return s
}
