package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/fooddelivery/marketplace-go/internal/core/domain"
)

// SessionStore is the durable flat key→value persistence of the auth
// session. Implementations must survive process restart and guarantee that a
// completed write is observable by the next read in the same process.
type SessionStore interface {
	// Save persists whichever fields the update carries; nil fields keep
	// their stored value.
	Save(ctx context.Context, update domain.SessionUpdate) error
	// Load returns the current persisted state, with absent fields read
	// as defaults (no token, role unknown, cart total zero).
	Load(ctx context.Context) (domain.Session, error)
	SetLoggedIn(ctx context.Context, loggedIn bool) error
	SetCartTotal(ctx context.Context, total decimal.Decimal) error
	// Clear wipes every persisted field.
	Clear(ctx context.Context) error
}
