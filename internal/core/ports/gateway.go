package ports

import (
	"context"

	"github.com/fooddelivery/marketplace-go/internal/core/domain"
	"github.com/fooddelivery/marketplace-go/internal/core/outcome"
)

// AuthGateway is the slice of the API gateway the account service depends
// on: login, profile fetch and the three registration endpoints.
type AuthGateway interface {
	Login(ctx context.Context, username, password string) outcome.Outcome[domain.TokenGrant]
	CurrentUser(ctx context.Context) outcome.Outcome[domain.User]
	RegisterBuyer(ctx context.Context, reg domain.BuyerRegistration) outcome.Outcome[domain.BuyerAccount]
	RegisterSeller(ctx context.Context, reg domain.SellerRegistration) outcome.Outcome[domain.SellerAccount]
	RegisterDriver(ctx context.Context, reg domain.DriverRegistration) outcome.Outcome[domain.DriverAccount]
}

// TokenSetter is the transport client's token mutation surface. A successful
// login pushes the token here so every subsequent request carries it.
type TokenSetter interface {
	SetToken(token string)
	ClearToken()
}
