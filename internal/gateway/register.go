package gateway

import (
	"context"
	"net/http"

	"github.com/fooddelivery/marketplace-go/internal/core/domain"
	"github.com/fooddelivery/marketplace-go/internal/core/outcome"
)

// RegisterBuyer creates a buyer account.
func (g *Gateway) RegisterBuyer(ctx context.Context, reg domain.BuyerRegistration) outcome.Outcome[domain.BuyerAccount] {
	if err := domain.Validate(reg); err != nil {
		return failInput[domain.BuyerAccount](err)
	}
	return call[domain.BuyerAccount](ctx, g, callSpec{
		op:     "register_buyer",
		method: http.MethodPost,
		path:   "/api/register/buyer",
		body:   reg,
	})
}

// RegisterSeller creates a seller account with its store profile.
func (g *Gateway) RegisterSeller(ctx context.Context, reg domain.SellerRegistration) outcome.Outcome[domain.SellerAccount] {
	if err := domain.Validate(reg); err != nil {
		return failInput[domain.SellerAccount](err)
	}
	return call[domain.SellerAccount](ctx, g, callSpec{
		op:     "register_seller",
		method: http.MethodPost,
		path:   "/api/register/seller",
		body:   reg,
	})
}

// RegisterDriver creates a driver account.
func (g *Gateway) RegisterDriver(ctx context.Context, reg domain.DriverRegistration) outcome.Outcome[domain.DriverAccount] {
	if err := domain.Validate(reg); err != nil {
		return failInput[domain.DriverAccount](err)
	}
	return call[domain.DriverAccount](ctx, g, callSpec{
		op:     "register_driver",
		method: http.MethodPost,
		path:   "/api/register/driver",
		body:   reg,
	})
}
