package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/fooddelivery/marketplace-go/internal/core/domain"
	"github.com/fooddelivery/marketplace-go/internal/core/outcome"
)

// CreatePayment records a payment against an order.
func (g *Gateway) CreatePayment(ctx context.Context, req domain.PaymentCreate) outcome.Outcome[domain.Payment] {
	if err := domain.Validate(req); err != nil {
		return failInput[domain.Payment](err)
	}
	return call[domain.Payment](ctx, g, callSpec{
		op:        "create_payment",
		method:    http.MethodPost,
		path:      "/api/payments",
		body:      req,
		protected: true,
	})
}

// Payments lists payments matching the filter.
func (g *Gateway) Payments(ctx context.Context, filter domain.PaymentFilter) outcome.Outcome[[]domain.Payment] {
	query := url.Values{}
	if filter.OrderID != nil {
		query.Set("order_id", strconv.Itoa(*filter.OrderID))
	}
	query.Set("skip", strconv.Itoa(filter.Skip))
	if filter.Limit > 0 {
		query.Set("limit", strconv.Itoa(filter.Limit))
	}
	return call[[]domain.Payment](ctx, g, callSpec{
		op:        "payments",
		method:    http.MethodGet,
		path:      "/api/payments",
		query:     query,
		protected: true,
	})
}

// Payment fetches a single payment.
func (g *Gateway) Payment(ctx context.Context, id int) outcome.Outcome[domain.Payment] {
	return call[domain.Payment](ctx, g, callSpec{
		op:        "payment",
		method:    http.MethodGet,
		path:      fmt.Sprintf("/api/payments/%d", id),
		protected: true,
	})
}

// UpdatePaymentStatus advances a payment through its lifecycle.
func (g *Gateway) UpdatePaymentStatus(ctx context.Context, id int, status domain.PaymentState, transactionID string) outcome.Outcome[domain.Payment] {
	return call[domain.Payment](ctx, g, callSpec{
		op:        "update_payment_status",
		method:    http.MethodPatch,
		path:      fmt.Sprintf("/api/payments/%d/status", id),
		body:      domain.PaymentStatusUpdate{Status: status, TransactionID: transactionID},
		protected: true,
	})
}
