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

// CreateOrder places an order; the server computes subtotal and total.
func (g *Gateway) CreateOrder(ctx context.Context, req domain.OrderCreate) outcome.Outcome[domain.Order] {
	if err := domain.Validate(req); err != nil {
		return failInput[domain.Order](err)
	}
	return call[domain.Order](ctx, g, callSpec{
		op:        "create_order",
		method:    http.MethodPost,
		path:      "/api/orders",
		body:      req,
		protected: true,
	})
}

// Orders lists the caller's orders.
func (g *Gateway) Orders(ctx context.Context, skip, limit int) outcome.Outcome[[]domain.Order] {
	query := url.Values{}
	query.Set("skip", strconv.Itoa(skip))
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	return call[[]domain.Order](ctx, g, callSpec{
		op:        "orders",
		method:    http.MethodGet,
		path:      "/api/orders",
		query:     query,
		protected: true,
	})
}

// Order fetches a single order.
func (g *Gateway) Order(ctx context.Context, id int) outcome.Outcome[domain.Order] {
	return call[domain.Order](ctx, g, callSpec{
		op:        "order",
		method:    http.MethodGet,
		path:      fmt.Sprintf("/api/orders/%d", id),
		protected: true,
	})
}

// UpdateOrderStatus advances an order through its lifecycle.
func (g *Gateway) UpdateOrderStatus(ctx context.Context, id int, status domain.OrderStatus) outcome.Outcome[domain.Order] {
	return call[domain.Order](ctx, g, callSpec{
		op:        "update_order_status",
		method:    http.MethodPatch,
		path:      fmt.Sprintf("/api/orders/%d/status", id),
		body:      domain.OrderStatusUpdate{Status: status},
		protected: true,
	})
}
