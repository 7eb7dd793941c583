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

// Foods lists catalog items matching the filter.
func (g *Gateway) Foods(ctx context.Context, filter domain.FoodFilter) outcome.Outcome[[]domain.Food] {
	query := url.Values{}
	if filter.SellerID != nil {
		query.Set("seller_id", strconv.Itoa(*filter.SellerID))
	}
	if filter.CategoryID != nil {
		query.Set("category_id", strconv.Itoa(*filter.CategoryID))
	}
	if filter.IsAvailable != nil {
		query.Set("is_available", strconv.FormatBool(*filter.IsAvailable))
	}
	query.Set("skip", strconv.Itoa(filter.Skip))
	if filter.Limit > 0 {
		query.Set("limit", strconv.Itoa(filter.Limit))
	}

	return call[[]domain.Food](ctx, g, callSpec{
		op:     "foods",
		method: http.MethodGet,
		path:   "/api/foods",
		query:  query,
	})
}

// Food fetches a single catalog item.
func (g *Gateway) Food(ctx context.Context, id int) outcome.Outcome[domain.Food] {
	return call[domain.Food](ctx, g, callSpec{
		op:     "food",
		method: http.MethodGet,
		path:   fmt.Sprintf("/api/foods/%d", id),
	})
}

// Categories lists the catalog groupings. Intentionally token-less.
func (g *Gateway) Categories(ctx context.Context) outcome.Outcome[[]domain.FoodCategory] {
	return call[[]domain.FoodCategory](ctx, g, callSpec{
		op:     "categories",
		method: http.MethodGet,
		path:   "/api/foods/categories",
	})
}

// CreateFood adds a catalog item. Seller only.
func (g *Gateway) CreateFood(ctx context.Context, req domain.FoodCreate) outcome.Outcome[domain.Food] {
	if err := domain.Validate(req); err != nil {
		return failInput[domain.Food](err)
	}
	return call[domain.Food](ctx, g, callSpec{
		op:        "create_food",
		method:    http.MethodPost,
		path:      "/api/foods",
		body:      req,
		protected: true,
	})
}

// UpdateFood applies a partial update to a catalog item. Seller only.
func (g *Gateway) UpdateFood(ctx context.Context, id int, req domain.FoodUpdate) outcome.Outcome[domain.Food] {
	return call[domain.Food](ctx, g, callSpec{
		op:        "update_food",
		method:    http.MethodPut,
		path:      fmt.Sprintf("/api/foods/%d", id),
		body:      req,
		protected: true,
	})
}

// DeleteFood removes a catalog item. Seller only.
func (g *Gateway) DeleteFood(ctx context.Context, id int) outcome.Outcome[struct{}] {
	return callNoContent(ctx, g, callSpec{
		op:        "delete_food",
		method:    http.MethodDelete,
		path:      fmt.Sprintf("/api/foods/%d", id),
		protected: true,
	})
}
