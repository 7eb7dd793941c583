package gateway

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/fooddelivery/marketplace-go/internal/core/domain"
	"github.com/fooddelivery/marketplace-go/internal/core/outcome"
)

// Sellers lists restaurants, best rated first.
func (g *Gateway) Sellers(ctx context.Context, filter domain.SellerFilter) outcome.Outcome[[]domain.SellerProfile] {
	query := url.Values{}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}
	if filter.MinRating != nil {
		query.Set("min_rating", strconv.FormatFloat(*filter.MinRating, 'f', -1, 64))
	}
	query.Set("skip", strconv.Itoa(filter.Skip))
	if filter.Limit > 0 {
		query.Set("limit", strconv.Itoa(filter.Limit))
	}

	return call[[]domain.SellerProfile](ctx, g, callSpec{
		op:     "sellers",
		method: http.MethodGet,
		path:   "/api/sellers",
		query:  query,
	})
}
