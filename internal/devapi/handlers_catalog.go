package devapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/fooddelivery/marketplace-go/internal/core/domain"
)

// Foods lists catalog items with the backend's query filters.
func (h *Handler) Foods(c echo.Context) error {
	filter := domain.FoodFilter{Limit: 100}
	if v := c.QueryParam("seller_id"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid seller_id")
		}
		filter.SellerID = &id
	}
	if v := c.QueryParam("category_id"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid category_id")
		}
		filter.CategoryID = &id
	}
	if v := c.QueryParam("is_available"); v != "" {
		avail, err := strconv.ParseBool(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid is_available")
		}
		filter.IsAvailable = &avail
	}
	filter.Skip, filter.Limit = pagination(c, filter.Limit)

	return c.JSON(http.StatusOK, h.store.listFoods(filter))
}

// Food returns a single catalog item.
func (h *Handler) Food(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid food id")
	}

	h.store.mu.Lock()
	f, ok := h.store.foods[id]
	h.store.mu.Unlock()
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Food not found")
	}
	return c.JSON(http.StatusOK, f)
}

// Categories lists catalog groupings. No auth required.
func (h *Handler) Categories(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.listCategories())
}

// CreateFood adds a catalog item for the authenticated seller.
func (h *Handler) CreateFood(c echo.Context) error {
	seller, err := h.currentSeller(c)
	if err != nil {
		return err
	}

	var req domain.FoodCreate
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := domain.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	h.store.mu.Lock()
	id := h.store.id()
	f := &domain.Food{
		ID:            id,
		SellerID:      seller.ID,
		CategoryID:    req.CategoryID,
		Name:          req.Name,
		Price:         req.Price,
		IsAvailable:   true,
		StockQuantity: req.StockQuantity,
		CreatedAt:     now(),
	}
	if req.Description != "" {
		f.Description = &req.Description
	}
	if req.ImageURL != "" {
		f.ImageURL = &req.ImageURL
	}
	h.store.foods[id] = f
	h.store.mu.Unlock()

	return c.JSON(http.StatusCreated, f)
}

// UpdateFood applies a partial update to one of the seller's items.
func (h *Handler) UpdateFood(c echo.Context) error {
	seller, err := h.currentSeller(c)
	if err != nil {
		return err
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid food id")
	}

	var req domain.FoodUpdate
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	f, ok := h.store.foods[id]
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Food not found")
	}
	if f.SellerID != seller.ID {
		return echo.NewHTTPError(http.StatusForbidden, "Not your food item")
	}

	if req.Name != nil {
		f.Name = *req.Name
	}
	if req.Description != nil {
		f.Description = req.Description
	}
	if req.Price != nil {
		f.Price = *req.Price
	}
	if req.ImageURL != nil {
		f.ImageURL = req.ImageURL
	}
	if req.CategoryID != nil {
		f.CategoryID = req.CategoryID
	}
	if req.IsAvailable != nil {
		f.IsAvailable = *req.IsAvailable
	}
	if req.StockQuantity != nil {
		f.StockQuantity = *req.StockQuantity
	}
	ts := now()
	f.UpdatedAt = &ts

	return c.JSON(http.StatusOK, f)
}

// DeleteFood removes one of the seller's items.
func (h *Handler) DeleteFood(c echo.Context) error {
	seller, err := h.currentSeller(c)
	if err != nil {
		return err
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid food id")
	}

	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	f, ok := h.store.foods[id]
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Food not found")
	}
	if f.SellerID != seller.ID {
		return echo.NewHTTPError(http.StatusForbidden, "Not your food item")
	}
	delete(h.store.foods, id)

	return c.NoContent(http.StatusNoContent)
}

// Sellers lists restaurants, best rated first.
func (h *Handler) Sellers(c echo.Context) error {
	filter := domain.SellerFilter{Search: c.QueryParam("search"), Limit: 100}
	if v := c.QueryParam("min_rating"); v != "" {
		r, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid min_rating")
		}
		filter.MinRating = &r
	}
	filter.Skip, filter.Limit = pagination(c, filter.Limit)

	return c.JSON(http.StatusOK, h.store.listSellers(filter))
}

// currentSeller resolves the authenticated user to their seller profile.
func (h *Handler) currentSeller(c echo.Context) (*sellerRecord, error) {
	username, err := ctxUsername(c)
	if err != nil {
		return nil, err
	}
	user, ok := h.store.userByName(username)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusNotFound, "User not found")
	}
	seller, ok := h.store.sellerByUser(user.ID)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusNotFound, "Seller profile not found")
	}
	return seller, nil
}

func pagination(c echo.Context, defaultLimit int) (skip, limit int) {
	limit = defaultLimit
	if v := c.QueryParam("skip"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			skip = n
		}
	}
	if v := c.QueryParam("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	return skip, limit
}
