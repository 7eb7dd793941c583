package devapi

import (
	"encoding/hex"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/fooddelivery/marketplace-go/internal/core/domain"
)

func orderNumber() string {
	u := uuid.New()
	return fmt.Sprintf("ORD-%s-%s", time.Now().Format("20060102"), strings.ToUpper(hex.EncodeToString(u[:4])))
}

func paymentNumber() string {
	u := uuid.New()
	return fmt.Sprintf("PAY-%s-%s", time.Now().Format("20060102"), strings.ToUpper(hex.EncodeToString(u[:4])))
}

// CreateOrder places an order for the authenticated buyer. Subtotal and
// total are computed here, never trusted from the client.
func (h *Handler) CreateOrder(c echo.Context) error {
	buyer, err := h.currentBuyer(c)
	if err != nil {
		return err
	}

	var req domain.OrderCreate
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := domain.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	h.store.mu.Lock()
	defer h.store.mu.Unlock()

	if _, ok := h.store.sellers[req.SellerID]; !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Seller not found")
	}

	subtotal := decimal.Zero
	items := make([]domain.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		food, ok := h.store.foods[it.FoodID]
		if !ok {
			return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("Food with id %d not found", it.FoodID))
		}
		if !food.IsAvailable {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Food %s is not available", food.Name))
		}
		if food.StockQuantity < it.Quantity {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Insufficient stock for %s", food.Name))
		}
		itemSubtotal := food.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
		subtotal = subtotal.Add(itemSubtotal)
		items = append(items, domain.OrderItem{
			ID:        h.store.id(),
			FoodID:    food.ID,
			Quantity:  it.Quantity,
			UnitPrice: food.Price,
			Subtotal:  itemSubtotal,
		})
	}

	id := h.store.id()
	order := &domain.Order{
		ID:              id,
		BuyerID:         buyer.ID,
		SellerID:        req.SellerID,
		OrderNumber:     orderNumber(),
		Status:          domain.OrderPending,
		Subtotal:        subtotal,
		DeliveryFee:     req.DeliveryFee,
		TotalAmount:     subtotal.Add(req.DeliveryFee),
		DeliveryAddress: req.DeliveryAddress,
		DeliveryPhone:   req.DeliveryPhone,
		CreatedAt:       now(),
		Items:           items,
	}
	if req.DeliveryNotes != "" {
		order.DeliveryNotes = &req.DeliveryNotes
	}
	h.store.orders[id] = order

	return c.JSON(http.StatusCreated, order)
}

// Orders lists orders visible to the caller.
func (h *Handler) Orders(c echo.Context) error {
	username, err := ctxUsername(c)
	if err != nil {
		return err
	}
	user, ok := h.store.userByName(username)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}
	skip, limit := pagination(c, 100)

	h.store.mu.Lock()
	defer h.store.mu.Unlock()

	ids := make([]int, 0, len(h.store.orders))
	for id := range h.store.orders {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	out := make([]domain.Order, 0, len(ids))
	for _, id := range ids {
		o := h.store.orders[id]
		if !h.visibleTo(user, o) {
			continue
		}
		out = append(out, *o)
	}
	return c.JSON(http.StatusOK, paginate(out, skip, limit))
}

// Order returns a single order.
func (h *Handler) Order(c echo.Context) error {
	username, err := ctxUsername(c)
	if err != nil {
		return err
	}
	user, ok := h.store.userByName(username)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	o, ok := h.store.orders[id]
	if !ok || !h.visibleTo(user, o) {
		return echo.NewHTTPError(http.StatusNotFound, "Order not found")
	}
	return c.JSON(http.StatusOK, o)
}

// UpdateOrderStatus advances an order along its lifecycle.
func (h *Handler) UpdateOrderStatus(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}
	var req domain.OrderStatusUpdate
	if err := c.Bind(&req); err != nil || req.Status == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "status is required")
	}

	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	o, ok := h.store.orders[id]
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Order not found")
	}
	if !o.Status.CanTransitionTo(req.Status) {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Cannot change status from %s to %s", o.Status, req.Status))
	}

	o.Status = req.Status
	ts := now()
	o.UpdatedAt = &ts
	if req.Status == domain.OrderDelivered {
		o.DeliveredAt = &ts
	}
	return c.JSON(http.StatusOK, o)
}

// CreatePayment records a payment for an order; the amount is the order
// total.
func (h *Handler) CreatePayment(c echo.Context) error {
	var req domain.PaymentCreate
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := domain.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	order, ok := h.store.orders[req.OrderID]
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Order not found")
	}
	for _, p := range h.store.payments {
		if p.OrderID == req.OrderID {
			return echo.NewHTTPError(http.StatusConflict, "Payment already exists for this order")
		}
	}

	id := h.store.id()
	payment := &domain.Payment{
		ID:            id,
		OrderID:       order.ID,
		PaymentNumber: paymentNumber(),
		PaymentMethod: req.PaymentMethod,
		Amount:        order.TotalAmount,
		Status:        domain.PaymentPending,
		CreatedAt:     now(),
	}
	if req.TransactionID != "" {
		payment.TransactionID = &req.TransactionID
	}
	if req.PaymentNotes != "" {
		payment.PaymentNotes = &req.PaymentNotes
	}
	h.store.payments[id] = payment

	return c.JSON(http.StatusCreated, payment)
}

// Payments lists payments, optionally filtered by order.
func (h *Handler) Payments(c echo.Context) error {
	var orderID *int
	if v := c.QueryParam("order_id"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid order_id")
		}
		orderID = &id
	}
	skip, limit := pagination(c, 100)

	h.store.mu.Lock()
	defer h.store.mu.Unlock()

	ids := make([]int, 0, len(h.store.payments))
	for id := range h.store.payments {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	out := make([]domain.Payment, 0, len(ids))
	for _, id := range ids {
		p := h.store.payments[id]
		if orderID != nil && p.OrderID != *orderID {
			continue
		}
		out = append(out, *p)
	}
	return c.JSON(http.StatusOK, paginate(out, skip, limit))
}

// Payment returns a single payment.
func (h *Handler) Payment(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payment id")
	}

	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	p, ok := h.store.payments[id]
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Payment not found")
	}
	return c.JSON(http.StatusOK, p)
}

// UpdatePaymentStatus advances a payment; completing it stamps paid_at.
func (h *Handler) UpdatePaymentStatus(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payment id")
	}
	var req domain.PaymentStatusUpdate
	if err := c.Bind(&req); err != nil || req.Status == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "status is required")
	}

	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	p, ok := h.store.payments[id]
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Payment not found")
	}

	p.Status = req.Status
	ts := now()
	p.UpdatedAt = &ts
	if req.TransactionID != "" {
		p.TransactionID = &req.TransactionID
	}
	if req.Status == domain.PaymentCompleted {
		p.PaidAt = &ts
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) currentBuyer(c echo.Context) (*buyerRecord, error) {
	username, err := ctxUsername(c)
	if err != nil {
		return nil, err
	}
	user, ok := h.store.userByName(username)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusNotFound, "User not found")
	}
	buyer, ok := h.store.buyerByUser(user.ID)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusNotFound, "Buyer profile not found")
	}
	return buyer, nil
}

// visibleTo applies the backend's per-role order visibility. Callers must
// hold h.store.mu where the order came from the store.
func (h *Handler) visibleTo(user *userRecord, o *domain.Order) bool {
	switch domain.ParseRole(user.Role) {
	case domain.RoleBuyer:
		for _, b := range h.store.buyers {
			if b.UserID == user.ID {
				return o.BuyerID == b.ID
			}
		}
		return false
	case domain.RoleSeller:
		for _, s := range h.store.sellers {
			if s.UserID == user.ID {
				return o.SellerID == s.ID
			}
		}
		return false
	case domain.RoleDriver:
		return o.DriverID != nil
	default:
		return false
	}
}
