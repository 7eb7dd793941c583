package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderConfirmed  OrderStatus = "confirmed"
	OrderPreparing  OrderStatus = "preparing"
	OrderReady      OrderStatus = "ready"
	OrderPickedUp   OrderStatus = "picked_up"
	OrderDelivering OrderStatus = "delivering"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// validTransitions defines the allowed order state machine transitions.
var validTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:    {OrderConfirmed, OrderCancelled},
	OrderConfirmed:  {OrderPreparing, OrderCancelled},
	OrderPreparing:  {OrderReady, OrderCancelled},
	OrderReady:      {OrderPickedUp},
	OrderPickedUp:   {OrderDelivering},
	OrderDelivering: {OrderDelivered},
}

var ErrInvalidTransition = errors.New("invalid status transition")
var ErrOrderNotFound = errors.New("order not found")

// CanTransitionTo reports whether moving from the current status to next is
// a valid lifecycle step.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Order mirrors the backend order resource. Amounts are decimals so totals
// compare exactly.
type Order struct {
	ID              int             `json:"id"`
	BuyerID         int             `json:"buyer_id"`
	SellerID        int             `json:"seller_id"`
	DriverID        *int            `json:"driver_id"`
	OrderNumber     string          `json:"order_number"`
	Status          OrderStatus     `json:"status"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	DeliveryFee     decimal.Decimal `json:"delivery_fee"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	DeliveryAddress string          `json:"delivery_address"`
	DeliveryPhone   string          `json:"delivery_phone"`
	DeliveryNotes   *string         `json:"delivery_notes"`
	CreatedAt       string          `json:"created_at"`
	UpdatedAt       *string         `json:"updated_at"`
	DeliveredAt     *string         `json:"delivered_at"`
	Items           []OrderItem     `json:"items"`
}

// OrderItem is a single line on an order; unit price and subtotal are
// computed server-side from the catalog.
type OrderItem struct {
	ID        int             `json:"id"`
	FoodID    int             `json:"food_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// OrderCreate is the buyer-side payload for placing an order. The server
// computes subtotal and total.
type OrderCreate struct {
	SellerID        int               `json:"seller_id" validate:"required"`
	Items           []OrderItemCreate `json:"items" validate:"required,min=1,dive"`
	DeliveryAddress string            `json:"delivery_address" validate:"required"`
	DeliveryPhone   string            `json:"delivery_phone" validate:"required"`
	DeliveryNotes   string            `json:"delivery_notes,omitempty"`
	DeliveryFee     decimal.Decimal   `json:"delivery_fee"`
}

type OrderItemCreate struct {
	FoodID   int `json:"food_id" validate:"required"`
	Quantity int `json:"quantity" validate:"required,gt=0"`
}

// OrderStatusUpdate is the body for PATCH /api/orders/{id}/status.
type OrderStatusUpdate struct {
	Status OrderStatus `json:"status" validate:"required"`
}
