package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

// PaymentMethod enumerates how an order can be paid.
type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "cash"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
	PaymentEWallet      PaymentMethod = "e_wallet"
	PaymentCreditCard   PaymentMethod = "credit_card"
)

// PaymentState represents the lifecycle state of a payment.
type PaymentState string

const (
	PaymentPending    PaymentState = "pending"
	PaymentProcessing PaymentState = "processing"
	PaymentCompleted  PaymentState = "completed"
	PaymentFailed     PaymentState = "failed"
	PaymentRefunded   PaymentState = "refunded"
)

var ErrPaymentNotFound = errors.New("payment not found")

// Payment mirrors the backend payment resource.
type Payment struct {
	ID            int             `json:"id"`
	OrderID       int             `json:"order_id"`
	PaymentNumber string          `json:"payment_number"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	Amount        decimal.Decimal `json:"amount"`
	Status        PaymentState    `json:"status"`
	TransactionID *string         `json:"transaction_id"`
	PaymentNotes  *string         `json:"payment_notes"`
	PaidAt        *string         `json:"paid_at"`
	CreatedAt     string          `json:"created_at"`
	UpdatedAt     *string         `json:"updated_at"`
}

// PaymentCreate is the payload for recording a payment against an order.
type PaymentCreate struct {
	OrderID       int           `json:"order_id" validate:"required"`
	PaymentMethod PaymentMethod `json:"payment_method" validate:"required,oneof=cash bank_transfer e_wallet credit_card"`
	TransactionID string        `json:"transaction_id,omitempty"`
	PaymentNotes  string        `json:"payment_notes,omitempty"`
}

// PaymentStatusUpdate is the body for PATCH /api/payments/{id}/status.
type PaymentStatusUpdate struct {
	Status        PaymentState `json:"status" validate:"required"`
	TransactionID string       `json:"transaction_id,omitempty"`
}

// PaymentFilter narrows a payment listing.
type PaymentFilter struct {
	OrderID *int
	Skip    int
	Limit   int
}
