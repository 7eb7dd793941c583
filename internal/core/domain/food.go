package domain

import "github.com/shopspring/decimal"

func init() {
	// The backend serialises monetary amounts as bare JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Food is a catalog item as returned by the backend.
type Food struct {
	ID            int             `json:"id"`
	SellerID      int             `json:"seller_id"`
	CategoryID    *int            `json:"category_id"`
	Name          string          `json:"name"`
	Description   *string         `json:"description"`
	Price         decimal.Decimal `json:"price"`
	ImageURL      *string         `json:"image_url"`
	IsAvailable   bool            `json:"is_available"`
	StockQuantity int             `json:"stock_quantity"`
	Rating        float64         `json:"rating"`
	TotalOrders   int             `json:"total_orders"`
	CreatedAt     string          `json:"created_at"`
	UpdatedAt     *string         `json:"updated_at"`
}

// FoodCategory is a top-level catalog grouping.
type FoodCategory struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	CreatedAt   string  `json:"created_at"`
}

// FoodCreate is the seller-side payload for adding a catalog item.
type FoodCreate struct {
	Name          string          `json:"name" validate:"required"`
	Description   string          `json:"description,omitempty"`
	Price         decimal.Decimal `json:"price" validate:"required"`
	ImageURL      string          `json:"image_url,omitempty"`
	CategoryID    *int            `json:"category_id,omitempty"`
	StockQuantity int             `json:"stock_quantity"`
}

// FoodUpdate is a partial catalog item update; nil fields are not sent.
type FoodUpdate struct {
	Name          *string          `json:"name,omitempty"`
	Description   *string          `json:"description,omitempty"`
	Price         *decimal.Decimal `json:"price,omitempty"`
	ImageURL      *string          `json:"image_url,omitempty"`
	CategoryID    *int             `json:"category_id,omitempty"`
	IsAvailable   *bool            `json:"is_available,omitempty"`
	StockQuantity *int             `json:"stock_quantity,omitempty"`
}

// FoodFilter narrows a catalog listing. Zero-valued pagination falls back to
// the backend defaults.
type FoodFilter struct {
	SellerID    *int
	CategoryID  *int
	IsAvailable *bool
	Skip        int
	Limit       int
}
