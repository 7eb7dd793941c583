package domain

// SellerProfile is a restaurant listing as returned by GET /api/sellers.
type SellerProfile struct {
	ID               int         `json:"id"`
	UserID           int         `json:"user_id"`
	StoreName        string      `json:"store_name"`
	StoreAddress     string      `json:"store_address"`
	StorePhone       *string     `json:"store_phone"`
	StoreDescription *string     `json:"store_description"`
	Rating           float64     `json:"rating"`
	TotalOrders      int         `json:"total_orders"`
	User             *SellerUser `json:"user"`
}

// SellerUser is the trimmed user record embedded in a seller listing.
type SellerUser struct {
	ID          int    `json:"id"`
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number"`
}

// SellerFilter narrows a restaurant listing.
type SellerFilter struct {
	Search    string
	MinRating *float64
	Skip      int
	Limit     int
}
