package domain

// AccountBase carries the fields common to every registration role.
type AccountBase struct {
	Email       string `json:"email" validate:"required,email"`
	Username    string `json:"username" validate:"required"`
	Password    string `json:"password" validate:"required,min=6"`
	FullName    string `json:"full_name" validate:"required"`
	PhoneNumber string `json:"phone_number" validate:"required"`
}

// RegistrationProfile is the tagged union over the three account kinds. The
// concrete type decides which registration endpoint is called; Role exposes
// the tag.
type RegistrationProfile interface {
	Role() Role
}

// BuyerRegistration is the payload for POST /api/register/buyer.
type BuyerRegistration struct {
	AccountBase
	Address string `json:"address,omitempty"`
}

func (BuyerRegistration) Role() Role { return RoleBuyer }

// SellerRegistration is the payload for POST /api/register/seller.
type SellerRegistration struct {
	AccountBase
	StoreName        string `json:"store_name" validate:"required"`
	StoreAddress     string `json:"store_address" validate:"required"`
	StorePhone       string `json:"store_phone,omitempty"`
	StoreDescription string `json:"store_description,omitempty"`
	LicenseNumber    string `json:"license_number,omitempty"`
}

func (SellerRegistration) Role() Role { return RoleSeller }

// DriverRegistration is the payload for POST /api/register/driver.
type DriverRegistration struct {
	AccountBase
	LicenseNumber string `json:"license_number" validate:"required"`
	VehicleType   string `json:"vehicle_type,omitempty"`
	VehicleNumber string `json:"vehicle_number,omitempty"`
}

func (DriverRegistration) Role() Role { return RoleDriver }

// BuyerAccount echoes the created buyer and the embedded user profile.
type BuyerAccount struct {
	ID     int  `json:"id"`
	UserID int  `json:"user_id"`
	User   User `json:"user"`
}

// SellerAccount echoes the created seller and the embedded user profile.
type SellerAccount struct {
	ID           int    `json:"id"`
	UserID       int    `json:"user_id"`
	StoreName    string `json:"store_name"`
	StoreAddress string `json:"store_address"`
	User         User   `json:"user"`
}

// DriverAccount echoes the created driver and the embedded user profile.
type DriverAccount struct {
	ID            int    `json:"id"`
	UserID        int    `json:"user_id"`
	LicenseNumber string `json:"license_number"`
	User          User   `json:"user"`
}

// RegisteredAccount is the role-independent view of a registration result,
// used where the caller dispatched on the union and only needs the common
// fields back.
type RegisteredAccount struct {
	ID     int
	UserID int
	User   User
}
