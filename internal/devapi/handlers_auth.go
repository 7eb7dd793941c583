package devapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fooddelivery/marketplace-go/internal/core/domain"
)

// Handler carries the devapi dependencies shared by all routes.
type Handler struct {
	store     *Store
	jwtSecret string
	tokenTTL  time.Duration
}

func NewHandler(store *Store, jwtSecret string, tokenTTL time.Duration) *Handler {
	return &Handler{store: store, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// Login implements the OAuth2 password form flow.
func (h *Handler) Login(c echo.Context) error {
	username := c.FormValue("username")
	password := c.FormValue("password")
	if username == "" || password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username and password are required")
	}

	user, ok := h.store.authenticate(username, password)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Incorrect username or password")
	}
	if !user.IsActive {
		return echo.NewHTTPError(http.StatusBadRequest, "Inactive user")
	}

	token, err := issueToken(h.jwtSecret, h.tokenTTL, user.Username, user.Role, user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, domain.TokenGrant{AccessToken: token, TokenType: "bearer"})
}

// Me returns the authenticated user's profile.
func (h *Handler) Me(c echo.Context) error {
	username, err := ctxUsername(c)
	if err != nil {
		return err
	}
	user, ok := h.store.userByName(username)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}
	return c.JSON(http.StatusOK, user.User)
}

// ForgotPassword acknowledges a reset request. The devapi sends no mail; it
// just echoes the success envelope the real backend uses.
func (h *Handler) ForgotPassword(c echo.Context) error {
	var req domain.ForgotPasswordRequest
	if err := c.Bind(&req); err != nil || req.Email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email is required")
	}
	return c.JSON(http.StatusOK, domain.ForgotPasswordResponse{
		Message: "If the email exists, a reset link has been sent",
		Status:  "success",
	})
}

// RegisterBuyer creates a buyer account.
func (h *Handler) RegisterBuyer(c echo.Context) error {
	var req domain.BuyerRegistration
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := domain.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if h.store.hasAccount(req.Username, req.Email) {
		return echo.NewHTTPError(http.StatusConflict, "Username or email already registered")
	}

	h.store.mu.Lock()
	user := h.store.addUser(req.Username, req.Email, req.Password, req.FullName, req.PhoneNumber, domain.RoleBuyer)
	rec := &buyerRecord{ID: h.store.id(), UserID: user.ID, Address: req.Address}
	h.store.buyers[user.ID] = rec
	h.store.mu.Unlock()

	return c.JSON(http.StatusCreated, domain.BuyerAccount{ID: rec.ID, UserID: user.ID, User: user.User})
}

// RegisterSeller creates a seller account with its store profile.
func (h *Handler) RegisterSeller(c echo.Context) error {
	var req domain.SellerRegistration
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := domain.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if h.store.hasAccount(req.Username, req.Email) {
		return echo.NewHTTPError(http.StatusConflict, "Username or email already registered")
	}

	h.store.mu.Lock()
	user := h.store.addUser(req.Username, req.Email, req.Password, req.FullName, req.PhoneNumber, domain.RoleSeller)
	sellerID := h.store.id()
	rec := &sellerRecord{SellerProfile: domain.SellerProfile{
		ID:           sellerID,
		UserID:       user.ID,
		StoreName:    req.StoreName,
		StoreAddress: req.StoreAddress,
		User: &domain.SellerUser{
			ID:          user.ID,
			FullName:    user.FullName,
			PhoneNumber: user.PhoneNumber,
		},
	}}
	if req.StorePhone != "" {
		rec.StorePhone = &req.StorePhone
	}
	if req.StoreDescription != "" {
		rec.StoreDescription = &req.StoreDescription
	}
	h.store.sellers[sellerID] = rec
	h.store.mu.Unlock()

	return c.JSON(http.StatusCreated, domain.SellerAccount{
		ID:           sellerID,
		UserID:       user.ID,
		StoreName:    rec.StoreName,
		StoreAddress: rec.StoreAddress,
		User:         user.User,
	})
}

// RegisterDriver creates a driver account.
func (h *Handler) RegisterDriver(c echo.Context) error {
	var req domain.DriverRegistration
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := domain.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if h.store.hasAccount(req.Username, req.Email) {
		return echo.NewHTTPError(http.StatusConflict, "Username or email already registered")
	}

	h.store.mu.Lock()
	user := h.store.addUser(req.Username, req.Email, req.Password, req.FullName, req.PhoneNumber, domain.RoleDriver)
	rec := &driverRecord{
		ID:            h.store.id(),
		UserID:        user.ID,
		LicenseNumber: req.LicenseNumber,
		VehicleType:   req.VehicleType,
		VehicleNumber: req.VehicleNumber,
	}
	h.store.drivers[rec.ID] = rec
	h.store.mu.Unlock()

	return c.JSON(http.StatusCreated, domain.DriverAccount{
		ID:            rec.ID,
		UserID:        user.ID,
		LicenseNumber: rec.LicenseNumber,
		User:          user.User,
	})
}
