package devapi

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/fooddelivery/marketplace-go/internal/core/domain"
)

// echoprometheus registers its collectors on first use; share one middleware
// across routers so tests can build several instances in one process.
var (
	promOnce    sync.Once
	promMW      echo.MiddlewareFunc
	promHandler echo.HandlerFunc
)

func promMiddleware() (echo.MiddlewareFunc, echo.HandlerFunc) {
	promOnce.Do(func() {
		promMW = echoprometheus.NewMiddleware("devapi")
		promHandler = echoprometheus.NewHandler()
	})
	return promMW, promHandler
}

// errorResponse mirrors the real backend's error envelope.
type errorResponse struct {
	Detail string `json:"detail"`
}

// NewRouter builds the Echo instance with every backend route registered.
func NewRouter(store *Store, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = newHTTPErrorHandler(log)

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	mw, handler := promMiddleware()
	e.Use(mw)
	e.GET("/metrics", handler)

	h := NewHandler(store, jwtSecret, tokenTTL)
	authed := auth(jwtSecret)

	e.POST("/api/auth/login", h.Login)
	e.GET("/api/auth/me", h.Me, authed)
	e.POST("/api/auth/forgot-password", h.ForgotPassword)

	e.POST("/api/register/buyer", h.RegisterBuyer)
	e.POST("/api/register/seller", h.RegisterSeller)
	e.POST("/api/register/driver", h.RegisterDriver)

	// /categories must be registered before /:id so it is not captured
	// as a food id.
	e.GET("/api/foods/categories", h.Categories)
	e.GET("/api/foods", h.Foods)
	e.GET("/api/foods/:id", h.Food)
	e.POST("/api/foods", h.CreateFood, authed, requireRole(string(domain.RoleSeller)))
	e.PUT("/api/foods/:id", h.UpdateFood, authed, requireRole(string(domain.RoleSeller)))
	e.DELETE("/api/foods/:id", h.DeleteFood, authed, requireRole(string(domain.RoleSeller)))

	e.POST("/api/orders", h.CreateOrder, authed, requireRole(string(domain.RoleBuyer)))
	e.GET("/api/orders", h.Orders, authed)
	e.GET("/api/orders/:id", h.Order, authed)
	e.PATCH("/api/orders/:id/status", h.UpdateOrderStatus, authed)

	e.POST("/api/payments", h.CreatePayment, authed)
	e.GET("/api/payments", h.Payments, authed)
	e.GET("/api/payments/:id", h.Payment, authed)
	e.PATCH("/api/payments/:id/status", h.UpdatePaymentStatus, authed)

	e.GET("/api/sellers", h.Sellers)

	return e
}

// newHTTPErrorHandler renders every error as the backend's {"detail": …}
// envelope, logging unexpected ones without leaking details to the client.
func newHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			_ = c.JSON(he.Code, errorResponse{Detail: fmt.Sprintf("%v", he.Message)})
			return
		}

		log.Error().
			Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg("unhandled error")
		_ = c.JSON(http.StatusInternalServerError, errorResponse{Detail: "Internal server error"})
	}
}
