package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/fooddelivery/marketplace-go/internal/core/domain"
	"github.com/fooddelivery/marketplace-go/internal/core/outcome"
)

// Login exchanges credentials for a bearer token. The backend expects the
// OAuth2 password form, not JSON.
func (g *Gateway) Login(ctx context.Context, username, password string) outcome.Outcome[domain.TokenGrant] {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	return call[domain.TokenGrant](ctx, g, callSpec{
		op:     "login",
		method: http.MethodPost,
		path:   "/api/auth/login",
		form:   form,
	})
}

// CurrentUser fetches the profile of the authenticated user.
func (g *Gateway) CurrentUser(ctx context.Context) outcome.Outcome[domain.User] {
	return call[domain.User](ctx, g, callSpec{
		op:        "current_user",
		method:    http.MethodGet,
		path:      "/api/auth/me",
		protected: true,
	})
}

// ForgotPassword starts a password reset for the given email.
func (g *Gateway) ForgotPassword(ctx context.Context, email string) outcome.Outcome[domain.ForgotPasswordResponse] {
	req := domain.ForgotPasswordRequest{Email: email}
	if err := domain.Validate(req); err != nil {
		return failInput[domain.ForgotPasswordResponse](err)
	}
	return call[domain.ForgotPasswordResponse](ctx, g, callSpec{
		op:     "forgot_password",
		method: http.MethodPost,
		path:   "/api/auth/forgot-password",
		body:   req,
	})
}
