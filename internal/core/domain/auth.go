package domain

// TokenGrant is the body returned by POST /api/auth/login.
type TokenGrant struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// ForgotPasswordRequest asks the backend to start a password reset.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ForgotPasswordResponse acknowledges a password reset request.
type ForgotPasswordResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}
