package devapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/fooddelivery/marketplace-go/internal/core/domain"
)

func newTestRouter(t *testing.T) *echo.Echo {
	t.Helper()
	store := NewStore()
	store.Seed()
	return NewRouter(store, "test-secret", time.Hour, zerolog.Nop())
}

func doLogin(t *testing.T, e *echo.Echo, username, password string) *httptest.ResponseRecorder {
	t.Helper()
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func loginToken(t *testing.T, e *echo.Echo, username, password string) string {
	t.Helper()
	rec := doLogin(t, e, username, password)
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: %d %s", username, rec.Code, rec.Body.String())
	}
	var grant domain.TokenGrant
	if err := json.Unmarshal(rec.Body.Bytes(), &grant); err != nil {
		t.Fatalf("invalid grant: %v", err)
	}
	return grant.AccessToken
}

func detailOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("error body not an envelope: %q", rec.Body.String())
	}
	return resp.Detail
}

func TestLoginHandler(t *testing.T) {
	e := newTestRouter(t)

	if token := loginToken(t, e, "alice", "secret1"); token == "" {
		t.Fatal("empty token")
	}

	rec := doLogin(t, e, "alice", "wrong")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if detail := detailOf(t, rec); detail != "Incorrect username or password" {
		t.Fatalf("detail = %q", detail)
	}
}

func TestMeHandler(t *testing.T) {
	e := newTestRouter(t)
	token := loginToken(t, e, "alice", "secret1")

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("me: %d %s", rec.Code, rec.Body.String())
	}
	var user domain.User
	if err := json.Unmarshal(rec.Body.Bytes(), &user); err != nil {
		t.Fatalf("invalid user: %v", err)
	}
	if user.Username != "alice" || user.Role != "buyer" || user.FullName != "Alice Nguyen" {
		t.Fatalf("unexpected profile: %+v", user)
	}
}

func TestAuthRequired(t *testing.T) {
	e := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if detail := detailOf(t, rec); detail != "Not authenticated" {
		t.Fatalf("detail = %q", detail)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for garbage token, got %d", rec.Code)
	}
	if detail := detailOf(t, rec); detail != "Could not validate credentials" {
		t.Fatalf("detail = %q", detail)
	}
}

func TestRegisterBuyer_Duplicate(t *testing.T) {
	e := newTestRouter(t)

	body := `{"email":"alice@example.com","username":"alice","password":"secret9","full_name":"Another Alice","phone_number":"555-0199"}`
	req := httptest.NewRequest(http.MethodPost, "/api/register/buyer", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d %s", rec.Code, rec.Body.String())
	}
	if detail := detailOf(t, rec); detail != "Username or email already registered" {
		t.Fatalf("detail = %q", detail)
	}
}

func TestCreateFood_SellerOnly(t *testing.T) {
	e := newTestRouter(t)
	body := `{"name":"Tiramisu","price":"6.50","category_id":4}`

	// A buyer token is refused.
	buyerToken := loginToken(t, e, "alice", "secret1")
	req := httptest.NewRequest(http.MethodPost, "/api/foods", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("Authorization", "Bearer "+buyerToken)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for buyer, got %d %s", rec.Code, rec.Body.String())
	}
	if detail := detailOf(t, rec); detail != "Not enough permissions" {
		t.Fatalf("detail = %q", detail)
	}

	// The seller's own token works.
	sellerToken := loginToken(t, e, "bob", "secret2")
	req = httptest.NewRequest(http.MethodPost, "/api/foods", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("Authorization", "Bearer "+sellerToken)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 for seller, got %d %s", rec.Code, rec.Body.String())
	}
	var food domain.Food
	if err := json.Unmarshal(rec.Body.Bytes(), &food); err != nil {
		t.Fatalf("invalid food: %v", err)
	}
	if food.Name != "Tiramisu" || food.ID == 0 {
		t.Fatalf("unexpected food: %+v", food)
	}
}

func TestCategoriesRouteNotShadowed(t *testing.T) {
	e := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/foods/categories", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("categories: %d %s", rec.Code, rec.Body.String())
	}
	var cats []domain.FoodCategory
	if err := json.Unmarshal(rec.Body.Bytes(), &cats); err != nil {
		t.Fatalf("invalid categories: %v", err)
	}
	if len(cats) != 4 {
		t.Fatalf("expected 4 categories, got %d", len(cats))
	}
}
