package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/fooddelivery/marketplace-go/internal/core/domain"
)

func strPtr(s string) *string          { return &s }
func intPtr(i int) *int                { return &i }
func rolePtr(r domain.Role) *domain.Role { return &r }

func TestFileStore_Defaults(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	sess, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if sess.AccessToken != "" || sess.LoggedIn {
		t.Fatalf("fresh store not empty: %+v", sess)
	}
	if sess.Role != domain.RoleUnknown {
		t.Fatalf("expected unknown role, got %s", sess.Role)
	}
	if !sess.CartTotal.Equal(decimal.Zero) {
		t.Fatalf("expected zero cart total, got %s", sess.CartTotal)
	}
}

func TestFileStore_PartialSaveThenProfile(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	// Token first, the way login persists it before the profile arrives.
	if err := store.Save(ctx, domain.SessionUpdate{AccessToken: strPtr("tok-1")}); err != nil {
		t.Fatalf("Save token: %v", err)
	}
	sess, _ := store.Load(ctx)
	if sess.AccessToken != "tok-1" || sess.Username != "" {
		t.Fatalf("unexpected state after token save: %+v", sess)
	}

	update := domain.SessionUpdate{
		UserID:   intPtr(5),
		Username: strPtr("alice"),
		Role:     rolePtr(domain.RoleBuyer),
		FullName: strPtr("Alice Nguyen"),
	}
	if err := store.Save(ctx, update); err != nil {
		t.Fatalf("Save profile: %v", err)
	}

	sess, _ = store.Load(ctx)
	if sess.AccessToken != "tok-1" {
		t.Fatalf("profile save clobbered token: %+v", sess)
	}
	if sess.UserID != 5 || sess.Username != "alice" || sess.Role != domain.RoleBuyer || sess.FullName != "Alice Nguyen" {
		t.Fatalf("profile fields not persisted: %+v", sess)
	}
}

func TestFileStore_SurvivesRestart(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")

	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if err := store.Save(ctx, domain.SessionUpdate{AccessToken: strPtr("tok-2"), Username: strPtr("bob")}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.SetLoggedIn(ctx, true); err != nil {
		t.Fatalf("SetLoggedIn: %v", err)
	}
	if err := store.SetCartTotal(ctx, decimal.RequireFromString("23.40")); err != nil {
		t.Fatalf("SetCartTotal: %v", err)
	}

	// A second store at the same path is the next app launch.
	reopened, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	sess, _ := reopened.Load(ctx)
	if sess.AccessToken != "tok-2" || sess.Username != "bob" || !sess.LoggedIn {
		t.Fatalf("state lost across restart: %+v", sess)
	}
	if !sess.CartTotal.Equal(decimal.RequireFromString("23.40")) {
		t.Fatalf("cart total lost: %s", sess.CartTotal)
	}
}

func TestFileStore_Clear(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")

	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	_ = store.Save(ctx, domain.SessionUpdate{AccessToken: strPtr("tok-3")})
	_ = store.SetLoggedIn(ctx, true)

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	sess, _ := store.Load(ctx)
	if sess.AccessToken != "" || sess.LoggedIn {
		t.Fatalf("clear left state behind: %+v", sess)
	}

	reopened, _ := NewFileStore(path)
	sess, _ = reopened.Load(ctx)
	if sess.AccessToken != "" || sess.LoggedIn {
		t.Fatalf("clear not durable: %+v", sess)
	}
}

func TestFileStore_CorruptFileDiscarded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("prep: %v", err)
	}
	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore on corrupt file: %v", err)
	}
	sess, _ := store.Load(context.Background())
	if sess.LoggedIn || sess.AccessToken != "" {
		t.Fatalf("corrupt file produced state: %+v", sess)
	}
}
