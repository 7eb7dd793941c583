package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/fooddelivery/marketplace-go/internal/core/domain"
	"github.com/fooddelivery/marketplace-go/internal/core/outcome"
	"github.com/fooddelivery/marketplace-go/internal/infrastructure/session"
)

// stubGateway answers the auth calls from canned outcomes and records what
// was asked.
type stubGateway struct {
	loginUsername string
	loginPassword string
	login         outcome.Outcome[domain.TokenGrant]
	currentUser   outcome.Outcome[domain.User]
	registered    domain.RegistrationProfile
}

func (s *stubGateway) Login(_ context.Context, username, password string) outcome.Outcome[domain.TokenGrant] {
	s.loginUsername = username
	s.loginPassword = password
	return s.login
}

func (s *stubGateway) CurrentUser(context.Context) outcome.Outcome[domain.User] {
	return s.currentUser
}

func (s *stubGateway) RegisterBuyer(_ context.Context, reg domain.BuyerRegistration) outcome.Outcome[domain.BuyerAccount] {
	s.registered = reg
	return outcome.Success(domain.BuyerAccount{ID: 10, UserID: 20, User: domain.User{Username: reg.Username}})
}

func (s *stubGateway) RegisterSeller(_ context.Context, reg domain.SellerRegistration) outcome.Outcome[domain.SellerAccount] {
	s.registered = reg
	return outcome.Success(domain.SellerAccount{ID: 11, UserID: 21, User: domain.User{Username: reg.Username}})
}

func (s *stubGateway) RegisterDriver(_ context.Context, reg domain.DriverRegistration) outcome.Outcome[domain.DriverAccount] {
	s.registered = reg
	return outcome.Success(domain.DriverAccount{ID: 12, UserID: 22, User: domain.User{Username: reg.Username}})
}

// recordingToken remembers the last token pushed into the transport.
type recordingToken struct {
	token   string
	cleared int
}

func (r *recordingToken) SetToken(token string) { r.token = token }
func (r *recordingToken) ClearToken()           { r.token = ""; r.cleared++ }

func newTestService(t *testing.T, gw *stubGateway) (*AccountService, *recordingToken, *session.FileStore) {
	t.Helper()
	store, err := session.NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	tok := &recordingToken{}
	return NewAccountService(gw, tok, store, zerolog.Nop()), tok, store
}

func TestLogin_PersistsTokenAndProfile(t *testing.T) {
	gw := &stubGateway{
		login: outcome.Success(domain.TokenGrant{AccessToken: "tok-abc", TokenType: "bearer"}),
		currentUser: outcome.Success(domain.User{
			ID: 5, Username: "alice", FullName: "Alice Nguyen", Role: "buyer",
		}),
	}
	svc, tok, store := newTestService(t, gw)

	res := svc.Login(context.Background(), "alice@example.com", "secret1")
	sess, failure := res.Get()
	if failure != nil {
		t.Fatalf("Login failed: %v", failure)
	}

	if gw.loginUsername != "alice" {
		t.Fatalf("login used username %q, want email local part", gw.loginUsername)
	}
	if tok.token != "tok-abc" {
		t.Fatalf("transport token = %q", tok.token)
	}
	if !sess.LoggedIn || sess.AccessToken != "tok-abc" {
		t.Fatalf("returned session not logged in: %+v", sess)
	}
	if sess.UserID != 5 || sess.Username != "alice" || sess.Role != domain.RoleBuyer || sess.FullName != "Alice Nguyen" {
		t.Fatalf("profile fields missing from session: %+v", sess)
	}

	persisted, _ := store.Load(context.Background())
	if persisted.AccessToken != "tok-abc" || !persisted.LoggedIn {
		t.Fatalf("session not persisted: %+v", persisted)
	}
}

func TestLogin_ProfileFetchFailureStillSucceeds(t *testing.T) {
	gw := &stubGateway{
		login:       outcome.Success(domain.TokenGrant{AccessToken: "tok-abc"}),
		currentUser: outcome.Fail[domain.User](outcome.Timeout, "connection timed out"),
	}
	svc, tok, store := newTestService(t, gw)

	sess, failure := svc.Login(context.Background(), "alice@example.com", "secret1").Get()
	if failure != nil {
		t.Fatalf("Login failed despite valid token: %v", failure)
	}
	if !sess.LoggedIn || sess.AccessToken != "tok-abc" {
		t.Fatalf("session not usable: %+v", sess)
	}
	if sess.Username != "" || sess.Role != domain.RoleUnknown {
		t.Fatalf("expected profile fields unset, got %+v", sess)
	}
	if tok.token != "tok-abc" {
		t.Fatalf("transport token = %q", tok.token)
	}

	persisted, _ := store.Load(context.Background())
	if !persisted.LoggedIn {
		t.Fatal("session flag not persisted")
	}
}

func TestLogin_RejectionPropagates(t *testing.T) {
	gw := &stubGateway{
		login: outcome.Fail[domain.TokenGrant](outcome.RemoteRejected, "invalid credentials or session expired"),
	}
	svc, tok, store := newTestService(t, gw)

	_, failure := svc.Login(context.Background(), "alice@example.com", "wrong").Get()
	if failure == nil {
		t.Fatal("expected failure")
	}
	if failure.Category != outcome.RemoteRejected {
		t.Fatalf("category = %s", failure.Category)
	}
	if tok.token != "" {
		t.Fatalf("failed login installed token %q", tok.token)
	}
	persisted, _ := store.Load(context.Background())
	if persisted.LoggedIn || persisted.AccessToken != "" {
		t.Fatalf("failed login persisted state: %+v", persisted)
	}
}

func TestResume(t *testing.T) {
	ctx := context.Background()
	gw := &stubGateway{}
	svc, tok, store := newTestService(t, gw)

	// Nothing persisted: not resumable.
	if _, ok := svc.Resume(ctx); ok {
		t.Fatal("empty store resumed")
	}

	token := "opaque-token"
	if err := store.Save(ctx, domain.SessionUpdate{AccessToken: &token}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.SetLoggedIn(ctx, true); err != nil {
		t.Fatalf("SetLoggedIn: %v", err)
	}

	sess, ok := svc.Resume(ctx)
	if !ok {
		t.Fatalf("active session not resumed: %+v", sess)
	}
	if tok.token != "opaque-token" {
		t.Fatalf("resume did not push token, got %q", tok.token)
	}
}

func TestLogoutAndUnauthorized(t *testing.T) {
	ctx := context.Background()
	gw := &stubGateway{
		login:       outcome.Success(domain.TokenGrant{AccessToken: "tok-abc"}),
		currentUser: outcome.Fail[domain.User](outcome.Timeout, "connection timed out"),
	}
	svc, tok, store := newTestService(t, gw)

	if _, failure := svc.Login(ctx, "alice@example.com", "secret1").Get(); failure != nil {
		t.Fatalf("Login: %v", failure)
	}

	if err := svc.Logout(ctx); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if tok.token != "" || tok.cleared == 0 {
		t.Fatal("logout did not clear transport token")
	}
	sess, _ := store.Load(ctx)
	if sess.LoggedIn || sess.AccessToken != "" {
		t.Fatalf("logout left session behind: %+v", sess)
	}

	// A 401 on a protected call tears the session down the same way.
	if _, failure := svc.Login(ctx, "alice@example.com", "secret1").Get(); failure != nil {
		t.Fatalf("Login: %v", failure)
	}
	svc.HandleUnauthorized()
	if tok.token != "" {
		t.Fatal("unauthorized hook left token installed")
	}
	sess, _ = store.Load(ctx)
	if sess.LoggedIn || sess.AccessToken != "" {
		t.Fatalf("unauthorized hook left session behind: %+v", sess)
	}
}

func TestRegister_Dispatch(t *testing.T) {
	gw := &stubGateway{}
	svc, _, _ := newTestService(t, gw)

	base := domain.AccountBase{
		Email:       "carol@example.com",
		Username:    "carol",
		Password:    "secret3",
		FullName:    "Carol Diaz",
		PhoneNumber: "555-0100",
	}

	acct, failure := svc.Register(context.Background(), domain.SellerRegistration{
		AccountBase:  base,
		StoreName:    "Taco Town",
		StoreAddress: "9 Side St",
	}).Get()
	if failure != nil {
		t.Fatalf("Register: %v", failure)
	}
	if acct.ID != 11 || acct.User.Username != "carol" {
		t.Fatalf("unexpected account: %+v", acct)
	}
	if _, ok := gw.registered.(domain.SellerRegistration); !ok {
		t.Fatalf("dispatched to wrong endpoint: %T", gw.registered)
	}

	// An unregistered profile kind cannot reach the wire.
	if _, failure := svc.Register(context.Background(), nil).Get(); failure == nil {
		t.Fatal("nil profile accepted")
	} else if failure.Category != outcome.Unknown {
		t.Fatalf("category = %s", failure.Category)
	}
}
