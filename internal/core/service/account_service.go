package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/fooddelivery/marketplace-go/internal/core/domain"
	"github.com/fooddelivery/marketplace-go/internal/core/outcome"
	"github.com/fooddelivery/marketplace-go/internal/core/ports"
)

// AccountService orchestrates the session lifecycle: login, profile fetch,
// resume on startup, registration dispatch and logout. It is the only writer
// of the session store besides the store's own Clear on hard auth failure.
type AccountService struct {
	gw    ports.AuthGateway
	tok   ports.TokenSetter
	store ports.SessionStore
	log   zerolog.Logger
}

func NewAccountService(gw ports.AuthGateway, tok ports.TokenSetter, store ports.SessionStore, log zerolog.Logger) *AccountService {
	return &AccountService{gw: gw, tok: tok, store: store, log: log}
}

// Login authenticates with the email's local part as username, persists the
// token, then fetches the profile best-effort. A profile-fetch failure is
// logged but does not invalidate the login.
func (s *AccountService) Login(ctx context.Context, email, password string) outcome.Outcome[domain.Session] {
	username := email
	if at := strings.IndexByte(email, '@'); at >= 0 {
		username = email[:at]
	}

	grant, failure := s.gw.Login(ctx, username, password).Get()
	if failure != nil {
		return outcome.FailWith[domain.Session](*failure)
	}

	token := grant.AccessToken
	if err := s.store.Save(ctx, domain.SessionUpdate{AccessToken: &token}); err != nil {
		return outcome.Fail[domain.Session](outcome.Unknown, fmt.Sprintf("persist session: %v", err))
	}
	if err := s.store.SetLoggedIn(ctx, true); err != nil {
		return outcome.Fail[domain.Session](outcome.Unknown, fmt.Sprintf("persist session: %v", err))
	}
	s.tok.SetToken(token)

	if user, failure := s.gw.CurrentUser(ctx).Get(); failure == nil {
		role := domain.ParseRole(user.Role)
		update := domain.SessionUpdate{
			UserID:   &user.ID,
			Username: &user.Username,
			Role:     &role,
			FullName: &user.FullName,
		}
		if err := s.store.Save(ctx, update); err != nil {
			s.log.Warn().Err(err).Msg("persisting profile fields failed")
		}
	} else {
		s.log.Warn().
			Str("category", string(failure.Category)).
			Str("message", failure.Message).
			Msg("profile fetch after login failed")
	}

	sess, err := s.store.Load(ctx)
	if err != nil {
		return outcome.Fail[domain.Session](outcome.Unknown, fmt.Sprintf("load session: %v", err))
	}
	return outcome.Success(sess)
}

// Resume restores a remembered session at startup: when the persisted state
// is still active the token is pushed back into the transport. Returns the
// session and whether it is usable.
func (s *AccountService) Resume(ctx context.Context) (domain.Session, bool) {
	sess, err := s.store.Load(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("loading persisted session failed")
		return domain.Session{}, false
	}
	if !sess.Active() {
		return sess, false
	}
	s.tok.SetToken(sess.AccessToken)
	return sess, true
}

// Logout wipes the persisted session and drops the transport token.
func (s *AccountService) Logout(ctx context.Context) error {
	s.tok.ClearToken()
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Register dispatches the tagged registration profile to the matching
// endpoint and returns the role-independent view of the created account.
func (s *AccountService) Register(ctx context.Context, profile domain.RegistrationProfile) outcome.Outcome[domain.RegisteredAccount] {
	switch p := profile.(type) {
	case domain.BuyerRegistration:
		acct, failure := s.gw.RegisterBuyer(ctx, p).Get()
		if failure != nil {
			return outcome.FailWith[domain.RegisteredAccount](*failure)
		}
		return outcome.Success(domain.RegisteredAccount{ID: acct.ID, UserID: acct.UserID, User: acct.User})
	case domain.SellerRegistration:
		acct, failure := s.gw.RegisterSeller(ctx, p).Get()
		if failure != nil {
			return outcome.FailWith[domain.RegisteredAccount](*failure)
		}
		return outcome.Success(domain.RegisteredAccount{ID: acct.ID, UserID: acct.UserID, User: acct.User})
	case domain.DriverRegistration:
		acct, failure := s.gw.RegisterDriver(ctx, p).Get()
		if failure != nil {
			return outcome.FailWith[domain.RegisteredAccount](*failure)
		}
		return outcome.Success(domain.RegisteredAccount{ID: acct.ID, UserID: acct.UserID, User: acct.User})
	default:
		return outcome.Fail[domain.RegisteredAccount](outcome.Unknown, fmt.Sprintf("unsupported registration profile %T", profile))
	}
}

// HandleUnauthorized is wired as the gateway's 401 hook: a protected call
// rejected by the backend means the session is dead, so it is cleared.
func (s *AccountService) HandleUnauthorized() {
	s.tok.ClearToken()
	if err := s.store.Clear(context.Background()); err != nil {
		s.log.Warn().Err(err).Msg("clearing session after auth failure failed")
	}
	s.log.Info().Msg("session cleared after authentication failure")
}
