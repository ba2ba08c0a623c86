package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"h2grid/internal/apperr"
	"h2grid/internal/models"
	"h2grid/internal/utils"
)

// AccountStore persists one account kind. Lookups return nil, nil when the
// account does not exist.
type AccountStore interface {
	Create(ctx context.Context, account models.Account) error
	FindByEmail(ctx context.Context, email string) (models.Account, error)
	FindByID(ctx context.Context, id uuid.UUID) (models.Account, error)
}

// Denylist remembers revoked token ids.
type Denylist interface {
	Deny(ctx context.Context, jti string, ttl time.Duration) error
	IsDenied(ctx context.Context, jti string) (bool, error)
}

type AuthRecorder interface {
	AuthAttempt(kind, action string, success bool)
}

type nopAuthRecorder struct{}

func (nopAuthRecorder) AuthAttempt(string, string, bool) {}

var errBadCredentials = apperr.Unauthorized("Invalid email or password")

// AuthService registers, logs in and authenticates one account kind.
type AuthService struct {
	kind     models.AccountKind
	store    AccountStore
	tokens   *utils.TokenIssuer
	denylist Denylist
	recorder AuthRecorder
	log      *zap.Logger
}

// NewAuthService builds the service for one account kind. denylist and
// recorder may be nil.
func NewAuthService(kind models.AccountKind, store AccountStore, tokens *utils.TokenIssuer, denylist Denylist, recorder AuthRecorder, log *zap.Logger) *AuthService {
	if recorder == nil {
		recorder = nopAuthRecorder{}
	}
	return &AuthService{
		kind:     kind,
		store:    store,
		tokens:   tokens,
		denylist: denylist,
		recorder: recorder,
		log:      log.With(zap.String("account_kind", string(kind))),
	}
}

// TokenTTL is the lifetime of issued tokens; the session cookie expires with it.
func (s *AuthService) TokenTTL() time.Duration {
	return s.tokens.TTL()
}

// Register stores a new account with a hashed password and returns a session
// token for it.
func (s *AuthService) Register(ctx context.Context, account models.Account, password string) (string, error) {
	if account.AccountKind() != s.kind {
		return "", fmt.Errorf("cannot register %s through %s auth", account.AccountKind(), s.kind)
	}
	account.Prepare()

	existing, err := s.store.FindByEmail(ctx, account.AccountEmail())
	if err != nil {
		return "", fmt.Errorf("failed to look up email: %w", err)
	}
	if existing != nil {
		s.recorder.AuthAttempt(string(s.kind), "register", false)
		return "", apperr.Conflict("An account with this email already exists")
	}

	digest, err := utils.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	account.SetPasswordDigest(digest)

	if err := s.store.Create(ctx, account); err != nil {
		s.recorder.AuthAttempt(string(s.kind), "register", false)
		return "", err
	}

	token, err := s.tokens.Issue(account.AccountID(), s.kind)
	if err != nil {
		return "", err
	}

	s.recorder.AuthAttempt(string(s.kind), "register", true)
	s.log.Info("account registered", zap.String("id", account.AccountID().String()))
	return token, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (models.Account, string, error) {
	account, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to look up email: %w", err)
	}
	if account == nil {
		s.recorder.AuthAttempt(string(s.kind), "login", false)
		return nil, "", errBadCredentials
	}

	if err := utils.VerifyPassword(account.PasswordDigest(), password); err != nil {
		s.recorder.AuthAttempt(string(s.kind), "login", false)
		return nil, "", errBadCredentials
	}

	token, err := s.tokens.Issue(account.AccountID(), s.kind)
	if err != nil {
		return nil, "", err
	}

	s.recorder.AuthAttempt(string(s.kind), "login", true)
	return account, token, nil
}

// Logout revokes the token when it is still valid and a denylist is
// configured. An absent or invalid token is not an error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" || s.denylist == nil {
		return nil
	}
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil
	}
	if err := s.denylist.Deny(ctx, claims.ID, claims.TTL(time.Now())); err != nil {
		s.log.Warn("failed to revoke token", zap.Error(err))
	}
	return nil
}

// Authenticate resolves a session token to its account.
func (s *AuthService) Authenticate(ctx context.Context, token string) (models.Account, error) {
	if token == "" {
		return nil, apperr.Unauthorized("Not authenticated")
	}

	claims, err := s.tokens.Verify(token)
	if err != nil || claims.Kind != s.kind {
		return nil, apperr.Unauthorized("Invalid or expired session")
	}

	if s.denylist != nil {
		denied, err := s.denylist.IsDenied(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check token denylist: %w", err)
		}
		if denied {
			return nil, apperr.Unauthorized("Session has been revoked")
		}
	}

	id, _ := claims.AccountID()
	account, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load account: %w", err)
	}
	if account == nil {
		return nil, apperr.NotFound("Account not found")
	}
	return account, nil
}
