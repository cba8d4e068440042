package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"authgate/internal/model"
)

// userFinder is the credential store gateway the login flow reads from.
type userFinder interface {
	FindByEmail(ctx context.Context, email string) (model.User, error)
	FindByID(ctx context.Context, id string) (model.User, error)
}

// failedLoginLedger is the append-only record of rejected attempts, consulted
// by the throttle and written on every rejection.
type failedLoginLedger interface {
	Record(ctx context.Context, address string) error
	CountSince(ctx context.Context, address string, since time.Time) (int, error)
}

// AuthService runs the login flow: credentials present -> user lookup ->
// password comparison -> token issuance. Every rejected attempt, whatever the
// reason, appends exactly one ledger entry for the origin address.
type AuthService struct {
	users  userFinder
	ledger failedLoginLedger
	tokens *TokenService
}

func NewAuthService(users userFinder, ledger failedLoginLedger, tokens *TokenService) *AuthService {
	return &AuthService{users: users, ledger: ledger, tokens: tokens}
}

// Login authenticates the email/password pair and returns a signed token.
// originAddr is the network address the attempt came from; it is used only
// for failure bookkeeping.
func (s *AuthService) Login(ctx context.Context, email string, password string, originAddr string) (string, error) {
	token, err := s.login(ctx, email, password)
	if err != nil {
		s.recordFailure(ctx, originAddr)
		return "", err
	}

	return token, nil
}

func (s *AuthService) login(ctx context.Context, email string, password string) (string, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return "", model.ErrCredentialsNotProvided
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}

	if !verifyPassword(user.PasswordHash, password) {
		return "", model.ErrInvalidCredentials
	}

	return s.tokens.Issue(user)
}

// UserByID resolves the subject of a verified token back to its store record.
func (s *AuthService) UserByID(ctx context.Context, id string) (model.User, error) {
	return s.users.FindByID(ctx, id)
}

// recordFailure appends a ledger entry, best effort. A ledger write failure
// must never change the outcome of the attempt that triggered it.
func (s *AuthService) recordFailure(ctx context.Context, address string) {
	if err := s.ledger.Record(ctx, address); err != nil {
		slog.Error("failed to record failed login", "address", address, "error", err)
	}
}
