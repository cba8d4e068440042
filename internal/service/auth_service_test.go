package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"authgate/internal/model"
)

type fakeUserStore struct {
	usersByEmail map[string]model.User
	usersByID    map[string]model.User
	findErr      error
	lookups      int
}

func newFakeUserStore(users ...model.User) *fakeUserStore {
	s := &fakeUserStore{
		usersByEmail: map[string]model.User{},
		usersByID:    map[string]model.User{},
	}
	for _, u := range users {
		s.usersByEmail[u.Email] = u
		s.usersByID[u.ID] = u
	}
	return s
}

func (s *fakeUserStore) FindByEmail(_ context.Context, email string) (model.User, error) {
	s.lookups++
	if s.findErr != nil {
		return model.User{}, s.findErr
	}
	u, ok := s.usersByEmail[email]
	if !ok {
		return model.User{}, model.ErrUserNotFound
	}
	return u, nil
}

func (s *fakeUserStore) FindByID(_ context.Context, id string) (model.User, error) {
	s.lookups++
	if s.findErr != nil {
		return model.User{}, s.findErr
	}
	u, ok := s.usersByID[id]
	if !ok {
		return model.User{}, model.ErrUserNotFound
	}
	return u, nil
}

type fakeLedger struct {
	entries   []model.FailedLogin
	recordErr error
	countErr  error
}

func (l *fakeLedger) Record(_ context.Context, address string) error {
	if l.recordErr != nil {
		return l.recordErr
	}
	l.entries = append(l.entries, model.FailedLogin{Address: address, OccurredAt: time.Now().UTC()})
	return nil
}

func (l *fakeLedger) CountSince(_ context.Context, address string, since time.Time) (int, error) {
	if l.countErr != nil {
		return 0, l.countErr
	}
	count := 0
	for _, e := range l.entries {
		if e.Address == address && e.OccurredAt.After(since) {
			count++
		}
	}
	return count, nil
}

func newTestAuthService(t *testing.T, users *fakeUserStore, ledger *fakeLedger) *AuthService {
	t.Helper()

	tokens, err := NewTokenService("test-secret", 2*time.Hour)
	require.NoError(t, err)

	return NewAuthService(users, ledger, tokens)
}

func seededUser(t *testing.T, email string, password string) model.User {
	t.Helper()

	hash, err := HashPassword(password)
	require.NoError(t, err)

	return model.User{
		ID:           "11111111-2222-3333-4444-555555555555",
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Email:        email,
		UserType:     "admin",
		PasswordHash: hash,
	}
}

func TestLogin_MissingCredentialsNeverQueriesStore(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		email    string
		password string
	}{
		{"missing both", "", ""},
		{"missing password", "a@x.com", ""},
		{"missing email", "", "hunter2"},
		{"blank email", "   ", "hunter2"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			users := newFakeUserStore()
			ledger := &fakeLedger{}
			svc := newTestAuthService(t, users, ledger)

			_, err := svc.Login(context.Background(), tc.email, tc.password, "1.2.3.4")
			require.ErrorIs(t, err, model.ErrCredentialsNotProvided)
			require.Zero(t, users.lookups)
			require.Len(t, ledger.entries, 1)
			require.Equal(t, "1.2.3.4", ledger.entries[0].Address)
		})
	}
}

func TestLogin_UnknownUserRecordsFailure(t *testing.T) {
	t.Parallel()

	users := newFakeUserStore()
	ledger := &fakeLedger{}
	svc := newTestAuthService(t, users, ledger)

	_, err := svc.Login(context.Background(), "nobody@x.com", "hunter2", "1.2.3.4")
	require.ErrorIs(t, err, model.ErrUserNotFound)
	require.Len(t, ledger.entries, 1)
}

func TestLogin_WrongPasswordRecordsFailure(t *testing.T) {
	t.Parallel()

	user := seededUser(t, "a@x.com", "right")
	users := newFakeUserStore(user)
	ledger := &fakeLedger{}
	svc := newTestAuthService(t, users, ledger)

	_, err := svc.Login(context.Background(), "a@x.com", "wrong", "1.2.3.4")
	require.ErrorIs(t, err, model.ErrInvalidCredentials)
	require.Len(t, ledger.entries, 1)
}

func TestLogin_StoreFailureRecordsAndMapsToStoreUnavailable(t *testing.T) {
	t.Parallel()

	users := newFakeUserStore()
	users.findErr = model.ErrStoreUnavailable
	ledger := &fakeLedger{}
	svc := newTestAuthService(t, users, ledger)

	_, err := svc.Login(context.Background(), "a@x.com", "right", "1.2.3.4")
	require.ErrorIs(t, err, model.ErrStoreUnavailable)
	// The server-fault path counts toward the throttle too, same as the
	// credential failures.
	require.Len(t, ledger.entries, 1)
}

func TestLogin_SuccessIssuesTokenWithUserClaims(t *testing.T) {
	t.Parallel()

	user := seededUser(t, "a@x.com", "right")
	users := newFakeUserStore(user)
	ledger := &fakeLedger{}

	tokens, err := NewTokenService("test-secret", 2*time.Hour)
	require.NoError(t, err)
	svc := NewAuthService(users, ledger, tokens)

	token, err := svc.Login(context.Background(), "a@x.com", "right", "1.2.3.4")
	require.NoError(t, err)
	require.Empty(t, ledger.entries)

	claims, err := tokens.Verify(token)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.UserID)
	require.Equal(t, "a@x.com", claims.Email)
	require.Equal(t, user.FirstName, claims.FirstName)
	require.Equal(t, user.LastName, claims.LastName)
	require.Equal(t, user.UserType, claims.UserType)
}

func TestLogin_LedgerWriteFailureDoesNotChangeOutcome(t *testing.T) {
	t.Parallel()

	users := newFakeUserStore()
	ledger := &fakeLedger{recordErr: errors.New("ledger down")}
	svc := newTestAuthService(t, users, ledger)

	_, err := svc.Login(context.Background(), "nobody@x.com", "hunter2", "1.2.3.4")
	require.ErrorIs(t, err, model.ErrUserNotFound)
}

func TestUserByID(t *testing.T) {
	t.Parallel()

	user := seededUser(t, "a@x.com", "right")
	users := newFakeUserStore(user)
	svc := newTestAuthService(t, users, &fakeLedger{})

	found, err := svc.UserByID(context.Background(), user.ID)
	require.NoError(t, err)
	require.Equal(t, user.Email, found.Email)

	_, err = svc.UserByID(context.Background(), "missing")
	require.ErrorIs(t, err, model.ErrUserNotFound)
}
