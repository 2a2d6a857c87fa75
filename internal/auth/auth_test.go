package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"bookmark_service/internal/lib/hasher"
	"bookmark_service/internal/lib/jwt"
	"bookmark_service/internal/models"
	"bookmark_service/internal/storage"
)

const testSecret = "test-secret"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeStorage keeps accounts in a map keyed by email.
type fakeStorage struct {
	accounts map[string]models.Account
	nextID   int64
	saveErr  error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{accounts: map[string]models.Account{}, nextID: 1}
}

func (f *fakeStorage) SaveAccount(ctx context.Context, email, passHash string) (models.Account, error) {
	if f.saveErr != nil {
		return models.Account{}, f.saveErr
	}
	if _, exists := f.accounts[email]; exists {
		return models.Account{}, storage.ErrAccountExists
	}

	account := models.Account{ID: f.nextID, Email: email, PassHash: passHash}
	f.accounts[email] = account
	f.nextID++

	return account, nil
}

func (f *fakeStorage) AccountByEmail(ctx context.Context, email string) (models.Account, error) {
	account, ok := f.accounts[email]
	if !ok {
		return models.Account{}, storage.ErrAccountNotFound
	}
	return account, nil
}

func newAuth(store *fakeStorage) *Auth {
	return New(discardLogger(), store, store, testSecret, time.Hour)
}

func TestSignupThenSignin(t *testing.T) {
	t.Parallel()

	store := newFakeStorage()
	a := newAuth(store)

	signupToken, err := a.Signup(context.Background(), "hello@test.com", "1234")
	require.NoError(t, err)
	require.NotEmpty(t, signupToken)

	accountID, err := jwt.ParseToken(signupToken, testSecret)
	require.NoError(t, err)
	require.Equal(t, int64(1), accountID)

	signinToken, err := a.Signin(context.Background(), "hello@test.com", "1234")
	require.NoError(t, err)

	accountID, err = jwt.ParseToken(signinToken, testSecret)
	require.NoError(t, err)
	require.Equal(t, int64(1), accountID)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	t.Parallel()

	store := newFakeStorage()
	a := newAuth(store)

	_, err := a.Signup(context.Background(), "hello@test.com", "1234")
	require.NoError(t, err)

	_, err = a.Signup(context.Background(), "hello@test.com", "another password")
	require.ErrorIs(t, err, ErrAccountExists)
}

func TestSignup_StoresHashNotPlaintext(t *testing.T) {
	t.Parallel()

	store := newFakeStorage()
	a := newAuth(store)

	_, err := a.Signup(context.Background(), "hello@test.com", "1234")
	require.NoError(t, err)

	saved := store.accounts["hello@test.com"]
	require.NotEqual(t, "1234", saved.PassHash)
	require.True(t, hasher.Verify(saved.PassHash, "1234"))
}

func TestSignin_WrongPassword(t *testing.T) {
	t.Parallel()

	store := newFakeStorage()
	a := newAuth(store)

	_, err := a.Signup(context.Background(), "hello@test.com", "1234")
	require.NoError(t, err)

	_, err = a.Signin(context.Background(), "hello@test.com", "321")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignin_UnknownEmail(t *testing.T) {
	t.Parallel()

	a := newAuth(newFakeStorage())

	_, err := a.Signin(context.Background(), "nobody@test.com", "1234")
	require.ErrorIs(t, err, ErrAccountNotFound)
}

func TestSignup_StorageErrorPropagates(t *testing.T) {
	t.Parallel()

	store := newFakeStorage()
	store.saveErr = errors.New("connection refused")
	a := newAuth(store)

	_, err := a.Signup(context.Background(), "hello@test.com", "1234")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrAccountExists)
}
