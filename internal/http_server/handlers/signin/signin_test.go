package signin

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"bookmark_service/internal/auth"
	"bookmark_service/internal/lib/hasher"
	"bookmark_service/internal/lib/jwt"
	"bookmark_service/internal/models"
	"bookmark_service/internal/storage"
)

const testSecret = "test-secret"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeStorage struct {
	accounts map[string]models.Account
}

func (f *fakeStorage) SaveAccount(ctx context.Context, email, passHash string) (models.Account, error) {
	account := models.Account{ID: int64(len(f.accounts) + 1), Email: email, PassHash: passHash}
	f.accounts[email] = account
	return account, nil
}

func (f *fakeStorage) AccountByEmail(ctx context.Context, email string) (models.Account, error) {
	account, ok := f.accounts[email]
	if !ok {
		return models.Account{}, storage.ErrAccountNotFound
	}
	return account, nil
}

func newHandler(t *testing.T) http.HandlerFunc {
	t.Helper()

	passHash, err := hasher.Hash("1234")
	require.NoError(t, err)

	store := &fakeStorage{accounts: map[string]models.Account{
		"hello@test.com": {ID: 1, Email: "hello@test.com", PassHash: passHash},
	}}

	authService := auth.New(discardLogger(), store, store, testSecret, time.Hour)

	return New(discardLogger(), validator.New(), authService)
}

func post(handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/auth/signin", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestSignin_Success(t *testing.T) {
	t.Parallel()

	handler := newHandler(t)

	rec := post(handler, `{"email":"hello@test.com","password":"1234"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)

	accountID, err := jwt.ParseToken(resp.AccessToken, testSecret)
	require.NoError(t, err)
	require.Equal(t, int64(1), accountID)
}

func TestSignin_ValidationErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		body string
	}{
		{"no password", `{"email":"hello@test.com"}`},
		{"no email", `{"password":"1234"}`},
		{"no body", ``},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			rec := post(newHandler(t), tc.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestSignin_UnknownEmail(t *testing.T) {
	t.Parallel()

	rec := post(newHandler(t), `{"email":"test@test.com","password":"1234"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "email does not exist")
}

func TestSignin_WrongPassword(t *testing.T) {
	t.Parallel()

	rec := post(newHandler(t), `{"email":"hello@test.com","password":"321"}`)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "Invalid credentials")
}
