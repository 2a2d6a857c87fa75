package edituser

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"bookmark_service/internal/middleware/authn"
	"bookmark_service/internal/models"
	"bookmark_service/internal/storage"
	"bookmark_service/internal/users"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeUpdater struct {
	account   models.Account
	updateErr error
}

func (f *fakeUpdater) UpdateAccount(ctx context.Context, id int64, upd models.AccountUpdate) (models.Account, error) {
	if f.updateErr != nil {
		return models.Account{}, f.updateErr
	}

	account := f.account
	if upd.Email != nil {
		account.Email = *upd.Email
	}
	if upd.FirstName != nil {
		account.FirstName = upd.FirstName
	}
	if upd.LastName != nil {
		account.LastName = upd.LastName
	}
	f.account = account

	return account, nil
}

func patch(handler http.HandlerFunc, account models.Account, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(http.MethodPatch, "/users/edit", reader)
	req = req.WithContext(authn.ContextWithAccount(req.Context(), account))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func newHandler(updater *fakeUpdater) http.HandlerFunc {
	return New(discardLogger(), validator.New(), users.New(discardLogger(), updater))
}

func TestEditUser_Success(t *testing.T) {
	t.Parallel()

	account := models.Account{ID: 1, Email: "hello@test.com"}
	handler := newHandler(&fakeUpdater{account: account})

	rec := patch(handler, account, `{"email":"hello@test.com","firstName":"Test","lastName":"User"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "Test", body["firstName"])
	require.Equal(t, "User", body["lastName"])
	require.NotContains(t, body, "hash")
}

func TestEditUser_EmptyBodyLeavesAccountUnchanged(t *testing.T) {
	t.Parallel()

	account := models.Account{ID: 1, Email: "hello@test.com"}
	handler := newHandler(&fakeUpdater{account: account})

	rec := patch(handler, account, "")

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "hello@test.com", body["email"])
}

func TestEditUser_InvalidEmail(t *testing.T) {
	t.Parallel()

	account := models.Account{ID: 1, Email: "hello@test.com"}
	handler := newHandler(&fakeUpdater{account: account})

	rec := patch(handler, account, `{"email":"not-an-email"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEditUser_EmailTaken(t *testing.T) {
	t.Parallel()

	account := models.Account{ID: 1, Email: "hello@test.com"}
	handler := newHandler(&fakeUpdater{account: account, updateErr: storage.ErrAccountExists})

	rec := patch(handler, account, `{"email":"taken@test.com"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "email already exists")
}

func TestEditUser_NoAccountInContext(t *testing.T) {
	t.Parallel()

	handler := newHandler(&fakeUpdater{})

	req := httptest.NewRequest(http.MethodPatch, "/users/edit", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	handler(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
