package me

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"bookmark_service/internal/middleware/authn"
	"bookmark_service/internal/models"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestMe_ReturnsAccountWithoutHash(t *testing.T) {
	t.Parallel()

	account := models.Account{ID: 1, Email: "hello@test.com", PassHash: "$argon2id$..."}

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req = req.WithContext(authn.ContextWithAccount(req.Context(), account))
	rec := httptest.NewRecorder()

	New(discardLogger())(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "hello@test.com", body["email"])
	require.NotContains(t, body, "hash")
	require.NotContains(t, rec.Body.String(), "argon2id")
}

func TestMe_NoAccountInContext(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	rec := httptest.NewRecorder()

	New(discardLogger())(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
