package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"bookmark_service/internal/models"
)

func TestNewTokenAndParse_Success(t *testing.T) {
	t.Parallel()

	account := models.Account{ID: 42, Email: "hello@test.com"}

	token, err := NewToken(account, "super-secret", time.Hour)
	require.NoError(t, err)

	accountID, err := ParseToken(token, "super-secret")
	require.NoError(t, err)
	require.Equal(t, int64(42), accountID)
}

func TestNewToken_NoSecret(t *testing.T) {
	t.Parallel()

	_, err := NewToken(models.Account{ID: 1, Email: "a@b.c"}, "", time.Hour)
	require.ErrorIs(t, err, ErrNoSecret)
}

func TestParseToken_Expired(t *testing.T) {
	t.Parallel()

	token, err := NewToken(models.Account{ID: 1, Email: "a@b.c"}, "secret", -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(token, "secret")
	require.Error(t, err)
}

func TestParseToken_WrongSecret(t *testing.T) {
	t.Parallel()

	token, err := NewToken(models.Account{ID: 1, Email: "a@b.c"}, "secret", time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(token, "another-secret")
	require.Error(t, err)
}

func TestParseToken_Malformed(t *testing.T) {
	t.Parallel()

	_, err := ParseToken("not.a.token", "secret")
	require.Error(t, err)
}
