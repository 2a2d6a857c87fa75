package authn

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/render"

	resp "bookmark_service/internal/lib/api/response"
	"bookmark_service/internal/lib/jwt"
	sl "bookmark_service/internal/lib/logger"
	"bookmark_service/internal/models"
	"bookmark_service/internal/storage"
)

type contextKey struct{}

var accountKey = contextKey{}

type AccountProvider interface {
	AccountByID(ctx context.Context, id int64) (models.Account, error)
}

// * New возвращает middleware, которое извлекает bearer-токен, проверяет
// подпись и срок действия и резолвит subject в аккаунт. Аккаунт ищется
// в базе на каждом запросе: удалённый аккаунт сразу теряет доступ.
func New(log *slog.Logger, accProvider AccountProvider, tokenSecret string) func(http.Handler) http.Handler {
	const op = "middleware.authn.New"

	log = log.With(slog.String("op", op))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr, ok := bearerToken(r)
			if !ok {
				unauthorized(w, r)
				return
			}

			accountID, err := jwt.ParseToken(tokenStr, tokenSecret)
			if err != nil {
				log.Info("invalid token", sl.Err(err))
				unauthorized(w, r)
				return
			}

			account, err := accProvider.AccountByID(r.Context(), accountID)
			if err != nil {
				// Только отсутствие аккаунта значит "не аутентифицирован";
				// остальные ошибки хранилища — внутренние
				if !errors.Is(err, storage.ErrAccountNotFound) {
					log.Error("failed to get account", sl.Err(err))

					render.Status(r, http.StatusInternalServerError)
					render.JSON(w, r, resp.Error("Internal error"))
					return
				}

				unauthorized(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), accountKey, account)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// * AccountFromContext возвращает аккаунт, положенный middleware
func AccountFromContext(ctx context.Context) (models.Account, bool) {
	account, ok := ctx.Value(accountKey).(models.Account)
	return account, ok
}

// ContextWithAccount is used by handler tests to inject an identity.
func ContextWithAccount(ctx context.Context, account models.Account) context.Context {
	return context.WithValue(ctx, accountKey, account)
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}

	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}

	token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	if token == "" {
		return "", false
	}

	return token, true
}

func unauthorized(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusUnauthorized)
	render.JSON(w, r, resp.Error("Unauthorized"))
}
