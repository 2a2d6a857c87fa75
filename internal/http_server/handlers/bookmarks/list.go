package bookmarks

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"bookmark_service/internal/bookmarks"
	sl "bookmark_service/internal/lib/logger"
	"bookmark_service/internal/middleware/authn"
)

func List(log *slog.Logger, svc *bookmarks.Bookmarks) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.bookmarks.List"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		account, ok := authn.AccountFromContext(r.Context())
		if !ok {
			renderUnauthorized(w, r)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		list, err := svc.List(ctx, account.ID)
		if err != nil {
			log.Error("failed to list bookmarks", sl.Err(err))

			renderServiceError(w, r, err)

			return
		}

		render.JSON(w, r, list)
	}
}
