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

func Get(log *slog.Logger, svc *bookmarks.Bookmarks) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.bookmarks.Get"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		account, ok := authn.AccountFromContext(r.Context())
		if !ok {
			renderUnauthorized(w, r)
			return
		}

		id, err := bookmarkID(r)
		if err != nil {
			renderBadID(w, r)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		bookmark, err := svc.Get(ctx, account.ID, id)
		if err != nil {
			log.Info("failed to get bookmark", sl.Err(err))

			renderServiceError(w, r, err)

			return
		}

		render.JSON(w, r, bookmark)
	}
}
