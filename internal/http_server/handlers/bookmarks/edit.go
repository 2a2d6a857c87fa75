package bookmarks

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"bookmark_service/internal/bookmarks"
	resp "bookmark_service/internal/lib/api/response"
	sl "bookmark_service/internal/lib/logger"
	"bookmark_service/internal/middleware/authn"
	"bookmark_service/internal/models"
)

func Edit(
	log *slog.Logger,
	validate *validator.Validate,
	svc *bookmarks.Bookmarks,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.bookmarks.Edit"

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

		var upd models.BookmarkUpdate

		// Пустое тело — валидный запрос "ничего не менять"
		if err := render.DecodeJSON(r.Body, &upd); err != nil && !errors.Is(err, io.EOF) {
			log.Error("Failed to decode request body", sl.Err(err))

			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, resp.Error("Failed to decode request"))

			return
		}

		if err := validate.Struct(upd); err != nil {
			validateErr := err.(validator.ValidationErrors)

			log.Error("Invalid request", sl.Err(err))

			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, resp.ValidationError(validateErr))

			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		bookmark, err := svc.Edit(ctx, account.ID, id, upd)
		if err != nil {
			log.Info("failed to edit bookmark", sl.Err(err))

			renderServiceError(w, r, err)

			return
		}

		render.JSON(w, r, bookmark)
	}
}
