package bookmarks

import (
	"context"
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
)

type CreateRequest struct {
	Title       string  `json:"title" validate:"required"`
	Link        string  `json:"link" validate:"required,url"`
	Description *string `json:"description"`
}

func Create(
	log *slog.Logger,
	validate *validator.Validate,
	svc *bookmarks.Bookmarks,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.bookmarks.Create"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		account, ok := authn.AccountFromContext(r.Context())
		if !ok {
			renderUnauthorized(w, r)
			return
		}

		var req CreateRequest

		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("Failed to decode request body", sl.Err(err))

			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, resp.Error("Failed to decode request"))

			return
		}

		if err := validate.Struct(req); err != nil {
			validateErr := err.(validator.ValidationErrors)

			log.Error("Invalid request", sl.Err(err))

			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, resp.ValidationError(validateErr))

			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		bookmark, err := svc.Create(ctx, account.ID, req.Title, req.Link, req.Description)
		if err != nil {
			log.Error("failed to create bookmark", sl.Err(err))

			renderServiceError(w, r, err)

			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, bookmark)
	}
}
