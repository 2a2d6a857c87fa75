// Package bookmarks contains the HTTP handlers for the bookmark CRUD routes.
// All of them expect an account attached to the context by the authn middleware.
package bookmarks

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"

	"bookmark_service/internal/bookmarks"
	resp "bookmark_service/internal/lib/api/response"
)

func bookmarkID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// * renderServiceError отображает ошибки сервиса в коды ответов
func renderServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, bookmarks.ErrNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, resp.Error("bookmark not found"))
	case errors.Is(err, bookmarks.ErrForbidden):
		render.Status(r, http.StatusForbidden)
		render.JSON(w, r, resp.Error("bookmark belongs to another account"))
	default:
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, resp.Error("Internal error"))
	}
}

func renderUnauthorized(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusUnauthorized)
	render.JSON(w, r, resp.Error("Unauthorized"))
}

func renderBadID(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, resp.Error("invalid bookmark id"))
}
