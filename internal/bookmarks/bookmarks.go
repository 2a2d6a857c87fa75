package bookmarks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	sl "bookmark_service/internal/lib/logger"
	"bookmark_service/internal/models"
	"bookmark_service/internal/storage"
)

var (
	ErrNotFound  = errors.New("bookmark not found")
	ErrForbidden = errors.New("bookmark belongs to another account")
)

type Bookmarks struct {
	log  *slog.Logger
	repo Repository
}

type Repository interface {
	SaveBookmark(ctx context.Context, ownerID int64, title, link string, description *string) (models.Bookmark, error)
	BookmarksByOwner(ctx context.Context, ownerID int64) ([]models.Bookmark, error)
	Bookmark(ctx context.Context, id int64) (models.Bookmark, error)
	BookmarkByOwner(ctx context.Context, ownerID, id int64) (models.Bookmark, error)
	UpdateBookmark(ctx context.Context, id int64, upd models.BookmarkUpdate) (models.Bookmark, error)
	DeleteBookmark(ctx context.Context, id int64) error
}

func New(log *slog.Logger, repo Repository) *Bookmarks {
	return &Bookmarks{
		log:  log,
		repo: repo,
	}
}

func (b *Bookmarks) Create(
	ctx context.Context,
	ownerID int64,
	title, link string,
	description *string,
) (models.Bookmark, error) {
	const op = "bookmarks.Create"

	log := b.log.With(slog.String("op", op))

	bookmark, err := b.repo.SaveBookmark(ctx, ownerID, title, link, description)
	if err != nil {
		log.Error("failed to save bookmark", sl.Err(err))
		return models.Bookmark{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("bookmark created", slog.Int64("id", bookmark.ID))

	return bookmark, nil
}

func (b *Bookmarks) List(ctx context.Context, ownerID int64) ([]models.Bookmark, error) {
	const op = "bookmarks.List"

	bookmarks, err := b.repo.BookmarksByOwner(ctx, ownerID)
	if err != nil {
		b.log.With(slog.String("op", op)).Error("failed to list bookmarks", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return bookmarks, nil
}

// * Get ищет закладку запросом, ограниченным владельцем: чужая запись
// неотличима от несуществующей
func (b *Bookmarks) Get(ctx context.Context, ownerID, id int64) (models.Bookmark, error) {
	const op = "bookmarks.Get"

	bookmark, err := b.repo.BookmarkByOwner(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, storage.ErrBookmarkNotFound) {
			return models.Bookmark{}, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		b.log.With(slog.String("op", op)).Error("failed to get bookmark", sl.Err(err))
		return models.Bookmark{}, fmt.Errorf("%s: %w", op, err)
	}

	return bookmark, nil
}

// * Edit сначала проверяет существование и владельца, затем обновляет
func (b *Bookmarks) Edit(ctx context.Context, ownerID, id int64, upd models.BookmarkUpdate) (models.Bookmark, error) {
	const op = "bookmarks.Edit"

	log := b.log.With(slog.String("op", op))

	if err := b.checkOwner(ctx, ownerID, id); err != nil {
		return models.Bookmark{}, fmt.Errorf("%s: %w", op, err)
	}

	bookmark, err := b.repo.UpdateBookmark(ctx, id, upd)
	if err != nil {
		// Закладка могла исчезнуть между проверкой владельца и обновлением
		if errors.Is(err, storage.ErrBookmarkNotFound) {
			return models.Bookmark{}, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		log.Error("failed to update bookmark", sl.Err(err))
		return models.Bookmark{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("bookmark updated", slog.Int64("id", bookmark.ID))

	return bookmark, nil
}

func (b *Bookmarks) Delete(ctx context.Context, ownerID, id int64) error {
	const op = "bookmarks.Delete"

	log := b.log.With(slog.String("op", op))

	if err := b.checkOwner(ctx, ownerID, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := b.repo.DeleteBookmark(ctx, id); err != nil {
		if errors.Is(err, storage.ErrBookmarkNotFound) {
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		log.Error("failed to delete bookmark", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("bookmark deleted", slog.Int64("id", id))

	return nil
}

func (b *Bookmarks) checkOwner(ctx context.Context, ownerID, id int64) error {
	bookmark, err := b.repo.Bookmark(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrBookmarkNotFound) {
			return ErrNotFound
		}

		return err
	}

	if bookmark.OwnerID != ownerID {
		return ErrForbidden
	}

	return nil
}
