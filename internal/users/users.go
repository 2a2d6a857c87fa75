package users

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	sl "bookmark_service/internal/lib/logger"
	"bookmark_service/internal/models"
	"bookmark_service/internal/storage"
)

var ErrEmailTaken = errors.New("email already taken")

type Users struct {
	log        *slog.Logger
	accUpdater AccountUpdater
}

type AccountUpdater interface {
	UpdateAccount(ctx context.Context, id int64, upd models.AccountUpdate) (models.Account, error)
}

func New(log *slog.Logger, accountUpdater AccountUpdater) *Users {
	return &Users{
		log:        log,
		accUpdater: accountUpdater,
	}
}

// * Edit обновляет только переданные поля аккаунта. Пустое обновление
// возвращает аккаунт без изменений.
func (u *Users) Edit(ctx context.Context, accountID int64, upd models.AccountUpdate) (models.Account, error) {
	const op = "users.Edit"

	log := u.log.With(slog.String("op", op))

	account, err := u.accUpdater.UpdateAccount(ctx, accountID, upd)
	if err != nil {
		if errors.Is(err, storage.ErrAccountExists) {
			log.Warn("email already taken")
			return models.Account{}, fmt.Errorf("%s: %w", op, ErrEmailTaken)
		}

		log.Error("failed to update account", sl.Err(err))
		return models.Account{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("account updated", slog.Int64("id", account.ID))

	return account, nil
}
