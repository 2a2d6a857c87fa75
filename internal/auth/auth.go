package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"bookmark_service/internal/lib/hasher"
	"bookmark_service/internal/lib/jwt"
	sl "bookmark_service/internal/lib/logger"
	"bookmark_service/internal/models"
	"bookmark_service/internal/storage"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountExists      = errors.New("account already exists")
	ErrAccountNotFound    = errors.New("account not found")
)

type Auth struct {
	log         *slog.Logger
	accSaver    AccountSaver
	accProvider AccountProvider
	tokenSecret string
	tokenTTL    time.Duration
}

type AccountSaver interface {
	SaveAccount(ctx context.Context, email, passHash string) (models.Account, error)
}

type AccountProvider interface {
	AccountByEmail(ctx context.Context, email string) (models.Account, error)
}

func New(
	log *slog.Logger,
	accountSaver AccountSaver,
	accountProvider AccountProvider,
	tokenSecret string,
	tokenTTL time.Duration,
) *Auth {
	return &Auth{
		log:         log,
		accSaver:    accountSaver,
		accProvider: accountProvider,
		tokenSecret: tokenSecret,
		tokenTTL:    tokenTTL,
	}
}

// * Signup создаёт аккаунт и возвращает access-токен
func (a *Auth) Signup(ctx context.Context, email, password string) (string, error) {
	const op = "auth.Signup"

	log := a.log.With(slog.String("op", op))

	passHash, err := hasher.Hash(password)
	if err != nil {
		log.Error("failed to hash password", sl.Err(err))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	account, err := a.accSaver.SaveAccount(ctx, email, passHash)
	if err != nil {
		if errors.Is(err, storage.ErrAccountExists) {
			log.Warn("account already exists")
			return "", fmt.Errorf("%s: %w", op, ErrAccountExists)
		}

		log.Error("failed to save account", sl.Err(err))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	token, err := jwt.NewToken(account, a.tokenSecret, a.tokenTTL)
	if err != nil {
		log.Error("failed to generate access token", sl.Err(err))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	log.Info("account registered", slog.Int64("id", account.ID))

	return token, nil
}

// * Signin проверяет учетные данные и возвращает access-токен
func (a *Auth) Signin(ctx context.Context, email, password string) (string, error) {
	const op = "auth.Signin"

	log := a.log.With(slog.String("op", op))

	account, err := a.accProvider.AccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrAccountNotFound) {
			log.Warn("account not found")
			return "", fmt.Errorf("%s: %w", op, ErrAccountNotFound)
		}

		log.Error("failed to get account", sl.Err(err))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if !hasher.Verify(account.PassHash, password) {
		log.Info("invalid credentials")
		return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	token, err := jwt.NewToken(account, a.tokenSecret, a.tokenTTL)
	if err != nil {
		log.Error("failed to generate access token", sl.Err(err))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	log.Info("signin successful", slog.Int64("id", account.ID))

	return token, nil
}
