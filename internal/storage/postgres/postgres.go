package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookmark_service/internal/config"
	"bookmark_service/internal/models"
	"bookmark_service/internal/storage"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolationCode = "23505"

type PostgresRepo struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, cfg *config.Config) (*PostgresRepo, error) {
	const op = "storage.postgres.New"

	dsn := dsn(cfg)

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse config: %w", op, err)
	}

	poolConfig.MaxConns = 10
	poolConfig.MinConns = 2
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = time.Minute * 30

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create pool: %w", op, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: failed to ping database: %w", op, err)
	}

	if err := runMigrations(ctx, dsn); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: failed to run migrations: %w", op, err)
	}

	return &PostgresRepo{pool: pool}, nil
}

func (r *PostgresRepo) SaveAccount(ctx context.Context, email, passHash string) (models.Account, error) {
	const op = "storage.postgres.SaveAccount"

	query := `
		INSERT INTO accounts (email, hash)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at, email, hash, first_name, last_name;
	`

	var a models.Account

	err := r.pool.QueryRow(ctx, query, email, passHash).Scan(
		&a.ID,
		&a.CreatedAt,
		&a.UpdatedAt,
		&a.Email,
		&a.PassHash,
		&a.FirstName,
		&a.LastName,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return models.Account{}, storage.ErrAccountExists
		}

		return models.Account{}, fmt.Errorf("%s: failed to save account: %w", op, err)
	}

	return a, nil
}

func (r *PostgresRepo) AccountByEmail(ctx context.Context, email string) (models.Account, error) {
	query := `
		SELECT id, created_at, updated_at, email, hash, first_name, last_name
		FROM accounts
		WHERE email = $1;
	`

	return r.scanAccount(r.pool.QueryRow(ctx, query, email))
}

func (r *PostgresRepo) AccountByID(ctx context.Context, id int64) (models.Account, error) {
	query := `
		SELECT id, created_at, updated_at, email, hash, first_name, last_name
		FROM accounts
		WHERE id = $1;
	`

	return r.scanAccount(r.pool.QueryRow(ctx, query, id))
}

// * UpdateAccount обновляет только переданные поля, nil сохраняет старое значение
func (r *PostgresRepo) UpdateAccount(ctx context.Context, id int64, upd models.AccountUpdate) (models.Account, error) {
	const op = "storage.postgres.UpdateAccount"

	query := `
		UPDATE accounts
		SET email = COALESCE($2, email),
			first_name = COALESCE($3, first_name),
			last_name = COALESCE($4, last_name),
			updated_at = NOW()
		WHERE id = $1
		RETURNING id, created_at, updated_at, email, hash, first_name, last_name;
	`

	a, err := r.scanAccount(r.pool.QueryRow(ctx, query, id, upd.Email, upd.FirstName, upd.LastName))
	if err != nil {
		if isUniqueViolation(err) {
			return models.Account{}, storage.ErrAccountExists
		}

		return models.Account{}, fmt.Errorf("%s: %w", op, err)
	}

	return a, nil
}

func (r *PostgresRepo) SaveBookmark(
	ctx context.Context,
	ownerID int64,
	title, link string,
	description *string,
) (models.Bookmark, error) {
	const op = "storage.postgres.SaveBookmark"

	query := `
		INSERT INTO bookmarks (owner_id, title, link, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at, title, description, link, owner_id;
	`

	b, err := r.scanBookmark(r.pool.QueryRow(ctx, query, ownerID, title, link, description))
	if err != nil {
		return models.Bookmark{}, fmt.Errorf("%s: %w", op, err)
	}

	return b, nil
}

func (r *PostgresRepo) BookmarksByOwner(ctx context.Context, ownerID int64) ([]models.Bookmark, error) {
	const op = "storage.postgres.BookmarksByOwner"

	query := `
		SELECT id, created_at, updated_at, title, description, link, owner_id
		FROM bookmarks
		WHERE owner_id = $1
		ORDER BY id;
	`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	bookmarks := []models.Bookmark{}

	for rows.Next() {
		var b models.Bookmark

		err := rows.Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt, &b.Title, &b.Description, &b.Link, &b.OwnerID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		bookmarks = append(bookmarks, b)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("%s: %w", op, rows.Err())
	}

	return bookmarks, nil
}

func (r *PostgresRepo) Bookmark(ctx context.Context, id int64) (models.Bookmark, error) {
	query := `
		SELECT id, created_at, updated_at, title, description, link, owner_id
		FROM bookmarks
		WHERE id = $1;
	`

	return r.scanBookmark(r.pool.QueryRow(ctx, query, id))
}

// * BookmarkByOwner ищет закладку сразу с фильтром по владельцу,
// чтобы чужая запись была неотличима от несуществующей
func (r *PostgresRepo) BookmarkByOwner(ctx context.Context, ownerID, id int64) (models.Bookmark, error) {
	query := `
		SELECT id, created_at, updated_at, title, description, link, owner_id
		FROM bookmarks
		WHERE id = $1 AND owner_id = $2;
	`

	return r.scanBookmark(r.pool.QueryRow(ctx, query, id, ownerID))
}

func (r *PostgresRepo) UpdateBookmark(ctx context.Context, id int64, upd models.BookmarkUpdate) (models.Bookmark, error) {
	const op = "storage.postgres.UpdateBookmark"

	query := `
		UPDATE bookmarks
		SET title = COALESCE($2, title),
			description = COALESCE($3, description),
			link = COALESCE($4, link),
			updated_at = NOW()
		WHERE id = $1
		RETURNING id, created_at, updated_at, title, description, link, owner_id;
	`

	b, err := r.scanBookmark(r.pool.QueryRow(ctx, query, id, upd.Title, upd.Description, upd.Link))
	if err != nil {
		if errors.Is(err, storage.ErrBookmarkNotFound) {
			return models.Bookmark{}, err
		}

		return models.Bookmark{}, fmt.Errorf("%s: %w", op, err)
	}

	return b, nil
}

func (r *PostgresRepo) DeleteBookmark(ctx context.Context, id int64) error {
	const op = "storage.postgres.DeleteBookmark"

	query := `DELETE FROM bookmarks WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if tag.RowsAffected() == 0 {
		return storage.ErrBookmarkNotFound
	}

	return nil
}

func (r *PostgresRepo) Close() {
	r.pool.Close()
}

func (r *PostgresRepo) scanAccount(row pgx.Row) (models.Account, error) {
	var a models.Account

	err := row.Scan(
		&a.ID,
		&a.CreatedAt,
		&a.UpdatedAt,
		&a.Email,
		&a.PassHash,
		&a.FirstName,
		&a.LastName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Account{}, storage.ErrAccountNotFound
		}

		return models.Account{}, err
	}

	return a, nil
}

func (r *PostgresRepo) scanBookmark(row pgx.Row) (models.Bookmark, error) {
	var b models.Bookmark

	err := row.Scan(
		&b.ID,
		&b.CreatedAt,
		&b.UpdatedAt,
		&b.Title,
		&b.Description,
		&b.Link,
		&b.OwnerID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Bookmark{}, storage.ErrBookmarkNotFound
		}

		return models.Bookmark{}, err
	}

	return b, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// * dsn формирует конфигурацию базы данных.
func dsn(cfg *config.Config) string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s database=%s sslmode=%s",
		cfg.Postgres.Host,
		cfg.Postgres.Port,
		cfg.Postgres.User,
		cfg.Postgres.Password,
		cfg.Postgres.DBName,
		cfg.Postgres.SSLMode,
	)
}
