package credentials

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"

	"aurevo-menu/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const pgUniqueViolation = "23505"

// PgStore keeps users in PostgreSQL.
type PgStore struct {
	pool *pgxpool.Pool
}

// NewPgStore connects to the database at url. Call Migrate before first use
// on a fresh database.
func NewPgStore(ctx context.Context, url string) (*PgStore, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &PgStore{pool: pool}, nil
}

// Migrate applies the embedded schema files in name order. They are idempotent.
func (s *PgStore) Migrate(ctx context.Context) error {
	names, err := fs.Glob(migrationsFS, "migrations/*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(names)
	for _, name := range names {
		sqlBytes, err := migrationsFS.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := s.pool.Exec(ctx, string(sqlBytes)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
		slog.Debug("migration applied", slog.String("name", name))
	}
	return nil
}

func (s *PgStore) Create(ctx context.Context, username, passwordHash string) (*models.User, error) {
	var id int64
	err := s.pool.QueryRow(ctx, `
		INSERT INTO users (username, password) VALUES ($1, $2)
		RETURNING id`,
		username, passwordHash,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &models.User{ID: uint(id), Username: username, PasswordHash: passwordHash}, nil
}

func (s *PgStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var id int64
	var hash string
	err := s.pool.QueryRow(ctx, `
		SELECT id, password FROM users WHERE username = $1`,
		username,
	).Scan(&id, &hash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &models.User{ID: uint(id), Username: username, PasswordHash: hash}, nil
}

func (s *PgStore) Close() error {
	s.pool.Close()
	return nil
}
