package repositories

import (
	"context"
	"database/sql"
	"distance-service/internal/domain"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// Postgres-backed implementation of the UserRepository port.
type SQLUserRepository struct{ DB *sql.DB }

func NewSQLUserRepository(db *sql.DB) *SQLUserRepository {
	return &SQLUserRepository{DB: db}
}

func (s *SQLUserRepository) Create(ctx context.Context, u *domain.User) error {
	if s.DB == nil {
		return errors.New("sql user repository: DB is nil")
	}

	query := `
	INSERT INTO users (id, username, email, password_hash, created_at)
	VALUES ($1, $2, $3, $4, $5);
	`
	_, err := s.DB.ExecContext(ctx, query, u.ID, u.Username, strings.ToLower(u.Email), u.PasswordHash, u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("create user %q: %w", u.Email, domain.ErrEmailTaken)
		}
		return fmt.Errorf("create user: insert users: %w", err)
	}

	return nil
}

func (s *SQLUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
	SELECT id, username, email, password_hash, created_at
	FROM users
	WHERE email = $1;
	`
	return s.findOne(ctx, "find user by email", query, strings.ToLower(strings.TrimSpace(email)))
}

func (s *SQLUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	query := `
	SELECT id, username, email, password_hash, created_at
	FROM users
	WHERE id = $1;
	`
	return s.findOne(ctx, "find user by id", query, id)
}

func (s *SQLUserRepository) findOne(ctx context.Context, op, query string, arg any) (*domain.User, error) {
	if s.DB == nil {
		return nil, errors.New("sql user repository: DB is nil")
	}

	var u domain.User
	err := s.DB.QueryRowContext(ctx, query, arg).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, domain.ErrUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &u, nil
}
