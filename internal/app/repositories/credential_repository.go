package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/anirudh/campuspoints/internal/pkg/apperrors"
)

// CredentialRepository stores login credentials keyed by email. The
// email is the bridge between a credential and the student or teacher
// directory row it belongs to.
type CredentialRepository struct {
	db *pgxpool.Pool
}

// NewCredentialRepository creates a new CredentialRepository
func NewCredentialRepository(db *pgxpool.Pool) *CredentialRepository {
	return &CredentialRepository{db: db}
}

// Create stores a bcrypt password hash for an email
func (r *CredentialRepository) Create(ctx context.Context, email, passwordHash string) error {
	query := squirrel.Insert("credentials").
		Columns("email", "password_hash").
		Values(email, passwordHash).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}

// GetPasswordHash retrieves the stored hash for an email
func (r *CredentialRepository) GetPasswordHash(ctx context.Context, email string) (string, error) {
	query := squirrel.Select("password_hash").
		From("credentials").
		Where("email = ?", email).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return "", fmt.Errorf("error building SQL: %w", err)
	}

	var hash string
	err = r.db.QueryRow(ctx, sql, args...).Scan(&hash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrInvalidCredentials
		}
		return "", fmt.Errorf("error executing query: %w", err)
	}

	return hash, nil
}
