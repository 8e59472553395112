package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/anirudh/campuspoints/internal/pkg/apperrors"
)

// TokenRepository tracks issued refresh tokens. Refresh tokens are
// opaque UUIDs; the row is the only proof of issuance.
type TokenRepository struct {
	db *pgxpool.Pool
}

// NewTokenRepository creates a new TokenRepository
func NewTokenRepository(db *pgxpool.Pool) *TokenRepository {
	return &TokenRepository{db: db}
}

// Store records a refresh token for an email with its expiry
func (r *TokenRepository) Store(ctx context.Context, token, email string, expiresAt time.Time) error {
	query := squirrel.Insert("refresh_tokens").
		Columns("token", "email", "expires_at").
		Values(token, email, expiresAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}

// Consume deletes a refresh token and returns the email it was issued
// to. Expired or unknown tokens map to the token sentinels so the
// middleware can answer 401.
func (r *TokenRepository) Consume(ctx context.Context, token string) (string, error) {
	query := squirrel.Delete("refresh_tokens").
		Where("token = ?", token).
		Suffix("RETURNING email, expires_at").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return "", fmt.Errorf("error building SQL: %w", err)
	}

	var email string
	var expiresAt time.Time
	err = r.db.QueryRow(ctx, sql, args...).Scan(&email, &expiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrTokenInvalid
		}
		return "", fmt.Errorf("error executing query: %w", err)
	}

	if time.Now().After(expiresAt) {
		return "", apperrors.ErrTokenExpired
	}

	return email, nil
}

// DeleteExpired removes refresh tokens past their expiry
func (r *TokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	query := squirrel.Delete("refresh_tokens").
		Where("expires_at < ?", time.Now()).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return result.RowsAffected(), nil
}
