package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/anirudh/campuspoints/internal/app/models"
	"github.com/anirudh/campuspoints/internal/pkg/apperrors"
)

// ClubRepository handles database operations for clubs
type ClubRepository struct {
	db *pgxpool.Pool
}

// NewClubRepository creates a new ClubRepository
func NewClubRepository(db *pgxpool.Pool) *ClubRepository {
	return &ClubRepository{db: db}
}

var clubColumns = []string{
	"club_id", "name", "faculty_coordinator_id", "no_of_activity", "created_at",
}

func scanClub(row pgx.Row) (*models.Club, error) {
	var c models.Club
	err := row.Scan(
		&c.ClubID,
		&c.Name,
		&c.FacultyCoordinatorID,
		&c.NoOfActivity,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a new club row
func (r *ClubRepository) Create(ctx context.Context, club *models.Club) error {
	query := squirrel.Insert("clubs").
		Columns("club_id", "name", "faculty_coordinator_id").
		Values(club.ClubID, club.Name, club.FacultyCoordinatorID).
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

// GetByID retrieves a club by ID
func (r *ClubRepository) GetByID(ctx context.Context, clubID string) (*models.Club, error) {
	query := squirrel.Select(clubColumns...).
		From("clubs").
		Where("club_id = ?", clubID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	club, err := scanClub(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrClubNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return club, nil
}

// GetByCoordinatorID retrieves the club coordinated by a teacher. Each
// teacher coordinates at most one club.
func (r *ClubRepository) GetByCoordinatorID(ctx context.Context, teacherID string) (*models.Club, error) {
	query := squirrel.Select(clubColumns...).
		From("clubs").
		Where("faculty_coordinator_id = ?", teacherID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	club, err := scanClub(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrClubNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return club, nil
}

// GetAll retrieves all clubs ordered by name
func (r *ClubRepository) GetAll(ctx context.Context) ([]*models.Club, error) {
	query := squirrel.Select(clubColumns...).
		From("clubs").
		OrderBy("name").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var clubs []*models.Club
	for rows.Next() {
		club, err := scanClub(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		clubs = append(clubs, club)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return clubs, nil
}

// IncrementActivityCount bumps the running activity counter for a club
func (r *ClubRepository) IncrementActivityCount(ctx context.Context, clubID string) error {
	query := squirrel.Update("clubs").
		Set("no_of_activity", squirrel.Expr("no_of_activity + 1")).
		Where("club_id = ?", clubID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrClubNotFound
	}

	return nil
}
