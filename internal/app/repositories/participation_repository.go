package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/anirudh/campuspoints/internal/app/models"
	"github.com/anirudh/campuspoints/internal/pkg/apperrors"
)

// ParticipationRepository handles per-student participation records for
// club-wide activities.
type ParticipationRepository struct {
	db *pgxpool.Pool
}

// NewParticipationRepository creates a new ParticipationRepository
func NewParticipationRepository(db *pgxpool.Pool) *ParticipationRepository {
	return &ParticipationRepository{db: db}
}

var participationColumns = []string{
	"participation_id", "activity_id", "student_usn", "points", "position", "document_url", "created_at",
}

func scanParticipation(row pgx.Row) (*models.Participation, error) {
	var p models.Participation
	err := row.Scan(
		&p.ParticipationID,
		&p.ActivityID,
		&p.StudentUSN,
		&p.Points,
		&p.Position,
		&p.DocumentURL,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a participation record and returns the generated ID
func (r *ParticipationRepository) Create(ctx context.Context, p *models.Participation) error {
	query := squirrel.Insert("participations").
		Columns("activity_id", "student_usn", "points", "position", "document_url").
		Values(p.ActivityID, p.StudentUSN, p.Points, p.Position, p.DocumentURL).
		Suffix("RETURNING participation_id, created_at").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&p.ParticipationID, &p.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			if pgErr.ConstraintName == "participations_student_usn_fkey" {
				return apperrors.ErrStudentNotFound
			}
			return apperrors.ErrActivityNotFound
		}
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}

// ListByActivity retrieves all participation records for one activity
func (r *ParticipationRepository) ListByActivity(ctx context.Context, activityID int64) ([]*models.Participation, error) {
	query := squirrel.Select(participationColumns...).
		From("participations").
		Where("activity_id = ?", activityID).
		OrderBy("student_usn").
		PlaceholderFormat(squirrel.Dollar)

	return r.queryParticipations(ctx, query)
}

// ListByStudent retrieves all participation records for one student,
// newest first.
func (r *ParticipationRepository) ListByStudent(ctx context.Context, usn string) ([]*models.Participation, error) {
	query := squirrel.Select(participationColumns...).
		From("participations").
		Where("student_usn = ?", usn).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	return r.queryParticipations(ctx, query)
}

func (r *ParticipationRepository) queryParticipations(ctx context.Context, query squirrel.SelectBuilder) ([]*models.Participation, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var participations []*models.Participation
	for rows.Next() {
		p, err := scanParticipation(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		participations = append(participations, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return participations, nil
}
