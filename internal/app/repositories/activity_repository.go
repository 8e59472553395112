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

// ActivityRepository handles database operations for activities
type ActivityRepository struct {
	db *pgxpool.Pool
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(db *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{db: db}
}

var activityColumns = []string{
	"activity_id", "activity_name", "date", "points", "deadline", "document_url",
	"approved_status", "students_can_download", "student_usn", "club_id",
	"approved_by_teacher_id", "created_at",
}

func scanActivity(row pgx.Row) (*models.Activity, error) {
	var a models.Activity
	err := row.Scan(
		&a.ActivityID,
		&a.ActivityName,
		&a.Date,
		&a.Points,
		&a.Deadline,
		&a.DocumentURL,
		&a.ApprovedStatus,
		&a.StudentsCanDownload,
		&a.StudentUSN,
		&a.ClubID,
		&a.ApprovedByTeacherID,
		&a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts a new activity and returns the generated ID
func (r *ActivityRepository) Create(ctx context.Context, activity *models.Activity) error {
	query := squirrel.Insert("activities").
		Columns("activity_name", "date", "points", "deadline", "document_url",
			"student_usn", "club_id").
		Values(activity.ActivityName, activity.Date, activity.Points, activity.Deadline,
			activity.DocumentURL, activity.StudentUSN, activity.ClubID).
		Suffix("RETURNING activity_id, created_at").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&activity.ActivityID, &activity.CreatedAt)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}

// GetByID retrieves an activity by ID
func (r *ActivityRepository) GetByID(ctx context.Context, activityID int64) (*models.Activity, error) {
	query := squirrel.Select(activityColumns...).
		From("activities").
		Where("activity_id = ?", activityID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	activity, err := scanActivity(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrActivityNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return activity, nil
}

// ListAll retrieves every activity ordered by event date, newest first.
// Staff roles see the full ledger.
func (r *ActivityRepository) ListAll(ctx context.Context) ([]*models.Activity, error) {
	query := squirrel.Select(activityColumns...).
		From("activities").
		OrderBy("date DESC").
		PlaceholderFormat(squirrel.Dollar)

	return r.queryActivities(ctx, query)
}

// ListForStudent retrieves the activities visible to one student: rows
// addressed to their USN plus approved club-wide rows, newest first.
func (r *ActivityRepository) ListForStudent(ctx context.Context, usn string) ([]*models.Activity, error) {
	query := squirrel.Select(activityColumns...).
		From("activities").
		Where(squirrel.Or{
			squirrel.Eq{"student_usn": usn},
			squirrel.And{
				squirrel.Eq{"approved_status": true},
				squirrel.Eq{"student_usn": nil},
			},
		}).
		OrderBy("date DESC").
		PlaceholderFormat(squirrel.Dollar)

	return r.queryActivities(ctx, query)
}

// ListByClub retrieves all activities published by one club, newest first
func (r *ActivityRepository) ListByClub(ctx context.Context, clubID string) ([]*models.Activity, error) {
	query := squirrel.Select(activityColumns...).
		From("activities").
		Where("club_id = ?", clubID).
		OrderBy("date DESC").
		PlaceholderFormat(squirrel.Dollar)

	return r.queryActivities(ctx, query)
}

func (r *ActivityRepository) queryActivities(ctx context.Context, query squirrel.SelectBuilder) ([]*models.Activity, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var activities []*models.Activity
	for rows.Next() {
		activity, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		activities = append(activities, activity)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return activities, nil
}

// Approve marks an activity approved, unlocks the document for download
// and records the approving teacher, all in one statement. The guard on
// approved_status makes the operation single-winner: a second approval
// attempt affects zero rows.
func (r *ActivityRepository) Approve(ctx context.Context, activityID int64, teacherID string) error {
	query := squirrel.Update("activities").
		Set("approved_status", true).
		Set("students_can_download", true).
		Set("approved_by_teacher_id", teacherID).
		Where("activity_id = ?", activityID).
		Where("approved_status = FALSE").
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
		// Distinguish missing row from already-approved row
		existing, getErr := r.GetByID(ctx, activityID)
		if getErr != nil {
			return getErr
		}
		if existing.ApprovedStatus {
			return apperrors.ErrAlreadyApproved
		}
		return apperrors.ErrActivityNotFound
	}

	return nil
}

// SetDocumentURL attaches an uploaded document to an activity
func (r *ActivityRepository) SetDocumentURL(ctx context.Context, activityID int64, documentURL string) error {
	query := squirrel.Update("activities").
		Set("document_url", documentURL).
		Where("activity_id = ?", activityID).
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
		return apperrors.ErrActivityNotFound
	}

	return nil
}

// CountByStatus returns the total, pending and approved activity counts
// in a single scan over the table.
func (r *ActivityRepository) CountByStatus(ctx context.Context) (total, pending, approved int, err error) {
	sql := `SELECT COUNT(*),
		COUNT(*) FILTER (WHERE approved_status = FALSE),
		COUNT(*) FILTER (WHERE approved_status = TRUE)
		FROM activities`

	err = r.db.QueryRow(ctx, sql).Scan(&total, &pending, &approved)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("error executing query: %w", err)
	}

	return total, pending, approved, nil
}

// SumApprovedPointsForStudent totals the points of approved activities
// addressed to one student.
func (r *ActivityRepository) SumApprovedPointsForStudent(ctx context.Context, usn string) (int, error) {
	query := squirrel.Select("COALESCE(SUM(points), 0)").
		From("activities").
		Where("student_usn = ?", usn).
		Where("approved_status = TRUE").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var totalPoints int
	err = r.db.QueryRow(ctx, sql, args...).Scan(&totalPoints)
	if err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return totalPoints, nil
}
