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

// CounselingRepository handles the counselor-student assignment relation
type CounselingRepository struct {
	db *pgxpool.Pool
}

// NewCounselingRepository creates a new CounselingRepository
func NewCounselingRepository(db *pgxpool.Pool) *CounselingRepository {
	return &CounselingRepository{db: db}
}

// Assign links a student to a counselor. Re-assigning an already
// assigned pair is a no-op, so the operation is idempotent.
func (r *CounselingRepository) Assign(ctx context.Context, teacherID, studentUSN string) error {
	query := squirrel.Insert("student_counseling").
		Columns("teacher_id", "student_usn").
		Values(teacherID, studentUSN).
		Suffix("ON CONFLICT (teacher_id, student_usn) DO NOTHING").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			if pgErr.ConstraintName == "student_counseling_student_usn_fkey" {
				return apperrors.ErrStudentNotFound
			}
			return apperrors.ErrTeacherNotFound
		}
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}

// Unassign removes the link between a counselor and a student. Both
// columns must match; one counselor cannot detach another's student.
// Removing a link that does not exist is a no-op.
func (r *CounselingRepository) Unassign(ctx context.Context, teacherID, studentUSN string) (bool, error) {
	query := squirrel.Delete("student_counseling").
		Where("teacher_id = ?", teacherID).
		Where("student_usn = ?", studentUSN).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return false, fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return false, fmt.Errorf("error executing query: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// ListAssignedUSNs returns the USNs of students assigned to a counselor,
// ordered by USN.
func (r *CounselingRepository) ListAssignedUSNs(ctx context.Context, teacherID string) ([]string, error) {
	query := squirrel.Select("student_usn").
		From("student_counseling").
		Where("teacher_id = ?", teacherID).
		OrderBy("student_usn").
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

	var usns []string
	for rows.Next() {
		var usn string
		if err := rows.Scan(&usn); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		usns = append(usns, usn)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return usns, nil
}

// IsAssigned reports whether a counselor-student link exists
func (r *CounselingRepository) IsAssigned(ctx context.Context, teacherID, studentUSN string) (bool, error) {
	query := squirrel.Select("1").
		From("student_counseling").
		Where("teacher_id = ?", teacherID).
		Where("student_usn = ?", studentUSN).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return false, fmt.Errorf("error building SQL: %w", err)
	}

	var one int
	err = r.db.QueryRow(ctx, sql, args...).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("error executing query: %w", err)
	}

	return true, nil
}
