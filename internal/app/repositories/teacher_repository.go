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

// TeacherRepository handles database operations for the teacher directory
type TeacherRepository struct {
	db *pgxpool.Pool
}

// NewTeacherRepository creates a new TeacherRepository
func NewTeacherRepository(db *pgxpool.Pool) *TeacherRepository {
	return &TeacherRepository{db: db}
}

var teacherColumns = []string{
	"teacher_id", "first_name", "last_name", "dept", "email", "college_id", "created_at",
}

func scanTeacher(row pgx.Row) (*models.Teacher, error) {
	var t models.Teacher
	err := row.Scan(
		&t.TeacherID,
		&t.FirstName,
		&t.LastName,
		&t.Dept,
		&t.Email,
		&t.CollegeID,
		&t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create inserts a new teacher directory row
func (r *TeacherRepository) Create(ctx context.Context, teacher *models.Teacher) error {
	query := squirrel.Insert("teachers").
		Columns("teacher_id", "first_name", "last_name", "dept", "email", "college_id").
		Values(teacher.TeacherID, teacher.FirstName, teacher.LastName, teacher.Dept,
			teacher.Email, teacher.CollegeID).
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

// GetByID retrieves a teacher by their teacher ID
func (r *TeacherRepository) GetByID(ctx context.Context, teacherID string) (*models.Teacher, error) {
	query := squirrel.Select(teacherColumns...).
		From("teachers").
		Where("teacher_id = ?", teacherID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	teacher, err := scanTeacher(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTeacherNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return teacher, nil
}

// GetByEmail retrieves a teacher by email
func (r *TeacherRepository) GetByEmail(ctx context.Context, email string) (*models.Teacher, error) {
	query := squirrel.Select(teacherColumns...).
		From("teachers").
		Where("email = ?", email).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	teacher, err := scanTeacher(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTeacherNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return teacher, nil
}
