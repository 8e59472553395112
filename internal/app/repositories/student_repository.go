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

// StudentRepository handles database operations for the student directory
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{db: db}
}

var studentColumns = []string{
	"usn", "first_name", "last_name", "dept", "year", "email", "dob", "college_id", "created_at",
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	var s models.Student
	err := row.Scan(
		&s.USN,
		&s.FirstName,
		&s.LastName,
		&s.Dept,
		&s.Year,
		&s.Email,
		&s.DOB,
		&s.CollegeID,
		&s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a new student directory row
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	query := squirrel.Insert("students").
		Columns("usn", "first_name", "last_name", "dept", "year", "email", "dob", "college_id").
		Values(student.USN, student.FirstName, student.LastName, student.Dept,
			student.Year, student.Email, student.DOB, student.CollegeID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if pgErr.ConstraintName == "students_email_key" {
				return apperrors.ErrEmailAlreadyExists
			}
			return apperrors.ErrUSNAlreadyExists
		}
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}

// GetByUSN retrieves a student by USN
func (r *StudentRepository) GetByUSN(ctx context.Context, usn string) (*models.Student, error) {
	query := squirrel.Select(studentColumns...).
		From("students").
		Where("usn = ?", usn).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	student, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return student, nil
}

// GetByEmail retrieves a student by email
func (r *StudentRepository) GetByEmail(ctx context.Context, email string) (*models.Student, error) {
	query := squirrel.Select(studentColumns...).
		From("students").
		Where("email = ?", email).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	student, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return student, nil
}

// GetAll retrieves the full student directory ordered by USN
func (r *StudentRepository) GetAll(ctx context.Context) ([]*models.Student, error) {
	query := squirrel.Select(studentColumns...).
		From("students").
		OrderBy("usn").
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

	var students []*models.Student
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		students = append(students, student)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return students, nil
}

// UpdateProfile updates mutable profile fields for a student. The USN is
// the immutable identity key and never changes.
func (r *StudentRepository) UpdateProfile(ctx context.Context, usn, firstName, lastName, dept string, year int) error {
	query := squirrel.Update("students").
		Set("first_name", firstName).
		Set("last_name", lastName).
		Set("dept", dept).
		Set("year", year).
		Where("usn = ?", usn).
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
		return apperrors.ErrStudentNotFound
	}

	return nil
}
