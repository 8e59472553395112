package services

import (
	"context"

	"github.com/anirudh/campuspoints/internal/app/models"
	"github.com/anirudh/campuspoints/internal/pkg/apperrors"
	"github.com/anirudh/campuspoints/internal/pkg/logger"
	"github.com/anirudh/campuspoints/internal/pkg/realtime"
)

// assignmentRegistry is the slice of the counseling repository the
// service needs.
type assignmentRegistry interface {
	Assign(ctx context.Context, teacherID, studentUSN string) error
	Unassign(ctx context.Context, teacherID, studentUSN string) (bool, error)
	ListAssignedUSNs(ctx context.Context, teacherID string) ([]string, error)
	IsAssigned(ctx context.Context, teacherID, studentUSN string) (bool, error)
}

type studentLister interface {
	GetByUSN(ctx context.Context, usn string) (*models.Student, error)
	GetAll(ctx context.Context) ([]*models.Student, error)
}

// CounselingService manages the counselor-student assignment relation
type CounselingService interface {
	Assign(ctx context.Context, actor models.Actor, studentUSN string) error
	Unassign(ctx context.Context, actor models.Actor, studentUSN string) error
	ListAssigned(ctx context.Context, actor models.Actor) ([]*models.Student, error)
	ListAllStudents(ctx context.Context, actor models.Actor) ([]*models.Student, error)
}

type counselingServiceImpl struct {
	assignments assignmentRegistry
	students    studentLister
	events      eventPublisher
}

// NewCounselingService creates a new CounselingService
func NewCounselingService(
	assignments assignmentRegistry,
	students studentLister,
	events eventPublisher,
) CounselingService {
	return &counselingServiceImpl{
		assignments: assignments,
		students:    students,
		events:      events,
	}
}

// Assign links a student to the calling counselor. Assigning an already
// assigned student is a quiet no-op and publishes nothing; the
// repository's conflict handling covers the race between the check and
// the insert.
func (s *counselingServiceImpl) Assign(ctx context.Context, actor models.Actor, studentUSN string) error {
	if !actor.IsStaff() {
		return apperrors.NewForbiddenError("only a counselor can assign students")
	}

	if _, err := s.students.GetByUSN(ctx, studentUSN); err != nil {
		return err
	}

	already, err := s.assignments.IsAssigned(ctx, actor.Key, studentUSN)
	if err != nil {
		return err
	}
	if already {
		return nil
	}

	if err := s.assignments.Assign(ctx, actor.Key, studentUSN); err != nil {
		return err
	}

	s.events.Publish(realtime.CollectionAssignments, "assign", studentUSN)

	logger.Info().
		Str("teacherId", actor.Key).
		Str("studentUsn", studentUSN).
		Msg("Student assigned to counselor")

	return nil
}

// Unassign removes the link between the calling counselor and a
// student. Only a link owned by the caller is removed; unassigning a
// student who is not assigned is a quiet no-op and publishes nothing.
func (s *counselingServiceImpl) Unassign(ctx context.Context, actor models.Actor, studentUSN string) error {
	if !actor.IsStaff() {
		return apperrors.NewForbiddenError("only a counselor can unassign students")
	}

	removed, err := s.assignments.Unassign(ctx, actor.Key, studentUSN)
	if err != nil {
		return err
	}

	if !removed {
		return nil
	}

	s.events.Publish(realtime.CollectionAssignments, "unassign", studentUSN)

	logger.Info().
		Str("teacherId", actor.Key).
		Str("studentUsn", studentUSN).
		Msg("Student unassigned from counselor")

	return nil
}

// ListAssigned returns the full directory rows of the students assigned
// to the calling counselor, ordered by USN.
func (s *counselingServiceImpl) ListAssigned(ctx context.Context, actor models.Actor) ([]*models.Student, error) {
	if !actor.IsStaff() {
		return nil, apperrors.NewForbiddenError("only a counselor can list assigned students")
	}

	usns, err := s.assignments.ListAssignedUSNs(ctx, actor.Key)
	if err != nil {
		return nil, err
	}

	students := make([]*models.Student, 0, len(usns))
	for _, usn := range usns {
		student, err := s.students.GetByUSN(ctx, usn)
		if err != nil {
			// A dangling link must not break the listing
			logger.Warn().Str("studentUsn", usn).Msg("Assigned student missing from directory")
			continue
		}
		students = append(students, student)
	}

	return students, nil
}

// ListAllStudents returns the whole student directory for staff actors,
// used when picking a student to assign.
func (s *counselingServiceImpl) ListAllStudents(ctx context.Context, actor models.Actor) ([]*models.Student, error) {
	if !actor.IsStaff() {
		return nil, apperrors.NewForbiddenError("only a counselor can browse the student directory")
	}

	return s.students.GetAll(ctx)
}
