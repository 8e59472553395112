package services

import (
	"context"
	"errors"

	"github.com/anirudh/campuspoints/internal/app/models"
	"github.com/anirudh/campuspoints/internal/pkg/apperrors"
	"github.com/anirudh/campuspoints/internal/pkg/logger"
)

// clubRegistry is the slice of the club repository the service needs
type clubRegistry interface {
	Create(ctx context.Context, club *models.Club) error
	GetByID(ctx context.Context, clubID string) (*models.Club, error)
	GetByCoordinatorID(ctx context.Context, teacherID string) (*models.Club, error)
	GetAll(ctx context.Context) ([]*models.Club, error)
}

type teacherChecker interface {
	GetByID(ctx context.Context, teacherID string) (*models.Teacher, error)
}

// ClubService manages the club registry
type ClubService interface {
	Create(ctx context.Context, club *models.Club) (*models.Club, error)
	Get(ctx context.Context, clubID string) (*models.Club, error)
	List(ctx context.Context) ([]*models.Club, error)
}

type clubServiceImpl struct {
	clubs    clubRegistry
	teachers teacherChecker
}

// NewClubService creates a new ClubService
func NewClubService(clubs clubRegistry, teachers teacherChecker) ClubService {
	return &clubServiceImpl{
		clubs:    clubs,
		teachers: teachers,
	}
}

// Create registers a new club. The coordinator must exist in the
// teacher directory and must not already coordinate another club; the
// coordinator relation is one to one.
func (s *clubServiceImpl) Create(ctx context.Context, club *models.Club) (*models.Club, error) {
	if club.ClubID == "" || club.Name == "" {
		return nil, apperrors.NewValidationError("club id and name are required")
	}

	if _, err := s.teachers.GetByID(ctx, club.FacultyCoordinatorID); err != nil {
		return nil, err
	}

	_, err := s.clubs.GetByCoordinatorID(ctx, club.FacultyCoordinatorID)
	if err == nil {
		return nil, apperrors.ErrCoordinatorHasClub
	}
	if !errors.Is(err, apperrors.ErrClubNotFound) {
		return nil, err
	}

	if err := s.clubs.Create(ctx, club); err != nil {
		return nil, err
	}

	logger.Info().
		Str("clubId", club.ClubID).
		Str("coordinatorId", club.FacultyCoordinatorID).
		Msg("Club registered")

	return s.clubs.GetByID(ctx, club.ClubID)
}

// Get retrieves one club
func (s *clubServiceImpl) Get(ctx context.Context, clubID string) (*models.Club, error) {
	return s.clubs.GetByID(ctx, clubID)
}

// List retrieves all clubs ordered by name
func (s *clubServiceImpl) List(ctx context.Context) ([]*models.Club, error) {
	return s.clubs.GetAll(ctx)
}
