package services

import (
	"context"
	"strconv"

	"github.com/anirudh/campuspoints/internal/app/models"
	"github.com/anirudh/campuspoints/internal/app/models/dto"
	"github.com/anirudh/campuspoints/internal/pkg/apperrors"
	"github.com/anirudh/campuspoints/internal/pkg/helpers"
	"github.com/anirudh/campuspoints/internal/pkg/logger"
	"github.com/anirudh/campuspoints/internal/pkg/realtime"
	"github.com/anirudh/campuspoints/internal/pkg/validation"
)

type participationStore interface {
	Create(ctx context.Context, p *models.Participation) error
	ListByActivity(ctx context.Context, activityID int64) ([]*models.Participation, error)
	ListByStudent(ctx context.Context, usn string) ([]*models.Participation, error)
}

type activityLookup interface {
	GetByID(ctx context.Context, activityID int64) (*models.Activity, error)
}

// ParticipationService records per-student results for club-wide
// activities.
type ParticipationService interface {
	Record(ctx context.Context, actor models.Actor, req *dto.RecordParticipationRequest) (*models.Participation, error)
	ListByActivity(ctx context.Context, actor models.Actor, activityID int64) ([]*models.Participation, error)
	ListOwn(ctx context.Context, actor models.Actor) ([]*models.Participation, error)
}

type participationServiceImpl struct {
	participations participationStore
	activities     activityLookup
	events         eventPublisher
}

// NewParticipationService creates a new ParticipationService
func NewParticipationService(
	participations participationStore,
	activities activityLookup,
	events eventPublisher,
) ParticipationService {
	return &participationServiceImpl{
		participations: participations,
		activities:     activities,
		events:         events,
	}
}

// Record stores a participation entry for a club-wide activity. Only
// the publishing club may record, and only against its own club-wide
// rows; targeted activities carry their points directly.
func (s *participationServiceImpl) Record(ctx context.Context, actor models.Actor, req *dto.RecordParticipationRequest) (*models.Participation, error) {
	if actor.Role != models.RoleClub || actor.ClubID == nil {
		return nil, apperrors.NewForbiddenError("only a club can record participation")
	}

	if req.Points < 0 {
		return nil, apperrors.NewValidationError("points must not be negative")
	}
	if !validation.IsValidUSN(req.StudentUSN) {
		return nil, apperrors.ErrInvalidUSN
	}

	activity, err := s.activities.GetByID(ctx, req.ActivityID)
	if err != nil {
		return nil, err
	}

	if activity.ClubID == nil || *activity.ClubID != *actor.ClubID {
		return nil, apperrors.NewForbiddenError("activity belongs to another club")
	}
	if !activity.IsClubWide() {
		return nil, apperrors.NewValidationError("participation applies only to club-wide activities")
	}

	participation := &models.Participation{
		ActivityID: req.ActivityID,
		StudentUSN: req.StudentUSN,
		Points:     req.Points,
		Position:   helpers.NilIfEmpty(req.Position),
	}

	if err := s.participations.Create(ctx, participation); err != nil {
		return nil, err
	}

	s.events.Publish(realtime.CollectionActivities, "update", strconv.FormatInt(req.ActivityID, 10))

	logger.Info().
		Int64("activityId", req.ActivityID).
		Str("studentUsn", req.StudentUSN).
		Msg("Participation recorded")

	return participation, nil
}

// ListByActivity returns the participation entries for one activity.
// Staff only; the per-student rows carry other students' results.
func (s *participationServiceImpl) ListByActivity(ctx context.Context, actor models.Actor, activityID int64) ([]*models.Participation, error) {
	if !actor.IsStaff() {
		return nil, apperrors.NewForbiddenError("students cannot list activity participation")
	}

	return s.participations.ListByActivity(ctx, activityID)
}

// ListOwn returns the calling student's own participation records
func (s *participationServiceImpl) ListOwn(ctx context.Context, actor models.Actor) ([]*models.Participation, error) {
	if actor.Role != models.RoleStudent {
		return nil, apperrors.NewForbiddenError("only a student has own participation records")
	}

	return s.participations.ListByStudent(ctx, actor.Key)
}
