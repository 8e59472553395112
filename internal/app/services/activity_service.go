package services

import (
	"context"
	"strconv"
	"time"

	"github.com/anirudh/campuspoints/internal/app/models"
	"github.com/anirudh/campuspoints/internal/app/models/dto"
	"github.com/anirudh/campuspoints/internal/app/visibility"
	"github.com/anirudh/campuspoints/internal/pkg/apperrors"
	"github.com/anirudh/campuspoints/internal/pkg/logger"
	"github.com/anirudh/campuspoints/internal/pkg/realtime"
	"github.com/anirudh/campuspoints/internal/pkg/validation"
)

// activityStore is the slice of the activity repository the service needs
type activityStore interface {
	Create(ctx context.Context, activity *models.Activity) error
	GetByID(ctx context.Context, activityID int64) (*models.Activity, error)
	ListAll(ctx context.Context) ([]*models.Activity, error)
	ListForStudent(ctx context.Context, usn string) ([]*models.Activity, error)
	ListByClub(ctx context.Context, clubID string) ([]*models.Activity, error)
	Approve(ctx context.Context, activityID int64, teacherID string) error
	SetDocumentURL(ctx context.Context, activityID int64, documentURL string) error
}

type clubCounter interface {
	IncrementActivityCount(ctx context.Context, clubID string) error
}

type studentChecker interface {
	GetByUSN(ctx context.Context, usn string) (*models.Student, error)
}

// eventPublisher decouples services from the realtime hub
type eventPublisher interface {
	Publish(collection, action, id string)
}

// ActivityService implements activity insertion, role-scoped listing,
// approval and document access.
type ActivityService interface {
	Create(ctx context.Context, actor models.Actor, req *dto.CreateActivityRequest) (*models.Activity, error)
	Approve(ctx context.Context, actor models.Actor, activityID int64) (*models.Activity, error)
	ListFor(ctx context.Context, actor models.Actor) ([]*models.Activity, error)
	Get(ctx context.Context, actor models.Actor, activityID int64) (*models.Activity, error)
	DocumentURL(ctx context.Context, actor models.Actor, activityID int64) (string, error)
	AttachDocument(ctx context.Context, actor models.Actor, activityID int64, documentURL string) error
}

type activityServiceImpl struct {
	activities activityStore
	clubs      clubCounter
	students   studentChecker
	events     eventPublisher
}

// NewActivityService creates a new ActivityService
func NewActivityService(
	activities activityStore,
	clubs clubCounter,
	students studentChecker,
	events eventPublisher,
) ActivityService {
	return &activityServiceImpl{
		activities: activities,
		clubs:      clubs,
		students:   students,
		events:     events,
	}
}

// Create inserts a new activity on behalf of a club. Only club actors
// may insert; a targeted activity must name an existing student. The
// club's running activity counter is bumped and an invalidation event
// goes out so open dashboards re-fetch.
func (s *activityServiceImpl) Create(ctx context.Context, actor models.Actor, req *dto.CreateActivityRequest) (*models.Activity, error) {
	if actor.Role != models.RoleClub || actor.ClubID == nil {
		return nil, apperrors.NewForbiddenError("only a club can insert activities")
	}

	if req.Points < 0 {
		return nil, apperrors.NewValidationError("points must not be negative")
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid date, expected YYYY-MM-DD")
	}

	var deadline *time.Time
	if req.Deadline != "" {
		d, err := time.Parse("2006-01-02", req.Deadline)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid deadline, expected YYYY-MM-DD")
		}
		deadline = &d
	}

	var studentUSN *string
	if req.StudentUSN != "" {
		if !validation.IsValidUSN(req.StudentUSN) {
			return nil, apperrors.ErrInvalidUSN
		}
		if _, err := s.students.GetByUSN(ctx, req.StudentUSN); err != nil {
			return nil, err
		}
		usn := req.StudentUSN
		studentUSN = &usn
	}

	activity := &models.Activity{
		ActivityName: req.ActivityName,
		Date:         date,
		Points:       req.Points,
		Deadline:     deadline,
		StudentUSN:   studentUSN,
		ClubID:       actor.ClubID,
	}

	if err := s.activities.Create(ctx, activity); err != nil {
		return nil, err
	}

	if err := s.clubs.IncrementActivityCount(ctx, *actor.ClubID); err != nil {
		// The activity row exists; a stale counter is not worth failing over
		logger.Warn().Err(err).Str("clubId", *actor.ClubID).Msg("Failed to bump club activity counter")
	}

	s.events.Publish(realtime.CollectionActivities, "create", strconv.FormatInt(activity.ActivityID, 10))

	logger.Info().
		Int64("activityId", activity.ActivityID).
		Str("clubId", *actor.ClubID).
		Msg("Activity inserted")

	return activity, nil
}

// Approve marks a pending activity approved on behalf of a staff actor.
// Approval bundles three effects in one step: the status flips, the
// document unlocks for download and the approving teacher is recorded.
// A second approval attempt answers ErrAlreadyApproved.
func (s *activityServiceImpl) Approve(ctx context.Context, actor models.Actor, activityID int64) (*models.Activity, error) {
	if !actor.IsStaff() {
		return nil, apperrors.NewForbiddenError("students cannot approve activities")
	}

	if err := s.activities.Approve(ctx, activityID, actor.Key); err != nil {
		return nil, err
	}

	activity, err := s.activities.GetByID(ctx, activityID)
	if err != nil {
		return nil, err
	}

	s.events.Publish(realtime.CollectionActivities, "approve", strconv.FormatInt(activityID, 10))

	logger.Info().
		Int64("activityId", activityID).
		Str("approvedBy", actor.Key).
		Msg("Activity approved")

	return activity, nil
}

// ListFor returns the activities visible to the actor, newest first.
// Staff see everything; a student sees their own rows plus approved
// club-wide rows.
func (s *activityServiceImpl) ListFor(ctx context.Context, actor models.Actor) ([]*models.Activity, error) {
	switch actor.Role {
	case models.RoleCounselor, models.RoleClub:
		return s.activities.ListAll(ctx)
	case models.RoleStudent:
		return s.activities.ListForStudent(ctx, actor.Key)
	default:
		return nil, apperrors.ErrPermissionDenied
	}
}

// Get retrieves one activity, applying the actor's visibility rule
func (s *activityServiceImpl) Get(ctx context.Context, actor models.Actor, activityID int64) (*models.Activity, error) {
	activity, err := s.activities.GetByID(ctx, activityID)
	if err != nil {
		return nil, err
	}

	if !visibility.CanView(actor, activity) {
		// Hidden rows are indistinguishable from missing rows
		return nil, apperrors.ErrActivityNotFound
	}

	return activity, nil
}

// DocumentURL returns the stored document location if the actor may
// download it. Students can download only after approval unlocks the
// document.
func (s *activityServiceImpl) DocumentURL(ctx context.Context, actor models.Actor, activityID int64) (string, error) {
	activity, err := s.activities.GetByID(ctx, activityID)
	if err != nil {
		return "", err
	}

	if !visibility.CanView(actor, activity) {
		return "", apperrors.ErrActivityNotFound
	}

	if !visibility.CanDownload(actor, activity) {
		return "", apperrors.NewForbiddenError("document is not yet available for download")
	}

	if activity.DocumentURL == nil || *activity.DocumentURL == "" {
		return "", apperrors.NewNotFoundError("activity has no document")
	}

	return *activity.DocumentURL, nil
}

// AttachDocument stores an uploaded document location on an activity.
// Only the publishing club may attach.
func (s *activityServiceImpl) AttachDocument(ctx context.Context, actor models.Actor, activityID int64, documentURL string) error {
	activity, err := s.activities.GetByID(ctx, activityID)
	if err != nil {
		return err
	}

	if actor.Role != models.RoleClub || actor.ClubID == nil ||
		activity.ClubID == nil || *activity.ClubID != *actor.ClubID {
		return apperrors.NewForbiddenError("only the publishing club can attach a document")
	}

	if err := s.activities.SetDocumentURL(ctx, activityID, documentURL); err != nil {
		return err
	}

	s.events.Publish(realtime.CollectionActivities, "update", strconv.FormatInt(activityID, 10))
	return nil
}
