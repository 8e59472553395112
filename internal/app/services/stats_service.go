package services

import (
	"context"

	"github.com/anirudh/campuspoints/internal/app/models"
	"github.com/anirudh/campuspoints/internal/app/models/dto"
	"github.com/anirudh/campuspoints/internal/app/visibility"
	"github.com/anirudh/campuspoints/internal/pkg/apperrors"
)

// statsSource is the slice of the activity repository the reporter needs
type statsSource interface {
	CountByStatus(ctx context.Context) (total, pending, approved int, err error)
	ListForStudent(ctx context.Context, usn string) ([]*models.Activity, error)
	SumApprovedPointsForStudent(ctx context.Context, usn string) (int, error)
}

// StatsService derives aggregate counts from the caller's visible
// activity set. The counts always satisfy total = pending + approved.
type StatsService interface {
	Overview(ctx context.Context, actor models.Actor) (*dto.StatsResponse, error)
}

type statsServiceImpl struct {
	activities statsSource
}

// NewStatsService creates a new StatsService
func NewStatsService(activities statsSource) StatsService {
	return &statsServiceImpl{activities: activities}
}

// Overview computes total, pending and approved counts over what the
// actor can see. For a student the response also carries the sum of
// points on their approved activities.
func (s *statsServiceImpl) Overview(ctx context.Context, actor models.Actor) (*dto.StatsResponse, error) {
	switch actor.Role {
	case models.RoleCounselor, models.RoleClub:
		total, pending, approved, err := s.activities.CountByStatus(ctx)
		if err != nil {
			return nil, err
		}
		return &dto.StatsResponse{
			Total:    total,
			Pending:  pending,
			Approved: approved,
		}, nil

	case models.RoleStudent:
		visible, err := s.activities.ListForStudent(ctx, actor.Key)
		if err != nil {
			return nil, err
		}

		resp := &dto.StatsResponse{}
		for _, activity := range visible {
			if !visibility.CanView(actor, activity) {
				continue
			}
			resp.Total++
			if activity.ApprovedStatus {
				resp.Approved++
			} else {
				resp.Pending++
			}
		}

		points, err := s.activities.SumApprovedPointsForStudent(ctx, actor.Key)
		if err != nil {
			return nil, err
		}
		resp.TotalPoints = &points

		return resp, nil

	default:
		return nil, apperrors.ErrPermissionDenied
	}
}
