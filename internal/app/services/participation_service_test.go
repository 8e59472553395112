package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/anirudh/campuspoints/internal/app/models"
	"github.com/anirudh/campuspoints/internal/app/models/dto"
	"github.com/anirudh/campuspoints/internal/pkg/apperrors"
)

func newTestParticipationService() (ParticipationService, *fakeParticipationRepo) {
	participations := newFakeParticipationRepo()
	activities := newFakeActivityRepo(
		&models.Activity{ActivityID: 1, ActivityName: "Hackathon", Date: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), ClubID: strPtr("robotics")},
		&models.Activity{ActivityID: 2, ActivityName: "Targeted", Date: time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC), StudentUSN: strPtr("1RV22CS001"), ClubID: strPtr("robotics")},
		&models.Activity{ActivityID: 3, ActivityName: "Other club", Date: time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC), ClubID: strPtr("chess")},
	)
	return NewParticipationService(participations, activities, &fakePublisher{}), participations
}

func TestParticipationRecord(t *testing.T) {
	tests := []struct {
		name    string
		actor   models.Actor
		req     dto.RecordParticipationRequest
		wantErr error
	}{
		{
			name:  "club records against its club-wide activity",
			actor: clubActor("robotics"),
			req:   dto.RecordParticipationRequest{ActivityID: 1, StudentUSN: "1RV22CS001", Points: 5, Position: "2nd"},
		},
		{
			name:    "targeted activity rejected",
			actor:   clubActor("robotics"),
			req:     dto.RecordParticipationRequest{ActivityID: 2, StudentUSN: "1RV22CS001", Points: 5},
			wantErr: apperrors.ErrValidationFailed,
		},
		{
			name:    "other club's activity rejected",
			actor:   clubActor("robotics"),
			req:     dto.RecordParticipationRequest{ActivityID: 3, StudentUSN: "1RV22CS001", Points: 5},
			wantErr: apperrors.ErrPermissionDenied,
		},
		{
			name:    "counselor cannot record",
			actor:   counselorActor,
			req:     dto.RecordParticipationRequest{ActivityID: 1, StudentUSN: "1RV22CS001", Points: 5},
			wantErr: apperrors.ErrPermissionDenied,
		},
		{
			name:    "negative points rejected",
			actor:   clubActor("robotics"),
			req:     dto.RecordParticipationRequest{ActivityID: 1, StudentUSN: "1RV22CS001", Points: -5},
			wantErr: apperrors.ErrValidationFailed,
		},
		{
			name:    "malformed USN rejected",
			actor:   clubActor("robotics"),
			req:     dto.RecordParticipationRequest{ActivityID: 1, StudentUSN: "nope", Points: 5},
			wantErr: apperrors.ErrInvalidUSN,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestParticipationService()

			p, err := svc.Record(context.Background(), tt.actor, &tt.req)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Record() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Record() unexpected error: %v", err)
			}
			if p.ParticipationID == 0 {
				t.Error("Record() did not assign an ID")
			}
			if p.Position == nil || *p.Position != "2nd" {
				t.Errorf("Record() position = %v, want 2nd", p.Position)
			}
		})
	}
}

func TestParticipationListing(t *testing.T) {
	svc, _ := newTestParticipationService()

	for _, usn := range []string{"1RV22CS001", "1RV22CS002"} {
		if _, err := svc.Record(context.Background(), clubActor("robotics"), &dto.RecordParticipationRequest{
			ActivityID: 1, StudentUSN: usn, Points: 5,
		}); err != nil {
			t.Fatal(err)
		}
	}

	t.Run("staff list by activity", func(t *testing.T) {
		got, err := svc.ListByActivity(context.Background(), counselorActor, 1)
		if err != nil {
			t.Fatalf("ListByActivity() unexpected error: %v", err)
		}
		if len(got) != 2 {
			t.Errorf("ListByActivity() returned %d entries, want 2", len(got))
		}
	})

	t.Run("student blocked from activity listing", func(t *testing.T) {
		if _, err := svc.ListByActivity(context.Background(), studentActor, 1); !errors.Is(err, apperrors.ErrPermissionDenied) {
			t.Errorf("ListByActivity() error = %v, want %v", err, apperrors.ErrPermissionDenied)
		}
	})

	t.Run("student lists own entries", func(t *testing.T) {
		got, err := svc.ListOwn(context.Background(), studentActor)
		if err != nil {
			t.Fatalf("ListOwn() unexpected error: %v", err)
		}
		if len(got) != 1 || got[0].StudentUSN != "1RV22CS001" {
			t.Errorf("ListOwn() = %+v, want one entry for 1RV22CS001", got)
		}
	})
}
