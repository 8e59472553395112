package services

import (
	"context"
	"testing"
	"time"

	"github.com/anirudh/campuspoints/internal/app/models"
)

func TestStatsOverview(t *testing.T) {
	date := func(day int) time.Time { return time.Date(2024, 5, day, 0, 0, 0, 0, time.UTC) }

	activities := newFakeActivityRepo(
		&models.Activity{ActivityID: 1, Date: date(1), Points: 10, StudentUSN: strPtr("1RV22CS001"), ApprovedStatus: true},
		&models.Activity{ActivityID: 2, Date: date(2), Points: 5, StudentUSN: strPtr("1RV22CS001")},
		&models.Activity{ActivityID: 3, Date: date(3), Points: 20, StudentUSN: strPtr("1RV22CS002"), ApprovedStatus: true},
		&models.Activity{ActivityID: 4, Date: date(4), Points: 8, ApprovedStatus: true},
		&models.Activity{ActivityID: 5, Date: date(5), Points: 3},
	)
	svc := NewStatsService(activities)

	t.Run("staff counts cover the whole ledger", func(t *testing.T) {
		stats, err := svc.Overview(context.Background(), counselorActor)
		if err != nil {
			t.Fatalf("Overview() unexpected error: %v", err)
		}

		if stats.Total != 5 || stats.Pending != 2 || stats.Approved != 3 {
			t.Errorf("Overview() = %d/%d/%d, want 5/2/3", stats.Total, stats.Pending, stats.Approved)
		}
		if stats.Total != stats.Pending+stats.Approved {
			t.Error("total != pending + approved")
		}
		if stats.TotalPoints != nil {
			t.Error("staff stats must not carry total points")
		}
	})

	t.Run("student counts cover only the visible set", func(t *testing.T) {
		stats, err := svc.Overview(context.Background(), studentActor)
		if err != nil {
			t.Fatalf("Overview() unexpected error: %v", err)
		}

		// Visible: own 1 and 2, plus approved club-wide 4
		if stats.Total != 3 || stats.Pending != 1 || stats.Approved != 2 {
			t.Errorf("Overview() = %d/%d/%d, want 3/1/2", stats.Total, stats.Pending, stats.Approved)
		}
		if stats.Total != stats.Pending+stats.Approved {
			t.Error("total != pending + approved")
		}

		// Points sum only the approved owned rows, not club-wide ones
		if stats.TotalPoints == nil || *stats.TotalPoints != 10 {
			t.Errorf("Overview() totalPoints = %v, want 10", stats.TotalPoints)
		}
	})
}
