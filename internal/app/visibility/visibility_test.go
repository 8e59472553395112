package visibility

import (
	"testing"
	"time"

	"github.com/anirudh/campuspoints/internal/app/models"
)

func strPtr(s string) *string { return &s }

func activity(owner *string, approved, canDownload bool) *models.Activity {
	return &models.Activity{
		ActivityID:          1,
		ActivityName:        "Hackathon",
		Date:                time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Points:              10,
		ApprovedStatus:      approved,
		StudentsCanDownload: canDownload,
		StudentUSN:          owner,
	}
}

var (
	student      = models.Actor{Role: models.RoleStudent, Key: "1RV22CS001"}
	otherStudent = models.Actor{Role: models.RoleStudent, Key: "1RV22CS002"}
	counselor    = models.Actor{Role: models.RoleCounselor, Key: "T101"}
	club         = models.Actor{Role: models.RoleClub, Key: "T200"}
)

func TestCanView(t *testing.T) {
	tests := []struct {
		name     string
		actor    models.Actor
		activity *models.Activity
		want     bool
	}{
		{"counselor sees pending", counselor, activity(nil, false, false), true},
		{"counselor sees student-scoped", counselor, activity(strPtr("1RV22CS001"), false, false), true},
		{"club sees everything", club, activity(strPtr("1RV22CS001"), false, false), true},
		{"owner sees own pending", student, activity(strPtr("1RV22CS001"), false, false), true},
		{"owner sees own approved", student, activity(strPtr("1RV22CS001"), true, true), true},
		{"other student blind to scoped", otherStudent, activity(strPtr("1RV22CS001"), true, true), false},
		{"student sees club-wide approved", student, activity(nil, true, true), true},
		{"student blind to club-wide pending", student, activity(nil, false, false), false},
		{"unknown role denied", models.Actor{Role: "EVALUATOR"}, activity(nil, true, true), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanView(tt.actor, tt.activity); got != tt.want {
				t.Errorf("CanView() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanDownload(t *testing.T) {
	tests := []struct {
		name     string
		actor    models.Actor
		activity *models.Activity
		want     bool
	}{
		{"counselor always", counselor, activity(strPtr("1RV22CS001"), false, false), true},
		{"club always", club, activity(nil, false, false), true},
		{"student approved and flagged", student, activity(strPtr("1RV22CS001"), true, true), true},
		{"student approved but flag unset", student, activity(strPtr("1RV22CS001"), true, false), false},
		{"student pending", student, activity(strPtr("1RV22CS001"), false, false), false},
		{"non-owner never", otherStudent, activity(strPtr("1RV22CS001"), true, true), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanDownload(tt.actor, tt.activity); got != tt.want {
				t.Errorf("CanDownload() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanApprove(t *testing.T) {
	tests := []struct {
		name     string
		actor    models.Actor
		activity *models.Activity
		want     bool
	}{
		{"counselor approves pending", counselor, activity(nil, false, false), true},
		{"counselor approves unassigned student's activity", counselor, activity(strPtr("1RV22CS999"), false, false), true},
		{"club approves pending", club, activity(nil, false, false), true},
		{"staff cannot re-approve", counselor, activity(nil, true, true), false},
		{"student never approves", student, activity(strPtr("1RV22CS001"), false, false), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanApprove(tt.actor, tt.activity); got != tt.want {
				t.Errorf("CanApprove() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilter(t *testing.T) {
	all := []*models.Activity{
		activity(strPtr("1RV22CS001"), false, false),
		activity(strPtr("1RV22CS002"), true, true),
		activity(nil, true, true),
		activity(nil, false, false),
	}

	got := Filter(student, all)
	if len(got) != 2 {
		t.Fatalf("Filter() returned %d activities, want 2", len(got))
	}
	if !got[0].OwnedBy(student.Key) {
		t.Errorf("first visible activity should be the student's own")
	}
	if !got[1].IsClubWide() || !got[1].ApprovedStatus {
		t.Errorf("second visible activity should be the approved club-wide one")
	}

	if n := len(Filter(counselor, all)); n != len(all) {
		t.Errorf("counselor sees %d activities, want %d", n, len(all))
	}
}
