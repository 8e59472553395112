// Package visibility holds the access decisions for activities. Every screen
// and service routes through these predicates; none of them re-implement the
// rules locally.
package visibility

import (
	"github.com/anirudh/campuspoints/internal/app/models"
)

// CanView reports whether the actor may see the activity at all.
//
// Counselors and clubs are globally privileged reviewers: they see every
// activity system-wide. The counseling assignment relation scopes
// student-management actions, not review visibility.
//
// A student sees an activity when they own it, or when it is club-wide
// (no owning student) and already approved.
func CanView(actor models.Actor, activity *models.Activity) bool {
	switch actor.Role {
	case models.RoleCounselor, models.RoleClub:
		return true
	case models.RoleStudent:
		if activity.OwnedBy(actor.Key) {
			return true
		}
		return activity.IsClubWide() && activity.ApprovedStatus
	default:
		return false
	}
}

// CanDownload reports whether the actor may fetch the activity's document.
// Staff can always download; a student only once the activity is approved
// and the students_can_download flag was set alongside the approval.
func CanDownload(actor models.Actor, activity *models.Activity) bool {
	switch actor.Role {
	case models.RoleCounselor, models.RoleClub:
		return true
	case models.RoleStudent:
		return CanView(actor, activity) && activity.ApprovedStatus && activity.StudentsCanDownload
	default:
		return false
	}
}

// CanApprove reports whether the actor may approve the activity. Approval
// authority is global for staff (not limited to assigned students) and only
// applies while the activity is still pending. Students never approve.
func CanApprove(actor models.Actor, activity *models.Activity) bool {
	switch actor.Role {
	case models.RoleCounselor, models.RoleClub:
		return !activity.ApprovedStatus
	case models.RoleStudent:
		return false
	default:
		return false
	}
}

// Filter returns the subset of activities the actor may view, preserving the
// input order. Listings arrive ordered by date descending; ties carry no
// stable relative order and callers must not rely on one.
func Filter(actor models.Actor, activities []*models.Activity) []*models.Activity {
	visible := make([]*models.Activity, 0, len(activities))
	for _, a := range activities {
		if CanView(actor, a) {
			visible = append(visible, a)
		}
	}
	return visible
}
