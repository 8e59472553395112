package models

import "time"

// Activity defines an activity row based on the 'activities' table.
//
// A nil StudentUSN marks a club-wide activity: visible to every student once
// approved. A non-nil StudentUSN scopes the activity to that student.
// ApprovedStatus transitions false -> true exactly once; there is no
// rejection or un-approval path. StudentsCanDownload starts false and is set
// true only in the same mutation that approves.
type Activity struct {
	ActivityID          int64      `json:"activityId" db:"activity_id"`
	ActivityName        string     `json:"activityName" db:"activity_name" example:"Hackathon"`
	Date                time.Time  `json:"date" db:"date"`
	Points              int        `json:"points" db:"points" example:"10"`
	Deadline            *time.Time `json:"deadline,omitempty" db:"deadline"`
	DocumentURL         *string    `json:"documentUrl,omitempty" db:"document_url"`
	ApprovedStatus      bool       `json:"approvedStatus" db:"approved_status"`
	StudentsCanDownload bool       `json:"studentsCanDownload" db:"students_can_download"`
	StudentUSN          *string    `json:"studentUsn,omitempty" db:"student_usn"`
	ClubID              *string    `json:"clubId,omitempty" db:"club_id"`
	ApprovedByTeacherID *string    `json:"approvedByTeacherId,omitempty" db:"approved_by_teacher_id"`
	CreatedAt           time.Time  `json:"createdAt" db:"created_at"`
}

// IsClubWide reports whether the activity has no owning student.
func (a *Activity) IsClubWide() bool {
	return a.StudentUSN == nil
}

// OwnedBy reports whether the activity is scoped to the given USN.
func (a *Activity) OwnedBy(usn string) bool {
	return a.StudentUSN != nil && *a.StudentUSN == usn
}

// Participation defines a per-student refinement of involvement in an
// activity, carrying its own points/position/document.
type Participation struct {
	ParticipationID int64     `json:"participationId" db:"participation_id"`
	ActivityID      int64     `json:"activityId" db:"activity_id"`
	StudentUSN      string    `json:"studentUsn" db:"student_usn"`
	Points          int       `json:"points" db:"points"`
	Position        *string   `json:"position,omitempty" db:"position"`
	DocumentURL     *string   `json:"documentUrl,omitempty" db:"document_url"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
}
