package models

import "time"

// Club defines a club row based on the 'clubs' table.
// One club has exactly one faculty coordinator; a teacher coordinates at
// most one club. The schema does not enforce the reverse direction with a
// uniqueness constraint, so club creation validates it.
type Club struct {
	ClubID               string    `json:"clubId" db:"club_id"`
	Name                 string    `json:"name" db:"name"`
	FacultyCoordinatorID string    `json:"facultyCoordinatorId" db:"faculty_coordinator_id"`
	NoOfActivity         int       `json:"noOfActivity" db:"no_of_activity"`
	CreatedAt            time.Time `json:"createdAt" db:"created_at"`
}
