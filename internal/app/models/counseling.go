package models

import "time"

// Counseling defines an assignment row based on the 'student_counseling'
// table: one student assigned to one counselor. Only the counselor recorded
// on the row may delete it; assignments are never shared or transferred.
type Counseling struct {
	CounselingID string    `json:"counselingId" db:"counseling_id"`
	StudentUSN   string    `json:"studentUsn" db:"student_usn"`
	TeacherID    string    `json:"teacherId" db:"teacher_id"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
