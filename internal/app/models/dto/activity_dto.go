package dto

// CreateActivityRequest represents the multipart form fields for inserting a
// new activity. Date and deadline are calendar dates (YYYY-MM-DD); the
// deadline is optional and advisory only. The document arrives as a separate
// multipart file part handled by the controller.
type CreateActivityRequest struct {
	ActivityName string `form:"activityName" binding:"required" example:"Hackathon"`
	Date         string `form:"date" binding:"required" example:"2024-05-01"`
	Points       int    `form:"points" binding:"min=0" example:"10"`
	Deadline     string `form:"deadline" example:"2024-04-20"`
	StudentUSN   string `form:"studentUsn" example:"1RV22CS001"`
}

// RecordParticipationRequest represents a per-student participation record
// carrying its own points and position.
type RecordParticipationRequest struct {
	ActivityID int64  `json:"activityId" binding:"required"`
	StudentUSN string `json:"studentUsn" binding:"required"`
	Points     int    `json:"points" binding:"min=0"`
	Position   string `json:"position" example:"2nd"`
}

// StatsResponse represents the aggregate counts derived from the caller's
// visible activity set. TotalPoints is present only for student actors.
type StatsResponse struct {
	Total       int  `json:"total"`
	Pending     int  `json:"pending"`
	Approved    int  `json:"approved"`
	TotalPoints *int `json:"totalPoints,omitempty"`
}
