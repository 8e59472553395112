package dto

// AssignStudentRequest represents a counselor assigning a student to themselves
type AssignStudentRequest struct {
	StudentUSN string `json:"studentUsn" binding:"required" example:"1RV22CS001"`
}

// AssignedStudentsResponse lists the USNs currently assigned to a counselor
type AssignedStudentsResponse struct {
	StudentUSNs []string `json:"studentUsns"`
}
