package dto

// LoginRequest represents a login request for any role
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"asha.rao@college.edu"`
	Password string `json:"password" binding:"required,min=8" example:"s3cretPass!"`
}

// RegisterStudentRequest represents a student signup request
type RegisterStudentRequest struct {
	USN       string `json:"usn" binding:"required" example:"1RV22CS001"`
	FirstName string `json:"firstName" binding:"required" example:"Asha"`
	LastName  string `json:"lastName" binding:"required" example:"Rao"`
	Dept      string `json:"dept" binding:"required" example:"CSE"`
	Year      int    `json:"year" binding:"required" example:"2022"`
	Email     string `json:"email" binding:"required,email" example:"asha.rao@college.edu"`
	DOB       string `json:"dob" binding:"required" example:"2004-07-15"`
	CollegeID string `json:"collegeId" binding:"required"`
	Password  string `json:"password" binding:"required,min=8"`
}

// RegisterCounselorRequest represents a counselor signup request
type RegisterCounselorRequest struct {
	TeacherID string `json:"teacherId" binding:"required" example:"T101"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Dept      string `json:"dept" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	CollegeID string `json:"collegeId" binding:"required"`
	Password  string `json:"password" binding:"required,min=8"`
}

// RefreshTokenRequest carries the opaque refresh token issued at login
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// TokenResponse represents the token pair returned on successful login
type TokenResponse struct {
	AccessToken      string `json:"accessToken"`
	RefreshToken     string `json:"refreshToken"`
	ExpiresIn        int    `json:"expiresIn" example:"3600"`
	RefreshExpiresIn int    `json:"refreshExpiresIn" example:"2592000"`
	Role             string `json:"role" example:"STUDENT"`
	Key              string `json:"key" example:"1RV22CS001"`
}
