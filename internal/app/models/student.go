package models

import "time"

// Student defines the student model based on the 'students' table.
// USN is the immutable identity key; profile fields are mutable only by the
// owning student or administratively.
type Student struct {
	USN       string    `json:"usn" db:"usn" example:"1RV22CS001"`
	FirstName string    `json:"firstName" db:"first_name" example:"Asha"`
	LastName  string    `json:"lastName" db:"last_name" example:"Rao"`
	Dept      string    `json:"dept" db:"dept" example:"CSE"`
	Year      int       `json:"year" db:"year" example:"2022"`
	Email     string    `json:"email" db:"email" example:"asha.rao@college.edu"`
	DOB       time.Time `json:"dob" db:"dob"`
	CollegeID string    `json:"collegeId" db:"college_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Teacher defines the counselor model based on the 'teachers' table
type Teacher struct {
	TeacherID string    `json:"teacherId" db:"teacher_id" example:"T101"`
	FirstName string    `json:"firstName" db:"first_name"`
	LastName  string    `json:"lastName" db:"last_name"`
	Dept      string    `json:"dept" db:"dept"`
	Email     string    `json:"email" db:"email"`
	CollegeID string    `json:"collegeId" db:"college_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// College defines a college row referenced by students and teachers
type College struct {
	CollegeID string    `json:"collegeId" db:"college_id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
