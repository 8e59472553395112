package models

// Role defines the domain role of an authenticated actor
type Role string

const (
	RoleStudent   Role = "STUDENT"
	RoleCounselor Role = "COUNSELOR"
	RoleClub      Role = "CLUB"
)

// Actor is a resolved principal: a role plus its role-specific key.
// Key holds the USN for a student and the teacher id for a counselor or a
// club coordinator. ClubID is set only for RoleClub.
type Actor struct {
	Role   Role    `json:"role"`
	Key    string  `json:"key"`
	Email  string  `json:"email"`
	ClubID *string `json:"clubId,omitempty"`
}

// IsStaff reports whether the actor carries counselor-level privileges.
// A club coordinator is a counselor-shaped identity with a club attached.
func (a Actor) IsStaff() bool {
	return a.Role == RoleCounselor || a.Role == RoleClub
}
