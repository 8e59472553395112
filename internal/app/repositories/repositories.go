package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	StudentRepository       *StudentRepository
	TeacherRepository       *TeacherRepository
	ClubRepository          *ClubRepository
	CredentialRepository    *CredentialRepository
	TokenRepository         *TokenRepository
	ActivityRepository      *ActivityRepository
	CounselingRepository    *CounselingRepository
	ParticipationRepository *ParticipationRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		StudentRepository:       NewStudentRepository(db),
		TeacherRepository:       NewTeacherRepository(db),
		ClubRepository:          NewClubRepository(db),
		CredentialRepository:    NewCredentialRepository(db),
		TokenRepository:         NewTokenRepository(db),
		ActivityRepository:      NewActivityRepository(db),
		CounselingRepository:    NewCounselingRepository(db),
		ParticipationRepository: NewParticipationRepository(db),
	}
}
