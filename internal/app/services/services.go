package services

import (
	"github.com/anirudh/campuspoints/internal/app/repositories"
	"github.com/anirudh/campuspoints/internal/pkg/auth"
	"github.com/anirudh/campuspoints/internal/pkg/realtime"
)

// Services holds all the service instances
type Services struct {
	IdentityService      IdentityService
	ActivityService      ActivityService
	CounselingService    CounselingService
	StatsService         StatsService
	ParticipationService ParticipationService
	ClubService          ClubService
}

// NewServices wires all services over the repositories, the JWT service
// and the realtime hub.
func NewServices(repos *repositories.Repositories, jwtService *auth.JWTService, hub *realtime.Hub) *Services {
	return &Services{
		IdentityService: NewIdentityService(
			repos.StudentRepository,
			repos.TeacherRepository,
			repos.ClubRepository,
			repos.CredentialRepository,
			repos.TokenRepository,
			jwtService,
		),
		ActivityService: NewActivityService(
			repos.ActivityRepository,
			repos.ClubRepository,
			repos.StudentRepository,
			hub,
		),
		CounselingService: NewCounselingService(
			repos.CounselingRepository,
			repos.StudentRepository,
			hub,
		),
		StatsService: NewStatsService(repos.ActivityRepository),
		ParticipationService: NewParticipationService(
			repos.ParticipationRepository,
			repos.ActivityRepository,
			hub,
		),
		ClubService: NewClubService(
			repos.ClubRepository,
			repos.TeacherRepository,
		),
	}
}
