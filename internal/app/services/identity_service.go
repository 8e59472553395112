package services

import (
	"context"
	"errors"
	"time"

	"github.com/anirudh/campuspoints/internal/app/models"
	"github.com/anirudh/campuspoints/internal/app/models/dto"
	"github.com/anirudh/campuspoints/internal/pkg/apperrors"
	"github.com/anirudh/campuspoints/internal/pkg/auth"
	"github.com/anirudh/campuspoints/internal/pkg/logger"
	"github.com/anirudh/campuspoints/internal/pkg/validation"
)

// studentDirectory is the slice of the student repository the identity
// service needs.
type studentDirectory interface {
	Create(ctx context.Context, student *models.Student) error
	GetByEmail(ctx context.Context, email string) (*models.Student, error)
	GetByUSN(ctx context.Context, usn string) (*models.Student, error)
}

type teacherDirectory interface {
	Create(ctx context.Context, teacher *models.Teacher) error
	GetByEmail(ctx context.Context, email string) (*models.Teacher, error)
	GetByID(ctx context.Context, teacherID string) (*models.Teacher, error)
}

type clubLookup interface {
	GetByCoordinatorID(ctx context.Context, teacherID string) (*models.Club, error)
}

type credentialStore interface {
	Create(ctx context.Context, email, passwordHash string) error
	GetPasswordHash(ctx context.Context, email string) (string, error)
}

type refreshTokenStore interface {
	Store(ctx context.Context, token, email string, expiresAt time.Time) error
	Consume(ctx context.Context, token string) (string, error)
}

// IdentityService resolves emails to role-scoped actors and handles
// registration and login.
type IdentityService interface {
	Resolve(ctx context.Context, email string) (models.Actor, error)
	RegisterStudent(ctx context.Context, req *dto.RegisterStudentRequest) (models.Actor, error)
	RegisterCounselor(ctx context.Context, req *dto.RegisterCounselorRequest) (models.Actor, error)
	Login(ctx context.Context, email, password string) (*dto.TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
}

type identityServiceImpl struct {
	students    studentDirectory
	teachers    teacherDirectory
	clubs       clubLookup
	credentials credentialStore
	tokens      refreshTokenStore
	jwtService  *auth.JWTService
}

// NewIdentityService creates a new IdentityService
func NewIdentityService(
	students studentDirectory,
	teachers teacherDirectory,
	clubs clubLookup,
	credentials credentialStore,
	tokens refreshTokenStore,
	jwtService *auth.JWTService,
) IdentityService {
	return &identityServiceImpl{
		students:    students,
		teachers:    teachers,
		clubs:       clubs,
		credentials: credentials,
		tokens:      tokens,
		jwtService:  jwtService,
	}
}

// Resolve maps an email to an actor. Teachers are checked first; a
// teacher coordinating a club acts as that club, otherwise as a
// counselor. Emails found in neither directory resolve to
// ErrIdentityNotFound so callers can tell "unknown account" apart from
// plain lookup failures.
func (s *identityServiceImpl) Resolve(ctx context.Context, email string) (models.Actor, error) {
	teacher, err := s.teachers.GetByEmail(ctx, email)
	if err == nil {
		club, clubErr := s.clubs.GetByCoordinatorID(ctx, teacher.TeacherID)
		if clubErr == nil {
			return models.Actor{
				Role:   models.RoleClub,
				Key:    teacher.TeacherID,
				Email:  teacher.Email,
				ClubID: &club.ClubID,
			}, nil
		}
		if !errors.Is(clubErr, apperrors.ErrClubNotFound) {
			return models.Actor{}, clubErr
		}
		return models.Actor{
			Role:  models.RoleCounselor,
			Key:   teacher.TeacherID,
			Email: teacher.Email,
		}, nil
	}
	if !errors.Is(err, apperrors.ErrTeacherNotFound) {
		return models.Actor{}, err
	}

	student, err := s.students.GetByEmail(ctx, email)
	if err == nil {
		return models.Actor{
			Role:  models.RoleStudent,
			Key:   student.USN,
			Email: student.Email,
		}, nil
	}
	if !errors.Is(err, apperrors.ErrStudentNotFound) {
		return models.Actor{}, err
	}

	return models.Actor{}, apperrors.ErrIdentityNotFound
}

// RegisterStudent creates a student directory row plus credentials
func (s *identityServiceImpl) RegisterStudent(ctx context.Context, req *dto.RegisterStudentRequest) (models.Actor, error) {
	if !validation.IsValidEmail(req.Email) {
		return models.Actor{}, apperrors.NewValidationError("invalid email format")
	}
	if !validation.IsValidUSN(req.USN) {
		return models.Actor{}, apperrors.ErrInvalidUSN
	}

	dob, err := time.Parse("2006-01-02", req.DOB)
	if err != nil {
		return models.Actor{}, apperrors.NewValidationError("invalid date of birth, expected YYYY-MM-DD")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return models.Actor{}, err
	}

	student := &models.Student{
		USN:       req.USN,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Dept:      req.Dept,
		Year:      req.Year,
		Email:     req.Email,
		DOB:       dob,
		CollegeID: req.CollegeID,
	}

	if err := s.students.Create(ctx, student); err != nil {
		return models.Actor{}, err
	}

	if err := s.credentials.Create(ctx, req.Email, hash); err != nil {
		return models.Actor{}, err
	}

	logger.Info().Str("usn", student.USN).Msg("Student registered")

	return models.Actor{
		Role:  models.RoleStudent,
		Key:   student.USN,
		Email: student.Email,
	}, nil
}

// RegisterCounselor creates a teacher directory row plus credentials
func (s *identityServiceImpl) RegisterCounselor(ctx context.Context, req *dto.RegisterCounselorRequest) (models.Actor, error) {
	if !validation.IsValidEmail(req.Email) {
		return models.Actor{}, apperrors.NewValidationError("invalid email format")
	}
	if !validation.IsValidTeacherID(req.TeacherID) {
		return models.Actor{}, apperrors.NewValidationError("invalid teacher ID format")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return models.Actor{}, err
	}

	teacher := &models.Teacher{
		TeacherID: req.TeacherID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Dept:      req.Dept,
		Email:     req.Email,
		CollegeID: req.CollegeID,
	}

	if err := s.teachers.Create(ctx, teacher); err != nil {
		return models.Actor{}, err
	}

	if err := s.credentials.Create(ctx, req.Email, hash); err != nil {
		return models.Actor{}, err
	}

	logger.Info().Str("teacherId", teacher.TeacherID).Msg("Counselor registered")

	return models.Actor{
		Role:  models.RoleCounselor,
		Key:   teacher.TeacherID,
		Email: teacher.Email,
	}, nil
}

// Login verifies credentials, resolves the actor and issues a token pair
func (s *identityServiceImpl) Login(ctx context.Context, email, password string) (*dto.TokenResponse, error) {
	hash, err := s.credentials.GetPasswordHash(ctx, email)
	if err != nil {
		return nil, err
	}

	if !auth.CheckPassword(hash, password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	actor, err := s.Resolve(ctx, email)
	if err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, actor)
}

// RefreshToken trades a stored refresh token for a fresh pair. The
// actor is re-resolved so a role change since issuance takes effect.
func (s *identityServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	email, err := s.tokens.Consume(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	actor, err := s.Resolve(ctx, email)
	if err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, actor)
}

func (s *identityServiceImpl) issueTokens(ctx context.Context, actor models.Actor) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(actor)
	if err != nil {
		return nil, err
	}

	if err := s.tokens.Store(ctx, refreshToken, actor.Email, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		ExpiresIn:        expiresIn,
		RefreshExpiresIn: refreshExpiresIn,
		Role:             string(actor.Role),
		Key:              actor.Key,
	}, nil
}
