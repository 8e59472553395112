package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/anirudh/campuspoints/internal/app/models"
	"github.com/anirudh/campuspoints/internal/app/models/dto"
	"github.com/anirudh/campuspoints/internal/pkg/apperrors"
	"github.com/anirudh/campuspoints/internal/pkg/auth"
)

func testJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "test",
	})
}

func newTestIdentityService(
	students *fakeStudentRepo,
	teachers *fakeTeacherRepo,
	clubs *fakeClubRepo,
	credentials *fakeCredentialRepo,
) IdentityService {
	return NewIdentityService(students, teachers, clubs, credentials, newFakeTokenRepo(), testJWTService())
}

func TestResolve(t *testing.T) {
	student := &models.Student{USN: "1RV22CS001", Email: "asha@college.edu"}
	counselor := &models.Teacher{TeacherID: "T101", Email: "counselor@college.edu"}
	coordinator := &models.Teacher{TeacherID: "T202", Email: "coordinator@college.edu"}
	club := &models.Club{ClubID: "robotics", Name: "Robotics Club", FacultyCoordinatorID: "T202"}

	svc := newTestIdentityService(
		newFakeStudentRepo(student),
		newFakeTeacherRepo(counselor, coordinator),
		newFakeClubRepo(club),
		newFakeCredentialRepo(),
	)

	tests := []struct {
		name       string
		email      string
		wantRole   models.Role
		wantKey    string
		wantClubID string
		wantErr    error
	}{
		{
			name:     "student email resolves to student actor",
			email:    "asha@college.edu",
			wantRole: models.RoleStudent,
			wantKey:  "1RV22CS001",
		},
		{
			name:     "teacher without club resolves to counselor",
			email:    "counselor@college.edu",
			wantRole: models.RoleCounselor,
			wantKey:  "T101",
		},
		{
			name:       "coordinating teacher resolves to club",
			email:      "coordinator@college.edu",
			wantRole:   models.RoleClub,
			wantKey:    "T202",
			wantClubID: "robotics",
		},
		{
			name:    "unknown email answers identity not found",
			email:   "nobody@college.edu",
			wantErr: apperrors.ErrIdentityNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actor, err := svc.Resolve(context.Background(), tt.email)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Resolve() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve() unexpected error: %v", err)
			}
			if actor.Role != tt.wantRole {
				t.Errorf("Resolve() role = %v, want %v", actor.Role, tt.wantRole)
			}
			if actor.Key != tt.wantKey {
				t.Errorf("Resolve() key = %v, want %v", actor.Key, tt.wantKey)
			}
			if tt.wantClubID != "" {
				if actor.ClubID == nil || *actor.ClubID != tt.wantClubID {
					t.Errorf("Resolve() clubID = %v, want %v", actor.ClubID, tt.wantClubID)
				}
			}
		})
	}
}

func TestResolvePrefersTeacherOverStudent(t *testing.T) {
	// One email present in both directories resolves as the teacher
	shared := "both@college.edu"
	svc := newTestIdentityService(
		newFakeStudentRepo(&models.Student{USN: "1RV22CS009", Email: shared}),
		newFakeTeacherRepo(&models.Teacher{TeacherID: "T900", Email: shared}),
		newFakeClubRepo(),
		newFakeCredentialRepo(),
	)

	actor, err := svc.Resolve(context.Background(), shared)
	if err != nil {
		t.Fatalf("Resolve() unexpected error: %v", err)
	}
	if actor.Role != models.RoleCounselor {
		t.Errorf("Resolve() role = %v, want %v", actor.Role, models.RoleCounselor)
	}
}

func TestRegisterStudentAndLogin(t *testing.T) {
	students := newFakeStudentRepo()
	credentials := newFakeCredentialRepo()
	svc := newTestIdentityService(students, newFakeTeacherRepo(), newFakeClubRepo(), credentials)

	req := &dto.RegisterStudentRequest{
		USN:       "1RV22CS001",
		FirstName: "Asha",
		LastName:  "Rao",
		Dept:      "CSE",
		Year:      2022,
		Email:     "asha@college.edu",
		DOB:       "2004-07-15",
		CollegeID: "default",
		Password:  "s3cretPass!",
	}

	actor, err := svc.RegisterStudent(context.Background(), req)
	if err != nil {
		t.Fatalf("RegisterStudent() unexpected error: %v", err)
	}
	if actor.Role != models.RoleStudent || actor.Key != "1RV22CS001" {
		t.Fatalf("RegisterStudent() actor = %+v", actor)
	}

	tokens, err := svc.Login(context.Background(), req.Email, req.Password)
	if err != nil {
		t.Fatalf("Login() unexpected error: %v", err)
	}
	if tokens.Role != string(models.RoleStudent) || tokens.Key != "1RV22CS001" {
		t.Errorf("Login() role/key = %s/%s", tokens.Role, tokens.Key)
	}
	if tokens.AccessToken == "" || tokens.RefreshToken == "" {
		t.Error("Login() returned empty token pair")
	}

	if _, err := svc.Login(context.Background(), req.Email, "wrong-password"); !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Errorf("Login() with wrong password error = %v, want %v", err, apperrors.ErrInvalidCredentials)
	}
}

func TestRegisterStudentValidation(t *testing.T) {
	svc := newTestIdentityService(newFakeStudentRepo(), newFakeTeacherRepo(), newFakeClubRepo(), newFakeCredentialRepo())

	tests := []struct {
		name    string
		mutate  func(*dto.RegisterStudentRequest)
		wantErr error
	}{
		{
			name:    "malformed USN",
			mutate:  func(r *dto.RegisterStudentRequest) { r.USN = "not-a-usn" },
			wantErr: apperrors.ErrInvalidUSN,
		},
		{
			name:    "malformed email",
			mutate:  func(r *dto.RegisterStudentRequest) { r.Email = "not-an-email" },
			wantErr: apperrors.ErrValidationFailed,
		},
		{
			name:    "malformed date of birth",
			mutate:  func(r *dto.RegisterStudentRequest) { r.DOB = "15/07/2004" },
			wantErr: apperrors.ErrValidationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &dto.RegisterStudentRequest{
				USN:       "1RV22CS001",
				FirstName: "Asha",
				LastName:  "Rao",
				Dept:      "CSE",
				Year:      2022,
				Email:     "asha@college.edu",
				DOB:       "2004-07-15",
				CollegeID: "default",
				Password:  "s3cretPass!",
			}
			tt.mutate(req)

			if _, err := svc.RegisterStudent(context.Background(), req); !errors.Is(err, tt.wantErr) {
				t.Errorf("RegisterStudent() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRefreshToken(t *testing.T) {
	teachers := newFakeTeacherRepo(&models.Teacher{TeacherID: "T101", Email: "counselor@college.edu"})
	credentials := newFakeCredentialRepo()
	tokens := newFakeTokenRepo()
	svc := NewIdentityService(newFakeStudentRepo(), teachers, newFakeClubRepo(), credentials, tokens, testJWTService())

	hash, err := auth.HashPassword("s3cretPass!")
	if err != nil {
		t.Fatal(err)
	}
	if err := credentials.Create(context.Background(), "counselor@college.edu", hash); err != nil {
		t.Fatal(err)
	}

	pair, err := svc.Login(context.Background(), "counselor@college.edu", "s3cretPass!")
	if err != nil {
		t.Fatalf("Login() unexpected error: %v", err)
	}

	refreshed, err := svc.RefreshToken(context.Background(), pair.RefreshToken)
	if err != nil {
		t.Fatalf("RefreshToken() unexpected error: %v", err)
	}
	if refreshed.Key != "T101" {
		t.Errorf("RefreshToken() key = %s, want T101", refreshed.Key)
	}

	// A consumed refresh token cannot be replayed
	if _, err := svc.RefreshToken(context.Background(), pair.RefreshToken); !errors.Is(err, apperrors.ErrTokenInvalid) {
		t.Errorf("RefreshToken() replay error = %v, want %v", err, apperrors.ErrTokenInvalid)
	}
}
