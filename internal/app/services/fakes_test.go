package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/anirudh/campuspoints/internal/app/models"
	"github.com/anirudh/campuspoints/internal/pkg/apperrors"
)

// In-memory fakes for the repository interfaces the services consume.

type fakeStudentRepo struct {
	students map[string]*models.Student // keyed by USN
}

func newFakeStudentRepo(students ...*models.Student) *fakeStudentRepo {
	r := &fakeStudentRepo{students: make(map[string]*models.Student)}
	for _, s := range students {
		r.students[s.USN] = s
	}
	return r
}

func (r *fakeStudentRepo) Create(_ context.Context, student *models.Student) error {
	if _, ok := r.students[student.USN]; ok {
		return apperrors.ErrUSNAlreadyExists
	}
	for _, existing := range r.students {
		if existing.Email == student.Email {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	r.students[student.USN] = student
	return nil
}

func (r *fakeStudentRepo) GetByUSN(_ context.Context, usn string) (*models.Student, error) {
	if s, ok := r.students[usn]; ok {
		return s, nil
	}
	return nil, apperrors.ErrStudentNotFound
}

func (r *fakeStudentRepo) GetByEmail(_ context.Context, email string) (*models.Student, error) {
	for _, s := range r.students {
		if s.Email == email {
			return s, nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

func (r *fakeStudentRepo) GetAll(_ context.Context) ([]*models.Student, error) {
	var out []*models.Student
	for _, s := range r.students {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].USN < out[j].USN })
	return out, nil
}

type fakeTeacherRepo struct {
	teachers map[string]*models.Teacher // keyed by teacher ID
}

func newFakeTeacherRepo(teachers ...*models.Teacher) *fakeTeacherRepo {
	r := &fakeTeacherRepo{teachers: make(map[string]*models.Teacher)}
	for _, t := range teachers {
		r.teachers[t.TeacherID] = t
	}
	return r
}

func (r *fakeTeacherRepo) Create(_ context.Context, teacher *models.Teacher) error {
	for _, existing := range r.teachers {
		if existing.Email == teacher.Email {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	r.teachers[teacher.TeacherID] = teacher
	return nil
}

func (r *fakeTeacherRepo) GetByID(_ context.Context, teacherID string) (*models.Teacher, error) {
	if t, ok := r.teachers[teacherID]; ok {
		return t, nil
	}
	return nil, apperrors.ErrTeacherNotFound
}

func (r *fakeTeacherRepo) GetByEmail(_ context.Context, email string) (*models.Teacher, error) {
	for _, t := range r.teachers {
		if t.Email == email {
			return t, nil
		}
	}
	return nil, apperrors.ErrTeacherNotFound
}

type fakeClubRepo struct {
	clubs map[string]*models.Club // keyed by club ID
}

func newFakeClubRepo(clubs ...*models.Club) *fakeClubRepo {
	r := &fakeClubRepo{clubs: make(map[string]*models.Club)}
	for _, c := range clubs {
		r.clubs[c.ClubID] = c
	}
	return r
}

func (r *fakeClubRepo) Create(_ context.Context, club *models.Club) error {
	r.clubs[club.ClubID] = club
	return nil
}

func (r *fakeClubRepo) GetByID(_ context.Context, clubID string) (*models.Club, error) {
	if c, ok := r.clubs[clubID]; ok {
		return c, nil
	}
	return nil, apperrors.ErrClubNotFound
}

func (r *fakeClubRepo) GetByCoordinatorID(_ context.Context, teacherID string) (*models.Club, error) {
	for _, c := range r.clubs {
		if c.FacultyCoordinatorID == teacherID {
			return c, nil
		}
	}
	return nil, apperrors.ErrClubNotFound
}

func (r *fakeClubRepo) GetAll(_ context.Context) ([]*models.Club, error) {
	var out []*models.Club
	for _, c := range r.clubs {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeClubRepo) IncrementActivityCount(_ context.Context, clubID string) error {
	c, ok := r.clubs[clubID]
	if !ok {
		return apperrors.ErrClubNotFound
	}
	c.NoOfActivity++
	return nil
}

type fakeCredentialRepo struct {
	hashes map[string]string // keyed by email
}

func newFakeCredentialRepo() *fakeCredentialRepo {
	return &fakeCredentialRepo{hashes: make(map[string]string)}
}

func (r *fakeCredentialRepo) Create(_ context.Context, email, passwordHash string) error {
	if _, ok := r.hashes[email]; ok {
		return apperrors.ErrEmailAlreadyExists
	}
	r.hashes[email] = passwordHash
	return nil
}

func (r *fakeCredentialRepo) GetPasswordHash(_ context.Context, email string) (string, error) {
	if h, ok := r.hashes[email]; ok {
		return h, nil
	}
	return "", apperrors.ErrInvalidCredentials
}

type fakeTokenRepo struct {
	tokens map[string]string // token -> email
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: make(map[string]string)}
}

func (r *fakeTokenRepo) Store(_ context.Context, token, email string, _ time.Time) error {
	r.tokens[token] = email
	return nil
}

func (r *fakeTokenRepo) Consume(_ context.Context, token string) (string, error) {
	email, ok := r.tokens[token]
	if !ok {
		return "", apperrors.ErrTokenInvalid
	}
	delete(r.tokens, token)
	return email, nil
}

type fakeActivityRepo struct {
	nextID     int64
	activities map[int64]*models.Activity
}

func newFakeActivityRepo(activities ...*models.Activity) *fakeActivityRepo {
	r := &fakeActivityRepo{nextID: 1, activities: make(map[int64]*models.Activity)}
	for _, a := range activities {
		if a.ActivityID == 0 {
			a.ActivityID = r.nextID
		}
		if a.ActivityID >= r.nextID {
			r.nextID = a.ActivityID + 1
		}
		r.activities[a.ActivityID] = a
	}
	return r
}

func (r *fakeActivityRepo) Create(_ context.Context, activity *models.Activity) error {
	activity.ActivityID = r.nextID
	activity.CreatedAt = time.Now()
	r.nextID++
	r.activities[activity.ActivityID] = activity
	return nil
}

func (r *fakeActivityRepo) GetByID(_ context.Context, activityID int64) (*models.Activity, error) {
	if a, ok := r.activities[activityID]; ok {
		return a, nil
	}
	return nil, apperrors.ErrActivityNotFound
}

func (r *fakeActivityRepo) sorted() []*models.Activity {
	var out []*models.Activity
	for _, a := range r.activities {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}

func (r *fakeActivityRepo) ListAll(_ context.Context) ([]*models.Activity, error) {
	return r.sorted(), nil
}

func (r *fakeActivityRepo) ListForStudent(_ context.Context, usn string) ([]*models.Activity, error) {
	var out []*models.Activity
	for _, a := range r.sorted() {
		if a.OwnedBy(usn) || (a.IsClubWide() && a.ApprovedStatus) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeActivityRepo) ListByClub(_ context.Context, clubID string) ([]*models.Activity, error) {
	var out []*models.Activity
	for _, a := range r.sorted() {
		if a.ClubID != nil && *a.ClubID == clubID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeActivityRepo) Approve(_ context.Context, activityID int64, teacherID string) error {
	a, ok := r.activities[activityID]
	if !ok {
		return apperrors.ErrActivityNotFound
	}
	if a.ApprovedStatus {
		return apperrors.ErrAlreadyApproved
	}
	a.ApprovedStatus = true
	a.StudentsCanDownload = true
	a.ApprovedByTeacherID = &teacherID
	return nil
}

func (r *fakeActivityRepo) SetDocumentURL(_ context.Context, activityID int64, documentURL string) error {
	a, ok := r.activities[activityID]
	if !ok {
		return apperrors.ErrActivityNotFound
	}
	a.DocumentURL = &documentURL
	return nil
}

func (r *fakeActivityRepo) CountByStatus(_ context.Context) (total, pending, approved int, err error) {
	for _, a := range r.activities {
		total++
		if a.ApprovedStatus {
			approved++
		} else {
			pending++
		}
	}
	return total, pending, approved, nil
}

func (r *fakeActivityRepo) SumApprovedPointsForStudent(_ context.Context, usn string) (int, error) {
	sum := 0
	for _, a := range r.activities {
		if a.OwnedBy(usn) && a.ApprovedStatus {
			sum += a.Points
		}
	}
	return sum, nil
}

type assignmentKey struct {
	teacherID  string
	studentUSN string
}

type fakeCounselingRepo struct {
	links map[assignmentKey]bool
}

func newFakeCounselingRepo() *fakeCounselingRepo {
	return &fakeCounselingRepo{links: make(map[assignmentKey]bool)}
}

func (r *fakeCounselingRepo) Assign(_ context.Context, teacherID, studentUSN string) error {
	r.links[assignmentKey{teacherID, studentUSN}] = true
	return nil
}

func (r *fakeCounselingRepo) Unassign(_ context.Context, teacherID, studentUSN string) (bool, error) {
	key := assignmentKey{teacherID, studentUSN}
	if !r.links[key] {
		return false, nil
	}
	delete(r.links, key)
	return true, nil
}

func (r *fakeCounselingRepo) ListAssignedUSNs(_ context.Context, teacherID string) ([]string, error) {
	var usns []string
	for key := range r.links {
		if key.teacherID == teacherID {
			usns = append(usns, key.studentUSN)
		}
	}
	sort.Strings(usns)
	return usns, nil
}

func (r *fakeCounselingRepo) IsAssigned(_ context.Context, teacherID, studentUSN string) (bool, error) {
	return r.links[assignmentKey{teacherID, studentUSN}], nil
}

type fakeParticipationRepo struct {
	nextID         int64
	participations []*models.Participation
}

func newFakeParticipationRepo() *fakeParticipationRepo {
	return &fakeParticipationRepo{nextID: 1}
}

func (r *fakeParticipationRepo) Create(_ context.Context, p *models.Participation) error {
	p.ParticipationID = r.nextID
	p.CreatedAt = time.Now()
	r.nextID++
	r.participations = append(r.participations, p)
	return nil
}

func (r *fakeParticipationRepo) ListByActivity(_ context.Context, activityID int64) ([]*models.Participation, error) {
	var out []*models.Participation
	for _, p := range r.participations {
		if p.ActivityID == activityID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeParticipationRepo) ListByStudent(_ context.Context, usn string) ([]*models.Participation, error) {
	var out []*models.Participation
	for _, p := range r.participations {
		if p.StudentUSN == usn {
			out = append(out, p)
		}
	}
	return out, nil
}

// fakePublisher records published invalidation events
type fakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

type publishedEvent struct {
	collection string
	action     string
	id         string
}

func (p *fakePublisher) Publish(collection, action, id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{collection, action, id})
}

func (p *fakePublisher) published() []publishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]publishedEvent(nil), p.events...)
}
