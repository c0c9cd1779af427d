package services

import (
	"context"
	"time"

	"github.com/nucesstack/notestack/internal/app/models"
	"github.com/nucesstack/notestack/internal/app/models/dto"
	"github.com/nucesstack/notestack/internal/app/repositories"
	"github.com/nucesstack/notestack/internal/pkg/apperrors"
	"github.com/nucesstack/notestack/internal/pkg/helpers"
	"github.com/nucesstack/notestack/internal/pkg/notify"
	"github.com/nucesstack/notestack/internal/pkg/upload"
)

type fakeSemesterStore struct {
	semesters []*models.Semester
	nextID    int64
}

func (f *fakeSemesterStore) Create(_ context.Context, semester *models.Semester) error {
	for _, s := range f.semesters {
		if s.Slug == semester.Slug {
			return apperrors.ErrResourceAlreadyExists
		}
	}
	f.nextID++
	semester.ID = f.nextID
	f.semesters = append(f.semesters, semester)
	return nil
}

func (f *fakeSemesterStore) GetAll(_ context.Context) ([]*models.Semester, error) {
	return f.semesters, nil
}

func (f *fakeSemesterStore) GetByID(_ context.Context, id int64) (*models.Semester, error) {
	for _, s := range f.semesters {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, apperrors.ErrSemesterNotFound
}

func (f *fakeSemesterStore) GetBySlug(_ context.Context, slug string) (*models.Semester, error) {
	for _, s := range f.semesters {
		if s.Slug == slug {
			return s, nil
		}
	}
	return nil, apperrors.ErrSemesterNotFound
}

type fakeSubjectStore struct {
	subjects []*models.Subject
	// note counts per subject keyed by ID: [0]=all, [1]=approved
	counts map[int64][2]int64
	nextID int64
}

func (f *fakeSubjectStore) Create(_ context.Context, subject *models.Subject) error {
	for _, s := range f.subjects {
		if s.Slug == subject.Slug {
			return apperrors.ErrResourceAlreadyExists
		}
	}
	f.nextID++
	subject.ID = f.nextID
	f.subjects = append(f.subjects, subject)
	return nil
}

func (f *fakeSubjectStore) withCount(s *models.Subject, approvedOnly bool) *repositories.SubjectWithCount {
	c := f.counts[s.ID]
	count := c[0]
	if approvedOnly {
		count = c[1]
	}
	return &repositories.SubjectWithCount{Subject: *s, NotesCount: count}
}

func (f *fakeSubjectStore) ListBySemester(_ context.Context, semesterID int64, approvedOnly bool) ([]*repositories.SubjectWithCount, error) {
	var out []*repositories.SubjectWithCount
	for _, s := range f.subjects {
		if s.SemesterID == semesterID {
			out = append(out, f.withCount(s, approvedOnly))
		}
	}
	return out, nil
}

func (f *fakeSubjectStore) ListAll(_ context.Context) ([]*repositories.SubjectWithCount, error) {
	var out []*repositories.SubjectWithCount
	for _, s := range f.subjects {
		out = append(out, f.withCount(s, false))
	}
	return out, nil
}

func (f *fakeSubjectStore) GetByID(_ context.Context, id int64) (*models.Subject, error) {
	for _, s := range f.subjects {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, apperrors.ErrSubjectNotFound
}

func (f *fakeSubjectStore) GetBySlug(_ context.Context, slug string) (*models.Subject, error) {
	for _, s := range f.subjects {
		if s.Slug == slug {
			return s, nil
		}
	}
	return nil, apperrors.ErrSubjectNotFound
}

func (f *fakeSubjectStore) Delete(_ context.Context, id int64) error {
	for i, s := range f.subjects {
		if s.ID == id {
			f.subjects = append(f.subjects[:i], f.subjects[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrSubjectNotFound
}

type fakeNoteStore struct {
	notes     []*models.Note
	nextID    int64
	createErr error
}

func (f *fakeNoteStore) Create(_ context.Context, note *models.Note) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	f.nextID++
	note.ID = f.nextID
	clone := *note
	f.notes = append(f.notes, &clone)
	return note.ID, nil
}

func (f *fakeNoteStore) GetByID(_ context.Context, id int64) (*models.Note, error) {
	for _, n := range f.notes {
		if n.ID == id {
			clone := *n
			return &clone, nil
		}
	}
	return nil, apperrors.ErrNoteNotFound
}

func (f *fakeNoteStore) ListBySubject(_ context.Context, subjectID int64, approvedOnly bool) ([]*models.Note, error) {
	var out []*models.Note
	for _, n := range f.notes {
		if n.SubjectID != subjectID {
			continue
		}
		if approvedOnly && !n.Approved {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func (f *fakeNoteStore) List(_ context.Context, params repositories.ListNotesParams) ([]*models.Note, dto.PaginationInfo, error) {
	var out []*models.Note
	for _, n := range f.notes {
		if params.SubjectID != nil && n.SubjectID != *params.SubjectID {
			continue
		}
		if params.Approved != nil && n.Approved != *params.Approved {
			continue
		}
		out = append(out, n)
	}
	return out, helpers.NewPaginationInfo(int64(len(out)), params.Page, params.Size), nil
}

func (f *fakeNoteStore) Update(_ context.Context, note *models.Note) error {
	for i, n := range f.notes {
		if n.ID == note.ID {
			clone := *note
			f.notes[i] = &clone
			return nil
		}
	}
	return apperrors.ErrNoteNotFound
}

func (f *fakeNoteStore) Approve(_ context.Context, id int64) error {
	for _, n := range f.notes {
		if n.ID == id {
			n.Approved = true
			return nil
		}
	}
	return apperrors.ErrNoteNotFound
}

func (f *fakeNoteStore) Delete(_ context.Context, id int64) error {
	for i, n := range f.notes {
		if n.ID == id {
			f.notes = append(f.notes[:i], f.notes[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNoteNotFound
}

func (f *fakeNoteStore) CountAll(_ context.Context, approvedOnly bool) (int64, error) {
	var count int64
	for _, n := range f.notes {
		if approvedOnly && !n.Approved {
			continue
		}
		count++
	}
	return count, nil
}

func (f *fakeNoteStore) CountBySemester(_ context.Context, approvedOnly bool) ([]repositories.SemesterNotesCount, error) {
	byID := map[int64]int64{}
	var order []int64
	for _, n := range f.notes {
		if approvedOnly && !n.Approved {
			continue
		}
		if _, seen := byID[n.SemesterID]; !seen {
			order = append(order, n.SemesterID)
		}
		byID[n.SemesterID]++
	}
	var out []repositories.SemesterNotesCount
	for _, id := range order {
		out = append(out, repositories.SemesterNotesCount{SemesterID: id, Count: byID[id]})
	}
	return out, nil
}

type fakeForwarder struct {
	result  *upload.Result
	err     error
	calls   int
	lastReq upload.Request
}

func (f *fakeForwarder) Forward(_ context.Context, req upload.Request) (*upload.Result, error) {
	f.calls++
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeNotifier struct {
	messages []notify.Message
}

func (f *fakeNotifier) Publish(msg notify.Message) {
	f.messages = append(f.messages, msg)
}

type fakeAuditStore struct {
	notes   *fakeNoteStore
	records []*models.DeniedNoteRecord
	err     error
}

func (f *fakeAuditStore) DenyNote(ctx context.Context, record *models.DeniedNoteRecord) error {
	if f.err != nil {
		return f.err
	}
	if err := f.notes.Delete(ctx, record.NoteID); err != nil {
		return err
	}
	record.ID = int64(len(f.records) + 1)
	f.records = append(f.records, record)
	return nil
}

func (f *fakeAuditStore) ListDenials(_ context.Context, limit uint64) ([]*models.DeniedNoteRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*models.DeniedNoteRecord, 0, len(f.records))
	for i := len(f.records) - 1; i >= 0 && uint64(len(out)) < limit; i-- {
		out = append(out, f.records[i])
	}
	return out, nil
}

type fakeAdminStore struct {
	admins []*models.Admin
}

func (f *fakeAdminStore) GetByUsername(_ context.Context, username string) (*models.Admin, error) {
	for _, a := range f.admins {
		if a.Username == username {
			return a, nil
		}
	}
	return nil, apperrors.ErrAdminNotFound
}

func (f *fakeAdminStore) GetByID(_ context.Context, id int64) (*models.Admin, error) {
	for _, a := range f.admins {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, apperrors.ErrAdminNotFound
}

type storedToken struct {
	adminID int64
	expiry  time.Time
	revoked bool
}

type fakeTokenStore struct {
	tokens map[string]*storedToken
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: map[string]*storedToken{}}
}

func (f *fakeTokenStore) CreateToken(_ context.Context, token string, adminID int64, expiryDate time.Time) error {
	f.tokens[token] = &storedToken{adminID: adminID, expiry: expiryDate}
	return nil
}

func (f *fakeTokenStore) GetTokenByValue(_ context.Context, token string) (int64, time.Time, error) {
	t, ok := f.tokens[token]
	if !ok {
		return 0, time.Time{}, apperrors.ErrTokenNotFound
	}
	if t.revoked {
		return t.adminID, time.Time{}, apperrors.ErrTokenRevoked
	}
	if t.expiry.Before(time.Now()) {
		return 0, time.Time{}, apperrors.ErrTokenExpired
	}
	return t.adminID, t.expiry, nil
}

func (f *fakeTokenStore) RevokeToken(_ context.Context, token string) error {
	t, ok := f.tokens[token]
	if !ok {
		return apperrors.ErrTokenNotFound
	}
	t.revoked = true
	return nil
}

func (f *fakeTokenStore) RevokeAllAdminTokens(_ context.Context, adminID int64) error {
	for _, t := range f.tokens {
		if t.adminID == adminID {
			t.revoked = true
		}
	}
	return nil
}
