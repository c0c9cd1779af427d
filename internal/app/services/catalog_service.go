package services

import (
	"context"
	"strings"

	"github.com/nucesstack/notestack/internal/app/models"
	"github.com/nucesstack/notestack/internal/app/models/dto"
	"github.com/nucesstack/notestack/internal/app/repositories"
	"github.com/nucesstack/notestack/internal/pkg/apperrors"
	"github.com/nucesstack/notestack/internal/pkg/helpers"
	"github.com/nucesstack/notestack/internal/pkg/linkid"
)

// SemesterStore is the semester persistence surface the catalog needs.
type SemesterStore interface {
	Create(ctx context.Context, semester *models.Semester) error
	GetAll(ctx context.Context) ([]*models.Semester, error)
	GetByID(ctx context.Context, id int64) (*models.Semester, error)
	GetBySlug(ctx context.Context, slug string) (*models.Semester, error)
}

// SubjectStore is the subject persistence surface the catalog needs.
type SubjectStore interface {
	Create(ctx context.Context, subject *models.Subject) error
	ListBySemester(ctx context.Context, semesterID int64, approvedOnly bool) ([]*repositories.SubjectWithCount, error)
	ListAll(ctx context.Context) ([]*repositories.SubjectWithCount, error)
	GetByID(ctx context.Context, id int64) (*models.Subject, error)
	GetBySlug(ctx context.Context, slug string) (*models.Subject, error)
	Delete(ctx context.Context, id int64) error
}

// CatalogService serves the semester/subject hierarchy and the public
// note listings under it.
type CatalogService struct {
	semesterRepo SemesterStore
	subjectRepo  SubjectStore
	noteRepo     NoteStore
}

// NewCatalogService creates a new catalog service instance
func NewCatalogService(semesterRepo SemesterStore, subjectRepo SubjectStore, noteRepo NoteStore) *CatalogService {
	return &CatalogService{
		semesterRepo: semesterRepo,
		subjectRepo:  subjectRepo,
		noteRepo:     noteRepo,
	}
}

// ListSemesters returns all semesters.
func (s *CatalogService) ListSemesters(ctx context.Context) ([]dto.SemesterResponse, error) {
	semesters, err := s.semesterRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.SemesterResponse, 0, len(semesters))
	for _, sem := range semesters {
		out = append(out, dto.SemesterResponse{ID: sem.ID, Name: sem.Name, Slug: sem.Slug})
	}
	return out, nil
}

// CreateSemester creates a semester with a slug derived from its name.
func (s *CatalogService) CreateSemester(ctx context.Context, req *dto.CreateSemesterRequest) (*dto.SemesterResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewMissingFieldError("name")
	}

	semester := &models.Semester{
		Name: name,
		Slug: helpers.Slugify(name),
	}
	if err := s.semesterRepo.Create(ctx, semester); err != nil {
		return nil, err
	}

	return &dto.SemesterResponse{ID: semester.ID, Name: semester.Name, Slug: semester.Slug}, nil
}

// ListSubjectsBySemesterSlug returns a semester's subjects for the
// public catalog. Note counts only include approved notes.
func (s *CatalogService) ListSubjectsBySemesterSlug(ctx context.Context, slug string) ([]dto.SubjectResponse, error) {
	semester, err := s.semesterRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	subjects, err := s.subjectRepo.ListBySemester(ctx, semester.ID, true)
	if err != nil {
		return nil, err
	}
	return toSubjectResponses(subjects), nil
}

// ListSubjects returns every subject with full note counts (admin view).
func (s *CatalogService) ListSubjects(ctx context.Context) ([]dto.SubjectResponse, error) {
	subjects, err := s.subjectRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return toSubjectResponses(subjects), nil
}

// CreateSubject creates a subject under an existing semester.
func (s *CatalogService) CreateSubject(ctx context.Context, req *dto.CreateSubjectRequest) (*dto.SubjectResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewMissingFieldError("name")
	}

	if _, err := s.semesterRepo.GetByID(ctx, req.SemesterID); err != nil {
		return nil, err
	}

	subject := &models.Subject{
		Name:        name,
		Slug:        helpers.Slugify(name),
		SemesterID:  req.SemesterID,
		Description: strings.TrimSpace(req.Description),
	}
	if err := s.subjectRepo.Create(ctx, subject); err != nil {
		return nil, err
	}

	return &dto.SubjectResponse{
		ID:          subject.ID,
		Name:        subject.Name,
		Slug:        subject.Slug,
		SemesterID:  subject.SemesterID,
		Description: subject.Description,
	}, nil
}

// DeleteSubject removes a subject by ID.
func (s *CatalogService) DeleteSubject(ctx context.Context, id int64) error {
	return s.subjectRepo.Delete(ctx, id)
}

// ListNotesBySubjectSlug returns a subject's approved notes for the
// public catalog. Pending notes never appear here.
func (s *CatalogService) ListNotesBySubjectSlug(ctx context.Context, slug string) ([]dto.NoteResponse, error) {
	subject, err := s.subjectRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	notes, err := s.noteRepo.ListBySubject(ctx, subject.ID, true)
	if err != nil {
		return nil, err
	}

	out := make([]dto.NoteResponse, 0, len(notes))
	for _, n := range notes {
		out = append(out, toNoteResponse(n))
	}
	return out, nil
}

func toSubjectResponses(subjects []*repositories.SubjectWithCount) []dto.SubjectResponse {
	out := make([]dto.SubjectResponse, 0, len(subjects))
	for _, sub := range subjects {
		out = append(out, dto.SubjectResponse{
			ID:          sub.ID,
			Name:        sub.Name,
			Slug:        sub.Slug,
			SemesterID:  sub.SemesterID,
			Description: sub.Description,
			NotesCount:  sub.NotesCount,
		})
	}
	return out
}

func toNoteResponse(n *models.Note) dto.NoteResponse {
	resp := dto.NoteResponse{
		ID:          n.ID,
		Title:       n.Title,
		Description: n.Description,
		SubjectID:   n.SubjectID,
		SemesterID:  n.SemesterID,
		PdfID:       n.PdfID,
		VideoID:     n.VideoID,
		Approved:    n.Approved,
		Uploader:    n.Uploader,
	}
	if n.PdfID != "" {
		resp.PdfURL = linkid.DriveViewerURL(n.PdfID)
	}
	if n.VideoID != "" {
		resp.VideoURL = linkid.YouTubeWatchURL(n.VideoID)
	}
	return resp
}
