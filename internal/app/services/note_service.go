package services

import (
	"context"
	"strings"

	"github.com/nucesstack/notestack/internal/app/models"
	"github.com/nucesstack/notestack/internal/app/models/dto"
	"github.com/nucesstack/notestack/internal/app/repositories"
	"github.com/nucesstack/notestack/internal/pkg/apperrors"
	"github.com/nucesstack/notestack/internal/pkg/linkid"
)

// NoteStore is the note persistence surface shared by the catalog,
// note and moderation services.
type NoteStore interface {
	Create(ctx context.Context, note *models.Note) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Note, error)
	ListBySubject(ctx context.Context, subjectID int64, approvedOnly bool) ([]*models.Note, error)
	List(ctx context.Context, params repositories.ListNotesParams) ([]*models.Note, dto.PaginationInfo, error)
	Update(ctx context.Context, note *models.Note) error
	Approve(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
	CountAll(ctx context.Context, approvedOnly bool) (int64, error)
	CountBySemester(ctx context.Context, approvedOnly bool) ([]repositories.SemesterNotesCount, error)
}

// NoteService handles panel-side note management. Notes created here
// bypass moderation and go live immediately.
type NoteService struct {
	noteRepo    NoteStore
	subjectRepo SubjectStore
}

// NewNoteService creates a new note service instance
func NewNoteService(noteRepo NoteStore, subjectRepo SubjectStore) *NoteService {
	return &NoteService{
		noteRepo:    noteRepo,
		subjectRepo: subjectRepo,
	}
}

// normalizeLinks resolves the request's share links (or bare IDs) to
// stored identifiers. Either may be empty; both empty is rejected.
func normalizeLinks(pdfLink, videoLink string) (pdfID, videoID string, err error) {
	pdfLink = strings.TrimSpace(pdfLink)
	videoLink = strings.TrimSpace(videoLink)

	if pdfLink == "" && videoLink == "" {
		return "", "", apperrors.NewBadRequestError("a note needs at least a PDF link or a video link")
	}

	if pdfLink != "" {
		pdfID, err = linkid.ExtractDriveFileID(pdfLink)
		if err != nil {
			return "", "", err
		}
	}
	if videoLink != "" {
		videoID, err = linkid.ExtractYouTubeVideoID(videoLink)
		if err != nil {
			return "", "", err
		}
	}
	return pdfID, videoID, nil
}

// CreateNote creates an approved note directly.
func (s *NoteService) CreateNote(ctx context.Context, req *dto.CreateNoteRequest, uploader string) (*dto.NoteResponse, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperrors.NewMissingFieldError("title")
	}

	subject, err := s.subjectRepo.GetByID(ctx, req.SubjectID)
	if err != nil {
		return nil, err
	}

	pdfID, videoID, err := normalizeLinks(req.PdfLink, req.VideoLink)
	if err != nil {
		return nil, err
	}

	note := &models.Note{
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		SubjectID:   subject.ID,
		SemesterID:  subject.SemesterID,
		PdfID:       pdfID,
		VideoID:     videoID,
		Approved:    true,
		Uploader:    uploader,
	}
	if _, err := s.noteRepo.Create(ctx, note); err != nil {
		return nil, err
	}

	resp := toNoteResponse(note)
	return &resp, nil
}

// GetNote retrieves one note by ID.
func (s *NoteService) GetNote(ctx context.Context, id int64) (*dto.NoteResponse, error) {
	note, err := s.noteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toNoteResponse(note)
	return &resp, nil
}

// ListNotes returns a paginated note list, optionally scoped to one
// subject.
func (s *NoteService) ListNotes(ctx context.Context, subjectID *int64, page, size int) (*dto.NoteListResponse, error) {
	notes, pagination, err := s.noteRepo.List(ctx, repositories.ListNotesParams{
		SubjectID: subjectID,
		Page:      page,
		Size:      size,
	})
	if err != nil {
		return nil, err
	}

	out := make([]dto.NoteResponse, 0, len(notes))
	for _, n := range notes {
		out = append(out, toNoteResponse(n))
	}
	return &dto.NoteListResponse{Notes: out, PaginationInfo: pagination}, nil
}

// ListNotesBySubjectID returns all notes under a subject, pending
// included (admin view).
func (s *NoteService) ListNotesBySubjectID(ctx context.Context, subjectID int64) ([]dto.NoteResponse, error) {
	if _, err := s.subjectRepo.GetByID(ctx, subjectID); err != nil {
		return nil, err
	}

	notes, err := s.noteRepo.ListBySubject(ctx, subjectID, false)
	if err != nil {
		return nil, err
	}

	out := make([]dto.NoteResponse, 0, len(notes))
	for _, n := range notes {
		out = append(out, toNoteResponse(n))
	}
	return out, nil
}

// UpdateNote rewrites a note's metadata and identifiers. The note's
// subject and semester are immutable; moving a note means recreating
// it.
func (s *NoteService) UpdateNote(ctx context.Context, id int64, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error) {
	note, err := s.noteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperrors.NewMissingFieldError("title")
	}

	pdfID, videoID, err := normalizeLinks(req.PdfLink, req.VideoLink)
	if err != nil {
		return nil, err
	}

	note.Title = title
	note.Description = strings.TrimSpace(req.Description)
	note.PdfID = pdfID
	note.VideoID = videoID

	if err := s.noteRepo.Update(ctx, note); err != nil {
		return nil, err
	}

	resp := toNoteResponse(note)
	return &resp, nil
}

// DeleteNote removes a note by ID.
func (s *NoteService) DeleteNote(ctx context.Context, id int64) error {
	return s.noteRepo.Delete(ctx, id)
}

// NotesCount returns the published note count plus per-semester counts.
// Pending submissions stay out of the numbers until approved.
func (s *NoteService) NotesCount(ctx context.Context) (*dto.NotesCountResponse, []dto.NotesCountResponse, error) {
	total, err := s.noteRepo.CountAll(ctx, true)
	if err != nil {
		return nil, nil, err
	}

	perSemester, err := s.noteRepo.CountBySemester(ctx, true)
	if err != nil {
		return nil, nil, err
	}

	breakdown := make([]dto.NotesCountResponse, 0, len(perSemester))
	for _, c := range perSemester {
		breakdown = append(breakdown, dto.NotesCountResponse{SemesterID: c.SemesterID, Count: c.Count})
	}

	return &dto.NotesCountResponse{Count: total}, breakdown, nil
}
