package services

import (
	"context"

	"github.com/nucesstack/notestack/internal/app/models"
	"github.com/nucesstack/notestack/internal/app/models/dto"
	"github.com/nucesstack/notestack/internal/app/repositories"
	"github.com/nucesstack/notestack/internal/pkg/logger"
	"github.com/nucesstack/notestack/internal/pkg/notify"
)

// DenialStore persists the audit trail of denied submissions.
type DenialStore interface {
	DenyNote(ctx context.Context, record *models.DeniedNoteRecord) error
	ListDenials(ctx context.Context, limit uint64) ([]*models.DeniedNoteRecord, error)
}

// ModerationService handles the review queue: listing pending notes
// and approving or denying them.
type ModerationService struct {
	noteRepo  NoteStore
	auditRepo DenialStore
	notifier  notify.Notifier
}

// NewModerationService creates a new moderation service instance
func NewModerationService(noteRepo NoteStore, auditRepo DenialStore, notifier notify.Notifier) *ModerationService {
	return &ModerationService{
		noteRepo:  noteRepo,
		auditRepo: auditRepo,
		notifier:  notifier,
	}
}

// ListPending returns the paginated review queue, oldest decisions
// last.
func (s *ModerationService) ListPending(ctx context.Context, page, size int) (*dto.NoteListResponse, error) {
	pending := false
	notes, pagination, err := s.noteRepo.List(ctx, repositories.ListNotesParams{
		Approved: &pending,
		Page:     page,
		Size:     size,
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

// Approve publishes a pending note. Approving an already approved
// note succeeds without side effects beyond the notification.
func (s *ModerationService) Approve(ctx context.Context, noteID int64, approvedBy string) (*dto.NoteResponse, error) {
	if err := s.noteRepo.Approve(ctx, noteID); err != nil {
		return nil, err
	}

	note, err := s.noteRepo.GetByID(ctx, noteID)
	if err != nil {
		return nil, err
	}

	s.notifier.Publish(notify.Message{
		Title: "Note approved",
		Body:  note.Title + " approved by " + approvedBy,
	})

	logger.Info().Int64("noteId", noteID).Str("approvedBy", approvedBy).Msg("Note approved")

	resp := toNoteResponse(note)
	return &resp, nil
}

// Deny removes a pending note. The audit row and the removal commit
// together; if the audit write fails the note stays in the queue.
func (s *ModerationService) Deny(ctx context.Context, noteID int64, deniedBy string) error {
	note, err := s.noteRepo.GetByID(ctx, noteID)
	if err != nil {
		return err
	}

	record := &models.DeniedNoteRecord{
		NoteID:   note.ID,
		Title:    note.Title,
		PdfID:    note.PdfID,
		VideoID:  note.VideoID,
		Uploader: note.Uploader,
		DeniedBy: deniedBy,
	}
	if err := s.auditRepo.DenyNote(ctx, record); err != nil {
		return err
	}

	s.notifier.Publish(notify.Message{
		Title: "Note denied",
		Body:  note.Title + " denied by " + deniedBy,
	})

	logger.Info().Int64("noteId", noteID).Str("deniedBy", deniedBy).Msg("Note denied and removed")
	return nil
}

// ListDenials returns the denial audit trail, newest first.
func (s *ModerationService) ListDenials(ctx context.Context, limit uint64) ([]dto.DeniedNoteResponse, error) {
	records, err := s.auditRepo.ListDenials(ctx, limit)
	if err != nil {
		return nil, err
	}

	out := make([]dto.DeniedNoteResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, dto.DeniedNoteResponse{
			ID:       rec.ID,
			NoteID:   rec.NoteID,
			Title:    rec.Title,
			PdfID:    rec.PdfID,
			VideoID:  rec.VideoID,
			Uploader: rec.Uploader,
			DeniedBy: rec.DeniedBy,
			DeniedAt: rec.DeniedAt,
		})
	}
	return out, nil
}
