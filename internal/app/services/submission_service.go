package services

import (
	"context"
	"mime/multipart"

	"github.com/nucesstack/notestack/internal/app/models"
	"github.com/nucesstack/notestack/internal/app/models/dto"
	"github.com/nucesstack/notestack/internal/pkg/apperrors"
	"github.com/nucesstack/notestack/internal/pkg/logger"
	"github.com/nucesstack/notestack/internal/pkg/notify"
	"github.com/nucesstack/notestack/internal/pkg/spool"
	"github.com/nucesstack/notestack/internal/pkg/upload"
)

// SubmissionService runs the contributor upload pipeline: spool the
// file locally, forward it to the external store, and only then
// persist a pending note. The spooled copy is removed on every exit
// path, success or failure.
type SubmissionService struct {
	subjectRepo SubjectStore
	noteRepo    NoteStore
	spool       *spool.Store
	forwarder   upload.Forwarder
	notifier    notify.Notifier
}

// NewSubmissionService creates a new submission service instance
func NewSubmissionService(
	subjectRepo SubjectStore,
	noteRepo NoteStore,
	spoolStore *spool.Store,
	forwarder upload.Forwarder,
	notifier notify.Notifier,
) *SubmissionService {
	return &SubmissionService{
		subjectRepo: subjectRepo,
		noteRepo:    noteRepo,
		spool:       spoolStore,
		forwarder:   forwarder,
		notifier:    notifier,
	}
}

// Submit processes one contributor upload. Nothing is persisted and
// nothing is forwarded until the request validates completely; no note
// row exists unless the upstream store accepted the file.
func (s *SubmissionService) Submit(ctx context.Context, req *dto.SubmitNoteRequest, fileHeader *multipart.FileHeader, uploader string) (*dto.SubmissionResponse, error) {
	if fileHeader == nil {
		return nil, apperrors.NewMissingFieldError("file")
	}

	subject, err := s.subjectRepo.GetByID(ctx, req.SubjectID)
	if err != nil {
		return nil, err
	}
	if subject.SemesterID != req.SemesterID {
		return nil, apperrors.NewBadRequestError("subject does not belong to the given semester")
	}

	spooled, err := s.spool.Save(fileHeader)
	if err != nil {
		return nil, err
	}
	defer spooled.Remove()

	content, err := spooled.Read()
	if err != nil {
		return nil, err
	}

	result, err := s.forwarder.Forward(ctx, upload.Request{
		Content:    content,
		Filename:   spooled.Filename,
		MimeType:   spooled.MimeType,
		Title:      req.Title,
		SemesterID: req.SemesterID,
		SubjectID:  req.SubjectID,
		Uploader:   uploader,
	})
	if err != nil {
		return nil, err
	}

	note := &models.Note{
		Title:       req.Title,
		Description: req.Description,
		SubjectID:   req.SubjectID,
		SemesterID:  req.SemesterID,
		PdfID:       result.FileID,
		Approved:    false,
		Uploader:    uploader,
	}
	if _, err := s.noteRepo.Create(ctx, note); err != nil {
		// The file made it upstream but the note did not; that file is
		// now orphaned and needs manual cleanup.
		logger.Error().Err(err).Str("fileId", result.FileID).Msg("Note persistence failed after successful upload")
		return nil, apperrors.ErrPersistenceFailed
	}

	s.notifier.Publish(notify.Message{
		Title: "New note submission",
		Body:  req.Title + " by " + uploader + " (" + subject.Name + ")",
	})

	logger.Info().
		Int64("noteId", note.ID).
		Str("fileId", result.FileID).
		Str("uploader", uploader).
		Msg("Submission accepted, awaiting moderation")

	return &dto.SubmissionResponse{
		NoteID:   note.ID,
		PdfID:    note.PdfID,
		Approved: note.Approved,
	}, nil
}
