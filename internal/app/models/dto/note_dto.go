package dto

import "time"

// NoteResponse mirrors a note row. PdfID and VideoID are bare platform
// identifiers; PdfURL and VideoURL are the canonical viewer links
// reconstructed from them for display.
type NoteResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	SubjectID   int64  `json:"subjectId"`
	SemesterID  int64  `json:"semesterId"`
	PdfID       string `json:"pdfId,omitempty"`
	VideoID     string `json:"videoId,omitempty"`
	PdfURL      string `json:"pdfUrl,omitempty"`
	VideoURL    string `json:"videoUrl,omitempty"`
	Approved    bool   `json:"approved"`
	Uploader    string `json:"uploader,omitempty"`
}

// CreateNoteRequest creates a note directly from the admin panel.
// PdfLink and VideoLink accept either a full share URL or a bare
// identifier; both are normalized to bare identifiers before storage.
type CreateNoteRequest struct {
	Title       string `json:"title" binding:"required"`
	SubjectID   int64  `json:"subjectId" binding:"required,min=1"`
	Description string `json:"description"`
	PdfLink     string `json:"pdfLink"`
	VideoLink   string `json:"videoLink"`
}

// UpdateNoteRequest edits an existing note's metadata and identifiers.
type UpdateNoteRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	PdfLink     string `json:"pdfLink"`
	VideoLink   string `json:"videoLink"`
}

// NoteListResponse is a paginated note list.
type NoteListResponse struct {
	Notes          []NoteResponse `json:"notes"`
	PaginationInfo PaginationInfo `json:"pagination"`
}

// SubmissionResponse acknowledges a contributor upload.
type SubmissionResponse struct {
	NoteID   int64  `json:"noteId"`
	PdfID    string `json:"pdfId"`
	Approved bool   `json:"approved"`
}

// DeniedNoteResponse is one row of the denial audit trail.
type DeniedNoteResponse struct {
	ID       int64     `json:"id"`
	NoteID   int64     `json:"noteId"`
	Title    string    `json:"title"`
	PdfID    string    `json:"pdfId,omitempty"`
	VideoID  string    `json:"videoId,omitempty"`
	Uploader string    `json:"uploader,omitempty"`
	DeniedBy string    `json:"deniedBy"`
	DeniedAt time.Time `json:"deniedAt"`
}
