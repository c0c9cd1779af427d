package dto

// SemesterResponse mirrors a semester row.
type SemesterResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// CreateSemesterRequest creates a new semester; the slug is derived
// from the name server-side.
type CreateSemesterRequest struct {
	Name string `json:"name" binding:"required"`
}

// SubjectResponse mirrors a subject row plus its note count. The count
// covers all notes in admin views and approved notes only in public
// views; which one a given response carries is decided by the caller's
// surface, not by this type.
type SubjectResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	SemesterID  int64  `json:"semesterId"`
	Description string `json:"description"`
	NotesCount  int64  `json:"notesCount"`
}

// CreateSubjectRequest creates a new subject under a semester.
type CreateSubjectRequest struct {
	Name        string `json:"name" binding:"required"`
	SemesterID  int64  `json:"semesterId" binding:"required,min=1"`
	Description string `json:"description"`
}

// NotesCountResponse is the dashboard counter payload.
type NotesCountResponse struct {
	SemesterID int64 `json:"semesterId,omitempty"`
	Count      int64 `json:"count"`
}
