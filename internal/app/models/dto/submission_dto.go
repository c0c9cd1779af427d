package dto

// SubmitNoteRequest is the multipart form accompanying a contributor
// upload. The file part is handled separately by the controller.
// Field presence is checked exhaustively at the boundary; nothing past
// it deals with missing fields.
type SubmitNoteRequest struct {
	Title       string `form:"title" binding:"required"`
	SemesterID  int64  `form:"semesterId" binding:"required,min=1"`
	SubjectID   int64  `form:"subjectId" binding:"required,min=1"`
	Description string `form:"description"`
}
