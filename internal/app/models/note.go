package models

// Note represents a single shared resource (PDF and/or video) with
// moderation state. PdfID and VideoID hold bare platform identifiers,
// never full URLs; SemesterID must always equal the subject's semester.
type Note struct {
	ID          int64  `db:"id" json:"id"`
	Title       string `db:"title" json:"title"`
	Description string `db:"description" json:"description"`
	SubjectID   int64  `db:"subject_id" json:"subjectId"`
	SemesterID  int64  `db:"semester_id" json:"semesterId"`
	PdfID       string `db:"pdf_id" json:"pdfId"`
	VideoID     string `db:"video_id" json:"videoId"`
	Approved    bool   `db:"approved" json:"approved"`
	Uploader    string `db:"uploader" json:"uploader"`
}
