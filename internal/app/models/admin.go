package models

import "time"

// Admin represents a panel account. Role gates which routes are
// reachable: admins manage the catalog and moderate, contributors may
// only submit. Accounts are created out of band (no self-registration).
type Admin struct {
	ID       int64  `db:"id" json:"id"`
	Username string `db:"username" json:"username"`
	Password string `db:"password" json:"-"` // bcrypt hash
	Role     Role   `db:"role" json:"role"`
}

// DeniedNoteRecord is an audit-trail row written before a pending note
// is deleted by a deny action.
type DeniedNoteRecord struct {
	ID       int64     `db:"id" json:"id"`
	NoteID   int64     `db:"note_id" json:"noteId"`
	Title    string    `db:"title" json:"title"`
	PdfID    string    `db:"pdf_id" json:"pdfId"`
	VideoID  string    `db:"video_id" json:"videoId"`
	Uploader string    `db:"uploader" json:"uploader"`
	DeniedBy string    `db:"denied_by" json:"deniedBy"`
	DeniedAt time.Time `db:"denied_at" json:"deniedAt"`
}
