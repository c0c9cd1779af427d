package models

// Subject represents a course within a semester.
// The slug is unique across the whole catalog, not just within a semester.
type Subject struct {
	ID          int64  `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Slug        string `db:"slug" json:"slug"`
	SemesterID  int64  `db:"semester_id" json:"semesterId"`
	Description string `db:"description" json:"description"`
}
