package models

// Semester represents a top-level academic term grouping subjects.
// Reference data: created by admins, never mutated afterwards.
type Semester struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
	Slug string `db:"slug" json:"slug"`
}
