// Package linkid turns platform share URLs into the platform's canonical
// resource identifier. Identifiers, not URLs, are the stored form: the
// display layer reconstructs viewer URLs deterministically, and storage
// stays insulated from URL-format drift.
package linkid

import "errors"

// Extraction errors. Callers branch on these; they are expected outcomes
// for unrecognized input, not exceptional conditions.
var (
	ErrNotDriveLink   = errors.New("not a google drive link")
	ErrNotYouTubeLink = errors.New("not a youtube link")
)
