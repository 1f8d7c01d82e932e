package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound marks lookups and updates of records that do not exist or
// have been deactivated. Wrap it with context; match with errors.Is.
var ErrNotFound = errors.New("not found")

// DuplicateReviewError is returned when an author tries to create a second
// review for the same clinic. The caller should redirect to the edit flow.
type DuplicateReviewError struct {
	ClinicID string
	AuthorID string
}

func (e *DuplicateReviewError) Error() string {
	return fmt.Sprintf("author %s has already reviewed clinic %s: edit the existing review instead of creating a new one", e.AuthorID, e.ClinicID)
}

// ValidationError reports input the repository refuses to persist.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
