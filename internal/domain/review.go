package domain

import (
	"strings"
	"time"
)

// Rating bounds, inclusive.
const (
	RatingMin = 1
	RatingMax = 5
)

// ReviewResponse is the clinic operator's reply to a review. Setting it
// again overwrites the previous reply.
type ReviewResponse struct {
	Text        string    `json:"text"`
	RespondedAt time.Time `json:"responded_at"`
}

// Review is one author's rating of one clinic. AuthorName is the display
// name as of review creation; it is not kept in sync with later profile
// changes. At most one review may exist per (ClinicID, AuthorID) pair.
type Review struct {
	ID         string          `json:"id"`
	ClinicID   string          `json:"clinic_id"`
	AuthorID   string          `json:"author_id"`
	AuthorName string          `json:"author_name"`
	Rating     int             `json:"rating"`
	Comment    string          `json:"comment"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	Response   *ReviewResponse `json:"response,omitempty"`
}

// ValidateRating checks the [RatingMin, RatingMax] bound.
func ValidateRating(rating int) error {
	if rating < RatingMin || rating > RatingMax {
		return &ValidationError{Field: "rating", Reason: "must be between 1 and 5"}
	}
	return nil
}

// ValidateComment rejects empty or whitespace-only comments.
func ValidateComment(comment string) error {
	if strings.TrimSpace(comment) == "" {
		return &ValidationError{Field: "comment", Reason: "must not be empty"}
	}
	return nil
}
