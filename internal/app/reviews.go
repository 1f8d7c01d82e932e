package app

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"agendesaude/internal/domain"
)

// Recomputer recomputes a clinic's derived average after its review set
// changed.
type Recomputer interface {
	Recompute(ctx context.Context, clinicID string) error
}

// ReviewPatch carries the editable review fields; nil means unchanged.
type ReviewPatch struct {
	Rating  *int
	Comment *string
}

// ReviewService orchestrates review mutations: validation, the uniqueness
// rule, and the synchronous aggregate recompute after every create, update
// and delete. mu serializes every review mutation in this process: the
// store writes whole collections, so a critical section keyed by clinic
// would still let two clinics' writes clobber each other. Writes from
// other processes sharing the backend remain last-writer-wins at the
// collection level.
type ReviewService struct {
	repo domain.ReviewRepository
	agg  Recomputer
	mu   sync.Mutex
	log  zerolog.Logger
}

func NewReviewService(repo domain.ReviewRepository, agg Recomputer, log zerolog.Logger) *ReviewService {
	return &ReviewService{repo: repo, agg: agg, log: log}
}

// Create persists a new review and recomputes the clinic's average. A
// second review by the same author for the same clinic fails with
// DuplicateReviewError and leaves the existing review unchanged. If the
// recompute fails (for instance the clinic no longer exists), the failure
// propagates rather than leaving the review committed with a stale
// aggregate.
func (s *ReviewService) Create(ctx context.Context, clinicID, authorID, authorName string, rating int, comment string) (domain.Review, error) {
	if strings.TrimSpace(clinicID) == "" {
		return domain.Review{}, &domain.ValidationError{Field: "clinic_id", Reason: "must not be empty"}
	}
	if strings.TrimSpace(authorID) == "" {
		return domain.Review{}, &domain.ValidationError{Field: "author_id", Reason: "must not be empty"}
	}
	if err := domain.ValidateRating(rating); err != nil {
		return domain.Review{}, err
	}
	if err := domain.ValidateComment(comment); err != nil {
		return domain.Review{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	rev := domain.Review{
		ID:         uuid.NewString(),
		ClinicID:   clinicID,
		AuthorID:   authorID,
		AuthorName: authorName,
		Rating:     rating,
		Comment:    comment,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.Insert(ctx, rev); err != nil {
		return domain.Review{}, err
	}
	if err := s.agg.Recompute(ctx, clinicID); err != nil {
		return domain.Review{}, err
	}
	s.log.Info().Str("review", rev.ID).Str("clinic", clinicID).Int("rating", rating).Msg("review created")
	return rev, nil
}

// Update edits rating and/or comment, bumps UpdatedAt, and recomputes the
// clinic's average (the rating may have changed).
func (s *ReviewService) Update(ctx context.Context, reviewID string, patch ReviewPatch) (domain.Review, error) {
	if patch.Rating != nil {
		if err := domain.ValidateRating(*patch.Rating); err != nil {
			return domain.Review{}, err
		}
	}
	if patch.Comment != nil {
		if err := domain.ValidateComment(*patch.Comment); err != nil {
			return domain.Review{}, err
		}
	}

	rev, err := s.repo.GetByID(ctx, reviewID)
	if err != nil {
		return domain.Review{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Re-read under the lock: another request may have edited it between
	// the lookup and the lock acquisition.
	rev, err = s.repo.GetByID(ctx, reviewID)
	if err != nil {
		return domain.Review{}, err
	}
	if patch.Rating != nil {
		rev.Rating = *patch.Rating
	}
	if patch.Comment != nil {
		rev.Comment = *patch.Comment
	}
	rev.UpdatedAt = time.Now().UTC()

	if err := s.repo.Put(ctx, rev); err != nil {
		return domain.Review{}, err
	}
	if err := s.agg.Recompute(ctx, rev.ClinicID); err != nil {
		return domain.Review{}, err
	}
	s.log.Info().Str("review", rev.ID).Str("clinic", rev.ClinicID).Msg("review updated")
	return rev, nil
}

// Delete physically removes the review and recomputes the clinic's
// average. Deleting an unknown review is not an error: it returns false
// and changes nothing.
func (s *ReviewService) Delete(ctx context.Context, reviewID string) (bool, error) {
	rev, err := s.repo.GetByID(ctx, reviewID)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ok, err := s.repo.Delete(ctx, reviewID)
	if err != nil || !ok {
		return ok, err
	}
	if err := s.agg.Recompute(ctx, rev.ClinicID); err != nil {
		return false, err
	}
	s.log.Info().Str("review", reviewID).Str("clinic", rev.ClinicID).Msg("review deleted")
	return true, nil
}

// Respond sets (or overwrites) the clinic's reply on a review. Rating and
// comment are untouched, so no recompute happens and UpdatedAt stays put.
func (s *ReviewService) Respond(ctx context.Context, reviewID, text string) (domain.Review, error) {
	if strings.TrimSpace(text) == "" {
		return domain.Review{}, &domain.ValidationError{Field: "text", Reason: "must not be empty"}
	}

	rev, err := s.repo.GetByID(ctx, reviewID)
	if err != nil {
		return domain.Review{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rev, err = s.repo.GetByID(ctx, reviewID)
	if err != nil {
		return domain.Review{}, err
	}
	rev.Response = &domain.ReviewResponse{Text: text, RespondedAt: time.Now().UTC()}
	if err := s.repo.Put(ctx, rev); err != nil {
		return domain.Review{}, err
	}
	return rev, nil
}

func (s *ReviewService) GetByID(ctx context.Context, reviewID string) (domain.Review, error) {
	return s.repo.GetByID(ctx, reviewID)
}

func (s *ReviewService) ListByClinic(ctx context.Context, clinicID string) ([]domain.Review, error) {
	return s.repo.ListByClinic(ctx, clinicID)
}

func (s *ReviewService) ListByAuthor(ctx context.Context, authorID string) ([]domain.Review, error) {
	return s.repo.ListByAuthor(ctx, authorID)
}
