package kvstore

import (
	"context"
	"fmt"

	"agendesaude/internal/domain"
)

// ReviewRepo implements domain.ReviewRepository over the review collection.
type ReviewRepo struct{ store *Store }

func NewReviewRepo(store *Store) *ReviewRepo { return &ReviewRepo{store: store} }

func (r *ReviewRepo) load(ctx context.Context) ([]domain.Review, error) {
	var rs []domain.Review
	if err := r.store.Load(ctx, CollectionReviews, &rs); err != nil {
		return nil, err
	}
	return rs, nil
}

// Insert appends the review, rejecting a second review by the same author
// for the same clinic.
func (r *ReviewRepo) Insert(ctx context.Context, rev domain.Review) error {
	rs, err := r.load(ctx)
	if err != nil {
		return err
	}
	for _, existing := range rs {
		if existing.ClinicID == rev.ClinicID && existing.AuthorID == rev.AuthorID {
			return &domain.DuplicateReviewError{ClinicID: rev.ClinicID, AuthorID: rev.AuthorID}
		}
	}
	rs = append(rs, rev)
	return r.store.Save(ctx, CollectionReviews, rs)
}

func (r *ReviewRepo) GetByID(ctx context.Context, id string) (domain.Review, error) {
	rs, err := r.load(ctx)
	if err != nil {
		return domain.Review{}, err
	}
	for _, rev := range rs {
		if rev.ID == id {
			return rev, nil
		}
	}
	return domain.Review{}, fmt.Errorf("review %s: %w", id, domain.ErrNotFound)
}

// Put replaces the stored review with the same ID.
func (r *ReviewRepo) Put(ctx context.Context, rev domain.Review) error {
	rs, err := r.load(ctx)
	if err != nil {
		return err
	}
	for i := range rs {
		if rs[i].ID == rev.ID {
			rs[i] = rev
			return r.store.Save(ctx, CollectionReviews, rs)
		}
	}
	return fmt.Errorf("review %s: %w", rev.ID, domain.ErrNotFound)
}

func (r *ReviewRepo) Delete(ctx context.Context, id string) (bool, error) {
	rs, err := r.load(ctx)
	if err != nil {
		return false, err
	}
	for i := range rs {
		if rs[i].ID == id {
			rs = append(rs[:i], rs[i+1:]...)
			if err := r.store.Save(ctx, CollectionReviews, rs); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}

func (r *ReviewRepo) ListByClinic(ctx context.Context, clinicID string) ([]domain.Review, error) {
	rs, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Review, 0, len(rs))
	for _, rev := range rs {
		if rev.ClinicID == clinicID {
			out = append(out, rev)
		}
	}
	return out, nil
}

func (r *ReviewRepo) ListByAuthor(ctx context.Context, authorID string) ([]domain.Review, error) {
	rs, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Review, 0, len(rs))
	for _, rev := range rs {
		if rev.AuthorID == authorID {
			out = append(out, rev)
		}
	}
	return out, nil
}
