package app

import (
	"context"
	"fmt"
	"math"

	"agendesaude/internal/domain"
)

// RatingAggregator maintains the invariant that a clinic's AverageRating
// equals the mean of its current review ratings, rounded to one decimal
// (half away from zero), or 0 when the clinic has no reviews.
type RatingAggregator struct {
	reviews domain.ReviewRepository
	clinics domain.ClinicRepository
	observe func()
}

// NewRatingAggregator builds the aggregator. observe is called once per
// successful recompute; nil disables counting.
func NewRatingAggregator(reviews domain.ReviewRepository, clinics domain.ClinicRepository, observe func()) *RatingAggregator {
	if observe == nil {
		observe = func() {}
	}
	return &RatingAggregator{reviews: reviews, clinics: clinics, observe: observe}
}

// Recompute reads the clinic's full review set and writes the fresh average
// through the clinic repository. Each review mutation triggers a full
// recompute; at the scale of one clinic's reviews that is a simplification,
// not a bottleneck.
func (a *RatingAggregator) Recompute(ctx context.Context, clinicID string) error {
	rs, err := a.reviews.ListByClinic(ctx, clinicID)
	if err != nil {
		return err
	}

	avg := 0.0
	if len(rs) > 0 {
		sum := 0
		for _, r := range rs {
			sum += r.Rating
		}
		avg = round1(float64(sum) / float64(len(rs)))
	}

	if _, err := a.clinics.Update(ctx, clinicID, domain.ClinicUpdate{AverageRating: &avg}); err != nil {
		return fmt.Errorf("persist average rating for clinic %s: %w", clinicID, err)
	}
	a.observe()
	return nil
}

// round1 rounds to one decimal place, half away from zero.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
