package app_test

import (
	"context"
	"testing"

	"agendesaude/internal/app"
	"agendesaude/internal/domain"
)

func TestRecomputeRounding(t *testing.T) {
	cases := []struct {
		name    string
		ratings []int
		want    float64
	}{
		{"no reviews", nil, 0},
		{"single", []int{5}, 5.0},
		{"plain mean", []int{5, 3}, 4.0},
		{"one decimal", []int{5, 4, 4}, 4.3}, // 4.333…
		{"half rounds up", []int{4, 5, 4, 4}, 4.3},  // 4.25 → 4.3 (half away from zero)
		{"two thirds", []int{1, 2, 2}, 1.7},         // 1.666…
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reviews := &fakeReviews{}
			clinics := &fakeClinics{byID: map[string]*domain.Clinic{
				"c1": {ID: "c1", Active: true, AverageRating: 9.9},
			}}
			for i, r := range tc.ratings {
				reviews.rs = append(reviews.rs, domain.Review{
					ID:       string(rune('a' + i)),
					ClinicID: "c1",
					AuthorID: string(rune('A' + i)),
					Rating:   r,
				})
			}

			agg := app.NewRatingAggregator(reviews, clinics, nil)
			if err := agg.Recompute(context.Background(), "c1"); err != nil {
				t.Fatalf("recompute: %v", err)
			}
			if got := clinics.byID["c1"].AverageRating; got != tc.want {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestRecomputeUnknownClinic(t *testing.T) {
	agg := app.NewRatingAggregator(&fakeReviews{}, &fakeClinics{byID: map[string]*domain.Clinic{}}, nil)
	if err := agg.Recompute(context.Background(), "nope"); err == nil {
		t.Fatal("expected error for unknown clinic")
	}
}
