package app_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"agendesaude/internal/app"
	"agendesaude/internal/domain"
)

// ---- in-memory fakes ----

type fakeReviews struct {
	rs []domain.Review
}

func (f *fakeReviews) Insert(ctx context.Context, r domain.Review) error {
	for _, ex := range f.rs {
		if ex.ClinicID == r.ClinicID && ex.AuthorID == r.AuthorID {
			return &domain.DuplicateReviewError{ClinicID: r.ClinicID, AuthorID: r.AuthorID}
		}
	}
	f.rs = append(f.rs, r)
	return nil
}

func (f *fakeReviews) GetByID(ctx context.Context, id string) (domain.Review, error) {
	for _, r := range f.rs {
		if r.ID == id {
			return r, nil
		}
	}
	return domain.Review{}, fmt.Errorf("review %s: %w", id, domain.ErrNotFound)
}

func (f *fakeReviews) Put(ctx context.Context, r domain.Review) error {
	for i := range f.rs {
		if f.rs[i].ID == r.ID {
			f.rs[i] = r
			return nil
		}
	}
	return fmt.Errorf("review %s: %w", r.ID, domain.ErrNotFound)
}

func (f *fakeReviews) Delete(ctx context.Context, id string) (bool, error) {
	for i := range f.rs {
		if f.rs[i].ID == id {
			f.rs = append(f.rs[:i], f.rs[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeReviews) ListByClinic(ctx context.Context, clinicID string) ([]domain.Review, error) {
	var out []domain.Review
	for _, r := range f.rs {
		if r.ClinicID == clinicID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReviews) ListByAuthor(ctx context.Context, authorID string) ([]domain.Review, error) {
	var out []domain.Review
	for _, r := range f.rs {
		if r.AuthorID == authorID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeClinics struct {
	byID map[string]*domain.Clinic
}

func (f *fakeClinics) GetByID(ctx context.Context, id string) (domain.Clinic, error) {
	if c, ok := f.byID[id]; ok && c.Active {
		return *c, nil
	}
	return domain.Clinic{}, fmt.Errorf("clinic %s: %w", id, domain.ErrNotFound)
}
func (f *fakeClinics) ListAll(ctx context.Context) ([]domain.Clinic, error) { return nil, nil }
func (f *fakeClinics) ListBySpecialty(ctx context.Context, s string) ([]domain.Clinic, error) {
	return nil, nil
}
func (f *fakeClinics) ListByNeighborhood(ctx context.Context, n string) ([]domain.Clinic, error) {
	return nil, nil
}
func (f *fakeClinics) ListNear(ctx context.Context, lat, lon, radiusKm float64) ([]domain.Clinic, error) {
	return nil, nil
}
func (f *fakeClinics) Create(ctx context.Context, c domain.Clinic) (domain.Clinic, error) {
	return c, nil
}
func (f *fakeClinics) Update(ctx context.Context, id string, upd domain.ClinicUpdate) (domain.Clinic, error) {
	c, ok := f.byID[id]
	if !ok || !c.Active {
		return domain.Clinic{}, fmt.Errorf("clinic %s: %w", id, domain.ErrNotFound)
	}
	if upd.AverageRating != nil {
		c.AverageRating = *upd.AverageRating
	}
	return *c, nil
}
func (f *fakeClinics) SoftDelete(ctx context.Context, id string) (bool, error) {
	if c, ok := f.byID[id]; ok {
		c.Active = false
		return true, nil
	}
	return false, nil
}

func newFixture() (*app.ReviewService, *fakeReviews, *fakeClinics) {
	reviews := &fakeReviews{}
	clinics := &fakeClinics{byID: map[string]*domain.Clinic{
		"cx": {ID: "cx", Name: "Clínica X", Active: true},
		"cy": {ID: "cy", Name: "Clínica Y", Active: true},
	}}
	agg := app.NewRatingAggregator(reviews, clinics, nil)
	svc := app.NewReviewService(reviews, agg, zerolog.Nop())
	return svc, reviews, clinics
}

// ---- tests ----

func TestCreateMaintainsAverage(t *testing.T) {
	svc, _, clinics := newFixture()
	ctx := context.Background()

	if got := clinics.byID["cx"].AverageRating; got != 0 {
		t.Fatalf("fresh clinic average: %v", got)
	}

	if _, err := svc.Create(ctx, "cx", "u1", "Ana", 5, "excelente"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if got := clinics.byID["cx"].AverageRating; got != 5.0 {
		t.Fatalf("after first review: %v", got)
	}

	if _, err := svc.Create(ctx, "cx", "u2", "Bruno", 3, "razoável"); err != nil {
		t.Fatalf("create second: %v", err)
	}
	if got := clinics.byID["cx"].AverageRating; got != 4.0 {
		t.Fatalf("after second review: %v", got)
	}
}

func TestFullLifecycleAverage(t *testing.T) {
	svc, _, clinics := newFixture()
	ctx := context.Background()

	r1, err := svc.Create(ctx, "cx", "u1", "Ana", 5, "excelente")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	r2, err := svc.Create(ctx, "cx", "u2", "Bruno", 3, "razoável")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	one := 1
	if _, err := svc.Update(ctx, r1.ID, app.ReviewPatch{Rating: &one}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if got := clinics.byID["cx"].AverageRating; got != 2.0 {
		t.Fatalf("after edit: %v", got)
	}

	ok, err := svc.Delete(ctx, r2.ID)
	if err != nil || !ok {
		t.Fatalf("delete: ok=%v err=%v", ok, err)
	}
	if got := clinics.byID["cx"].AverageRating; got != 1.0 {
		t.Fatalf("after delete: %v", got)
	}
}

func TestDuplicateReviewRejected(t *testing.T) {
	svc, reviews, _ := newFixture()
	ctx := context.Background()

	first, err := svc.Create(ctx, "cy", "u1", "Ana", 4, "bom atendimento")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err = svc.Create(ctx, "cy", "u1", "Ana", 2, "mudei de ideia")
	var dup *domain.DuplicateReviewError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateReviewError, got %v", err)
	}

	rs, _ := reviews.ListByClinic(ctx, "cy")
	if len(rs) != 1 || rs[0].ID != first.ID || rs[0].Rating != 4 {
		t.Fatalf("existing review changed: %+v", rs)
	}
}

func TestDeleteUnknownIsIdempotent(t *testing.T) {
	svc, _, clinics := newFixture()
	ctx := context.Background()

	if _, err := svc.Create(ctx, "cx", "u1", "Ana", 5, "excelente"); err != nil {
		t.Fatalf("create: %v", err)
	}
	before := clinics.byID["cx"].AverageRating

	ok, err := svc.Delete(ctx, "no-such-review")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if ok {
		t.Fatal("expected false for unknown review")
	}
	if clinics.byID["cx"].AverageRating != before {
		t.Fatalf("average changed by no-op delete")
	}
}

func TestCreateRoundTrip(t *testing.T) {
	svc, _, _ := newFixture()
	ctx := context.Background()

	rev, err := svc.Create(ctx, "cx", "u1", "Ana", 4, "ótima estrutura")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !rev.CreatedAt.Equal(rev.UpdatedAt) {
		t.Fatalf("timestamps differ at creation: %v vs %v", rev.CreatedAt, rev.UpdatedAt)
	}

	rs, err := svc.ListByClinic(ctx, "cx")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rs) != 1 {
		t.Fatalf("expected 1 review, got %d", len(rs))
	}
	got := rs[0]
	if got.ID != rev.ID || got.AuthorID != "u1" || got.AuthorName != "Ana" || got.Rating != 4 || got.Comment != "ótima estrutura" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestRespondDoesNotTouchAverage(t *testing.T) {
	svc, _, clinics := newFixture()
	ctx := context.Background()

	rev, err := svc.Create(ctx, "cx", "u1", "Ana", 5, "excelente")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	before := clinics.byID["cx"].AverageRating

	got, err := svc.Respond(ctx, rev.ID, "obrigado pela visita!")
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if got.Response == nil || got.Response.Text != "obrigado pela visita!" {
		t.Fatalf("response not set: %+v", got.Response)
	}
	if got.Rating != 5 || got.Comment != "excelente" {
		t.Fatalf("respond touched rating/comment: %+v", got)
	}
	if !got.UpdatedAt.Equal(rev.UpdatedAt) {
		t.Fatalf("respond bumped UpdatedAt")
	}
	if clinics.byID["cx"].AverageRating != before {
		t.Fatalf("respond changed average")
	}

	// Responding again overwrites the previous reply.
	again, err := svc.Respond(ctx, rev.ID, "atualizado")
	if err != nil {
		t.Fatalf("respond again: %v", err)
	}
	if again.Response.Text != "atualizado" {
		t.Fatalf("second response not applied: %+v", again.Response)
	}
}

func TestRecomputeFailurePropagates(t *testing.T) {
	svc, _, _ := newFixture()
	ctx := context.Background()

	// Unknown clinic: the review insert succeeds but the aggregate write
	// fails, and that failure must surface to the caller.
	_, err := svc.Create(ctx, "ghost", "u1", "Ana", 5, "excelente")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound through recompute, got %v", err)
	}
}

func TestCreateValidation(t *testing.T) {
	svc, _, _ := newFixture()
	ctx := context.Background()

	cases := []struct {
		name    string
		rating  int
		comment string
	}{
		{"rating too low", 0, "ok"},
		{"rating too high", 6, "ok"},
		{"empty comment", 3, ""},
		{"blank comment", 3, "   "},
	}
	for _, tc := range cases {
		_, err := svc.Create(ctx, "cx", "u1", "Ana", tc.rating, tc.comment)
		var ve *domain.ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("%s: expected ValidationError, got %v", tc.name, err)
		}
	}
}

func TestUpdateUnknownReview(t *testing.T) {
	svc, _, _ := newFixture()
	two := 2
	_, err := svc.Update(context.Background(), "missing", app.ReviewPatch{Rating: &two})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRespondUnknownReview(t *testing.T) {
	svc, _, _ := newFixture()
	_, err := svc.Respond(context.Background(), "missing", "olá")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
