package app

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"agendesaude/internal/domain"
)

// ClinicService fronts the clinic repository for the HTTP layer. Queries
// pass through; profile mutations get input validation and logging.
type ClinicService struct {
	repo domain.ClinicRepository
	log  zerolog.Logger
}

func NewClinicService(repo domain.ClinicRepository, log zerolog.Logger) *ClinicService {
	return &ClinicService{repo: repo, log: log}
}

func (s *ClinicService) GetByID(ctx context.Context, id string) (domain.Clinic, error) {
	return s.repo.GetByID(ctx, id)
}

// List routes to the matching filtered query. Both filters at once is not a
// supported combination; specialty wins, matching the original search UI.
func (s *ClinicService) List(ctx context.Context, specialty, neighborhood string) ([]domain.Clinic, error) {
	if !domain.MatchesAll(specialty) {
		return s.repo.ListBySpecialty(ctx, specialty)
	}
	if !domain.MatchesAll(neighborhood) {
		return s.repo.ListByNeighborhood(ctx, neighborhood)
	}
	return s.repo.ListAll(ctx)
}

func (s *ClinicService) ListNear(ctx context.Context, lat, lon, radiusKm float64) ([]domain.Clinic, error) {
	if radiusKm <= 0 {
		return nil, &domain.ValidationError{Field: "radius_km", Reason: "must be positive"}
	}
	return s.repo.ListNear(ctx, lat, lon, radiusKm)
}

func (s *ClinicService) Create(ctx context.Context, c domain.Clinic) (domain.Clinic, error) {
	if strings.TrimSpace(c.Name) == "" {
		return domain.Clinic{}, &domain.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	created, err := s.repo.Create(ctx, c)
	if err != nil {
		return domain.Clinic{}, err
	}
	s.log.Info().Str("clinic", created.ID).Str("name", created.Name).Msg("clinic created")
	return created, nil
}

func (s *ClinicService) Update(ctx context.Context, id string, upd domain.ClinicUpdate) (domain.Clinic, error) {
	// AverageRating is derived; only the aggregator writes it.
	upd.AverageRating = nil
	return s.repo.Update(ctx, id, upd)
}

func (s *ClinicService) SoftDelete(ctx context.Context, id string) (bool, error) {
	ok, err := s.repo.SoftDelete(ctx, id)
	if err == nil && ok {
		s.log.Info().Str("clinic", id).Msg("clinic deactivated")
	}
	return ok, err
}

func isNotFound(err error) bool { return errors.Is(err, domain.ErrNotFound) }
