package kvstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"agendesaude/internal/domain"
)

// ClinicRepo implements domain.ClinicRepository over the clinic collection.
type ClinicRepo struct{ store *Store }

func NewClinicRepo(store *Store) *ClinicRepo { return &ClinicRepo{store: store} }

func (r *ClinicRepo) load(ctx context.Context) ([]domain.Clinic, error) {
	var cs []domain.Clinic
	if err := r.store.Load(ctx, CollectionClinics, &cs); err != nil {
		return nil, err
	}
	return cs, nil
}

func active(cs []domain.Clinic) []domain.Clinic {
	out := make([]domain.Clinic, 0, len(cs))
	for _, c := range cs {
		if c.Active {
			out = append(out, c)
		}
	}
	return out
}

func (r *ClinicRepo) GetByID(ctx context.Context, id string) (domain.Clinic, error) {
	cs, err := r.load(ctx)
	if err != nil {
		return domain.Clinic{}, err
	}
	for _, c := range cs {
		if c.ID == id && c.Active {
			return c, nil
		}
	}
	return domain.Clinic{}, fmt.Errorf("clinic %s: %w", id, domain.ErrNotFound)
}

func (r *ClinicRepo) ListAll(ctx context.Context) ([]domain.Clinic, error) {
	cs, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	return active(cs), nil
}

func (r *ClinicRepo) ListBySpecialty(ctx context.Context, specialty string) ([]domain.Clinic, error) {
	if domain.MatchesAll(specialty) {
		return r.ListAll(ctx)
	}
	cs, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := cs[:0]
	for _, c := range cs {
		if c.HasSpecialty(specialty) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *ClinicRepo) ListByNeighborhood(ctx context.Context, neighborhood string) ([]domain.Clinic, error) {
	if domain.MatchesAll(neighborhood) {
		return r.ListAll(ctx)
	}
	cs, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := cs[:0]
	for _, c := range cs {
		if strings.EqualFold(c.Neighborhood, neighborhood) {
			out = append(out, c)
		}
	}
	return out, nil
}

// ListNear keeps active clinics with a recorded location within radiusKm of
// the given point, boundary inclusive. Clinics without a location are
// excluded outright.
func (r *ClinicRepo) ListNear(ctx context.Context, lat, lon, radiusKm float64) ([]domain.Clinic, error) {
	cs, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	from := domain.Coords{Lat: lat, Lon: lon}
	out := cs[:0]
	for _, c := range cs {
		if c.Location == nil {
			continue
		}
		if domain.Haversine(from, *c.Location) <= radiusKm {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *ClinicRepo) Create(ctx context.Context, c domain.Clinic) (domain.Clinic, error) {
	cs, err := r.load(ctx)
	if err != nil {
		return domain.Clinic{}, err
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.AverageRating = 0
	c.Active = true
	cs = append(cs, c)
	if err := r.store.Save(ctx, CollectionClinics, cs); err != nil {
		return domain.Clinic{}, err
	}
	return c, nil
}

// Update applies the non-nil fields of upd to the active clinic with the
// given ID. This is the only write path for AverageRating.
func (r *ClinicRepo) Update(ctx context.Context, id string, upd domain.ClinicUpdate) (domain.Clinic, error) {
	cs, err := r.load(ctx)
	if err != nil {
		return domain.Clinic{}, err
	}
	for i := range cs {
		if cs[i].ID != id || !cs[i].Active {
			continue
		}
		applyUpdate(&cs[i], upd)
		if err := r.store.Save(ctx, CollectionClinics, cs); err != nil {
			return domain.Clinic{}, err
		}
		return cs[i], nil
	}
	return domain.Clinic{}, fmt.Errorf("clinic %s: %w", id, domain.ErrNotFound)
}

// SoftDelete flips Active off, keeping the record and its reviews. Returns
// false when the ID is unknown.
func (r *ClinicRepo) SoftDelete(ctx context.Context, id string) (bool, error) {
	cs, err := r.load(ctx)
	if err != nil {
		return false, err
	}
	for i := range cs {
		if cs[i].ID != id {
			continue
		}
		cs[i].Active = false
		if err := r.store.Save(ctx, CollectionClinics, cs); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

func applyUpdate(c *domain.Clinic, upd domain.ClinicUpdate) {
	if upd.Name != nil {
		c.Name = *upd.Name
	}
	if upd.Email != nil {
		c.Email = *upd.Email
	}
	if upd.Specialties != nil {
		c.Specialties = upd.Specialties
	}
	if upd.Address != nil {
		c.Address = *upd.Address
	}
	if upd.Neighborhood != nil {
		c.Neighborhood = *upd.Neighborhood
	}
	if upd.Phone != nil {
		c.Phone = *upd.Phone
	}
	if upd.WhatsApp != nil {
		c.WhatsApp = *upd.WhatsApp
	}
	if upd.Hours != nil {
		c.Hours = *upd.Hours
	}
	if upd.Description != nil {
		c.Description = *upd.Description
	}
	if upd.Image != nil {
		c.Image = *upd.Image
	}
	if upd.AverageRating != nil {
		c.AverageRating = *upd.AverageRating
	}
	if upd.Location != nil {
		c.Location = upd.Location
	}
}
