package domain

import "context"

// KV is the raw key-value backend under the collection store: one JSON
// document per key. Implemented by the Redis and MySQL adapters.
type KV interface {
	// Get returns the value and whether the key exists. A missing key is
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, val []byte) error
}

// ClinicRepository owns the authoritative clinic collection. All read
// queries exclude inactive clinics. Update is the sole path through which
// the rating aggregator persists AverageRating.
type ClinicRepository interface {
	GetByID(ctx context.Context, id string) (Clinic, error)
	ListAll(ctx context.Context) ([]Clinic, error)
	ListBySpecialty(ctx context.Context, specialty string) ([]Clinic, error)
	ListByNeighborhood(ctx context.Context, neighborhood string) ([]Clinic, error)
	ListNear(ctx context.Context, lat, lon, radiusKm float64) ([]Clinic, error)
	Create(ctx context.Context, c Clinic) (Clinic, error)
	Update(ctx context.Context, id string, upd ClinicUpdate) (Clinic, error)
	SoftDelete(ctx context.Context, id string) (bool, error)
}

// ReviewRepository is record-level CRUD over the review collection.
// Insert enforces the one-review-per-(clinic, author) rule; orchestration
// (validation, aggregate recompute, locking) lives in the app layer.
type ReviewRepository interface {
	Insert(ctx context.Context, r Review) error
	GetByID(ctx context.Context, id string) (Review, error)
	// Put replaces the stored review with the same ID.
	Put(ctx context.Context, r Review) error
	// Delete physically removes the review; ok is false when the ID is
	// unknown (idempotent-delete semantics).
	Delete(ctx context.Context, id string) (ok bool, err error)
	ListByClinic(ctx context.Context, clinicID string) ([]Review, error)
	ListByAuthor(ctx context.Context, authorID string) ([]Review, error)
}
