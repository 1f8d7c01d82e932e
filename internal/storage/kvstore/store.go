package kvstore

import (
	"context"
	"encoding/json"
	"reflect"
	"time"

	"github.com/rs/zerolog"

	"agendesaude/internal/domain"
)

// Collection keys. The names are carried over from the persisted layout of
// the original directory, so an exported dataset loads unchanged.
const (
	CollectionClinics = "clinicas"
	CollectionReviews = "avaliacoes"

	backupSuffix = "_backup"
	envelopeVer  = "1.0"
)

// backupEnvelope shadows every collection under <key>_backup so a corrupted
// primary write can be recovered from the previous good state.
type backupEnvelope struct {
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
	Version   string          `json:"version"`
}

// EventFunc records a store event for a collection. Events: save, load,
// backup_fallback, corrupt, default.
type EventFunc func(collection, event string)

// Store reads and writes whole named collections as JSON documents over a
// raw KV backend. Writes are collection-granular: the last writer of a
// collection wins. Corrupted data never surfaces as an error; Load degrades
// to the backup copy and then to the caller's default. Backend transport
// errors do surface.
type Store struct {
	kv      domain.KV
	log     zerolog.Logger
	observe EventFunc
}

// New builds a Store. observe may be nil when no event counting is wanted.
func New(kv domain.KV, log zerolog.Logger, observe EventFunc) *Store {
	if observe == nil {
		observe = func(string, string) {}
	}
	return &Store{kv: kv, log: log, observe: observe}
}

// Save serializes v under key and then refreshes the backup envelope.
// Primary first, backup second; a crash between the two leaves the backup
// one generation stale, which Load tolerates.
func (s *Store) Save(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, key, b); err != nil {
		return err
	}
	env, err := json.Marshal(backupEnvelope{Data: b, Timestamp: time.Now().UTC(), Version: envelopeVer})
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, key+backupSuffix, env); err != nil {
		return err
	}
	s.observe(key, "save")
	return nil
}

// decode unmarshals into a fresh value of dst's type and copies it over
// only on success. json.Unmarshal writes into dst as it goes, so feeding it
// dst directly would leave half-decoded records behind when a later element
// fails to parse.
func decode(b []byte, dst any) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return json.Unmarshal(b, dst)
	}
	tmp := reflect.New(rv.Elem().Type())
	if err := json.Unmarshal(b, tmp.Interface()); err != nil {
		return err
	}
	rv.Elem().Set(tmp.Elem())
	return nil
}

// Load unmarshals the collection under key into dst. On a missing or
// unparsable primary it falls back to the backup envelope; if that fails
// too, dst is left at whatever default the caller initialized it to.
func (s *Store) Load(ctx context.Context, key string, dst any) error {
	b, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		return err
	}
	if ok {
		if err := decode(b, dst); err == nil {
			s.observe(key, "load")
			return nil
		}
		s.log.Warn().Str("key", key).Msg("corrupted collection, trying backup")
		s.observe(key, "corrupt")
	}

	eb, ok, err := s.kv.Get(ctx, key+backupSuffix)
	if err != nil {
		return err
	}
	if ok {
		var env backupEnvelope
		if err := json.Unmarshal(eb, &env); err == nil && len(env.Data) > 0 {
			if err := decode(env.Data, dst); err == nil {
				s.log.Warn().Str("key", key).Time("backup_ts", env.Timestamp).Msg("recovered collection from backup")
				s.observe(key, "backup_fallback")
				return nil
			}
		}
		s.log.Warn().Str("key", key).Msg("backup unusable, serving default")
		s.observe(key, "corrupt")
	}

	s.observe(key, "default")
	return nil
}

// EnsureSeeded populates the clinic collection with the seed directory when
// it is empty and initializes the review collection when absent. Idempotent
// and cheap once both collections exist.
func (s *Store) EnsureSeeded(ctx context.Context) error {
	var clinics []domain.Clinic
	if err := s.Load(ctx, CollectionClinics, &clinics); err != nil {
		return err
	}
	if len(clinics) == 0 {
		if err := s.Save(ctx, CollectionClinics, SeedClinics()); err != nil {
			return err
		}
		s.log.Info().Int("clinics", len(SeedClinics())).Msg("seeded clinic directory")
	}

	if _, ok, err := s.kv.Get(ctx, CollectionReviews); err != nil {
		return err
	} else if !ok {
		if err := s.Save(ctx, CollectionReviews, []domain.Review{}); err != nil {
			return err
		}
	}
	return nil
}
