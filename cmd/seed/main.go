package main

import (
	"context"
	"database/sql"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"agendesaude/internal/adapters/observability"
	redisad "agendesaude/internal/adapters/redis"
	"agendesaude/internal/app"
	"agendesaude/internal/domain"
	"agendesaude/internal/shared"
	"agendesaude/internal/storage/kvstore"
	mysqlkv "agendesaude/internal/storage/mysql"
)

// Seeds the directory when empty and rebuilds every clinic's average
// rating from the stored reviews. Run it after restoring a dataset or
// switching backends.
func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)
	log.Info().Str("backend", cfg.StoreBackend).Int("workers", cfg.SeedWorkers).Msg("seeder starting")

	kv := openBackend(ctx, cfg)
	store := kvstore.New(kv, log.Logger, observability.ObserveStore)
	if err := store.EnsureSeeded(ctx); err != nil {
		log.Fatal().Err(err).Msg("seeding failed")
	}

	clinicRepo := kvstore.NewClinicRepo(store)
	reviewRepo := kvstore.NewReviewRepo(store)
	agg := app.NewRatingAggregator(reviewRepo, clinicRepo, observability.ObserveRecompute)

	clinics, err := clinicRepo.ListAll(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("listing clinics failed")
	}

	sem := semaphore.NewWeighted(int64(cfg.SeedWorkers))
	var (
		wg sync.WaitGroup
		// Aggregate writes rewrite the whole clinic collection, so they
		// must not overlap; only the review listing runs in parallel.
		writeMu sync.Mutex
	)

	for _, c := range clinics {
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			defer sem.Release(1)

			// Skip clinics that have no stored reviews: their seed averages
			// are historical display data the aggregator must not zero out.
			rs, err := reviewRepo.ListByClinic(ctx, id)
			if err != nil {
				log.Warn().Str("clinic", id).Err(err).Msg("listing reviews failed")
				return
			}
			if len(rs) == 0 {
				return
			}

			writeMu.Lock()
			err = agg.Recompute(ctx, id)
			writeMu.Unlock()
			if err != nil {
				log.Warn().Str("clinic", id).Err(err).Msg("recompute failed")
				return
			}
			log.Info().Str("clinic", id).Msg("rating rebuilt")
		}(c.ID)
	}

	wg.Wait()
	log.Info().Msg("seeding completed")
}

func openBackend(ctx context.Context, cfg shared.Config) domain.KV {
	switch cfg.StoreBackend {
	case "mysql":
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("sql.Open failed")
		}
		if err := db.PingContext(ctx); err != nil {
			log.Fatal().Err(err).Msg("db.Ping failed")
		}
		kv := mysqlkv.New(db)
		if err := kv.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("kv schema migration failed")
		}
		return kv
	default:
		kv := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err := kv.Ping(ctx); err != nil {
			log.Fatal().Err(err).Msg("redis ping failed")
		}
		return kv
	}
}
