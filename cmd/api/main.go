package main

import (
	"context"
	"database/sql"
	"net/http"
	"os/signal"
	"syscall"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	server "agendesaude/internal/adapters/http_server"
	"agendesaude/internal/adapters/observability"
	redisad "agendesaude/internal/adapters/redis"
	"agendesaude/internal/app"
	"agendesaude/internal/domain"
	"agendesaude/internal/shared"
	"agendesaude/internal/storage/kvstore"
	mysqlkv "agendesaude/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	kv := openBackend(ctx, cfg)

	store := kvstore.New(kv, log.Logger, observability.ObserveStore)
	if err := store.EnsureSeeded(ctx); err != nil {
		log.Fatal().Err(err).Msg("seeding failed")
	}

	clinicRepo := kvstore.NewClinicRepo(store)
	reviewRepo := kvstore.NewReviewRepo(store)
	agg := app.NewRatingAggregator(reviewRepo, clinicRepo, observability.ObserveRecompute)
	clinics := app.NewClinicService(clinicRepo, log.Logger)
	reviews := app.NewReviewService(reviewRepo, agg, log.Logger)

	srv := server.New()
	srv.MountHandlers(&server.Handlers{
		Clinics: clinics,
		Reviews: reviews,
		Limit:   server.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
	})

	reg := observability.InitRegistry()
	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", observability.MetricsHandler(reg))

	apiSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}
	metricsSrv := &http.Server{Addr: cfg.MetricsAddr, Handler: metricsMux}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
		if err := apiSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		log.Info().Str("addr", cfg.MetricsAddr).Msg("metrics listening")
		if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGrace)
		defer cancel()
		_ = metricsSrv.Shutdown(shutCtx)
		return apiSrv.Shutdown(shutCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
	log.Info().Msg("shutdown complete")
}

// openBackend picks the KV backend per config. Redis is the default; MySQL
// serves deployments that already run one.
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
		log.Info().Msg("mysql backend ready")
		return kv
	default:
		kv := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err := kv.Ping(ctx); err != nil {
			log.Fatal().Err(err).Msg("redis ping failed")
		}
		log.Info().Msg("redis backend ready")
		return kv
	}
}
