package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"checkin_syria/internal/adapters/auth"
	server "checkin_syria/internal/adapters/http_server"
	"checkin_syria/internal/adapters/notify"
	"checkin_syria/internal/adapters/observability"
	redisad "checkin_syria/internal/adapters/redis"
	"checkin_syria/internal/app"
	"checkin_syria/internal/domain"
	"checkin_syria/internal/shared"
	"checkin_syria/internal/storage/memory"
	mysqlrepo "checkin_syria/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	reg := observability.InitRegistry()
	metricsSrv := observability.Serve(cfg.MetricsAddr, reg)

	// catalog
	var repo domain.CatalogRepository
	switch cfg.CatalogSource {
	case "mysql":
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("sql.Open failed")
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			log.Fatal().Err(err).Msg("db.Ping failed")
		}
		log.Info().Msg("database connection ok")
		repo = mysqlrepo.New(db)
	default:
		seed := memory.SeedCatalog()
		for _, p := range memory.Validate(seed) {
			log.Warn().Str("problem", p).Msg("catalog reference check")
		}
		repo = memory.New(seed)
	}

	// redis backs both the read cache and submission state
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err := cache.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("redis ping failed")
	}
	submissions := redisad.NewSubmissions(cache.Client())

	var notifier domain.BookingNotifier = notify.NewLog(log.Logger)
	if cfg.AMQPURL != "" {
		pub, err := notify.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			log.Fatal().Err(err).Msg("rabbitmq publisher")
		}
		defer pub.Close()
		notifier = pub
		log.Info().Str("exchange", cfg.AMQPExchange).Msg("publishing booking events")
	}

	catalog := app.NewCatalogService(repo, cache, cfg.CacheTTL)
	ledger := app.NewLedger(memory.SeedBookings())
	bookings := app.NewBookingService(catalog, submissions, notifier, ledger, app.BookingOptions{Delay: cfg.SubmitDelay})
	admin := app.NewAdminService(catalog, ledger)

	var authSvc *auth.Service
	if cfg.AdminPassHash != "" && cfg.JWTSecret != "" {
		a, err := auth.New(cfg.AdminUser, cfg.AdminPassHash, cfg.JWTSecret, cfg.JWTTTL)
		if err != nil {
			log.Fatal().Err(err).Msg("admin auth")
		}
		authSvc = a
	}

	// http
	srv := server.New(server.WithRequestTimeout(cfg.RequestTimeout), server.WithTrustedProxy(cfg.TrustProxy))
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Catalog:  catalog,
		Bookings: bookings,
		Admin:    admin,
		Auth:     authSvc,
		Limiter:  server.NewRateLimiter(cfg.RateLimitRPS, cfg.RateBurst),
	})

	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}

	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Str("catalog", cfg.CatalogSource).Msg("API listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	if metricsSrv != nil {
		_ = metricsSrv.Shutdown(ctx)
	}
	// let in-flight submissions reach Confirmed before exiting
	bookings.Wait()
	log.Info().Msg("API stopped")
}
