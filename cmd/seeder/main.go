package main

import (
	"context"
	"database/sql"
	"sync"
	"sync/atomic"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"checkin_syria/internal/adapters/observability"
	redisad "checkin_syria/internal/adapters/redis"
	"checkin_syria/internal/app"
	"checkin_syria/internal/shared"
	"checkin_syria/internal/storage/memory"
	mysqlrepo "checkin_syria/internal/storage/mysql"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	seed := memory.SeedCatalog()
	if problems := memory.Validate(seed); len(problems) > 0 {
		for _, p := range problems {
			log.Error().Str("problem", p).Msg("catalog reference check")
		}
		log.Fatal().Int("problems", len(problems)).Msg("refusing to seed an inconsistent catalog")
	}

	log.Info().
		Int("workers", cfg.SeedWorkers).
		Int("hotels", len(seed.Hotels)).
		Int("rooms", len(seed.Rooms)).
		Msg("seeder starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)

	// evict cached reads for every seeded hotel
	var catalog *app.CatalogService
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err := cache.Ping(ctx); err != nil {
		log.Warn().Err(err).Msg("redis unavailable; skipping cache eviction")
	} else {
		catalog = app.NewCatalogService(repo, cache, cfg.CacheTTL)
	}

	seeder := app.NewSeedService(seed, repo, catalog)

	// hotel rows go in sequentially so their insertion order matches the catalog
	if err := seeder.SeedHotels(ctx); err != nil {
		log.Fatal().Err(err).Msg("seed hotels failed")
	}

	sem := semaphore.NewWeighted(int64(max(cfg.SeedWorkers, 1)))
	var wg sync.WaitGroup
	var failed atomic.Int32

	for _, id := range seeder.HotelIDs() {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(hotelID string) {
			defer wg.Done()
			defer sem.Release(1)

			if err := seeder.SeedRooms(ctx, hotelID); err != nil {
				failed.Add(1)
				log.Warn().Str("id", hotelID).Err(err).Msg("seed rooms failed")
				return
			}
			log.Info().Str("id", hotelID).Msg("seed rooms ok")
		}(id)
	}

	wg.Wait()
	if n := failed.Load(); n > 0 {
		log.Fatal().Int32("failed", n).Msg("seeding incomplete")
	}
	log.Info().Msg("seeding completed")
}
