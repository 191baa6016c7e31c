// Seeder loads the catalog fixture (hotels, rooms, discount codes) into
// MySQL and clears the affected cache keys. Safe to re-run: everything is
// an upsert keyed by id.
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"vungtau_stay/internal/adapters/observability"
	redisad "vungtau_stay/internal/adapters/redis"
	"vungtau_stay/internal/domain"
	"vungtau_stay/internal/shared"
	mysqlrepo "vungtau_stay/internal/storage/mysql"
)

type seedFile struct {
	Hotels    []seedHotel       `json:"hotels"`
	Discounts []domain.Discount `json:"discounts"`
}

type seedHotel struct {
	domain.Hotel
	Rooms []domain.Room `json:"rooms"`
}

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Str("file", cfg.SeedFile).
		Int("workers", cfg.SeedWorkers).
		Msg("seeder starting")

	raw, err := os.ReadFile(cfg.SeedFile)
	if err != nil {
		log.Fatal().Err(err).Msg("read seed file failed")
	}
	var seed seedFile
	if err := json.Unmarshal(raw, &seed); err != nil {
		log.Fatal().Err(err).Msg("parse seed file failed")
	}

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	sem := semaphore.NewWeighted(int64(cfg.SeedWorkers))
	var wg sync.WaitGroup

	for _, sh := range seed.Hotels {
		sh := sh

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, int64(1)); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(sh seedHotel) {
			defer wg.Done()
			defer sem.Release(int64(1))

			if err := repo.UpsertHotel(ctx, sh.Hotel); err != nil {
				log.Warn().Str("id", sh.ID).Err(err).Msg("seed hotel failed")
				return
			}
			for _, rm := range sh.Rooms {
				rm.HotelID = sh.ID
				if err := repo.UpsertRoom(ctx, rm); err != nil {
					log.Warn().Str("id", rm.ID).Err(err).Msg("seed room failed")
					return
				}
			}
			_ = cache.Del(ctx, "hotel:"+sh.ID)
			_ = cache.Del(ctx, "rooms:"+sh.ID)
			log.Info().Str("id", sh.ID).Int("rooms", len(sh.Rooms)).Msg("seed hotel ok")
		}(sh)
	}

	wg.Wait()

	for _, d := range seed.Discounts {
		d.Code = domain.NormalizeCode(d.Code)
		if err := repo.UpsertDiscount(ctx, d); err != nil {
			log.Warn().Str("code", d.Code).Err(err).Msg("seed discount failed")
			continue
		}
		log.Info().Str("code", d.Code).Msg("seed discount ok")
	}

	log.Info().Msg("seeding completed")
}
