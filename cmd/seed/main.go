package main

import (
	"context"
	"log"
	"log/slog"
	"time"

	"github.com/samirrijal/sundowner/internal/adapters/postgres"
	"github.com/samirrijal/sundowner/internal/adapters/staticdata"
	"github.com/samirrijal/sundowner/internal/pkg/config"
	"github.com/samirrijal/sundowner/internal/pkg/logging"
)

func main() {
	cfg, err := config.Load("sundowner-seed")
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logging.Setup(logging.Options{Level: cfg.Logging.Level, Format: "text"})

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	catalog, err := staticdata.Load()
	if err != nil {
		log.Fatalf("load catalog: %v", err)
	}

	db, err := postgres.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()

	beaches := catalog.All()
	start := time.Now()
	if err := postgres.NewBeachRepo(db).UpsertBatch(ctx, beaches); err != nil {
		log.Fatalf("upsert beaches: %v", err)
	}
	slog.Info("beach catalog seeded", "beaches", len(beaches), "duration", time.Since(start))
}
