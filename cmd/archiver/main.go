package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	natsadapter "github.com/samirrijal/sundowner/internal/adapters/nats"
	"github.com/samirrijal/sundowner/internal/adapters/postgres"
	"github.com/samirrijal/sundowner/internal/core/domain"
	"github.com/samirrijal/sundowner/internal/core/usecases"
	"github.com/samirrijal/sundowner/internal/pkg/config"
	"github.com/samirrijal/sundowner/internal/pkg/logging"
)

// The archiver stores every report published on the event stream, so API
// replicas can run without write access to the report history.
func main() {
	cfg, err := config.Load("sundowner-archiver")
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logging.Setup(logging.Options{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		File:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := postgres.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()
	go db.ReportPoolStats(ctx, 30*time.Second)

	svc := usecases.NewSunsetService(usecases.SunsetConfig{}, usecases.SunsetDeps{
		Reports: postgres.NewReportRepo(db),
	})

	sub, err := natsadapter.NewSubscriber(cfg.NATS.URL, natsadapter.DurableArchiver)
	if err != nil {
		log.Fatalf("nats: %v", err)
	}
	defer sub.Close()

	err = sub.SubscribeReports(ctx, func(ctx context.Context, r *domain.SunsetReport) error {
		if err := svc.Archive(ctx, r); err != nil {
			return err
		}
		slog.Debug("report archived", "id", r.ID, "beach", r.BeachSlug, "date", r.Date)
		return nil
	})
	if err != nil {
		log.Fatalf("subscribe: %v", err)
	}
	slog.Info("archiver running", "stream", natsadapter.StreamReports, "durable", natsadapter.DurableArchiver)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("archiver stopping")
}
