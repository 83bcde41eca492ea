package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"

	"github.com/samirrijal/sundowner/internal/bootstrap"
	"github.com/samirrijal/sundowner/internal/core/domain"
	"github.com/samirrijal/sundowner/internal/pkg/config"
	"github.com/samirrijal/sundowner/internal/pkg/logging"
	"github.com/samirrijal/sundowner/internal/workflows"
)

const usage = `usage:
  forecaster worker
  forecaster run --beach SLUG [--start YYYY-MM-DD] [--days N]`

func main() {
	if len(os.Args) < 2 {
		log.Fatal(usage)
	}

	cfg, err := config.Load("sundowner-forecaster")
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

	// Connect to Temporal
	c, err := client.Dial(client.Options{
		HostPort:  cfg.Temporal.HostPort,
		Namespace: cfg.Temporal.Namespace,
		Logger:    slog.Default(),
	})
	if err != nil {
		log.Fatalf("temporal client: %v", err)
	}
	defer c.Close()

	switch os.Args[1] {
	case "worker":
		runWorker(cfg, c)
	case "run":
		startForecast(cfg, c, os.Args[2:])
	default:
		log.Fatal(usage)
	}
}

func runWorker(cfg *config.Config, c client.Client) {
	ctx := context.Background()
	stack, err := bootstrap.Build(ctx, cfg, bootstrap.Options{
		Database:    true,
		Valkey:      true,
		NATS:        true,
		CachePrefix: "sundowner:",
	})
	if err != nil {
		log.Fatalf("bootstrap: %v", err)
	}
	defer stack.Close()

	w := worker.New(c, cfg.Temporal.TaskQueue, worker.Options{})

	// Register workflow & activities
	w.RegisterWorkflow(workflows.ForecastWorkflow)
	w.RegisterActivity(&workflows.ForecastActivities{Sunset: stack.Sunset})

	slog.Info("forecast worker started", "queue", cfg.Temporal.TaskQueue)
	if err := w.Run(worker.InterruptCh()); err != nil {
		log.Fatalf("worker: %v", err)
	}
}

func startForecast(cfg *config.Config, c client.Client, args []string) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	beach := fs.String("beach", "", "curated beach slug")
	start := fs.String("start", time.Now().UTC().AddDate(0, 0, 1).Format(time.DateOnly), "first date (YYYY-MM-DD)")
	days := fs.Int("days", cfg.Temporal.ForecastDays, "number of days")
	_ = fs.Parse(args)

	slug := domain.NormalizeSlug(*beach)
	if slug == "" {
		log.Fatal(usage)
	}

	ctx := context.Background()
	run, err := c.ExecuteWorkflow(ctx, client.StartWorkflowOptions{
		ID:        fmt.Sprintf("forecast-%s-%s", slug, *start),
		TaskQueue: cfg.Temporal.TaskQueue,
	}, workflows.ForecastWorkflow, workflows.ForecastInput{
		BeachSlug: slug,
		StartDate: *start,
		Days:      *days,
	})
	if err != nil {
		log.Fatalf("start workflow: %v", err)
	}
	slog.Info("forecast started", "workflow_id", run.GetID(), "run_id", run.GetRunID())

	var result workflows.ForecastResult
	if err := run.Get(ctx, &result); err != nil {
		log.Fatalf("forecast failed: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		log.Fatalf("encode result: %v", err)
	}
}
