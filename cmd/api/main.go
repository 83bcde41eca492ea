package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/samirrijal/sundowner/internal/adapters/http"
	"github.com/samirrijal/sundowner/internal/bootstrap"
	"github.com/samirrijal/sundowner/internal/pkg/config"
	"github.com/samirrijal/sundowner/internal/pkg/logging"
	"github.com/samirrijal/sundowner/internal/pkg/telemetry"
)

func main() {
	cfg, err := config.Load("sundowner-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Structured logging
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

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.OTLPAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown()
		}
	}

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

	if stack.DB != nil {
		go stack.DB.ReportPoolStats(ctx, 15*time.Second)
	}

	deps := &http.Dependencies{
		Sunset:  stack.Sunset,
		Solar:   stack.Solar,
		Beaches: stack.Beaches,
		NATS:    stack.NATS,
		DB:      stack.DB,
		Cache:   stack.Cache,
	}

	// Fiber
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    64 * 1024, // GraphQL queries only
		AppName:      "Sundowner API",
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
		MaxAge:       3600,
	}))

	http.SetupRoutes(app, deps)

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("API server starting", "addr", addr, "version", http.Version)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}
