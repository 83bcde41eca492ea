package main

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"os"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/samirrijal/sundowner/internal/pkg/config"
	"github.com/samirrijal/sundowner/migrations"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: migrate <up|status>")
	}

	cfg, err := config.Load("sundowner-migrate")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		name       text PRIMARY KEY,
		applied_at timestamptz NOT NULL DEFAULT now()
	)`); err != nil {
		log.Fatalf("create schema_migrations: %v", err)
	}

	switch os.Args[1] {
	case "up":
		runMigrations(ctx, pool)
	case "status":
		printStatus(ctx, pool)
	default:
		log.Fatalf("unknown command: %s", os.Args[1])
	}
}

func migrationFiles() []string {
	files, err := fs.Glob(migrations.FS, "*.sql")
	if err != nil {
		log.Fatalf("list migrations: %v", err)
	}
	sort.Strings(files)
	return files
}

func applied(ctx context.Context, pool *pgxpool.Pool) map[string]bool {
	rows, err := pool.Query(ctx, `SELECT name FROM schema_migrations`)
	if err != nil {
		log.Fatalf("read schema_migrations: %v", err)
	}
	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		log.Fatalf("read schema_migrations: %v", err)
	}
	done := make(map[string]bool, len(names))
	for _, n := range names {
		done[n] = true
	}
	return done
}

func runMigrations(ctx context.Context, pool *pgxpool.Pool) {
	done := applied(ctx, pool)

	for _, f := range migrationFiles() {
		if done[f] {
			continue
		}
		data, err := fs.ReadFile(migrations.FS, f)
		if err != nil {
			log.Fatalf("read %s: %v", f, err)
		}

		err = pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
			if _, err := tx.Exec(ctx, string(data)); err != nil {
				return err
			}
			_, err := tx.Exec(ctx, `INSERT INTO schema_migrations (name) VALUES ($1)`, f)
			return err
		})
		if err != nil {
			log.Fatalf("exec %s: %v", f, err)
		}

		fmt.Printf("OK  %s\n", f)
	}

	log.Println("all migrations applied")
}

func printStatus(ctx context.Context, pool *pgxpool.Pool) {
	done := applied(ctx, pool)
	for _, f := range migrationFiles() {
		state := "pending"
		if done[f] {
			state = "applied"
		}
		fmt.Printf("%-8s %s\n", state, f)
	}
}
