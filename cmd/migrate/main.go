// Command migrate applies goose migrations to the configured database.
//
// Flags:
//
//	--dir      migrations directory (default: ./migrations)
//	--down     roll back the most recent migration instead of migrating up
//	--status   print migration status and exit
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql
	"github.com/pressly/goose/v3"

	"github.com/mockingjay-project/mockingjay/internal/config"
)

func main() {
	dirFlag := flag.String("dir", "migrations", "migrations directory")
	downFlag := flag.Bool("down", false, "roll back the most recent migration")
	statusFlag := flag.Bool("status", false, "print migration status and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := run(ctx, cfg.Database.DSN, *dirFlag, *downFlag, *statusFlag); err != nil {
		log.Printf("migrate: %v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, dsn, dir string, down, status bool) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	provider, err := goose.NewProvider(goose.DialectPostgres, db, os.DirFS(dir))
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}

	switch {
	case status:
		statuses, err := provider.Status(ctx)
		if err != nil {
			return fmt.Errorf("status: %w", err)
		}
		for _, st := range statuses {
			applied := "pending"
			if !st.AppliedAt.IsZero() {
				applied = st.AppliedAt.Format(time.RFC3339)
			}
			fmt.Printf("%-50s %s\n", st.Source.Path, applied)
		}
	case down:
		result, err := provider.Down(ctx)
		if err != nil {
			return fmt.Errorf("down: %w", err)
		}
		log.Printf("rolled back %s", result.Source.Path)
	default:
		results, err := provider.Up(ctx)
		if err != nil {
			return fmt.Errorf("up: %w", err)
		}
		for _, r := range results {
			log.Printf("applied %s in %s", r.Source.Path, r.Duration)
		}
	}

	return nil
}
