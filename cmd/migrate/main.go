package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/scoala-altfel/orar/backend/internal/config"
	"github.com/scoala-altfel/orar/backend/internal/repository"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op string

	flag.StringVar(&op, "op", "up", "goose command (up, up-by-one, down, redo, reset, status, version)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if cfg.StoreKind() != config.StorePostgres {
		logger.Error("migrations need DATABASE_DSN; the Supabase schema is managed by the project")
		os.Exit(1)
	}

	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer dbpool.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("failed to connect to database", "error", err)
		return
	}

	if err := repository.Migrate(context.Background(), dbpool, op, flag.Args()...); err != nil {
		logger.Error("migration failed", slog.String("op", op), slog.String("error", err.Error()))
		return
	}
	logger.Info("migration finished", slog.String("op", op))
}
