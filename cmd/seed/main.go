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
	"github.com/scoala-altfel/orar/backend/internal/seed"
	"github.com/scoala-altfel/orar/backend/internal/supabase"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var file string

	flag.IntVar(&op, "op", 0, "operation (1: import partners, 2: import schedule entries)")
	flag.StringVar(&file, "file", "", "CSV file (default ./internal/seed/data/partners.csv or schedule.csv)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var store repository.Store
	switch cfg.StoreKind() {
	case config.StorePostgres:
		dbpool, err := sql.Open("pgx", cfg.Database.DSN)
		if err != nil {
			logger.Error("failed to create database pool", "error", err)
			return
		}
		defer dbpool.Close()

		dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
		defer cancel()
		if err := dbpool.PingContext(ctx); err != nil {
			logger.Error("failed to connect to database", "error", err)
			return
		}

		store = repository.NewRepository(cfg, dbpool)
	case config.StoreSupabase:
		store = supabase.NewClient(cfg.Supabase.URL, cfg.SupabaseKey(), cfg.PartnersTable(), time.Duration(cfg.Supabase.RequestTimeout)*time.Second)
	default:
		logger.Error("no store configured, set DATABASE_DSN or SUPABASE_URL and a key")
		return
	}

	ctx := context.Background()

	switch op {
	case 0:
		slog.Error("no operation given")
	case 1:
		if file == "" {
			file = "./internal/seed/data/partners.csv"
		}
		f, err := os.Open(file)
		if err != nil {
			slog.Error("failed to open file", slog.String("error", err.Error()))
			return
		}
		defer f.Close()

		names, err := seed.ReadPartners(f)
		if err != nil {
			slog.Error("failed to read partners", slog.String("file", file), slog.String("error", err.Error()))
			return
		}

		n, err := seed.Partners(ctx, store, names)
		if err != nil {
			slog.Error("failed to insert partners", slog.String("error", err.Error()))
		}
		slog.Info("partners inserted", slog.Int("count", n))
	case 2:
		if cfg.ScheduleStoreKind() == config.StoreUnconfigured {
			slog.Error("schedule entries need DATABASE_DSN or SUPABASE_SERVICE_ROLE_KEY")
			return
		}
		if file == "" {
			file = "./internal/seed/data/schedule.csv"
		}
		f, err := os.Open(file)
		if err != nil {
			slog.Error("failed to open file", slog.String("error", err.Error()))
			return
		}
		defer f.Close()

		entries, err := seed.ReadScheduleEntries(f)
		if err != nil {
			slog.Error("failed to read schedule entries", slog.String("file", file), slog.String("error", err.Error()))
			return
		}

		n, err := seed.Schedule(ctx, store, entries)
		if err != nil {
			slog.Error("failed to upsert schedule entries", slog.String("error", err.Error()))
		}
		slog.Info("schedule entries upserted", slog.Int("count", n))
	default:
		slog.Error("unknown operation", slog.Int("op", op))
	}
}
