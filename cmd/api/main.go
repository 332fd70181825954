package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/scoala-altfel/orar/backend/internal/cache"
	"github.com/scoala-altfel/orar/backend/internal/config"
	"github.com/scoala-altfel/orar/backend/internal/handler"
	"github.com/scoala-altfel/orar/backend/internal/notify"
	"github.com/scoala-altfel/orar/backend/internal/repository"
	"github.com/scoala-altfel/orar/backend/internal/supabase"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	/**********************************************
	 * logger
	 **********************************************/
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	/**********************************************
	 * configuration
	 **********************************************/
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		return
	}

	/**********************************************
	 * store
	 **********************************************/
	var store repository.Store

	switch cfg.StoreKind() {
	case config.StorePostgres:
		dbpool, err := openDatabase(cfg)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			return
		}
		defer dbpool.Close()
		store = repository.NewRepository(cfg, dbpool)
	case config.StoreSupabase:
		store = supabase.NewClient(
			cfg.Supabase.URL,
			cfg.SupabaseKey(),
			cfg.PartnersTable(),
			time.Duration(cfg.Supabase.RequestTimeout)*time.Second,
		)
	default:
		logger.Warn("no store credentials, serving in unconfigured mode")
	}
	if store != nil && cfg.ScheduleStoreKind() == config.StoreUnconfigured {
		logger.Warn("SUPABASE_SERVICE_ROLE_KEY not set, schedule endpoints unconfigured")
	}
	logger.Info("store selected", "partners", cfg.StoreKind(), "schedule", cfg.ScheduleStoreKind())

	/**********************************************
	 * redis
	 **********************************************/
	if store != nil && cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		store = cache.New(
			store,
			rdb,
			time.Duration(cfg.Redis.TTL)*time.Second,
			time.Duration(cfg.Redis.OpTimeout)*time.Second,
		)
	} else if cfg.Redis.Addr == "" {
		logger.Warn("REDIS_ADDR not set, list caching disabled")
	}

	/**********************************************
	 * rabbitmq
	 **********************************************/
	var publisher handler.ChangePublisher

	if cfg.RabbitMQ.DSN != "" {
		conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
		if err != nil {
			logger.Error("failed to connect to rabbitmq", "error", err)
			return
		}
		defer conn.Close()

		ch, err := conn.Channel()
		if err != nil {
			logger.Error("failed to open channel", "error", err)
			return
		}
		defer ch.Close()

		if _, err := notify.DeclareQueue(ch, cfg.RabbitMQ.Queue); err != nil {
			logger.Error("failed to declare queue", "queue", cfg.RabbitMQ.Queue, "error", err)
			return
		}

		publisher = notify.NewPublisher(ch, cfg.RabbitMQ.Queue, time.Duration(cfg.RabbitMQ.PublishTimeout)*time.Second)
	} else {
		logger.Warn("RABBITMQ_DSN not set, change notifications disabled")
	}

	/**********************************************
	 * handler
	 **********************************************/
	h, err := handler.NewHandler(cfg, store, publisher)
	if err != nil {
		logger.Error("failed to create handler", "error", err)
		return
	}
	h.RegisterRoutes()

	/**********************************************
	 * http server
	 **********************************************/
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      h.Mux,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("starting server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.String("error", err.Error()))
			quit <- syscall.SIGTERM
		}
	}()

	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", slog.String("error", err.Error()))
	}
	logger.Info("server stopped")
}

func openDatabase(cfg *config.Config) (*sql.DB, error) {
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		return nil, err
	}

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open does not connect
	if err := dbpool.PingContext(ctx); err != nil {
		dbpool.Close()
		return nil, err
	}

	return dbpool, nil
}
