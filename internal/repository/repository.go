package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/scoala-altfel/orar/backend/internal/config"
	"github.com/scoala-altfel/orar/backend/internal/domain"
)

// Store is the persistence surface shared by the Postgres repository, the Supabase
// REST client and the Redis cache decorator.
type Store interface {
	GetAllPartners(ctx context.Context) ([]*domain.PartnerRecord, error)
	CreatePartner(ctx context.Context, name string) (*domain.PartnerRecord, error)
	DeletePartner(ctx context.Context, id string) error

	GetAllScheduleEntries(ctx context.Context) ([]*domain.ScheduleEntry, error)
	UpsertScheduleEntry(ctx context.Context, entry *domain.ScheduleEntry) error
	DeleteScheduleEntry(ctx context.Context, key domain.SlotKey) error
}

type Repository struct {
	cfg    *config.Config
	dbpool *sql.DB
}

func NewRepository(cfg *config.Config, dbpool *sql.DB) *Repository {
	return &Repository{
		cfg:    cfg,
		dbpool: dbpool,
	}
}

const uniqueViolation = "23505"

func mapError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", domain.ErrDuplicate, pgErr.ConstraintName)
	}
	return err
}
