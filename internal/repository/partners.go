package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/scoala-altfel/orar/backend/internal/domain"
)

func (r *Repository) partnersTable() string {
	return pgx.Identifier{r.cfg.PartnersTable()}.Sanitize()
}

func (r *Repository) GetAllPartners(ctx context.Context) ([]*domain.PartnerRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := fmt.Sprintf(`SELECT id::text, name FROM %s ORDER BY name ASC`, r.partnersTable())

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	partners := make([]*domain.PartnerRecord, 0)
	for rows.Next() {
		var id string
		var name sql.NullString
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		partners = append(partners, toPartnerRecord(id, name))
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return partners, nil
}

func (r *Repository) CreatePartner(ctx context.Context, name string) (*domain.PartnerRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := fmt.Sprintf(`
		INSERT INTO %s (name)
		VALUES ($1)
		RETURNING id::text, name
	`, r.partnersTable())

	var id string
	var stored sql.NullString
	if err := r.dbpool.QueryRowContext(ctx, query, name).Scan(&id, &stored); err != nil {
		return nil, mapError(err)
	}

	return toPartnerRecord(id, stored), nil
}

func (r *Repository) DeletePartner(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	// compare as text so that a malformed id is simply a miss
	query := fmt.Sprintf(`DELETE FROM %s WHERE id::text = $1`, r.partnersTable())

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}

func toPartnerRecord(id string, name sql.NullString) *domain.PartnerRecord {
	rec := &domain.PartnerRecord{ID: id}
	if name.Valid {
		rec.Name = name.String
	}
	return rec
}
