package repository

import (
	"context"
	"time"

	"github.com/scoala-altfel/orar/backend/internal/domain"
)

func (r *Repository) GetAllScheduleEntries(ctx context.Context) ([]*domain.ScheduleEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT class_name, day, time, activity, professor
		FROM schedule_entries
		ORDER BY class_name ASC
	`

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*domain.ScheduleEntry, 0)
	for rows.Next() {
		entry := &domain.ScheduleEntry{}
		dst := []any{&entry.ClassName, &entry.Day, &entry.Time, &entry.Activity, &entry.Professor}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// UpsertScheduleEntry overwrites the whole row at the entry's slot and refreshes entry
// with what the database stored.
func (r *Repository) UpsertScheduleEntry(ctx context.Context, entry *domain.ScheduleEntry) error {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO schedule_entries (class_name, day, time, activity, professor)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (class_name, day, time) DO UPDATE
		SET
			activity = EXCLUDED.activity,
			professor = EXCLUDED.professor,
			updated_at = now()
		RETURNING class_name, day, time, activity, professor
	`

	args := []any{entry.ClassName, entry.Day, entry.Time, entry.Activity, entry.Professor}
	dst := []any{&entry.ClassName, &entry.Day, &entry.Time, &entry.Activity, &entry.Professor}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return mapError(err)
	}

	return nil
}

func (r *Repository) DeleteScheduleEntry(ctx context.Context, key domain.SlotKey) error {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		DELETE FROM schedule_entries
		WHERE class_name = $1 AND day = $2 AND time = $3
	`

	if _, err := r.dbpool.ExecContext(ctx, query, key.ClassName, key.Day, key.Time); err != nil {
		return err
	}

	return nil
}
