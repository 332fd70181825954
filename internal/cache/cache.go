// Package cache keeps the list endpoints in Redis in front of a repository.Store.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/scoala-altfel/orar/backend/internal/domain"
	"github.com/scoala-altfel/orar/backend/internal/repository"
)

const (
	partnersKey = "orar:partners"
	scheduleKey = "orar:schedule_entries"

	genSuffix = ":gen"
)

// Store answers list reads from Redis and moves the list to a new generation on every
// successful write.
// Redis failures are logged and fall through to the wrapped store.
type Store struct {
	next      repository.Store
	rdb       *redis.Client
	ttl       time.Duration
	opTimeout time.Duration
}

func New(next repository.Store, rdb *redis.Client, ttl, opTimeout time.Duration) *Store {
	return &Store{
		next:      next,
		rdb:       rdb,
		ttl:       ttl,
		opTimeout: opTimeout,
	}
}

// cacheKey names the list under its current generation. Writes bump the generation, so
// a read that fetched before a write can only fill a key nobody reads anymore. ok is false
// when Redis cannot tell the generation.
func (s *Store) cacheKey(ctx context.Context, list string) (string, bool) {
	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	gen, err := s.rdb.Get(ctx, list+genSuffix).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		slog.Warn("cache generation read failed", "key", list, "error", err)
		return "", false
	}
	return fmt.Sprintf("%s:%d", list, gen), true
}

func (s *Store) load(ctx context.Context, key string, dst any) bool {
	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	data, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("cache read failed", "key", key, "error", err)
		}
		return false
	}

	if err := json.Unmarshal(data, dst); err != nil {
		slog.Warn("cache entry corrupted", "key", key, "error", err)
		return false
	}
	return true
}

func (s *Store) save(ctx context.Context, key string, v any) {
	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	data, err := json.Marshal(v)
	if err != nil {
		slog.Warn("cache encode failed", "key", key, "error", err)
		return
	}
	if err := s.rdb.Set(ctx, key, data, s.ttl).Err(); err != nil {
		slog.Warn("cache write failed", "key", key, "error", err)
	}
}

// invalidate moves list to a new generation.
func (s *Store) invalidate(ctx context.Context, list string) {
	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	if err := s.rdb.Incr(ctx, list+genSuffix).Err(); err != nil {
		slog.Warn("cache invalidation failed", "key", list, "error", err)
	}
}

func (s *Store) GetAllPartners(ctx context.Context) ([]*domain.PartnerRecord, error) {
	key, cacheable := s.cacheKey(ctx, partnersKey)

	var partners []*domain.PartnerRecord
	if cacheable && s.load(ctx, key, &partners) {
		return partners, nil
	}

	partners, err := s.next.GetAllPartners(ctx)
	if err != nil {
		return nil, err
	}
	if cacheable {
		s.save(ctx, key, partners)
	}
	return partners, nil
}

func (s *Store) CreatePartner(ctx context.Context, name string) (*domain.PartnerRecord, error) {
	rec, err := s.next.CreatePartner(ctx, name)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, partnersKey)
	return rec, nil
}

func (s *Store) DeletePartner(ctx context.Context, id string) error {
	if err := s.next.DeletePartner(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, partnersKey)
	return nil
}

func (s *Store) GetAllScheduleEntries(ctx context.Context) ([]*domain.ScheduleEntry, error) {
	key, cacheable := s.cacheKey(ctx, scheduleKey)

	var entries []*domain.ScheduleEntry
	if cacheable && s.load(ctx, key, &entries) {
		return entries, nil
	}

	entries, err := s.next.GetAllScheduleEntries(ctx)
	if err != nil {
		return nil, err
	}
	if cacheable {
		s.save(ctx, key, entries)
	}
	return entries, nil
}

func (s *Store) UpsertScheduleEntry(ctx context.Context, entry *domain.ScheduleEntry) error {
	if err := s.next.UpsertScheduleEntry(ctx, entry); err != nil {
		return err
	}
	s.invalidate(ctx, scheduleKey)
	return nil
}

func (s *Store) DeleteScheduleEntry(ctx context.Context, key domain.SlotKey) error {
	if err := s.next.DeleteScheduleEntry(ctx, key); err != nil {
		return err
	}
	s.invalidate(ctx, scheduleKey)
	return nil
}
