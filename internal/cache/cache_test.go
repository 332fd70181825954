package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/scoala-altfel/orar/backend/internal/domain"
	"github.com/scoala-altfel/orar/backend/internal/repository/repotest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, *repotest.Memory, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	mem := repotest.NewMemory()
	return New(mem, rdb, time.Minute, time.Second), mem, mr
}

func TestScheduleListIsServedFromCache(t *testing.T) {
	store, mem, mr := newTestStore(t)
	ctx := context.Background()

	entry := &domain.ScheduleEntry{ClassName: "Clasa a V-a", Day: "Luni", Time: "08:00 - 09:00", Activity: "Excursie"}
	require.NoError(t, store.UpsertScheduleEntry(ctx, entry))

	first, err := store.GetAllScheduleEntries(ctx)
	require.NoError(t, err)
	second, err := store.GetAllScheduleEntries(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, mem.CallCount("GetAllScheduleEntries"))
	assert.True(t, mr.Exists(scheduleKey+":1"))
}

func TestWritesInvalidateCachedList(t *testing.T) {
	store, mem, mr := newTestStore(t)
	ctx := context.Background()

	_, err := store.GetAllPartners(ctx)
	require.NoError(t, err)
	require.True(t, mr.Exists(partnersKey+":0"))

	_, err = store.CreatePartner(ctx, "Ateneul")
	require.NoError(t, err)
	assert.False(t, mr.Exists(partnersKey+":1"))
	gen, err := mr.Get(partnersKey + genSuffix)
	require.NoError(t, err)
	assert.Equal(t, "1", gen)

	partners, err := store.GetAllPartners(ctx)
	require.NoError(t, err)
	require.Len(t, partners, 1)
	assert.Equal(t, 2, mem.CallCount("GetAllPartners"))
}

func TestFailedWriteKeepsCache(t *testing.T) {
	store, mem, mr := newTestStore(t)
	ctx := context.Background()

	_, err := store.GetAllScheduleEntries(ctx)
	require.NoError(t, err)

	mem.Err = assert.AnError
	err = store.DeleteScheduleEntry(ctx, domain.SlotKey{ClassName: "x", Day: "y", Time: "z"})
	assert.ErrorIs(t, err, assert.AnError)
	assert.True(t, mr.Exists(scheduleKey+":0"))
	assert.False(t, mr.Exists(scheduleKey+genSuffix))
}

func TestRedisOutageFallsThrough(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })

	mem := repotest.NewMemory()
	store := New(mem, rdb, time.Minute, 200*time.Millisecond)

	entries, err := store.GetAllScheduleEntries(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Equal(t, 1, mem.CallCount("GetAllScheduleEntries"))
}

// slowList hands out its snapshot only after release is closed.
type slowList struct {
	*repotest.Memory
	started chan struct{}
	release chan struct{}
}

func (s *slowList) GetAllScheduleEntries(ctx context.Context) ([]*domain.ScheduleEntry, error) {
	entries, err := s.Memory.GetAllScheduleEntries(ctx)
	close(s.started)
	<-s.release
	return entries, err
}

func TestReadOverlappingWriteDoesNotPinStaleList(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	mem := repotest.NewMemory()
	slow := &slowList{Memory: mem, started: make(chan struct{}), release: make(chan struct{})}
	store := New(slow, rdb, time.Minute, time.Second)
	ctx := context.Background()

	done := make(chan error)
	go func() {
		_, err := store.GetAllScheduleEntries(ctx)
		done <- err
	}()
	<-slow.started

	entry := &domain.ScheduleEntry{ClassName: "Clasa a V-a", Day: "Luni", Time: "08:00 - 09:00", Activity: "Excursie"}
	require.NoError(t, store.UpsertScheduleEntry(ctx, entry))

	close(slow.release)
	require.NoError(t, <-done)

	// same Redis, without the slow inner store
	entries, err := New(mem, rdb, time.Minute, time.Second).GetAllScheduleEntries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Excursie", entries[0].Activity)
}
