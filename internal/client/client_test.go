package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/scoala-altfel/orar/backend/internal/config"
	"github.com/scoala-altfel/orar/backend/internal/domain"
	"github.com/scoala-altfel/orar/backend/internal/handler"
	"github.com/scoala-altfel/orar/backend/internal/repository"
	"github.com/scoala-altfel/orar/backend/internal/repository/repotest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, store repository.Store) *Client {
	t.Helper()

	h, err := handler.NewHandler(&config.Config{}, store, nil)
	require.NoError(t, err)
	h.RegisterRoutes()

	srv := httptest.NewServer(h.Mux)
	t.Cleanup(srv.Close)

	return New(srv.URL, 5*time.Second)
}

func TestScheduleRoundTrip(t *testing.T) {
	c := newTestClient(t, repotest.NewMemory())
	ctx := context.Background()

	saved, err := c.SaveEntry(ctx, domain.ScheduleEntry{
		ClassName: "Clasa a V-a", Day: "Luni", Time: "08:00 - 09:00", Activity: "Excursie", Professor: "Ionescu",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ionescu", saved.Professor)

	list, err := c.ListSchedule(ctx)
	require.NoError(t, err)
	assert.Empty(t, list.Notice)
	assert.Equal(t, []domain.ScheduleEntry{*saved}, list.Entries)

	require.NoError(t, c.DeleteEntry(ctx, saved.Key()))
	list, err = c.ListSchedule(ctx)
	require.NoError(t, err)
	assert.Empty(t, list.Entries)
}

func TestPartnerErrorsCarryServerMessage(t *testing.T) {
	c := newTestClient(t, repotest.NewMemory())
	ctx := context.Background()

	_, err := c.CreatePartner(ctx, "Ateneul")
	require.NoError(t, err)

	_, err = c.CreatePartner(ctx, "Ateneul")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "Acest partener este deja în listă.", apiErr.Message)
}

func TestUnconfiguredNotice(t *testing.T) {
	c := newTestClient(t, nil)

	list, err := c.ListPartners(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list.Partners)
	assert.Equal(t, "Supabase nu este configurat.", list.Notice)
}
