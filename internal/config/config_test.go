package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreKind(t *testing.T) {
	tests := []struct {
		name         string
		setup        func(c *Config)
		wantPartners StoreKind
		wantSchedule StoreKind
	}{
		{"nothing", func(c *Config) {}, StoreUnconfigured, StoreUnconfigured},
		{"url only", func(c *Config) { c.Supabase.URL = "https://x.supabase.co" }, StoreUnconfigured, StoreUnconfigured},
		{"key only", func(c *Config) { c.Supabase.ServiceRoleKey = "secret" }, StoreUnconfigured, StoreUnconfigured},
		{"url and anon key", func(c *Config) {
			c.Supabase.URL = "https://x.supabase.co"
			c.Supabase.AnonKey = "anon"
		}, StoreSupabase, StoreUnconfigured},
		{"url and service role key", func(c *Config) {
			c.Supabase.URL = "https://x.supabase.co"
			c.Supabase.ServiceRoleKey = "secret"
		}, StoreSupabase, StoreSupabase},
		{"dsn wins", func(c *Config) {
			c.Supabase.URL = "https://x.supabase.co"
			c.Supabase.ServiceRoleKey = "secret"
			c.Database.DSN = "postgres://localhost/orar"
		}, StorePostgres, StorePostgres},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{}
			tt.setup(c)
			assert.Equal(t, tt.wantPartners, c.StoreKind())
			assert.Equal(t, tt.wantSchedule, c.ScheduleStoreKind())
		})
	}
}

func TestSupabaseKeyPrefersServiceRole(t *testing.T) {
	c := &Config{}
	c.Supabase.AnonKey = "anon"
	assert.Equal(t, "anon", c.SupabaseKey())

	c.Supabase.ServiceRoleKey = "service"
	assert.Equal(t, "service", c.SupabaseKey())
}

func TestPartnersTable(t *testing.T) {
	c := &Config{}
	assert.Equal(t, "partners", c.PartnersTable())

	c.Supabase.PartnersTable = "  sponsors "
	assert.Equal(t, "sponsors", c.PartnersTable())
}

func TestLoadConfigDefaults(t *testing.T) {
	chdirTemp(t)
	t.Setenv("SUPABASE_PARTNERS_TABLE", "sponsori")
	t.Setenv("BOARD_BREAKPOINT", "90")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "sponsori", cfg.PartnersTable())
	assert.Equal(t, 90, cfg.Board.Breakpoint)
	assert.Equal(t, "schedule_changes", cfg.RabbitMQ.Queue)
}

func TestLoadConfigRejectsBadNumber(t *testing.T) {
	chdirTemp(t)
	t.Setenv("SERVER_READ_TIMEOUT", "soon")

	_, err := LoadConfig()
	assert.Error(t, err)
}

// chdirTemp moves into an empty directory so no .env file is picked up.
func chdirTemp(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
