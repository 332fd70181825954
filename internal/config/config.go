package config

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Server      struct {
		Port            string `env:"PORT" envDefault:"3000"`
		ReadTimeout     int    `env:"READ_TIMEOUT" envDefault:"10"`
		WriteTimeout    int    `env:"WRITE_TIMEOUT" envDefault:"15"`
		IdleTimeout     int    `env:"IDLE_TIMEOUT" envDefault:"60"`
		ShutdownTimeout int    `env:"SHUTDOWN_TIMEOUT" envDefault:"10"`
	} `envPrefix:"SERVER_"`
	Supabase struct {
		URL            string `env:"URL"`
		ServiceRoleKey string `env:"SERVICE_ROLE_KEY"`
		AnonKey        string `env:"ANON_KEY"`
		PartnersTable  string `env:"PARTNERS_TABLE" envDefault:"partners"`
		RequestTimeout int    `env:"REQUEST_TIMEOUT" envDefault:"10"`
	} `envPrefix:"SUPABASE_"`
	// Database takes precedence over Supabase when DSN is set.
	Database struct {
		DSN            string `env:"DSN"`
		ConnectTimeout int    `env:"CONNECT_TIMEOUT" envDefault:"10"`
		QueryTimeout   int    `env:"QUERY_TIMEOUT" envDefault:"10"`
		MaxOpenConns   int    `env:"MAX_OPEN_CONNS" envDefault:"10"`
		MaxIdleConns   int    `env:"MAX_IDLE_CONNS" envDefault:"10"`
		MaxIdleTime    int    `env:"MAX_IDLE_TIME" envDefault:"60"`
	} `envPrefix:"DATABASE_"`
	Redis struct {
		Addr      string `env:"ADDR"`
		Password  string `env:"PASSWORD"`
		DB        int    `env:"DB" envDefault:"0"`
		TTL       int    `env:"TTL" envDefault:"300"` // seconds
		OpTimeout int    `env:"OPERATION_TIMEOUT" envDefault:"2"`
	} `envPrefix:"REDIS_"`
	RabbitMQ struct {
		DSN            string `env:"DSN"`
		Queue          string `env:"QUEUE" envDefault:"schedule_changes"`
		PublishTimeout int    `env:"PUBLISH_TIMEOUT" envDefault:"10"`
	} `envPrefix:"RABBITMQ_"`
	Email struct {
		NotifyTo string `env:"NOTIFY_TO"`
		SMTP     struct {
			Username    string `env:"USERNAME"`
			Password    string `env:"PASSWORD"`
			Host        string `env:"HOST"`
			Port        int    `env:"PORT" envDefault:"465"`
			DialTimeout int    `env:"DIAL_TIMEOUT" envDefault:"10"`
		} `envPrefix:"SMTP_"`
	} `envPrefix:"EMAIL_"`
	Board struct {
		APIBaseURL string `env:"API_BASE_URL" envDefault:"http://localhost:3000"`
		// Terminal columns below which the board switches to the per-class layout.
		Breakpoint     int `env:"BREAKPOINT" envDefault:"120"`
		RequestTimeout int `env:"REQUEST_TIMEOUT" envDefault:"15"`
	} `envPrefix:"BOARD_"`
}

type StoreKind string

const (
	StoreUnconfigured StoreKind = "unconfigured"
	StoreSupabase     StoreKind = "supabase"
	StorePostgres     StoreKind = "postgres"
)

// StoreKind reports which backend the credentials select for partners. The anon key is
// enough for partners.
func (c *Config) StoreKind() StoreKind {
	switch {
	case c.Database.DSN != "":
		return StorePostgres
	case c.Supabase.URL != "" && c.SupabaseKey() != "":
		return StoreSupabase
	default:
		return StoreUnconfigured
	}
}

// ScheduleStoreKind is StoreKind for schedule entries. Over Supabase they need the service
// role key.
func (c *Config) ScheduleStoreKind() StoreKind {
	switch {
	case c.Database.DSN != "":
		return StorePostgres
	case c.Supabase.URL != "" && c.Supabase.ServiceRoleKey != "":
		return StoreSupabase
	default:
		return StoreUnconfigured
	}
}

// SupabaseKey prefers the service role key and falls back to the anon key.
func (c *Config) SupabaseKey() string {
	if c.Supabase.ServiceRoleKey != "" {
		return c.Supabase.ServiceRoleKey
	}
	return c.Supabase.AnonKey
}

func (c *Config) PartnersTable() string {
	if t := strings.TrimSpace(c.Supabase.PartnersTable); t != "" {
		return t
	}
	return "partners"
}

func LoadConfig() (*Config, error) {
	// the .env file is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		aggErr := env.AggregateError{}
		if ok := errors.As(err, &aggErr); ok {
			// only the first error keeps the log readable
			return nil, aggErr.Errors[0]
		}
		return nil, err
	}

	return cfg, nil
}
