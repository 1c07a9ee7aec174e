package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

const (
	StoreBackendSheets = "sheets"
	StoreBackendRedis  = "redis"
	StoreBackendMemory = "memory"

	LockBackendLocal = "local"
	LockBackendRedis = "redis"
)

type Config struct {
	Debug bool `env:"DEBUG" envDefault:"false"`

	Server struct {
		Port   int    `env:"PORT" envDefault:"8080"`
		Origin string `env:"ORIGIN" envDefault:"*"`
		// Empty token disables the operator routes.
		AdminToken string `env:"ADMIN_TOKEN" envDefault:""`
	}

	Store struct {
		Backend         string        `env:"STORE_BACKEND" envDefault:"sheets"`
		SpreadsheetID   string        `env:"SPREADSHEET_ID"`
		CredentialsFile string        `env:"GOOGLE_CREDENTIALS_FILE"`
		CallTimeout     time.Duration `env:"STORE_CALL_TIMEOUT" envDefault:"10s"`
		MaxRetries      uint64        `env:"STORE_MAX_RETRIES" envDefault:"3"`
	}

	// Sheet tab names of each table.
	Tables struct {
		Batch    string `env:"TABLE_BATCH" envDefault:"Feuille 1"`
		Activity string `env:"TABLE_ACTIVITY" envDefault:"Feuille 2"`
		Devices  string `env:"TABLE_DEVICES" envDefault:"Feuille 3"`
		Keys     string `env:"TABLE_KEYS" envDefault:"Feuille 4"`
		UserKeys string `env:"TABLE_USER_KEYS" envDefault:"Feuille 5"`
	}

	Redis struct {
		Host     string `env:"REDIS_HOST" envDefault:"localhost"`
		Port     int    `env:"REDIS_PORT" envDefault:"6379"`
		Password string `env:"REDIS_PASSWORD" envDefault:""`
		DB       int    `env:"REDIS_DB" envDefault:"0"`
	}

	Lock struct {
		Backend     string        `env:"LOCK_BACKEND" envDefault:"local"`
		TTL         time.Duration `env:"LOCK_TTL" envDefault:"30s"`
		WaitTimeout time.Duration `env:"LOCK_WAIT_TIMEOUT" envDefault:"15s"`
	}
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	// .env is optional; in production the variables come from the environment.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Store.Backend {
	case StoreBackendSheets:
		if c.Store.SpreadsheetID == "" {
			return fmt.Errorf("SPREADSHEET_ID is required for the sheets backend")
		}
		if c.Store.CredentialsFile == "" {
			return fmt.Errorf("GOOGLE_CREDENTIALS_FILE is required for the sheets backend")
		}
	case StoreBackendRedis, StoreBackendMemory:
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.Store.Backend)
	}

	switch c.Lock.Backend {
	case LockBackendLocal:
	case LockBackendRedis:
		// Held leases are renewed every third of the TTL.
		if c.Lock.TTL < time.Second {
			return fmt.Errorf("LOCK_TTL must be at least 1s, got %s", c.Lock.TTL)
		}
	default:
		return fmt.Errorf("unknown LOCK_BACKEND %q", c.Lock.Backend)
	}
	return nil
}

// NeedsRedis reports whether any configured backend talks to redis.
func (c *Config) NeedsRedis() bool {
	return c.Store.Backend == StoreBackendRedis || c.Lock.Backend == LockBackendRedis
}

func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
