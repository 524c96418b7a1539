package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
)

type Config struct {
	Port           string
	GinMode        string
	LogLevel       log.Level
	Location       *time.Location
	AllowedOrigins []string

	Storage    StorageConfig
	Redis      RedisConfig
	CacheTTL   time.Duration
	RateLimit  int
	RateWindow time.Duration
}

type StorageConfig struct {
	Driver       string
	DBDriver     string
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	SQLitePath   string
}

// RedisConfig is disabled when Host is empty.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

func (r RedisConfig) Enabled() bool {
	return r.Host != ""
}

func (s StorageConfig) PostgresDSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(s.User, s.Password),
		Host:     net.JoinHostPort(s.Host, s.Port),
		Path:     "/" + s.Name,
		RawQuery: "sslmode=" + url.QueryEscape(s.SSLMode),
	}
	return u.String()
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from any variable source. Every invalid value is
// reported, not just the first.
func FromLookup(lookup func(string) (string, bool)) (*Config, error) {
	r := reader{lookup: lookup}

	cfg := &Config{
		Port:           r.str("PORT", "8080"),
		GinMode:        r.str("GIN_MODE", "release"),
		LogLevel:       r.level("LOG_LEVEL", log.InfoLevel),
		Location:       r.location("LEDGER_TIMEZONE", time.Local),
		AllowedOrigins: r.list("CORS_ORIGINS"),
		Storage: StorageConfig{
			Driver:       r.oneOf("STORAGE_DRIVER", StoragePostgres, StoragePostgres, StorageSQLite, StorageMemory),
			DBDriver:     r.oneOf("DB_DRIVER", "pgx", "pgx", "postgres"),
			Host:         r.str("DB_HOST", "localhost"),
			Port:         r.str("DB_PORT", "5432"),
			User:         r.str("DB_USER", "fithub_user"),
			Password:     r.str("DB_PASSWORD", ""),
			Name:         r.str("DB_NAME", "fithub_db"),
			SSLMode:      r.str("DB_SSLMODE", "disable"),
			MaxOpenConns: r.positiveInt("DB_MAX_OPEN_CONNS", 25),
			SQLitePath:   r.str("SQLITE_PATH", "fithub.db"),
		},
		Redis: RedisConfig{
			Host:     r.str("REDIS_HOST", ""),
			Port:     r.str("REDIS_PORT", "6379"),
			Password: r.str("REDIS_PASSWORD", ""),
			DB:       r.nonNegativeInt("REDIS_DB", 0),
		},
		CacheTTL:   r.duration("CACHE_TTL", 30*time.Minute),
		RateLimit:  r.nonNegativeInt("RATE_LIMIT", 100),
		RateWindow: r.duration("RATE_WINDOW", time.Minute),
	}

	if len(r.errs) > 0 {
		return nil, fmt.Errorf("config: %w", errors.Join(r.errs...))
	}
	return cfg, nil
}

type reader struct {
	lookup func(string) (string, bool)
	errs   []error
}

func (r *reader) raw(key string) (string, bool) {
	v, ok := r.lookup(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func (r *reader) str(key, fallback string) string {
	if v, ok := r.raw(key); ok {
		return v
	}
	return fallback
}

func (r *reader) list(key string) []string {
	v, ok := r.raw(key)
	if !ok {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (r *reader) oneOf(key, fallback string, allowed ...string) string {
	v, ok := r.raw(key)
	if !ok {
		return fallback
	}
	v = strings.ToLower(v)
	for _, a := range allowed {
		if v == a {
			return v
		}
	}
	r.errs = append(r.errs, fmt.Errorf("%s: %q is not one of %s", key, v, strings.Join(allowed, ", ")))
	return fallback
}

func (r *reader) intAtLeast(key string, fallback, floor int) int {
	v, ok := r.raw(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < floor {
		r.errs = append(r.errs, fmt.Errorf("%s: %q must be an integer >= %d", key, v, floor))
		return fallback
	}
	return n
}

func (r *reader) positiveInt(key string, fallback int) int {
	return r.intAtLeast(key, fallback, 1)
}

func (r *reader) nonNegativeInt(key string, fallback int) int {
	return r.intAtLeast(key, fallback, 0)
}

func (r *reader) duration(key string, fallback time.Duration) time.Duration {
	v, ok := r.raw(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		r.errs = append(r.errs, fmt.Errorf("%s: %q is not a positive duration", key, v))
		return fallback
	}
	return d
}

func (r *reader) location(key string, fallback *time.Location) *time.Location {
	v, ok := r.raw(key)
	if !ok {
		return fallback
	}
	loc, err := time.LoadLocation(v)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return loc
}

func (r *reader) level(key string, fallback log.Level) log.Level {
	v, ok := r.raw(key)
	if !ok {
		return fallback
	}
	lvl, err := log.ParseLevel(strings.ToLower(v))
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return lvl
}
