package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

type Config struct {
	App      AppConfig
	Storage  StorageConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Suggest  SuggestConfig
	Feedback FeedbackConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

type StorageConfig struct {
	Driver       string
	SeedFixtures bool
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration

	RunMigrations bool
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

type JWTConfig struct {
	Secret    string
	ExpiresIn time.Duration
}

type SuggestConfig struct {
	AnthropicAPIKey  string
	AnthropicModel   string
	AnthropicBaseURL string
	MaxTokens        int
	Timeout          time.Duration
	CacheTTL         time.Duration
}

type FeedbackConfig struct {
	RatingMin int
	RatingMax int
}

var errMissingRequiredEnv = errors.New("missing required environment variables")
var errInvalidEnv = errors.New("invalid environment variables")

// Load reads the process environment. A .env file in the working directory is
// applied first when present; variables already set in the environment win.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{}

	var missing []string
	var invalid []string
	req := func(key string) string {
		v := strings.TrimSpace(getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key, def string) string {
		v := strings.TrimSpace(getenv(key))
		if v == "" {
			return def
		}
		return v
	}
	optInt := func(key string, def int) int {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return def
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return v
	}
	optBool := func(key string, def bool) bool {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return def
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return v
	}
	optDuration := func(key string, def time.Duration) time.Duration {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return def
		}
		v, err := time.ParseDuration(raw)
		if err != nil || v < 0 {
			invalid = append(invalid, key)
			return def
		}
		return v
	}

	cfg.App = AppConfig{
		AppName:     opt("APP_NAME", "skill-swap"),
		Environment: opt("APP_ENV", "development"),
		HTTPPort:    opt("HTTP_PORT", "8080"),
	}

	cfg.Storage = StorageConfig{
		Driver:       strings.ToLower(opt("STORAGE_DRIVER", StorageMemory)),
		SeedFixtures: optBool("SEED_FIXTURES", true),
	}
	if cfg.Storage.Driver != StorageMemory && cfg.Storage.Driver != StoragePostgres {
		invalid = append(invalid, "STORAGE_DRIVER")
	}

	if cfg.Storage.Driver == StoragePostgres {
		cfg.Database = DatabaseConfig{
			DBHost:     req("DB_HOST"),
			DBPort:     opt("DB_PORT", "5432"),
			DBName:     req("DB_NAME"),
			DBUser:     req("DB_USER"),
			DBPassword: strings.TrimSpace(getenv("DB_PASSWORD")),
			DBSSLMode:  opt("DB_SSL_MODE", "disable"),
		}
	}
	cfg.Database.ConnectTimeout = optDuration("DB_CONNECT_TIMEOUT", 5*time.Second)
	cfg.Database.PoolMaxConns = int32(optInt("DB_POOL_MAX_CONNS", 10))
	cfg.Database.PoolMinConns = int32(optInt("DB_POOL_MIN_CONNS", 0))
	cfg.Database.PoolMaxConnLifetime = optDuration("DB_POOL_MAX_CONN_LIFETIME", time.Hour)
	cfg.Database.PoolMaxConnIdleTime = optDuration("DB_POOL_MAX_CONN_IDLE_TIME", 30*time.Minute)
	cfg.Database.PoolHealthCheckPeriod = optDuration("DB_POOL_HEALTH_CHECK_PERIOD", time.Minute)
	cfg.Database.RunMigrations = optBool("DB_RUN_MIGRATIONS", true)

	cfg.Redis = RedisConfig{
		Host:     strings.TrimSpace(getenv("REDIS_HOST")),
		Port:     opt("REDIS_PORT", "6379"),
		Password: strings.TrimSpace(getenv("REDIS_PASSWORD")),
		DB:       optInt("REDIS_DB", 0),
		TTL:      optDuration("REDIS_TTL", 10*time.Minute),
	}

	cfg.JWT = JWTConfig{
		Secret:    req("JWT_SECRET"),
		ExpiresIn: optDuration("JWT_EXPIRES_IN", 24*time.Hour),
	}

	cfg.Suggest = SuggestConfig{
		AnthropicAPIKey:  strings.TrimSpace(getenv("ANTHROPIC_API_KEY")),
		AnthropicModel:   opt("ANTHROPIC_MODEL", "claude-3-5-haiku-latest"),
		AnthropicBaseURL: strings.TrimSpace(getenv("ANTHROPIC_BASE_URL")),
		MaxTokens:        optInt("ANTHROPIC_MAX_TOKENS", 512),
		Timeout:          optDuration("SUGGEST_TIMEOUT", 8*time.Second),
		CacheTTL:         optDuration("SUGGEST_CACHE_TTL", time.Hour),
	}

	cfg.Feedback = FeedbackConfig{
		RatingMin: optInt("RATING_MIN", 1),
		RatingMax: optInt("RATING_MAX", 5),
	}
	if cfg.Feedback.RatingMin > cfg.Feedback.RatingMax {
		invalid = append(invalid, "RATING_MIN", "RATING_MAX")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errInvalidEnv, strings.Join(invalid, ", "))
	}

	return cfg, nil
}

func (c Config) UsesPostgres() bool {
	return c.Storage.Driver == StoragePostgres
}

func (c RedisConfig) Enabled() bool {
	return strings.TrimSpace(c.Host) != ""
}

func (c RedisConfig) Addr() string {
	return c.Host + ":" + c.Port
}
