package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// AuthMode selects the credential-verification policy.
type AuthMode string

const (
	// AuthModeShared accepts one configured secret for every known email.
	// This is the demo policy and the default.
	AuthModeShared AuthMode = "shared"
	// AuthModeBcrypt verifies per-user bcrypt hashes.
	AuthModeBcrypt AuthMode = "bcrypt"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App      AppConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	Latency  LatencyConfig
	Seed     bool
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds connection values for the optional audit archive.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	ApplySchema    bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds connection values for the optional event fan-out.
type RedisConfig struct {
	Addr         string
	Password     string
	DB           int
	EventChannel string
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	Mode                  AuthMode
	SharedSecret          string
	JWTSecret             string
	AccessTokenTTLMinutes int
	BcryptCost            int
}

// LatencyConfig holds the artificial per-class operation delays. The service
// deliberately completes no operation instantaneously so consumers exercise
// their pending states; reads are shorter than writes.
type LatencyConfig struct {
	AuthMs  int
	ReadMs  int
	WriteMs int
}

// Auth returns the auth-class delay.
func (l LatencyConfig) Auth() time.Duration { return time.Duration(l.AuthMs) * time.Millisecond }

// Read returns the read-class delay.
func (l LatencyConfig) Read() time.Duration { return time.Duration(l.ReadMs) * time.Millisecond }

// Write returns the write-class delay.
func (l LatencyConfig) Write() time.Duration { return time.Duration(l.WriteMs) * time.Millisecond }

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	mode := AuthMode(getEnv("AUTH_MODE", string(AuthModeShared)))
	if mode != AuthModeShared && mode != AuthModeBcrypt {
		return nil, fmt.Errorf("invalid AUTH_MODE: %q", mode)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "pytracker-service"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			ApplySchema:    getEnvAsBool("POSTGRES_APPLY_SCHEMA", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:         os.Getenv("REDIS_ADDR"),
			Password:     os.Getenv("REDIS_PASSWORD"),
			DB:           redisDB,
			EventChannel: getEnv("REDIS_EVENT_CHANNEL", "pytracker.events"),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			Mode:                  mode,
			SharedSecret:          getEnv("AUTH_SHARED_SECRET", "password"),
			JWTSecret:             getEnv("AUTH_JWT_SECRET", "dev-secret"),
			AccessTokenTTLMinutes: getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 60),
			BcryptCost:            getEnvAsInt("AUTH_BCRYPT_COST", 12),
		},
		Latency: LatencyConfig{
			AuthMs:  getEnvAsInt("LATENCY_AUTH_MS", 1000),
			ReadMs:  getEnvAsInt("LATENCY_READ_MS", 500),
			WriteMs: getEnvAsInt("LATENCY_WRITE_MS", 800),
		},
		Seed: getEnvAsBool("SEED_ON_START", true),
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
