package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App      AppConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Session  SessionConfig
	Admin    AdminConfig
	Mail     MailConfig
	Courses  CoursesConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
	CORSOrigins           string
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// SessionConfig defines video-lesson session parameters.
// JWTSecret is read once at startup and never mutated afterwards.
type SessionConfig struct {
	JWTSecret          string
	DefaultTTLMinutes  int
	FrontendURL        string
	ReapIntervalSecond int
}

// AdminConfig guards mutating admin routes.
type AdminConfig struct {
	TokenHash string
}

// MailConfig holds outbound SMTP settings.
type MailConfig struct {
	SMTPHost  string
	SMTPPort  int
	SMTPUser  string
	SMTPPass  string
	FromName  string
	FromEmail string
	SupportTo string
	HelloTo   string
}

// CoursesConfig points at the lesson content source.
type CoursesConfig struct {
	Source       string
	GitHubOwner  string
	GitHubRepo   string
	GitHubBranch string
	GitHubDir    string
	GitHubToken  string
	LocalDir     string
	CacheTTLSec  int
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	maxConns := int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10))
	minConns := int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2))
	runMigrations := getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true)
	connMaxIdle := int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30))
	connMaxLife := int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300))

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "gottaspeak-backend"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "4000"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
			CORSOrigins:           getEnv("CORS_ORIGIN", "http://localhost:5173"),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       maxConns,
			MinConns:       minConns,
			RunMigrations:  runMigrations,
			ConnMaxIdleSec: connMaxIdle,
			ConnMaxLifeSec: connMaxLife,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Session: SessionConfig{
			JWTSecret:          getEnv("SESSION_JWT_SECRET", "dev-secret"),
			DefaultTTLMinutes:  getEnvAsInt("SESSION_DEFAULT_TTL_MINUTES", 1440),
			FrontendURL:        getEnv("FRONTEND_URL", "http://localhost:5173"),
			ReapIntervalSecond: getEnvAsInt("SESSION_REAP_INTERVAL_SECONDS", 300),
		},
		Admin: AdminConfig{
			TokenHash: os.Getenv("ADMIN_TOKEN_HASH"),
		},
		Mail: MailConfig{
			SMTPHost:  os.Getenv("SMTP_HOST"),
			SMTPPort:  getEnvAsInt("SMTP_PORT", 587),
			SMTPUser:  os.Getenv("SMTP_USER"),
			SMTPPass:  os.Getenv("SMTP_PASS"),
			FromName:  getEnv("MAIL_FROM_NAME", "GottaSpeak"),
			FromEmail: getEnv("MAIL_FROM_EMAIL", "noreply@gottaspeak.com"),
			SupportTo: getEnv("MAIL_TO_SUPPORT", "support@gottaspeak.com"),
			HelloTo:   getEnv("MAIL_TO_HELLO", "hello@gottaspeak.com"),
		},
		Courses: CoursesConfig{
			Source:       getEnv("COURSES_SOURCE", "local"),
			GitHubOwner:  os.Getenv("COURSES_GITHUB_OWNER"),
			GitHubRepo:   os.Getenv("COURSES_GITHUB_REPO"),
			GitHubBranch: getEnv("COURSES_GITHUB_BRANCH", "main"),
			GitHubDir:    getEnv("COURSES_GITHUB_DIR", "courses"),
			GitHubToken:  os.Getenv("COURSES_GITHUB_TOKEN"),
			LocalDir:     getEnv("COURSES_DIR", "content/courses"),
			CacheTTLSec:  getEnvAsInt("COURSES_CACHE_TTL_SECONDS", 60),
		},
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

// ReapInterval returns how often the session reaper sweeps expired rows.
func (s SessionConfig) ReapInterval() time.Duration {
	if s.ReapIntervalSecond <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(s.ReapIntervalSecond) * time.Second
}

// CacheTTL returns the lesson content memoization window.
func (c CoursesConfig) CacheTTL() time.Duration {
	if c.CacheTTLSec <= 0 {
		return time.Minute
	}
	return time.Duration(c.CacheTTLSec) * time.Second
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
