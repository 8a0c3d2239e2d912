// Package config handles loading application configuration from environment
// variables. All config is centralized here so no other package reads env
// vars directly. Sensible defaults are provided for development; the JWT
// signing secret is the one value with no default and no fallback.
package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
)

// Config holds all application configuration. Populated from environment
// variables at startup. Passed to other packages via dependency injection.
type Config struct {
	// Env is the runtime environment: "development" or "production".
	Env string

	// Port is the HTTP listen port (default: 3000).
	Port int

	// LogLevel controls log verbosity: "debug", "info", "warn", "error".
	LogLevel string

	// AllowedOrigins is the list of origins permitted to send credentialed
	// cross-site requests (the frontend is served from a different origin
	// than the API).
	AllowedOrigins []string

	// Database holds MySQL connection settings.
	Database DatabaseConfig

	// Auth holds token signing settings.
	Auth AuthConfig

	// Provider holds the external chat-completion provider settings.
	Provider ProviderConfig

	// MigrationsPath is the directory containing SQL migration files.
	MigrationsPath string
}

// DatabaseConfig holds MySQL connection parameters. Individual fields
// (Host, User, Password, Name) are read from separate env vars so container
// orchestrators can manage each independently. If DATABASE_URL is set, it
// takes precedence over the individual fields.
type DatabaseConfig struct {
	// Host is the MySQL address in host:port format (default: "localhost:3306").
	// If no port is specified, 3306 is appended automatically.
	Host string

	// User is the MySQL username (default: "kodbank").
	User string

	// Password is the MySQL password (default: "kodbank").
	Password string

	// Name is the database name (default: "kodbank").
	Name string

	// dsnOverride is set when DATABASE_URL is provided, bypassing individual fields.
	dsnOverride string

	// MaxOpenConns is the maximum number of open connections in the pool.
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections in the pool.
	MaxIdleConns int

	// ConnMaxLifetime is how long a connection can be reused.
	ConnMaxLifetime time.Duration
}

// DSN returns the go-sql-driver/mysql connection string. If DATABASE_URL was
// set, it is returned as-is. Otherwise the DSN is built from the individual
// Host/User/Password/Name fields using the driver's Config.FormatDSN()
// to safely handle special characters in passwords.
func (d DatabaseConfig) DSN() string {
	if d.dsnOverride != "" {
		return d.dsnOverride
	}
	cfg := mysql.NewConfig()
	cfg.User = d.User
	cfg.Passwd = d.Password
	cfg.Net = "tcp"
	cfg.Addr = ensurePort(d.Host, "3306")
	cfg.DBName = d.Name
	cfg.ParseTime = true
	return cfg.FormatDSN()
}

// ensurePort appends the default port if the host string doesn't include one.
// Allows users to set DB_HOST=mydb (gets :3306) or DB_HOST=mydb:3307 (as-is).
func ensurePort(host, defaultPort string) string {
	_, _, err := net.SplitHostPort(host)
	if err != nil {
		return net.JoinHostPort(host, defaultPort)
	}
	return host
}

// AuthConfig holds session token settings.
type AuthConfig struct {
	// JWTSecret is the HS256 signing secret shared by the token issuer and
	// the validator middleware. Required -- Load fails without it so the
	// process never runs with an undefined or guessable secret.
	JWTSecret string

	// TokenTTL is the validity window of an issued session token.
	TokenTTL time.Duration
}

// ProviderConfig holds the external chat-completion provider settings.
// The API key is only needed by the chat endpoint; its absence is a
// request-time configuration error, not a startup failure.
type ProviderConfig struct {
	// Endpoint is the OpenAI-compatible chat completions URL.
	Endpoint string

	// APIKey is the bearer token sent to the provider.
	APIKey string

	// Timeout bounds the outbound provider call. The provider is untrusted
	// and potentially slow; a stalled call must not pin the request forever.
	Timeout time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
// Returns an error if JWT_SECRET is missing -- the issuer and validator share
// this secret and there is no safe default for it.
func Load() (*Config, error) {
	cfg := &Config{
		Env:      getEnv("ENV", "development"),
		Port:     getEnvInt("PORT", 3000),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		AllowedOrigins: splitCSV(getEnv("ALLOWED_ORIGINS",
			"http://localhost:5173,http://localhost:3000")),

		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost:3306"),
			User:            getEnv("DB_USER", "kodbank"),
			Password:        getEnv("DB_PASSWORD", "kodbank"),
			Name:            getEnv("DB_NAME", "kodbank"),
			dsnOverride:     getEnv("DATABASE_URL", ""),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},

		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
			TokenTTL:  getEnvDuration("TOKEN_TTL", time.Hour),
		},

		Provider: ProviderConfig{
			Endpoint: getEnv("HF_ENDPOINT", "https://router.huggingface.co/v1/chat/completions"),
			APIKey:   getEnv("HF_API_KEY", ""),
			Timeout:  getEnvDuration("HF_TIMEOUT", 30*time.Second),
		},

		MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations"),
	}

	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not defined")
	}

	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	env := strings.ToLower(c.Env)
	return env == "development" || env == "dev"
}

// --- Helper functions for reading environment variables ---

// getEnv reads a string env var or returns the default.
func getEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return defaultVal
}

// getEnvInt reads an integer env var or returns the default.
func getEnvInt(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// getEnvDuration reads a duration env var (e.g., "1h") or returns the default.
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

// splitCSV splits a comma-separated list, trimming whitespace and dropping
// empty entries.
func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
