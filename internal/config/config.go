package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store backends
const (
	StoreBackendMemory   = "memory"
	StoreBackendFile     = "file"
	StoreBackendSQLite   = "sqlite"
	StoreBackendPostgres = "postgres"
)

type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Auth     AuthConfig
	Store    StoreConfig
	Recovery RecoveryConfig
	Email    EmailConfig
}

type DatabaseConfig struct {
	Host              string
	Port              int
	User              string
	Password          string
	Name              string
	SSLMode           string
	MaxConns          int32
	MinConns          int32
	MaxConnLifetime   time.Duration
	MaxConnIdleTime   time.Duration
	HealthCheckPeriod time.Duration
}

type ServerConfig struct {
	Port                   string
	Env                    string
	LogLevel               string
	AllowedOrigins         []string
	TrustedProxies         []string
	ReadTimeout            time.Duration
	WriteTimeout           time.Duration
	IdleTimeout            time.Duration
	AuthRateLimitPerMinute int
}

type AuthConfig struct {
	JWTSecret           string
	AccessTokenExpiry   time.Duration
	HashCustomPasswords bool
	TimingDelayBase     time.Duration
	TimingDelayRandom   time.Duration
}

// StoreConfig selects and configures the key-value store backend.
type StoreConfig struct {
	Backend    string
	FilePath   string
	SQLitePath string
	// Strict makes read faults fail the operation instead of degrading to defaults.
	Strict bool
}

type RecoveryConfig struct {
	AdminName        string
	LockoutThreshold int
	// ReportInterval is how often locked accounts are logged; 0 disables the report.
	ReportInterval time.Duration
}

type EmailConfig struct {
	Enabled     bool
	AWSRegion   string
	FromAddress string
	AdminEmail  string
}

// Load reads the server configuration. JWT_SECRET is required.
func Load() (*Config, error) {
	return load(true)
}

// LoadForCLI reads the configuration for tools that open the store directly
// and never issue tokens, so JWT_SECRET may be unset.
func LoadForCLI() (*Config, error) {
	return load(false)
}

func load(requireJWT bool) (*Config, error) {
	_ = godotenv.Load()

	jwtSecret := getEnv("JWT_SECRET", "")
	if requireJWT && jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	env := getEnv("ENV", "development")

	cfg := &Config{
		Database: DatabaseConfig{
			Host:              getEnv("DB_HOST", "localhost"),
			Port:              getEnvAsInt("DB_PORT", 5432),
			User:              getEnv("DB_USER", "postgres"),
			Password:          getEnv("DB_PASSWORD", ""),
			Name:              getEnv("DB_NAME", "excellence"),
			SSLMode:           getEnv("DB_SSLMODE", "disable"),
			MaxConns:          int32(getEnvAsInt("DB_MAX_CONNS", 10)),
			MinConns:          int32(getEnvAsInt("DB_MIN_CONNS", 2)),
			MaxConnLifetime:   getEnvAsDuration("DB_MAX_CONN_LIFETIME", 5*time.Minute),
			MaxConnIdleTime:   getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 1*time.Minute),
			HealthCheckPeriod: getEnvAsDuration("DB_HEALTH_CHECK_PERIOD", 1*time.Minute),
		},
		Server: ServerConfig{
			Port:                   getEnv("PORT", "8080"),
			Env:                    env,
			LogLevel:               getEnv("LOG_LEVEL", "info"),
			AllowedOrigins:         parseAllowedOrigins(env),
			TrustedProxies:         parseList(getEnv("TRUSTED_PROXIES", "")),
			ReadTimeout:            getEnvAsDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:           getEnvAsDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:            getEnvAsDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
			AuthRateLimitPerMinute: getEnvAsInt("AUTH_RATE_LIMIT_PER_MINUTE", 20),
		},
		Auth: AuthConfig{
			JWTSecret:           jwtSecret,
			AccessTokenExpiry:   getEnvAsDuration("ACCESS_TOKEN_EXPIRY", 12*time.Hour),
			HashCustomPasswords: getEnvAsBool("HASH_CUSTOM_PASSWORDS", false),
			TimingDelayBase:     time.Duration(getEnvAsInt("TIMING_DELAY_BASE_MS", 100)) * time.Millisecond,
			TimingDelayRandom:   time.Duration(getEnvAsInt("TIMING_DELAY_RANDOM_MS", 50)) * time.Millisecond,
		},
		Store: StoreConfig{
			Backend:    strings.ToLower(getEnv("STORE_BACKEND", StoreBackendMemory)),
			FilePath:   getEnv("STORE_FILE_PATH", "data/excellence.json"),
			SQLitePath: getEnv("STORE_SQLITE_PATH", "data/excellence.db"),
			Strict:     getEnvAsBool("STRICT_STORAGE", false),
		},
		Recovery: RecoveryConfig{
			AdminName:        getEnv("ADMIN_NAME", "NOUFAL ADANY"),
			LockoutThreshold: getEnvAsInt("LOCKOUT_THRESHOLD", 5),
			ReportInterval:   getEnvAsDuration("LOCKOUT_REPORT_INTERVAL", time.Hour),
		},
		Email: EmailConfig{
			Enabled:     getEnvAsBool("RECOVERY_EMAIL_ENABLED", false),
			AWSRegion:   getEnv("AWS_REGION", "us-east-1"),
			FromAddress: getEnv("EMAIL_FROM_ADDRESS", ""),
			AdminEmail:  getEnv("ADMIN_EMAIL", ""),
		},
	}

	if err := cfg.Store.validate(); err != nil {
		return nil, err
	}

	if cfg.Store.Backend == StoreBackendPostgres && cfg.Database.Password == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required for the postgres store")
	}

	if cfg.Recovery.LockoutThreshold < 1 {
		return nil, fmt.Errorf("LOCKOUT_THRESHOLD must be at least 1 (got %d)", cfg.Recovery.LockoutThreshold)
	}

	if strings.TrimSpace(cfg.Recovery.AdminName) == "" {
		return nil, fmt.Errorf("ADMIN_NAME cannot be empty")
	}

	if cfg.Email.Enabled && (cfg.Email.FromAddress == "" || cfg.Email.AdminEmail == "") {
		return nil, fmt.Errorf("EMAIL_FROM_ADDRESS and ADMIN_EMAIL are required when RECOVERY_EMAIL_ENABLED is set")
	}

	if requireJWT {
		if err := validateJWTSecret(jwtSecret, env); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func (c *StoreConfig) validate() error {
	switch c.Backend {
	case StoreBackendMemory:
		return nil
	case StoreBackendFile:
		if c.FilePath == "" {
			return fmt.Errorf("STORE_FILE_PATH is required for the file store")
		}
		return nil
	case StoreBackendSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("STORE_SQLITE_PATH is required for the sqlite store")
		}
		return nil
	case StoreBackendPostgres:
		return nil
	}
	return fmt.Errorf("unknown STORE_BACKEND %q", c.Backend)
}

// validateJWTSecret enforces minimum security standards for JWT secret
func validateJWTSecret(secret, env string) error {
	minLength := 16
	if env == "production" {
		minLength = 32
	}

	if len(secret) < minLength {
		return fmt.Errorf("JWT_SECRET must be at least %d characters in %s environment (got %d)",
			minLength, env, len(secret))
	}

	weakSecrets := []string{
		"secret", "test", "password", "12345", "changeme",
		"admin", "root", "default", "example",
	}

	secretLower := strings.ToLower(secret)
	for _, weak := range weakSecrets {
		if secretLower == weak {
			return fmt.Errorf("JWT_SECRET cannot be a common weak value")
		}
	}

	return nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultVal
}

func parseList(raw string) []string {
	if raw == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseAllowedOrigins(env string) []string {
	if env == "production" {
		return parseList(getEnv("ALLOWED_ORIGINS", ""))
	}

	// Development: allow localhost variants
	return []string{
		"http://localhost:3000",
		"http://localhost:8080",
		"http://localhost:5173", // Vite default
		"http://127.0.0.1:3000",
		"http://127.0.0.1:8080",
		"http://127.0.0.1:5173",
	}
}
