package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/expense_workflow_app/internal/core/domain"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Store drivers accepted by STORE_DRIVER.
const (
	StoreDriverPostgres = "postgres"
	StoreDriverSQLite   = "sqlite"
	StoreDriverMemory   = "memory"
)

const (
	defaultJWTSecret         = "a-very-secret-key-should-be-longer-and-random"
	defaultTransitionTimeout = 5 * time.Second
	defaultRateLimit         = "100-M"
)

// Config holds application configuration.
type Config struct {
	Port          string
	IsProduction  bool
	StoreDriver   string
	DatabaseURL   string
	SQLitePath    string
	EnableDBCheck bool
	RunMigrations bool

	JWTSecret string
	JWTIssuer string

	TransitionTimeout        time.Duration
	FinanceApprovalThreshold decimal.Decimal
	RateLimit                string
	CORSAllowedOrigins       []string

	LogLevel  string
	LogFormat string
	LogFile   string

	// StaticRoles seeds role memberships for the memory store, parsed from
	// STATIC_ROLES ("alice:manager,bob:finance").
	StaticRoles map[string][]domain.Role
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("STORE_DRIVER", StoreDriverPostgres)
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("SQLITE_PATH", "expenses.sqlite")
	v.SetDefault("ENABLE_DB_CHECK", true)
	v.SetDefault("RUN_MIGRATIONS", true)
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_ISSUER", "")
	v.SetDefault("TRANSITION_TIMEOUT", defaultTransitionTimeout.String())
	v.SetDefault("FINANCE_APPROVAL_THRESHOLD", "1000.00")
	v.SetDefault("RATE_LIMIT", defaultRateLimit)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("LOG_FILE", "")
	v.SetDefault("STATIC_ROLES", "")
	v.AutomaticEnv()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:          v.GetString("PORT"),
		IsProduction:  v.GetBool("IS_PRODUCTION"),
		StoreDriver:   strings.ToLower(strings.TrimSpace(v.GetString("STORE_DRIVER"))),
		DatabaseURL:   v.GetString("PGSQL_URL"),
		SQLitePath:    v.GetString("SQLITE_PATH"),
		EnableDBCheck: v.GetBool("ENABLE_DB_CHECK"),
		RunMigrations: v.GetBool("RUN_MIGRATIONS"),
		JWTSecret:     v.GetString("JWT_SECRET"),
		JWTIssuer:     v.GetString("JWT_ISSUER"),
		RateLimit:     v.GetString("RATE_LIMIT"),
		LogLevel:      v.GetString("LOG_LEVEL"),
		LogFormat:     v.GetString("LOG_FORMAT"),
		LogFile:       v.GetString("LOG_FILE"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		slog.Warn("PORT not set, using default", slog.String("port", cfg.Port))
	}

	switch cfg.StoreDriver {
	case StoreDriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("PGSQL_URL is required when STORE_DRIVER=%s", StoreDriverPostgres)
		}
	case StoreDriverSQLite:
		if cfg.SQLitePath == "" {
			return nil, fmt.Errorf("SQLITE_PATH is required when STORE_DRIVER=%s", StoreDriverSQLite)
		}
	case StoreDriverMemory:
	default:
		return nil, fmt.Errorf("unsupported STORE_DRIVER %q (want %s, %s or %s)",
			cfg.StoreDriver, StoreDriverPostgres, StoreDriverSQLite, StoreDriverMemory)
	}

	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		slog.Warn("JWT_SECRET not set. Using default insecure key.")
	}

	timeoutStr := v.GetString("TRANSITION_TIMEOUT")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil || timeout <= 0 {
		timeout = defaultTransitionTimeout
		slog.Warn("Invalid TRANSITION_TIMEOUT, using default",
			slog.String("value", timeoutStr), slog.Duration("default", timeout))
	}
	cfg.TransitionTimeout = timeout

	thresholdStr := v.GetString("FINANCE_APPROVAL_THRESHOLD")
	threshold, err := decimal.NewFromString(thresholdStr)
	if err != nil || !threshold.IsPositive() {
		threshold = decimal.RequireFromString("1000.00")
		slog.Warn("Invalid FINANCE_APPROVAL_THRESHOLD, using default",
			slog.String("value", thresholdStr), slog.String("default", threshold.StringFixed(2)))
	}
	cfg.FinanceApprovalThreshold = threshold

	if cfg.RateLimit == "" {
		cfg.RateLimit = defaultRateLimit
	}

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	roles, err := ParseStaticRoles(v.GetString("STATIC_ROLES"))
	if err != nil {
		return nil, err
	}
	cfg.StaticRoles = roles

	return cfg, nil
}

// ParseStaticRoles parses "user:role,user:role" into a membership table.
func ParseStaticRoles(raw string) (map[string][]domain.Role, error) {
	out := make(map[string][]domain.Role)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		userID, role, ok := strings.Cut(pair, ":")
		if !ok || strings.TrimSpace(userID) == "" {
			return nil, fmt.Errorf("invalid STATIC_ROLES entry %q: want user:role", pair)
		}
		r := domain.Role(strings.ToLower(strings.TrimSpace(role)))
		if r != domain.RoleManager && r != domain.RoleFinance {
			return nil, fmt.Errorf("invalid STATIC_ROLES entry %q: unknown role %q", pair, role)
		}
		userID = strings.TrimSpace(userID)
		out[userID] = append(out[userID], r)
	}
	return out, nil
}
