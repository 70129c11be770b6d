package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Server   ServerConfig
	Logger   LoggerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Engine   EngineConfig
	Seed     SeedConfig
	Metrics  MetricsConfig
}

type ServerConfig struct {
	AppEnv  string
	AppName string
	Port    string
}

type LoggerConfig struct {
	Level             string
	Encoding          string
	DisableCaller     bool
	DisableStacktrace bool
}

// DatabaseConfig selects the storage backend. Driver "memory" keeps everything in process.
type DatabaseConfig struct {
	Driver          string
	URL             string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	TimeZone        string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime int // seconds
	LogSQL          bool
}

type JWTConfig struct {
	Secret   string
	TTLHours int
}

type EngineConfig struct {
	// AllowOversell lets a sale drive stock below zero instead of failing with insufficient stock.
	AllowOversell     bool
	LowStockThreshold int
}

type SeedConfig struct {
	DemoData bool
}

type MetricsConfig struct {
	Enabled bool
}

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

func LoadEnv() *Config {
	return &Config{
		Server: ServerConfig{
			AppEnv:  getEnv("APP_ENV", "development"),
			AppName: getEnv("APP_NAME", "Perfume Boutique POS v1.0"),
			Port:    getEnv("PORT", "3000"),
		},
		Logger: LoggerConfig{
			Level:             getEnv("LOGGER_LEVEL", "info"),
			Encoding:          getEnv("LOGGER_ENCODING", "console"),
			DisableCaller:     getEnvBool("LOGGER_DISABLE_CALLER", false),
			DisableStacktrace: getEnvBool("LOGGER_DISABLE_STACKTRACE", true),
		},
		Database: DatabaseConfig{
			Driver:          getEnv("DB_DRIVER", DriverMemory),
			URL:             getEnv("DATABASE_URL", ""),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			Name:            getEnv("DB_NAME", "boutique"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			TimeZone:        getEnv("DB_TIMEZONE", "Africa/Tunis"),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: getEnvInt("DB_CONN_MAX_LIFETIME", 3600),
			LogSQL:          getEnvBool("DB_LOG_SQL", false),
		},
		JWT: JWTConfig{
			Secret:   getEnv("JWT_SECRET", "your-super-secret-key-change-in-production"),
			TTLHours: getEnvInt("JWT_TTL_HOURS", 24),
		},
		Engine: EngineConfig{
			AllowOversell:     getEnvBool("ENGINE_ALLOW_OVERSELL", false),
			LowStockThreshold: getEnvInt("LOW_STOCK_THRESHOLD", 10),
		},
		Seed: SeedConfig{
			DemoData: getEnvBool("SEED_DEMO_DATA", true),
		},
		Metrics: MetricsConfig{
			Enabled: getEnvBool("METRICS_ENABLED", true),
		},
	}
}

// DSN builds the postgres connection string unless DATABASE_URL is set.
func (c DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode, c.TimeZone,
	)
}

func (c ServerConfig) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}
