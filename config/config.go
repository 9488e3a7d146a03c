package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Storage   StorageConfig   `mapstructure:"storage"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Money     MoneyConfig     `mapstructure:"money"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Host            string        `mapstructure:"host"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level   string `mapstructure:"level"`
	Format  string `mapstructure:"format"`
	NoColor bool   `mapstructure:"no_color"`
}

// StorageConfig selects and configures the override store backend
type StorageConfig struct {
	Type         string         `mapstructure:"type"`
	BasePath     string         `mapstructure:"base_path"`
	OverridesKey string         `mapstructure:"overrides_key"`
	CacheTTL     time.Duration  `mapstructure:"cache_ttl"`
	Database     DatabaseConfig `mapstructure:"database"`
	Redis        RedisConfig    `mapstructure:"redis"`
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	URL             string        `mapstructure:"url"`
	Table           string        `mapstructure:"table"`
	MaxConnections  int           `mapstructure:"max_connections"`
	MinConnections  int           `mapstructure:"min_connections"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
	MaxConnIdleTime time.Duration `mapstructure:"max_conn_idle_time"`
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	URL       string `mapstructure:"url"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

// RateLimitConfig holds per-IP rate limiting configuration
type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

// AuthConfig holds admin API authentication
type AuthConfig struct {
	AdminAPIKey string `mapstructure:"admin_api_key"`
}

// MoneyConfig controls how amounts are rendered
type MoneyConfig struct {
	Locale string `mapstructure:"locale"`
	Symbol string `mapstructure:"symbol"`
}

// TelemetryConfig holds OpenTelemetry exporter configuration
type TelemetryConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Endpoint    string `mapstructure:"endpoint"`
	ServiceName string `mapstructure:"service_name"`
	Environment string `mapstructure:"environment"`
}

var globalConfig *Config

// Load loads the configuration from file, .env, and environment variables
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	if err := loadEnvFile(); err != nil {
		// .env is optional
		log.Debug().Err(err).Msg(".env file not loaded")
	}

	v.SetEnvPrefix("QUOTE_SERVICE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindEnvVars(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	globalConfig = &cfg
	return &cfg, nil
}

// Validate checks values that would otherwise fail late at startup.
func (c *Config) Validate() error {
	switch c.Storage.Type {
	case "local", "memory":
	case "postgres":
		if c.Storage.Database.URL == "" {
			return fmt.Errorf("storage type postgres requires storage.database.url or DATABASE_URL")
		}
	case "redis":
		if c.Storage.Redis.URL == "" {
			return fmt.Errorf("storage type redis requires storage.redis.url or REDIS_URL")
		}
	default:
		return fmt.Errorf("unknown storage type %q", c.Storage.Type)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	return nil
}

// loadEnvFile loads the first .env file found; existing variables win.
func loadEnvFile() error {
	for _, path := range []string{".env", "./config/.env"} {
		if _, err := os.Stat(path); err == nil {
			return godotenv.Load(path)
		}
	}
	return fmt.Errorf("no .env file found")
}

// bindEnvVars binds conventional environment variables to config keys
func bindEnvVars(v *viper.Viper) {
	_ = v.BindEnv("server.port", "PORT")
	_ = v.BindEnv("server.host", "HOST")

	_ = v.BindEnv("logging.level", "LOG_LEVEL")

	_ = v.BindEnv("storage.type", "QUOTE_SERVICE_STORAGE_TYPE", "STORAGE_TYPE")
	_ = v.BindEnv("storage.base_path", "QUOTE_SERVICE_STORAGE_BASE_PATH", "STORAGE_PATH")
	_ = v.BindEnv("storage.database.url", "QUOTE_SERVICE_STORAGE_DATABASE_URL", "DATABASE_URL")
	_ = v.BindEnv("storage.redis.url", "QUOTE_SERVICE_STORAGE_REDIS_URL", "REDIS_URL")

	_ = v.BindEnv("auth.admin_api_key", "QUOTE_SERVICE_AUTH_ADMIN_API_KEY", "ADMIN_API_KEY")

	_ = v.BindEnv("telemetry.endpoint", "QUOTE_SERVICE_TELEMETRY_ENDPOINT", "OTEL_EXPORTER_OTLP_ENDPOINT")
	_ = v.BindEnv("telemetry.service_name", "QUOTE_SERVICE_TELEMETRY_SERVICE_NAME", "OTEL_SERVICE_NAME")
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.no_color", false)

	v.SetDefault("storage.type", "local")
	v.SetDefault("storage.base_path", "./data")
	v.SetDefault("storage.overrides_key", "tariffOverrides")
	v.SetDefault("storage.cache_ttl", 30*time.Second)
	v.SetDefault("storage.database.table", "kv_store")
	v.SetDefault("storage.database.max_connections", 10)
	v.SetDefault("storage.database.min_connections", 1)
	v.SetDefault("storage.database.max_conn_lifetime", 1*time.Hour)
	v.SetDefault("storage.database.max_conn_idle_time", 30*time.Minute)
	v.SetDefault("storage.redis.key_prefix", "quote-service:")

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests_per_second", 10)
	v.SetDefault("rate_limit.burst", 20)

	v.SetDefault("money.locale", "es-AR")
	v.SetDefault("money.symbol", "$")

	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.endpoint", "localhost:4317")
	v.SetDefault("telemetry.service_name", "quote-service")
	v.SetDefault("telemetry.environment", "production")
}

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}
