package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Config holds all configuration for the ytdlp manager service
type Config struct {
	Database DatabaseConfig
	Ytdlp    YtdlpConfig
	Sync     SyncConfig
	Enrich   EnrichConfig
	Notify   NotifyConfig
	Logging  LoggingConfig
	Service  ServiceConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// YtdlpConfig holds configuration for the external yt-dlp tool
type YtdlpConfig struct {
	// BinaryPath is the yt-dlp executable, resolved against PATH when bare.
	BinaryPath string
	// DataDir is the root directory downloads are placed under.
	DataDir string
	// MetadataTimeout bounds single-URL metadata calls.
	MetadataTimeout time.Duration
	// ListingTimeout bounds channel listing calls.
	ListingTimeout time.Duration
	// DownloadTimeout is the hard ceiling on one download invocation.
	DownloadTimeout time.Duration
	// DiscoveryLimit caps how many channel entries a discovery run processes.
	DiscoveryLimit int
}

// SyncConfig holds the periodic sweep configuration
type SyncConfig struct {
	Interval time.Duration
	// RetryUnknown controls whether subscriptions stuck in the "unknown"
	// type are still passed to yt-dlp during a sweep.
	RetryUnknown bool
}

// EnrichConfig holds the enrichment worker pool configuration
type EnrichConfig struct {
	Workers   int
	QueueSize int
}

// NotifyConfig holds the notification sink configuration.
// With no brokers configured, events go to the log sink.
type NotifyConfig struct {
	Brokers []string
	Topic   string
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string
}

// ServiceConfig holds service configuration
type ServiceConfig struct {
	Name string
	Port string
}

// Result is fx.Out struct for providing config dependencies
type Result struct {
	fx.Out

	Config         *Config
	DatabaseConfig *DatabaseConfig
	YtdlpConfig    *YtdlpConfig
	SyncConfig     *SyncConfig
	EnrichConfig   *EnrichConfig
	NotifyConfig   *NotifyConfig
	LoggingConfig  *LoggingConfig
	ServiceConfig  *ServiceConfig
}

// Out returns fx-compatible config result
func Out() (Result, error) {
	cfg, err := Load()
	if err != nil {
		return Result{}, err
	}

	return Result{
		Config:         cfg,
		DatabaseConfig: &cfg.Database,
		YtdlpConfig:    &cfg.Ytdlp,
		SyncConfig:     &cfg.Sync,
		EnrichConfig:   &cfg.Enrich,
		NotifyConfig:   &cfg.Notify,
		LoggingConfig:  &cfg.Logging,
		ServiceConfig:  &cfg.Service,
	}, nil
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	cfg := &Config{
		Database: DatabaseConfig{
			Host:     getEnv("DATABASE_HOST", "localhost"),
			Port:     getEnv("DATABASE_PORT", "5432"),
			User:     getEnv("DATABASE_USER", "ytdlp_user"),
			Password: getEnv("DATABASE_PASSWORD", "ytdlp_pass"),
			DBName:   getEnv("DATABASE_NAME", "ytdlp_db"),
			SSLMode:  getEnv("DATABASE_SSLMODE", "disable"),
		},
		Ytdlp: YtdlpConfig{
			BinaryPath:      getEnv("YTDLP_BINARY", "yt-dlp"),
			DataDir:         getEnv("YTDLP_DATA_DIR", "data"),
			MetadataTimeout: getEnvDuration("YTDLP_METADATA_TIMEOUT", 30*time.Second),
			ListingTimeout:  getEnvDuration("YTDLP_LISTING_TIMEOUT", 60*time.Second),
			DownloadTimeout: getEnvDuration("YTDLP_DOWNLOAD_TIMEOUT", time.Hour),
			DiscoveryLimit:  getEnvInt("YTDLP_DISCOVERY_LIMIT", 50),
		},
		Sync: SyncConfig{
			Interval:     getEnvDuration("SYNC_INTERVAL", 120*time.Minute),
			RetryUnknown: getEnvBool("SYNC_RETRY_UNKNOWN", false),
		},
		Enrich: EnrichConfig{
			Workers:   getEnvInt("ENRICH_WORKERS", 2),
			QueueSize: getEnvInt("ENRICH_QUEUE_SIZE", 64),
		},
		Notify: NotifyConfig{
			Brokers: splitNonEmpty(getEnv("NOTIFY_KAFKA_BROKERS", "")),
			Topic:   getEnv("NOTIFY_KAFKA_TOPIC", "ytdlp-events"),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Service: ServiceConfig{
			Name: getEnv("SERVICE_NAME", "ytdlp-manager"),
			Port: getEnv("SERVICE_PORT", "8080"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("DATABASE_HOST is required")
	}

	if c.Database.User == "" {
		return fmt.Errorf("DATABASE_USER is required")
	}

	if c.Database.DBName == "" {
		return fmt.Errorf("DATABASE_NAME is required")
	}

	if c.Ytdlp.BinaryPath == "" {
		return fmt.Errorf("YTDLP_BINARY is required")
	}

	if c.Ytdlp.DataDir == "" {
		return fmt.Errorf("YTDLP_DATA_DIR is required")
	}

	if c.Ytdlp.DiscoveryLimit <= 0 {
		return fmt.Errorf("YTDLP_DISCOVERY_LIMIT must be positive")
	}

	if c.Sync.Interval <= 0 {
		return fmt.Errorf("SYNC_INTERVAL must be positive")
	}

	if c.Enrich.Workers <= 0 {
		return fmt.Errorf("ENRICH_WORKERS must be positive")
	}

	return nil
}

// GetDSN returns database connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}

func splitNonEmpty(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
