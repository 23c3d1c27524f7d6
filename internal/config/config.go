package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// DispatcherLocal runs enrichment on an in-process worker pool
	DispatcherLocal = "local"
	// DispatcherTemporal hands enrichment to the Temporal enrichment worker
	DispatcherTemporal = "temporal"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`     // Maximum number of open connections to the database
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`     // Maximum number of idle connections in the pool
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`  // e.g. "5m", "1h"
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"` // e.g. "10m", "30m"
}

// RedisConfig holds the key-value cache configuration.
// When disabled, cache entries live in the database key_value_store table.
type RedisConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Addr      string `mapstructure:"addr"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

// MoralisConfig holds the balance provider configuration
type MoralisConfig struct {
	APIURL  string        `mapstructure:"api_url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// CoinGeckoConfig holds the metadata and price provider configuration
type CoinGeckoConfig struct {
	APIURL            string        `mapstructure:"api_url"`
	APIKey            string        `mapstructure:"api_key"`
	UserAgent         string        `mapstructure:"user_agent"`
	RequestsPerSecond int           `mapstructure:"requests_per_second"` // 0 disables client-side limiting
	Timeout           time.Duration `mapstructure:"timeout"`
}

// IngestConfig holds balance ingestion configuration
type IngestConfig struct {
	MaxTokens   int    `mapstructure:"max_tokens"`
	SeedAddress string `mapstructure:"seed_address"`
}

// EnrichmentConfig holds configuration for launching background enrichment
type EnrichmentConfig struct {
	Dispatcher        string `mapstructure:"dispatcher"`
	MaxConcurrentJobs int    `mapstructure:"max_concurrent_jobs"`
	QueueSize         int    `mapstructure:"queue_size"`
}

// TemporalConfig holds Temporal configuration
type TemporalConfig struct {
	HostPort  string `mapstructure:"host_port"`
	Namespace string `mapstructure:"namespace"`
	TaskQueue string `mapstructure:"task_queue"`
	// ActivityTimeout is the start-to-close timeout Temporal requires on the enrichment activity.
	// Workflows are started without an execution timeout.
	ActivityTimeout time.Duration `mapstructure:"activity_timeout"`
}

// WorkerConfig holds Temporal worker tuning
type WorkerConfig struct {
	MaxConcurrentActivityExecutionSize int     `mapstructure:"max_concurrent_activity_execution_size"`
	WorkerActivitiesPerSecond          float64 `mapstructure:"worker_activities_per_second"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds
}

// APIConfig holds configuration for API server
type APIConfig struct {
	BaseConfig `mapstructure:",squash"`
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Moralis    MoralisConfig    `mapstructure:"moralis"`
	CoinGecko  CoinGeckoConfig  `mapstructure:"coingecko"`
	Ingest     IngestConfig     `mapstructure:"ingest"`
	Enrichment EnrichmentConfig `mapstructure:"enrichment"`
	Temporal   TemporalConfig   `mapstructure:"temporal"`
}

// WorkerEnrichmentConfig holds configuration for worker-enrichment
type WorkerEnrichmentConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig  `mapstructure:"database"`
	Redis      RedisConfig     `mapstructure:"redis"`
	CoinGecko  CoinGeckoConfig `mapstructure:"coingecko"`
	Temporal   TemporalConfig  `mapstructure:"temporal"`
	Worker     WorkerConfig    `mapstructure:"worker"`
}

// LoadAPIConfig loads configuration for API server
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)

	// Set defaults
	v.SetDefault("debug", false)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 60)
	v.SetDefault("server.idle_timeout", 120)
	setDatabaseDefaults(v)
	setRedisDefaults(v)
	setCoinGeckoDefaults(v)
	setTemporalDefaults(v)
	v.SetDefault("moralis.api_url", "https://deep-index.moralis.io/api/v2.2")
	v.SetDefault("moralis.timeout", "30s")
	v.SetDefault("ingest.max_tokens", 200)
	v.SetDefault("enrichment.dispatcher", DispatcherLocal)
	v.SetDefault("enrichment.max_concurrent_jobs", 4)
	v.SetDefault("enrichment.queue_size", 256)

	if err := readInConfig(v); err != nil {
		return nil, err
	}

	var config APIConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	switch config.Enrichment.Dispatcher {
	case DispatcherLocal, DispatcherTemporal:
	default:
		return nil, fmt.Errorf("unknown enrichment.dispatcher %q", config.Enrichment.Dispatcher)
	}
	if config.Ingest.MaxTokens <= 0 {
		return nil, errors.New("ingest.max_tokens must be positive")
	}

	return &config, nil
}

// LoadWorkerEnrichmentConfig loads configuration for worker-enrichment
func LoadWorkerEnrichmentConfig(configFile string, envPath string) (*WorkerEnrichmentConfig, error) {
	v := configureViper("worker-enrichment", configFile, envPath)

	// Set defaults
	setDatabaseDefaults(v)
	setRedisDefaults(v)
	setCoinGeckoDefaults(v)
	setTemporalDefaults(v)
	v.SetDefault("worker.max_concurrent_activity_execution_size", 4)
	v.SetDefault("worker.worker_activities_per_second", 2)

	if err := readInConfig(v); err != nil {
		return nil, err
	}

	var config WorkerEnrichmentConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

func setDatabaseDefaults(v *viper.Viper) {
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
}

func setRedisDefaults(v *viper.Viper) {
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.key_prefix", "ff-portfolio:")
}

func setCoinGeckoDefaults(v *viper.Viper) {
	v.SetDefault("coingecko.api_url", "https://api.coingecko.com/api/v3")
	v.SetDefault("coingecko.user_agent", "ff-portfolio/1.0")
	v.SetDefault("coingecko.requests_per_second", 0)
	v.SetDefault("coingecko.timeout", "30s")
}

func setTemporalDefaults(v *viper.Viper) {
	v.SetDefault("temporal.host_port", "localhost:7233")
	v.SetDefault("temporal.namespace", "default")
	v.SetDefault("temporal.task_queue", "portfolio-enrichment")
	v.SetDefault("temporal.activity_timeout", "30m")
}

// readInConfig reads the config file, tolerating its absence
func readInConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// Config file not found, use environment variables
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	// Set config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		v.AddConfigPath("config/")
	}

	v.SetEnvPrefix("FF_PORTFOLIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		// Database
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// Redis
		"redis.enabled",
		"redis.addr",
		"redis.password",
		"redis.db",
		"redis.key_prefix",
		// Providers
		"moralis.api_url",
		"moralis.api_key",
		"moralis.timeout",
		"coingecko.api_url",
		"coingecko.api_key",
		"coingecko.user_agent",
		"coingecko.requests_per_second",
		"coingecko.timeout",
		// Ingest & enrichment
		"ingest.max_tokens",
		"ingest.seed_address",
		"enrichment.dispatcher",
		"enrichment.max_concurrent_jobs",
		"enrichment.queue_size",
		// Temporal
		"temporal.host_port",
		"temporal.namespace",
		"temporal.task_queue",
		"temporal.activity_timeout",
		"worker.max_concurrent_activity_execution_size",
		"worker.worker_activities_per_second",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		_ = godotenv.Overload(filepath.Join(envPath, envFile)) // later files win
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
