// Package config loads service configuration from defaults, environment
// variables (PDFCONVERT_*) and command line flags, in increasing
// precedence.
package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultHost        = "127.0.0.1"
	DefaultPort        = 8085
	DefaultDataDir     = "./data"
	DefaultDBPath      = "./data/tasks.db"
	DefaultLogLevel    = "info"
	DefaultWorkers     = 4
	DefaultQueueSize   = 100
	DefaultMaxUpload   = 50 * 1024 * 1024 // 50MB
	DefaultTaskHistory = 200
)

// Config holds all configuration for the conversion service.
type Config struct {
	// HTTP server
	Host   string
	Port   int
	APIKey string // empty disables authentication

	// Storage
	DataDir string
	DBPath  string

	// Pipeline
	Workers   int
	QueueSize int

	// Limits
	MaxUploadBytes int64
	TaskHistory    int

	// Application
	LogLevel string
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Host:           DefaultHost,
		Port:           DefaultPort,
		DataDir:        DefaultDataDir,
		DBPath:         DefaultDBPath,
		Workers:        DefaultWorkers,
		QueueSize:      DefaultQueueSize,
		MaxUploadBytes: DefaultMaxUpload,
		TaskHistory:    DefaultTaskHistory,
		LogLevel:       DefaultLogLevel,
	}
}

// LoadFromFlags parses command line flags and environment variables into a
// validated configuration.
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	viper.SetEnvPrefix("PDFCONVERT")
	viper.AutomaticEnv()

	viper.SetDefault("host", cfg.Host)
	viper.SetDefault("port", cfg.Port)
	viper.SetDefault("apikey", cfg.APIKey)
	viper.SetDefault("datadir", cfg.DataDir)
	viper.SetDefault("dbpath", cfg.DBPath)
	viper.SetDefault("workers", cfg.Workers)
	viper.SetDefault("queuesize", cfg.QueueSize)
	viper.SetDefault("maxupload", cfg.MaxUploadBytes)
	viper.SetDefault("loglevel", cfg.LogLevel)

	pflag.String("host", cfg.Host, "HTTP server host address")
	pflag.Int("port", cfg.Port, "HTTP server port")
	pflag.String("apikey", cfg.APIKey, "Bearer token required on API calls (empty disables auth)")
	pflag.String("datadir", cfg.DataDir, "Directory for uploads and results")
	pflag.String("dbpath", cfg.DBPath, "SQLite task database path")
	pflag.Int("workers", cfg.Workers, "Number of pipeline workers")
	pflag.Int("queuesize", cfg.QueueSize, "Job queue capacity")
	pflag.Int64("maxupload", cfg.MaxUploadBytes, "Maximum upload size in bytes")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")

	for _, name := range []string{"host", "port", "apikey", "datadir", "dbpath", "workers", "queuesize", "maxupload", "loglevel"} {
		_ = viper.BindPFlag(name, pflag.Lookup(name))
	}

	pflag.Parse()

	cfg.Host = viper.GetString("host")
	cfg.Port = viper.GetInt("port")
	cfg.APIKey = viper.GetString("apikey")
	cfg.DataDir = viper.GetString("datadir")
	cfg.DBPath = viper.GetString("dbpath")
	cfg.Workers = viper.GetInt("workers")
	cfg.QueueSize = viper.GetInt("queuesize")
	cfg.MaxUploadBytes = viper.GetInt64("maxupload")
	cfg.LogLevel = viper.GetString("loglevel")

	if expanded, err := filepath.Abs(cfg.DataDir); err == nil {
		cfg.DataDir = expanded
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return errors.New("port must be between 1 and 65535")
	}
	if c.DataDir == "" {
		return errors.New("data directory cannot be empty")
	}
	if c.DBPath == "" {
		return errors.New("task database path cannot be empty")
	}
	if c.Workers < 1 {
		return errors.New("workers must be at least 1")
	}
	if c.QueueSize < 1 {
		return errors.New("queue size must be at least 1")
	}
	if c.MaxUploadBytes <= 0 {
		return errors.New("maximum upload size must be positive")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}
	return nil
}

// Address returns the server address as host:port.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsDebug returns true if debug logging is enabled.
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}
