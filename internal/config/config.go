// Package config handles loading and saving of the StockLight
// configuration from file and environment.
package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/localrivet/configurator"
)

// Global configuration instance
var (
	// Global is the global configuration instance
	Global *Config
	// initOnce ensures initialization happens only once
	initOnce sync.Once
)

// InitGlobal initializes the global configuration
func InitGlobal(configPath string) (*Config, error) {
	var err error
	initOnce.Do(func() {
		Global, err = LoadConfigWithPath(configPath)
	})
	return Global, err
}

// Config represents the StockLight configuration
type Config struct {
	// Server contains HTTP server configuration.
	Server struct {
		// Host is the address the HTTP server binds to.
		Host string `json:"host" env:"SERVER_HOST"`

		// Port is the TCP port the HTTP server listens on.
		Port int `json:"port" env:"SERVER_PORT" validate:"min:1"`
	} `json:"server"`

	// Store contains storage-related configuration.
	Store struct {
		// SQLitePath is the path to the SQLite database file.
		SQLitePath string `json:"sqlite_path" env:"SQLITE_PATH" validate:"required"`
	} `json:"store"`

	// Classifier contains AI enrichment configuration.
	Classifier struct {
		// Provider is the name of the LLM provider to use
		// ("anthropic", "openai", "google", "xai" or "basic").
		Provider string `json:"provider" env:"CLASSIFIER_PROVIDER"`

		// ModelID overrides the provider's default model.
		ModelID string `json:"model_id" env:"CLASSIFIER_MODEL_ID"`

		// ApiKey is the API key for the LLM provider.
		ApiKey string `json:"api_key" env:"CLASSIFIER_API_KEY"`
	} `json:"classifier"`

	// Translator contains translation-related configuration.
	Translator struct {
		// Provider is the name of the translation provider to use
		// ("google" or "mock").
		Provider string `json:"provider" env:"TRANSLATOR_PROVIDER"`

		// ApiKey is the API key for the translation provider.
		ApiKey string `json:"api_key" env:"TRANSLATOR_API_KEY"`

		// SourceLang is the source language code.
		SourceLang string `json:"source_lang" env:"TRANSLATOR_SOURCE_LANG"`

		// TargetLang is the target language code.
		TargetLang string `json:"target_lang" env:"TRANSLATOR_TARGET_LANG"`
	} `json:"translator"`

	// Embedder contains embedding-related configuration.
	Embedder struct {
		// Provider is the name of the embedding provider to use
		// ("openai" or "mock").
		Provider string `json:"provider" env:"EMBEDDER_PROVIDER"`

		// ModelID overrides the provider's default embedding model.
		ModelID string `json:"model_id" env:"EMBEDDER_MODEL_ID"`

		// Dimensions is the number of dimensions for the embeddings.
		Dimensions int `json:"dimensions" env:"EMBEDDER_DIMENSIONS" validate:"min:1"`

		// ApiKey is the API key for the embedding provider.
		ApiKey string `json:"api_key" env:"EMBEDDER_API_KEY"`
	} `json:"embedder"`

	// Logging contains logging-related configuration.
	Logging struct {
		// Level is the minimum log level to display ("debug", "info", "warn", "error").
		Level string `json:"level" env:"LOG_LEVEL" validate:"required"`

		// Format is the log format to use ("text", "json").
		Format string `json:"format" env:"LOG_FORMAT"`
	} `json:"logging"`

	// Internal state (not saved to config file)
	configPath     string       `json:"-"`
	mutex          sync.RWMutex `json:"-"`
	lastModifiedAt time.Time    `json:"-"`
}

// Default configuration values
const (
	DefaultConfigFilename = ".stocklightconfig"
	DefaultSQLitePath     = ".stocklight.db"
	DefaultServerHost     = "0.0.0.0"
	DefaultServerPort     = 8000
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "text"
)

// NewConfig creates a new Config instance with default values
func NewConfig() *Config {
	config := &Config{}
	config.Server.Host = DefaultServerHost
	config.Server.Port = DefaultServerPort
	config.Store.SQLitePath = DefaultSQLitePath
	config.Classifier.Provider = "basic"
	config.Translator.Provider = "mock"
	config.Translator.SourceLang = "en"
	config.Translator.TargetLang = "ar"
	config.Embedder.Provider = "mock"
	config.Embedder.Dimensions = 1024
	config.Logging.Level = DefaultLogLevel
	config.Logging.Format = DefaultLogFormat
	return config
}

// LoadConfig loads the configuration from the default path
func LoadConfig() (*Config, error) {
	return LoadConfigWithPath(DefaultConfigFilename)
}

// LoadConfigWithPath loads the configuration from a specific path
func LoadConfigWithPath(configPath string) (*Config, error) {
	// Create a default logger for configuration loading
	stdLogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Create default configuration
	cfg := NewConfig()

	// Try to find config file if path is default
	if configPath == DefaultConfigFilename {
		foundPath, err := configurator.FindConfigFile(configPath)
		if err == nil {
			configPath = foundPath
			stdLogger.Debug("Found config file at " + foundPath)
		}
	}

	// Check if the file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		// File doesn't exist, return default config
		stdLogger.Info("Config file not found, using default configuration", "path", configPath)
		cfg.configPath = configPath
		cfg.lastModifiedAt = time.Now()
		return cfg, nil
	}

	stdLogger.Info("Loading configuration", "path", configPath)

	// Create configurator instance
	config := configurator.New(stdLogger).
		WithProvider(configurator.NewDefaultProvider()).
		WithProvider(configurator.NewFileProvider(configPath)).
		WithProvider(configurator.NewEnvProvider("STOCKLIGHT")).
		WithValidator(configurator.NewDefaultValidator())

	// Load configuration
	ctx := context.Background()
	if err := config.Load(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	// Store the config path for future operations
	cfg.configPath = configPath
	cfg.lastModifiedAt = time.Now()

	return cfg, nil
}

// SaveToFile saves the configuration to the specified file
func (c *Config) SaveToFile(path string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	// Create directory if needed
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	// Save using configurator's SaveToFile function
	if err := configurator.SaveToFile(c, path, configurator.FormatJSON); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	// Update internal state
	c.configPath = path
	c.lastModifiedAt = time.Now()

	return nil
}

// Save saves the configuration to the last used file path
func (c *Config) Save() error {
	if c.configPath == "" {
		c.configPath = DefaultConfigFilename
	}
	return c.SaveToFile(c.configPath)
}

// GetConfigPath returns the path of the currently loaded configuration file
func (c *Config) GetConfigPath() string {
	return c.configPath
}

// ListenAddr returns the host:port address the HTTP server binds to.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// NewLogger creates a slog.Logger based on the configured level and format.
func NewLogger(cfg *Config) *slog.Logger {
	var level slog.Level
	switch cfg.Logging.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Logging.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
