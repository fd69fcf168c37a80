// Package stocklight wires the inventory service components together and
// exposes them behind a single Server facade.
package stocklight

import (
	"context"
	"log/slog"

	"github.com/stocklight/stocklight/internal/config"
	"github.com/stocklight/stocklight/internal/enrich"
	"github.com/stocklight/stocklight/internal/errortypes"
	"github.com/stocklight/stocklight/internal/inventory"
	"github.com/stocklight/stocklight/internal/mcp"
	"github.com/stocklight/stocklight/internal/server"
	"github.com/stocklight/stocklight/internal/telemetry"
	"github.com/stocklight/stocklight/internal/translate"
	"github.com/stocklight/stocklight/internal/vector"
)

// Config represents the configuration for the Stocklight service.
type Config = config.Config

// Server represents the Stocklight service: the HTTP API, the MCP tool
// surface and the components behind them.
type Server struct {
	config     *config.Config
	store      inventory.ProductStore
	service    *inventory.Service
	enricher   enrich.Enricher
	translator translate.Translator
	embedder   vector.Embedder
	metrics    *telemetry.MetricsCollector
	httpServer *server.Server
	mcpServer  *mcp.InventoryToolServer
	logger     *slog.Logger
}

// ServerOptions defines the options for creating a new Server.
type ServerOptions struct {
	Config     *Config      // Pre-filled config. If nil, ConfigPath is used.
	ConfigPath string       // Path to config file. Used if Config is nil. If both are empty, DefaultConfig() is used.
	Logger     *slog.Logger // External logger. If nil, slog.Default() is used.
}

// NewServer creates a new Stocklight Server with the given options.
func NewServer(opts ServerOptions) (*Server, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var cfg *Config
	var err error

	if opts.Config != nil {
		cfg = opts.Config
	} else if opts.ConfigPath != "" {
		logger.Info("Loading configuration for server initialization", "path", opts.ConfigPath)
		cfg, err = config.LoadConfigWithPath(opts.ConfigPath)
		if err != nil {
			return nil, errortypes.ConfigError(err, "Failed to load configuration from path: "+opts.ConfigPath)
		}
	} else {
		logger.Warn("No Config object or ConfigPath provided, using default configuration")
		cfg = DefaultConfig()
	}

	metrics := telemetry.NewMetricsCollector()

	store, enricher, translator, embedder, err := CreateComponents(cfg, metrics, logger)
	if err != nil {
		return nil, err
	}

	service := inventory.NewService(store, enricher, translator, embedder, logger)

	// The health endpoint reports enrichment stats only when the AI
	// enricher is in play.
	var enrichHealth server.EnrichHealthSource
	if aiEnricher, ok := enricher.(*enrich.AIEnricher); ok {
		enrichHealth = aiEnricher
	}

	httpServer := server.NewServer(cfg.ListenAddr(), service, enrichHealth, metrics, logger)

	mcpServer := mcp.NewInventoryToolServer(service)
	if err := mcpServer.Initialize(); err != nil {
		return nil, errortypes.ConfigError(err, "Failed to initialize MCP inventory tool server")
	}

	logger.Info("Stocklight server successfully initialized")
	return &Server{
		config:     cfg,
		store:      store,
		service:    service,
		enricher:   enricher,
		translator: translator,
		embedder:   embedder,
		metrics:    metrics,
		httpServer: httpServer,
		mcpServer:  mcpServer,
		logger:     logger,
	}, nil
}

// DefaultConfig returns the default configuration for the Stocklight service.
func DefaultConfig() *Config {
	return config.NewConfig()
}

// Start starts the HTTP API and blocks until the server stops.
func (s *Server) Start() error {
	s.logger.Info("Starting Stocklight service", "addr", s.config.ListenAddr())
	return s.httpServer.Start()
}

// StartMCP starts the MCP tool server on stdio and blocks until stdin
// closes.
func (s *Server) StartMCP() error {
	s.logger.Info("Starting Stocklight MCP tools")
	return s.mcpServer.Start()
}

// Stop gracefully stops the service and closes the store.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping Stocklight service")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("Error shutting down HTTP server", "error", err)
		return err
	}
	if err := s.mcpServer.Stop(); err != nil {
		s.logger.Error("Error stopping MCP server", "error", err)
		return err
	}

	s.logger.Info("Closing store")
	if err := s.store.Close(); err != nil {
		s.logger.Error("Failed to close store", "error", err)
		return err
	}

	s.logger.Info("Stocklight service stopped")
	return nil
}

// Service returns the inventory service instance used by the server.
func (s *Server) Service() *inventory.Service {
	return s.service
}

// GetStore returns the product store instance used by the server.
func (s *Server) GetStore() inventory.ProductStore {
	return s.store
}

// GetMetrics returns the metrics collector used by the server.
func (s *Server) GetMetrics() *telemetry.MetricsCollector {
	return s.metrics
}

// CreateComponents creates and initializes the components of the Stocklight
// service without creating a server instance.
func CreateComponents(cfg *Config, metrics *telemetry.MetricsCollector, logger *slog.Logger) (inventory.ProductStore, enrich.Enricher, translate.Translator, vector.Embedder, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = telemetry.NewMetricsCollector()
	}

	// Initialize SQLite product store
	logger.Info("Initializing SQLite product store", "path", cfg.Store.SQLitePath)
	store := inventory.NewSQLiteProductStore()
	if err := store.Initialize(cfg.Store.SQLitePath); err != nil {
		return nil, nil, nil, nil, errortypes.DatabaseError(err, "Failed to initialize SQLite product store")
	}

	// Initialize enricher
	logger.Info("Initializing enricher", "provider", cfg.Classifier.Provider)
	var enricher enrich.Enricher
	switch cfg.Classifier.Provider {
	case "basic", "":
		enricher = enrich.NewBasicEnricher()
	default:
		if cfg.Classifier.ApiKey == "" {
			logger.Warn("No API key configured for classifier provider, using basic enricher",
				"provider", cfg.Classifier.Provider)
			enricher = enrich.NewBasicEnricher()
			break
		}
		enricher = enrich.NewAIEnricher(&enrich.AIEnricherConfig{
			ProviderName: cfg.Classifier.Provider,
			ModelID:      cfg.Classifier.ModelID,
			APIKey:       cfg.Classifier.ApiKey,
			Metrics:      metrics,
		})
	}
	if err := enricher.Initialize(); err != nil {
		return nil, nil, nil, nil, errortypes.ConfigError(err, "Failed to initialize enricher")
	}

	// Initialize translator
	logger.Info("Initializing translator", "provider", cfg.Translator.Provider,
		"source_lang", cfg.Translator.SourceLang, "target_lang", cfg.Translator.TargetLang)
	var translator translate.Translator
	switch cfg.Translator.Provider {
	case "google":
		if cfg.Translator.ApiKey == "" {
			logger.Warn("No API key configured for translator, using mock translator")
			translator = translate.NewMockTranslator()
			break
		}
		translator = translate.NewGoogleTranslator(translate.GoogleTranslatorConfig{
			APIKey:     cfg.Translator.ApiKey,
			SourceLang: cfg.Translator.SourceLang,
			TargetLang: cfg.Translator.TargetLang,
			Metrics:    metrics,
		})
	case "mock", "":
		translator = translate.NewMockTranslator()
	default:
		logger.Warn("Unknown translator provider, using mock translator",
			"provider", cfg.Translator.Provider)
		translator = translate.NewMockTranslator()
	}

	// Initialize embedder
	logger.Info("Initializing embedder", "provider", cfg.Embedder.Provider,
		"dimensions", cfg.Embedder.Dimensions)
	dimensions := cfg.Embedder.Dimensions
	if dimensions <= 0 {
		dimensions = vector.DefaultEmbeddingDimensions
	}

	var embedder vector.Embedder
	switch cfg.Embedder.Provider {
	case "openai":
		if cfg.Embedder.ApiKey == "" {
			logger.Warn("No API key configured for embedder, using mock embedder")
			embedder = vector.NewMockEmbedder(dimensions)
			break
		}
		openaiEmbedder := vector.NewOpenAIEmbedder(cfg.Embedder.ApiKey, cfg.Embedder.ModelID, dimensions)
		openaiEmbedder.SetMetrics(metrics)
		embedder = openaiEmbedder
	case "mock", "":
		embedder = vector.NewMockEmbedder(dimensions)
	default:
		logger.Warn("Unknown embedder provider, using mock embedder",
			"provider", cfg.Embedder.Provider)
		embedder = vector.NewMockEmbedder(dimensions)
	}
	if err := embedder.Initialize(); err != nil {
		return nil, nil, nil, nil, errortypes.ConfigError(err, "Failed to initialize embedder")
	}

	logger.Info("Components successfully initialized")
	return store, enricher, translator, embedder, nil
}
