// Package server provides the HTTP API of the Stocklight service.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/stocklight/stocklight/internal/enrich"
	"github.com/stocklight/stocklight/internal/inventory"
	"github.com/stocklight/stocklight/internal/telemetry"
)

// EnrichHealthSource reports the health of the AI enrichment subsystem.
// Nil is allowed; the health endpoint then omits the enrichment section.
type EnrichHealthSource interface {
	HealthSnapshot() enrich.HealthSnapshot
}

// Server is the HTTP server exposing the inventory API.
type Server struct {
	service      *inventory.Service
	enrichHealth EnrichHealthSource
	metrics      *telemetry.MetricsCollector
	logger       *slog.Logger
	httpServer   *http.Server
}

// NewServer creates a Server listening on addr. A nil logger falls back to
// slog.Default and a nil metrics collector gets a fresh one.
func NewServer(addr string, service *inventory.Service, enrichHealth EnrichHealthSource, metrics *telemetry.MetricsCollector, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = telemetry.NewMetricsCollector()
	}

	s := &Server{
		service:      service,
		enrichHealth: enrichHealth,
		metrics:      metrics,
		logger:       logger,
	}

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.withTelemetry(s.routes()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// routes builds the request multiplexer. Literal path segments take
// precedence over {id}, so the aggregate routes coexist with the
// per-product ones.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	// CRUD
	mux.HandleFunc("POST /products", s.handleCreateProduct)
	mux.HandleFunc("GET /products", s.handleListProducts)
	mux.HandleFunc("GET /products/{id}", s.handleGetProduct)
	mux.HandleFunc("PUT /products/{id}", s.handleUpdateProduct)
	mux.HandleFunc("DELETE /products/{id}", s.handleDeleteProduct)

	// Aggregate reports
	mux.HandleFunc("GET /products/total_value", s.handleTotalValue)
	mux.HandleFunc("GET /products/avg_product_price", s.handleAveragePrice)
	mux.HandleFunc("GET /products/min_max_price", s.handleMinMaxPrice)
	mux.HandleFunc("GET /products/total_products_per_category", s.handleCountPerCategory)
	mux.HandleFunc("GET /products/value_per_category", s.handleValuePerCategory)
	mux.HandleFunc("GET /products/out_of_stock", s.handleOutOfStock)
	mux.HandleFunc("GET /products/most_expensive", s.handleMostExpensive)

	// Batch AI operations
	mux.HandleFunc("PUT /products/classify_batch", s.handleClassifyBatch)
	mux.HandleFunc("PUT /products/translate", s.handleTranslateBatch)
	mux.HandleFunc("PUT /products/embedding", s.handleEmbedBatch)
	mux.HandleFunc("PUT /products/describe", s.handleDescribeBatch)

	// Receipt import
	mux.HandleFunc("POST /products/receipt", s.handleReceipt)

	// Similarity search
	mux.HandleFunc("GET /products/similarity_by_id/{id}", s.handleSimilarityByID)
	mux.HandleFunc("GET /products/similarity_by_name", s.handleSimilarityByName)

	// Health
	mux.HandleFunc("GET /health", s.handleHealth)

	return mux
}

// statusRecorder captures the response status for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withTelemetry records request counts, error counts and request timing,
// and logs each request.
func (s *Server) withTelemetry(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(recorder, r)

		duration := time.Since(start)
		s.metrics.IncrementCounter(telemetry.MetricHTTPRequests, 1)
		s.metrics.RecordTimer(telemetry.MetricHTTPRequestTime, duration)
		if recorder.status >= http.StatusInternalServerError {
			s.metrics.IncrementCounter(telemetry.MetricHTTPErrors, 1)
		}

		s.logger.Info("request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"status", recorder.status,
			"duration_ms", duration.Milliseconds())
	})
}

// Start begins serving HTTP requests and blocks until the server stops.
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server", "addr", s.httpServer.Addr)
	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

// Handler returns the server's root handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}
