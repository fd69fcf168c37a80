package server

import (
	"net/http"

	"github.com/stocklight/stocklight/internal/enrich"
	"github.com/stocklight/stocklight/internal/telemetry"
)

// healthResponse is the JSON body of GET /health.
type healthResponse struct {
	Status string                 `json:"status"`
	HTTP   httpHealth             `json:"http"`
	Enrich *enrich.HealthSnapshot `json:"enrich,omitempty"`
}

type httpHealth struct {
	Requests     int64 `json:"requests"`
	Errors       int64 `json:"errors"`
	AvgLatencyMS int64 `json:"avg_latency_ms"`
	P95LatencyMS int64 `json:"p95_latency_ms"`
}

// handleHealth handles GET /health. The report is derived entirely from
// recorded metrics; no upstream calls are made.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status: "ok",
		HTTP: httpHealth{
			Requests:     s.metrics.GetCounter(telemetry.MetricHTTPRequests),
			Errors:       s.metrics.GetCounter(telemetry.MetricHTTPErrors),
			AvgLatencyMS: s.metrics.GetTimerAverage(telemetry.MetricHTTPRequestTime).Milliseconds(),
			P95LatencyMS: s.metrics.GetTimerP95(telemetry.MetricHTTPRequestTime).Milliseconds(),
		},
	}

	if s.enrichHealth != nil {
		snapshot := s.enrichHealth.HealthSnapshot()
		resp.Enrich = &snapshot
		if !snapshot.Healthy() {
			resp.Status = "degraded"
		}
	}

	writeJSON(w, http.StatusOK, resp)
}
