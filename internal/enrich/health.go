package enrich

import "github.com/stocklight/stocklight/internal/telemetry"

// HealthSnapshot summarizes enrichment activity for health reporting. The
// snapshot is derived from recorded metrics; no provider calls are made.
type HealthSnapshot struct {
	Providers         []string `json:"providers"`
	Calls             int64    `json:"calls"`
	Successes         int64    `json:"successes"`
	Failures          int64    `json:"failures"`
	FallbackAttempts  int64    `json:"fallback_attempts"`
	FallbackSuccesses int64    `json:"fallback_successes"`
}

// Healthy reports whether the most recent activity suggests the enrichment
// providers are operational. An idle enricher is considered healthy.
func (s HealthSnapshot) Healthy() bool {
	if s.Calls == 0 {
		return true
	}
	return s.Successes > 0 || s.Failures < s.Calls
}

// HealthSnapshot returns the current enrichment health snapshot.
func (e *AIEnricher) HealthSnapshot() HealthSnapshot {
	successes := e.metrics.GetCounter(telemetry.MetricEnrichCallsSuccess)
	failures := e.metrics.GetCounter(telemetry.MetricEnrichCallsFailure)

	return HealthSnapshot{
		Providers:         e.ProviderNames(),
		Calls:             successes + failures,
		Successes:         successes,
		Failures:          failures,
		FallbackAttempts:  e.metrics.GetCounter(telemetry.MetricEnrichFallbackAttempts),
		FallbackSuccesses: e.metrics.GetCounter(telemetry.MetricEnrichFallbackSuccess),
	}
}
