package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	sqlgenRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "incidentchat_sqlgen_requests_total",
			Help: "Total number of SQL generation attempts by outcome.",
		},
		[]string{"outcome"},
	)
	sqlgenCacheHitsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "incidentchat_sqlgen_cache_hits_total",
			Help: "Total number of generation requests served from the statement cache.",
		},
	)
	llmRequestDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "incidentchat_llm_request_duration_seconds",
			Help:    "Generation service call latency in seconds.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 20, 30, 60},
		},
	)
	llmFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "incidentchat_llm_failures_total",
			Help: "Total number of failed generation service calls.",
		},
	)
	chatTurnsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "incidentchat_chat_turns_total",
			Help: "Total number of chat turns by final status.",
		},
		[]string{"status"},
	)
	chatTurnDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "incidentchat_chat_turn_duration_seconds",
			Help:    "End-to-end chat turn latency in seconds.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60},
		},
	)
)

func init() {
	prometheus.MustRegister(
		sqlgenRequestsTotal,
		sqlgenCacheHitsTotal,
		llmRequestDurationSeconds,
		llmFailuresTotal,
		chatTurnsTotal,
		chatTurnDurationSeconds,
	)
}

// ObserveSQLGen records the outcome of one generation attempt: "shortcut",
// "generated", "rejected" or "failed".
func ObserveSQLGen(outcome string) {
	sqlgenRequestsTotal.WithLabelValues(outcome).Inc()
}

func IncrementSQLGenCacheHit() {
	sqlgenCacheHitsTotal.Inc()
}

func ObserveLLMRequest(elapsed time.Duration, ok bool) {
	llmRequestDurationSeconds.Observe(elapsed.Seconds())
	if !ok {
		llmFailuresTotal.Inc()
	}
}

func ObserveChatTurn(status string, elapsed time.Duration) {
	chatTurnsTotal.WithLabelValues(status).Inc()
	chatTurnDurationSeconds.Observe(elapsed.Seconds())
}
