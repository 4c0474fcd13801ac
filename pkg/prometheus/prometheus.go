package prometheus

import "github.com/prometheus/client_golang/prometheus"

var (
	CommandCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_commands_total",
			Help: "Count of processed commands",
		},
		[]string{"command", "status"},
	)
	CommandDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bot_command_duration_seconds",
			Help:    "Time taken to process command",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"command"},
	)

	APIFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_api_failures_total",
			Help: "Count of failed API calls",
		},
		[]string{"method"},
	)

	MessagesSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_messages_sent_total",
			Help: "Count of sent messages",
		},
		[]string{"type"}, // text, embed
	)

	CircuitBreakerState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "bot_circuit_breaker_state",
			Help: "Upstream circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)
)

func Init() {
	prometheus.MustRegister(
		CommandCounter,
		CommandDuration,
		APIFailures,
		MessagesSent,
		CircuitBreakerState,
	)
}
