package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels recorded on OperationsTotal.
const (
	OutcomeSuccess           = "success"
	OutcomeNotFound          = "not_found"
	OutcomeInsufficientFunds = "insufficient_funds"
	OutcomeError             = "error"
)

var (
	// OperationsTotal counts applied wallet operations by type and outcome.
	OperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallet_operations_total",
			Help: "Total number of wallet operations processed",
		},
		[]string{"type", "outcome"},
	)

	// OperationDuration observes end-to-end operation latency, including
	// transient-error retries.
	OperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wallet_operation_duration_seconds",
			Help:    "Wallet operation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"type"},
	)

	// OperationRetries counts re-runs of the operation sequence after a
	// transient storage failure.
	OperationRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wallet_operation_retries_total",
			Help: "Total number of operation retries after transient storage errors",
		},
	)
)
