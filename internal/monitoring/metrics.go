// Package monitoring exposes Prometheus metrics for the registry: call
// counts by operation and outcome, call latency, and the current ledger
// height.  Metrics are served by the HTTP layer on /metrics.
package monitoring

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/iliyamo/ticket-registry/internal/registry"
)

var (
	registryCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registry_calls_total",
			Help: "Total registry calls by operation and outcome",
		},
		[]string{"op", "outcome"},
	)

	callDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "registry_call_duration_seconds",
			Help:    "Duration of registry calls",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 12),
		},
		[]string{"op"},
	)

	ledgerHeight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ledger_height",
			Help: "Current ledger block height",
		},
	)
)

// ObserveCall records one registry call.  Registry failures are labelled by
// their numeric error code; infrastructure failures collapse into "error".
func ObserveCall(op string, err error, d time.Duration) {
	registryCalls.WithLabelValues(op, outcome(err)).Inc()
	callDuration.WithLabelValues(op).Observe(d.Seconds())
}

// SetLedgerHeight publishes the current block height.
func SetLedgerHeight(h uint64) {
	ledgerHeight.Set(float64(h))
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	var rerr *registry.Error
	if errors.As(err, &rerr) {
		return fmt.Sprintf("u%d", rerr.Code)
	}
	return "error"
}
