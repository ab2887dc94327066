package transaction

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	txTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "travel_tx_total",
			Help: "Units of work by name and outcome",
		},
		[]string{"name", "outcome"},
	)

	txDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "travel_tx_duration_seconds",
			Help:    "Duration of a single transaction attempt",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"name"},
	)

	txRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "travel_tx_retries_total",
			Help: "Attempts re-run after a serialization conflict",
		},
		[]string{"name"},
	)
)

func observe(name string, err error, duration time.Duration) {
	outcome := "committed"
	if err != nil {
		outcome = KindOf(err).String()
	}
	txTotal.WithLabelValues(name, outcome).Inc()
	txDuration.WithLabelValues(name).Observe(duration.Seconds())
}
