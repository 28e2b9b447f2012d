package keeper

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the oracle module.
type Metrics struct {
	SubmissionsTotal    *prometheus.CounterVec
	SubmissionsRejected *prometheus.CounterVec
	ConsensusTotal      *prometheus.CounterVec
	ReportersBanned     prometheus.Counter
}

var (
	oracleMetricsOnce sync.Once
	oracleMetrics     *Metrics
)

// GetMetrics returns the singleton oracle metrics, registering them on first use.
func GetMetrics() *Metrics {
	oracleMetricsOnce.Do(func() {
		oracleMetrics = &Metrics{
			SubmissionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
				Namespace: "thryx",
				Subsystem: "oracle",
				Name:      "submissions_total",
				Help:      "Accepted price submissions by pair",
			}, []string{"pair"}),
			SubmissionsRejected: promauto.NewCounterVec(prometheus.CounterOpts{
				Namespace: "thryx",
				Subsystem: "oracle",
				Name:      "submissions_rejected_total",
				Help:      "Submissions rejected for excessive deviation by pair",
			}, []string{"pair"}),
			ConsensusTotal: promauto.NewCounterVec(prometheus.CounterOpts{
				Namespace: "thryx",
				Subsystem: "oracle",
				Name:      "consensus_total",
				Help:      "Consensus rounds settled by pair",
			}, []string{"pair"}),
			ReportersBanned: promauto.NewCounter(prometheus.CounterOpts{
				Namespace: "thryx",
				Subsystem: "oracle",
				Name:      "reporters_banned_total",
				Help:      "Reporters permanently banned for chronic inaccuracy",
			}),
		}
	})
	return oracleMetrics
}
