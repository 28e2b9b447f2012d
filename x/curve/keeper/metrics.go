package keeper

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the curve module.
type Metrics struct {
	Trades *prometheus.CounterVec
}

var (
	curveMetricsOnce sync.Once
	curveMetrics     *Metrics
)

// GetMetrics returns the singleton curve metrics, registering them on first use.
func GetMetrics() *Metrics {
	curveMetricsOnce.Do(func() {
		curveMetrics = &Metrics{
			Trades: promauto.NewCounterVec(prometheus.CounterOpts{
				Namespace: "thryx",
				Subsystem: "curve",
				Name:      "trades_total",
				Help:      "Total bonding-curve buys and sells by asset",
			}, []string{"denom", "side"}),
		}
	})
	return curveMetrics
}
