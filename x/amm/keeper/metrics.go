package keeper

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the AMM module.
type Metrics struct {
	SwapsTotal   *prometheus.CounterVec
	LiquidityOps *prometheus.CounterVec
	PoolsTotal   prometheus.Gauge
}

var (
	ammMetricsOnce sync.Once
	ammMetrics     *Metrics
)

// GetMetrics returns the singleton AMM metrics, registering them on first use.
func GetMetrics() *Metrics {
	ammMetricsOnce.Do(func() {
		ammMetrics = &Metrics{
			SwapsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
				Namespace: "thryx",
				Subsystem: "amm",
				Name:      "swaps_total",
				Help:      "Total executed swaps by token pair",
			}, []string{"token_in", "token_out"}),
			LiquidityOps: promauto.NewCounterVec(prometheus.CounterOpts{
				Namespace: "thryx",
				Subsystem: "amm",
				Name:      "liquidity_operations_total",
				Help:      "Total liquidity additions and removals",
			}, []string{"operation"}),
			PoolsTotal: promauto.NewGauge(prometheus.GaugeOpts{
				Namespace: "thryx",
				Subsystem: "amm",
				Name:      "pools_total",
				Help:      "Number of created pools",
			}),
		}
	})
	return ammMetrics
}
