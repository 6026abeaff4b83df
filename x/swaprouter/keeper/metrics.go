package keeper

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RouterMetrics holds all Prometheus metrics for the swap router module
type RouterMetrics struct {
	// Swap metrics
	SwapsTotal  *prometheus.CounterVec
	SwapVolume  *prometheus.CounterVec
	SwapLatency prometheus.Histogram

	// Quote metrics
	QuotesTotal   *prometheus.CounterVec
	NoRouteTotal  prometheus.Counter
	QuoteFallback *prometheus.CounterVec

	// Fee metrics
	FeesCollected *prometheus.CounterVec
	ReferralsPaid *prometheus.CounterVec

	// Protection metrics
	MEVAdjustments    prometheus.Counter
	ReentrancyBlocked prometheus.Counter

	// Registry metrics
	CutsApplied prometheus.Counter
}

var (
	routerMetricsOnce sync.Once
	routerMetrics     *RouterMetrics
)

// NewRouterMetrics creates and registers router metrics (singleton pattern)
func NewRouterMetrics() *RouterMetrics {
	routerMetricsOnce.Do(func() {
		routerMetrics = &RouterMetrics{
			SwapsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "vortex",
					Subsystem: "swaprouter",
					Name:      "swaps_total",
					Help:      "Total number of swaps executed",
				},
				[]string{"generation", "status"},
			),
			SwapVolume: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "vortex",
					Subsystem: "swaprouter",
					Name:      "swap_volume_total",
					Help:      "Total swap input volume in base units",
				},
				[]string{"denom"},
			),
			SwapLatency: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Namespace: "vortex",
					Subsystem: "swaprouter",
					Name:      "swap_latency_seconds",
					Help:      "Swap execution latency in seconds",
					Buckets:   prometheus.DefBuckets,
				},
			),
			QuotesTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "vortex",
					Subsystem: "swaprouter",
					Name:      "quotes_total",
					Help:      "Quotes served by winning generation",
				},
				[]string{"generation"},
			),
			NoRouteTotal: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "vortex",
					Subsystem: "swaprouter",
					Name:      "quotes_no_route_total",
					Help:      "Quote requests that found no route",
				},
			),
			QuoteFallback: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "vortex",
					Subsystem: "swaprouter",
					Name:      "quote_generation_unavailable_total",
					Help:      "Per-generation estimation failures downgraded during quoting",
				},
				[]string{"generation"},
			),
			FeesCollected: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "vortex",
					Subsystem: "swaprouter",
					Name:      "fees_collected_total",
					Help:      "Platform fees collected in base units",
				},
				[]string{"denom", "mode"},
			),
			ReferralsPaid: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "vortex",
					Subsystem: "swaprouter",
					Name:      "referral_fees_paid_total",
					Help:      "Referral fees paid in base units",
				},
				[]string{"denom"},
			),
			MEVAdjustments: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "vortex",
					Subsystem: "swaprouter",
					Name:      "mev_adjustments_total",
					Help:      "Swaps tightened by the MEV guard",
				},
			),
			ReentrancyBlocked: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "vortex",
					Subsystem: "swaprouter",
					Name:      "reentrancy_blocked_total",
					Help:      "Reentrant execution attempts rejected",
				},
			),
			CutsApplied: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "vortex",
					Subsystem: "swaprouter",
					Name:      "registry_cuts_total",
					Help:      "Registry cuts applied",
				},
			),
		}
	})
	return routerMetrics
}

// GetRouterMetrics returns the singleton router metrics instance
func GetRouterMetrics() *RouterMetrics {
	if routerMetrics == nil {
		return NewRouterMetrics()
	}
	return routerMetrics
}
