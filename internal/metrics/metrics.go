// Package metrics registers the Prometheus series the service updates:
//   - guess_created_total{direction}: guesses opened
//   - guess_resolutions_total{outcome}: settlements (correct|incorrect|void)
//   - guess_poller_cycles_total: completed poller cycles
//   - guess_poller_errors_total: per-guess and cycle failures
//   - price_samples_cached_total: deduplicated samples written
//   - btc_price_cents: latest cached price (gauge)
//
// Served at /metrics in Prometheus text exposition format.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	GuessesCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "guess_created_total",
			Help: "Guesses opened",
		},
		[]string{"direction"},
	)

	Resolutions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "guess_resolutions_total",
			Help: "Guess settlements by outcome",
		},
		[]string{"outcome"},
	)

	PollerCycles = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "guess_poller_cycles_total",
			Help: "Completed resolution poller cycles",
		},
	)

	PollerErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "guess_poller_errors_total",
			Help: "Poller failures (per guess or per cycle)",
		},
	)

	PriceSamples = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "price_samples_cached_total",
			Help: "Price samples written to the cache",
		},
	)

	LatestPrice = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "btc_price_cents",
			Help: "Latest cached BTC price in cents",
		},
	)
)

func init() {
	prometheus.MustRegister(
		GuessesCreated,
		Resolutions,
		PollerCycles,
		PollerErrors,
		PriceSamples,
		LatestPrice,
	)
}
