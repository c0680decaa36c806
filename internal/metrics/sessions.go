// SPDX-License-Identifier: MIT

// Package metrics defines the Prometheus business metrics of the session
// engine. HTTP-level metrics live in the API middleware.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	sessionsStartedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "halo_sessions_started_total",
		Help: "Total number of sessions started",
	})

	sessionsEndedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "halo_sessions_ended_total",
		Help: "Total number of sessions ended",
	})

	sessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "halo_sessions_held",
		Help: "Number of session records currently held in the store, in any state",
	})

	eventsRecordedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "halo_events_recorded_total",
		Help: "Total number of behavioural events folded into accumulators",
	})

	engineFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "halo_engine_failures_total",
		Help: "Engine operation failures by operation and reason",
	}, []string{"op", "reason"}) // op=start|event|end

	signalValues = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "halo_event_signal_value",
		Help:    "Distribution of reported signal values",
		Buckets: prometheus.LinearBuckets(0, 0.1, 11),
	}, []string{"signal"}) // signal=friction|hesitation|pace

	sweeperEvictionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "halo_sweeper_evictions_total",
		Help: "Total number of ended sessions evicted by the retention sweeper",
	})
)

func IncSessionStarted() { sessionsStartedTotal.Inc() }
func IncSessionEnded()   { sessionsEndedTotal.Inc() }

// SetActiveSessions records the current store size.
func SetActiveSessions(n int) { sessionsActive.Set(float64(n)) }

// ObserveEvent counts one accepted event and records its signal values.
func ObserveEvent(friction, hesitation, pace float64) {
	eventsRecordedTotal.Inc()
	signalValues.WithLabelValues("friction").Observe(friction)
	signalValues.WithLabelValues("hesitation").Observe(hesitation)
	signalValues.WithLabelValues("pace").Observe(pace)
}

// IncEngineFailure counts a failed engine operation.
func IncEngineFailure(op, reason string) {
	engineFailuresTotal.WithLabelValues(op, reason).Inc()
}

// AddSweeperEvictions counts sessions removed by the retention sweeper.
func AddSweeperEvictions(n int) {
	sweeperEvictionsTotal.Add(float64(n))
}
