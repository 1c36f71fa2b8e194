// Package metrics holds the Prometheus collectors of the bracket server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "job_bracket"

type Metrics struct {
	TournamentsStarted   prometheus.Counter
	TournamentsCompleted prometheus.Counter
	TournamentsAbandoned prometheus.Counter
	MatchesDecided       prometheus.Counter
	SelectionsUndone     prometheus.Counter
	Exports              *prometheus.CounterVec
	HTTPRequests         *prometheus.CounterVec
	HTTPDuration         *prometheus.HistogramVec
}

// New registers every collector with reg. Use prometheus.DefaultRegisterer in the server
// and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		TournamentsStarted: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tournaments_started_total",
			Help:      "Tournaments started.",
		}),
		TournamentsCompleted: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tournaments_completed_total",
			Help:      "Tournaments played to a champion.",
		}),
		TournamentsAbandoned: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tournaments_abandoned_total",
			Help:      "Tournaments dropped before completion.",
		}),
		MatchesDecided: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "matches_decided_total",
			Help:      "Winner selections recorded.",
		}),
		SelectionsUndone: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "selections_undone_total",
			Help:      "Winner selections reverted.",
		}),
		Exports: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exports_total",
			Help:      "Results card exports by outcome.",
		}, []string{"result"}),
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}
