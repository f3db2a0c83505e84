package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GamesStarted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "minesweeper",
		Name:      "games_started_total",
		Help:      "Games started, by difficulty.",
	}, []string{"difficulty"})

	GamesFinished = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "minesweeper",
		Name:      "games_finished_total",
		Help:      "Games finished, by difficulty and outcome.",
	}, []string{"difficulty", "outcome"})

	SessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "minesweeper",
		Name:      "sessions_active",
		Help:      "Sessions currently held in memory.",
	})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "minesweeper",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "code"})
)
