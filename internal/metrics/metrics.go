// Package metrics - Prometheus-коллекторы cv-service; отдаются через /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ResultOK    = "ok"
	ResultError = "error"
)

var (
	// CVSaves - сохранения резюме по исходу (ok/error).
	CVSaves = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cv_saves_total",
			Help: "Total number of CV save attempts",
		},
		[]string{"result"},
	)

	// Completions - запросы улучшения текста по стратегии (local/gemini) и исходу.
	Completions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cv_completions_total",
			Help: "Total number of text completion requests",
		},
		[]string{"strategy", "result"},
	)

	// ActiveSessions - число открытых сессий редактирования.
	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cv_active_sessions",
			Help: "Current number of CV editing sessions",
		},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cv_http_request_duration_seconds",
			Help:    "Time spent serving HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

// Result переводит ошибку в метку исхода.
func Result(err error) string {
	if err != nil {
		return ResultError
	}

	return ResultOK
}
