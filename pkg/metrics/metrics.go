// Package metrics exposes the Prometheus instrumentation for the service.
package metrics

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// PostsPublished counts posts promoted to published by the sweeper.
	PostsPublished = promauto.NewCounter(prometheus.CounterOpts{
		Name: "posts_published_total",
		Help: "Number of scheduled posts promoted to published.",
	})

	// SweepRuns counts completed sweep iterations.
	SweepRuns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "publish_sweeps_total",
		Help: "Number of publishing sweeps executed.",
	})

	// SweepFailures counts sweeps that returned an error.
	SweepFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "publish_sweep_failures_total",
		Help: "Number of publishing sweeps that failed.",
	})
)

// Handler returns the /metrics endpoint handler.
func Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.Handler())
}
