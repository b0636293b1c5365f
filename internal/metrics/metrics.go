// Package metrics declares the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts HTTP requests handled by the admin API.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests handled by the service.",
		},
		[]string{"path", "method", "code"},
	)

	// TaskDispatchTotal counts task dispatches by task name and terminal
	// outcome (completed, failed, unresolved).
	TaskDispatchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "task_dispatch_total",
			Help: "Total number of task dispatches by terminal outcome.",
		},
		[]string{"task", "outcome"},
	)

	// TaskQueueDepth tracks the number of tasks buffered in the in-memory
	// queue.
	TaskQueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "task_queue_depth",
			Help: "Number of tasks currently buffered in the worker queue.",
		},
	)
)
