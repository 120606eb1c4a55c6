// Package metrics 定义服务的 Prometheus 指标。
//
// 指标统一使用 lab_tracker 命名空间：
//   - lab_tracker_http_requests_total{method,route,status}
//   - lab_tracker_http_request_duration_seconds{method,route}
//   - lab_tracker_activities_recorded_total{type}
//   - lab_tracker_notifications_created_total
//   - lab_tracker_cascade_deletes_total
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "lab_tracker"

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	ActivitiesRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "activities_recorded_total",
			Help:      "Total number of activity entries recorded",
		},
		[]string{"type"},
	)

	NotificationsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_created_total",
			Help:      "Total number of notifications created",
		},
	)

	CascadeDeletes = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cascade_deletes_total",
			Help:      "Total number of user cascade deletions",
		},
	)
)
