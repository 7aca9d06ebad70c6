package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// AssetOperations операции с файловым хранилищем: op = store|delete, result = ok|error
	AssetOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "asset_operations_total",
			Help: "File storage operations by result",
		},
		[]string{"op", "result"},
	)

	ContactNotifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contact_notifications_total",
			Help: "Admin notifications about contact submissions",
		},
		[]string{"result"},
	)
)

func Result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
