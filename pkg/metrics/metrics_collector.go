package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsCollector 指标收集器
type MetricsCollector struct {
	// HTTP 指标
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// 业务指标
	ordersCreatedTotal *prometheus.CounterVec
	ordersUpdatedTotal prometheus.Counter
	ordersDeletedTotal prometheus.Counter
	trackingLookups    prometheus.Counter
}

var (
	globalCollector *MetricsCollector
	once            sync.Once
)

// GetGlobalCollector 获取全局指标收集器（单例）
func GetGlobalCollector() *MetricsCollector {
	once.Do(func() {
		globalCollector = newMetricsCollector()
	})
	return globalCollector
}

// newMetricsCollector 创建指标收集器
func newMetricsCollector() *MetricsCollector {
	return &MetricsCollector{
		httpRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),
		httpRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),
		ordersCreatedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orders_created_total",
				Help: "Total number of orders created",
			},
			[]string{"status"},
		),
		ordersUpdatedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "orders_updated_total",
				Help: "Total number of order updates",
			},
		),
		ordersDeletedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "orders_deleted_total",
				Help: "Total number of orders soft-deleted",
			},
		),
		trackingLookups: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "tracking_lookups_total",
				Help: "Total number of public tracking lookups",
			},
		),
	}
}

// RecordHTTPRequest 记录 HTTP 请求指标
func (mc *MetricsCollector) RecordHTTPRequest(method, endpoint, status string, duration time.Duration) {
	mc.httpRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	mc.httpRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordOrderCreated 记录订单创建
func (mc *MetricsCollector) RecordOrderCreated(status string) {
	mc.ordersCreatedTotal.WithLabelValues(status).Inc()
}

// RecordOrderUpdated 记录订单更新
func (mc *MetricsCollector) RecordOrderUpdated() {
	mc.ordersUpdatedTotal.Inc()
}

// RecordOrderDeleted 记录订单删除
func (mc *MetricsCollector) RecordOrderDeleted() {
	mc.ordersDeletedTotal.Inc()
}

// RecordTrackingLookup 记录公开查询
func (mc *MetricsCollector) RecordTrackingLookup() {
	mc.trackingLookups.Inc()
}
