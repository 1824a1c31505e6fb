package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP 请求延迟（秒）
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	// 数据库查询延迟（秒）
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"operation", "table"},
	)

	// MQ 消费延迟（毫秒）
	MQConsumeLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mq_consume_latency_ms",
			Help:    "MQ message consumption latency in milliseconds",
			Buckets: prometheus.ExponentialBuckets(10, 2, 10), // 10ms to ~10s
		},
		[]string{"routing_key", "queue"},
	)

	// 工作流状态流转计数
	WorkflowTransitionCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workflow_transition_count",
			Help: "Total number of workflow status transitions",
		},
		[]string{"record_type", "action", "outcome"}, // record_type: breakdown, performance
	)

	// 提交窗口拒绝计数
	WindowRejectionCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "submission_window_rejection_count",
			Help: "Total number of writes rejected because the entry window was closed",
		},
		[]string{"window_type"},
	)

	// 指标聚合耗时（秒）
	AggregationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "indicator_aggregation_duration_seconds",
			Help:    "Indicator performance aggregation duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"source"}, // source: cache, recompute
	)
)

// RecordHTTPRequestDuration 记录 HTTP 请求延迟
func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordDBQueryDuration 记录数据库查询延迟
func RecordDBQueryDuration(operation, table string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
}

// RecordMQConsumeLatency 记录 MQ 消费延迟
func RecordMQConsumeLatency(routingKey, queue string, duration time.Duration) {
	MQConsumeLatency.WithLabelValues(routingKey, queue).Observe(float64(duration.Milliseconds()))
}

// IncrementWorkflowTransition 增加状态流转计数
func IncrementWorkflowTransition(recordType, action, outcome string) {
	WorkflowTransitionCount.WithLabelValues(recordType, action, outcome).Inc()
}

// IncrementWindowRejection 增加窗口关闭拒绝计数
func IncrementWindowRejection(windowType string) {
	WindowRejectionCount.WithLabelValues(windowType).Inc()
}

// RecordAggregationDuration 记录聚合耗时
func RecordAggregationDuration(source string, duration time.Duration) {
	AggregationDuration.WithLabelValues(source).Observe(duration.Seconds())
}
