package metrics

import (
	"database/sql"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// HTTPRequestsTotal 按方法、路由、状态码统计的请求数
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aicp_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration 请求耗时分布
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "aicp_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// RegistrationsProcessed 注册审批结果
	RegistrationsProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aicp_registrations_processed_total",
			Help: "Pending registrations approved or rejected",
		},
		[]string{"outcome"},
	)

	// QRCodesGenerated 按访客类型统计生成的二维码
	QRCodesGenerated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aicp_qr_codes_generated_total",
			Help: "QR code URLs generated per visitor type",
		},
		[]string{"type"},
	)

	// VisitorAccess 访客进出记录
	VisitorAccess = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aicp_visitor_access_total",
			Help: "Visitor entry/exit events by result",
		},
		[]string{"access_type", "result"},
	)

)

var (
	dbStatsMu        sync.Mutex
	dbStatsCollector prometheus.Collector
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		RegistrationsProcessed,
		QRCodesGenerated,
		VisitorAccess,
	)
}

// RegisterDBStats 注册连接池采集器，每次抓取时读取 sql.DB 的实时状态
// 重复调用时替换之前的连接池
func RegisterDBStats(db *sql.DB, dbName string) error {
	dbStatsMu.Lock()
	defer dbStatsMu.Unlock()

	if dbStatsCollector != nil {
		prometheus.Unregister(dbStatsCollector)
	}
	collector := collectors.NewDBStatsCollector(db, dbName)
	if err := prometheus.Register(collector); err != nil {
		return err
	}
	dbStatsCollector = collector
	return nil
}

// Middleware 记录每个请求的计数和耗时
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		HTTPRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		HTTPRequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
