// Package metrics 提供本服务的Prometheus指标，所有指标注册在注入的Registry上。
package metrics

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics 汇总HTTP层和业务层的指标
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec   // 按方法、路由、状态码统计
	HTTPRequestDuration *prometheus.HistogramVec // 按方法、路由统计耗时
	MarkEventsTotal     *prometheus.CounterVec   // result: recognized, missed
	ImportRowsTotal     *prometheus.CounterVec   // outcome: created, updated, skipped, error

	registry *prometheus.Registry
}

// New 创建指标并注册到 registry，registry 为 nil 时新建一个
func New(registry *prometheus.Registry) (*Metrics, error) {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hanzi_http_requests_total",
				Help: "Total number of HTTP requests by method, route and status code",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "hanzi_http_request_duration_seconds",
				Help:    "HTTP request latency by method and route",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"method", "route"},
		),
		MarkEventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hanzi_mark_events_total",
				Help: "Total number of recognition events by result",
			},
			[]string{"result"},
		),
		ImportRowsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hanzi_import_rows_total",
				Help: "Total number of spreadsheet rows processed by import outcome",
			},
			[]string{"outcome"},
		),
		registry: registry,
	}

	for _, c := range []prometheus.Collector{
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.MarkEventsTotal,
		m.ImportRowsTotal,
		collectors.NewGoCollector(),
	} {
		if err := registry.Register(c); err != nil {
			return nil, fmt.Errorf("注册指标失败: %w", err)
		}
	}
	return m, nil
}

// Registry 返回指标所在的注册表
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// ObserveMark 记录一次认识/不认识判定，m 为 nil 时什么也不做
func (m *Metrics) ObserveMark(recognized bool) {
	if m == nil {
		return
	}
	result := "missed"
	if recognized {
		result = "recognized"
	}
	m.MarkEventsTotal.WithLabelValues(result).Inc()
}

// ObserveImport 按结果累加导入的行数
func (m *Metrics) ObserveImport(created, updated, skipped, failed int) {
	if m == nil {
		return
	}
	m.ImportRowsTotal.WithLabelValues("created").Add(float64(created))
	m.ImportRowsTotal.WithLabelValues("updated").Add(float64(updated))
	m.ImportRowsTotal.WithLabelValues("skipped").Add(float64(skipped))
	m.ImportRowsTotal.WithLabelValues("error").Add(float64(failed))
}

// Middleware 统计每个请求的次数和耗时
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.HTTPRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPRequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler 返回 /metrics 的处理函数
func (m *Metrics) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return gin.WrapH(h)
}
