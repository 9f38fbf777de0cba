package logger

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader 是回写给客户端的请求ID头
	RequestIDHeader = "X-Request-ID"
	// RequestIDKey 是请求ID在Gin上下文中的键
	RequestIDKey = "requestID"
)

// RequestLogger 为每个请求分配请求ID，并在请求结束后记录一条访问日志
func RequestLogger(l *slog.Logger) gin.HandlerFunc {
	if l == nil {
		l = Discard()
	}
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			if id, err := uuid.NewV7(); err == nil {
				requestID = id.String()
			}
		}
		c.Set(RequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			slog.String("request_id", requestID),
			slog.String("method", c.Request.Method),
			slog.String("path", c.FullPath()),
			slog.Int("status", status),
			slog.Int64("latency_ms", time.Since(start).Milliseconds()),
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, slog.String("errors", c.Errors.String()))
		}

		switch {
		case status >= 500:
			l.Error("请求处理失败", attrs...)
		case status >= 400:
			l.Warn("请求被拒绝", attrs...)
		default:
			l.Info("请求完成", attrs...)
		}
	}
}

// FromContext 返回附带当前请求ID的日志器
func FromContext(c *gin.Context, l *slog.Logger) *slog.Logger {
	if l == nil {
		l = Discard()
	}
	if id := c.GetString(RequestIDKey); id != "" {
		return l.With(slog.String("request_id", id))
	}
	return l
}
