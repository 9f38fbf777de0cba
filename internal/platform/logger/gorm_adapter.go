package logger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// GormAdapter 把 slog 适配为 GORM 的 logger.Interface。
// 普通SQL记为DEBUG，慢查询和查询错误记为WARN。
type GormAdapter struct {
	log           *slog.Logger
	slowThreshold time.Duration
}

// NewGormAdapter 创建GORM日志适配器，slowThreshold 为0时不记录慢查询
func NewGormAdapter(l *slog.Logger, slowThreshold time.Duration) *GormAdapter {
	if l == nil {
		l = Discard()
	}
	return &GormAdapter{log: l, slowThreshold: slowThreshold}
}

// LogMode 日志级别由 slog 统一控制，这里忽略GORM自己的级别
func (a *GormAdapter) LogMode(gormlogger.LogLevel) gormlogger.Interface {
	return a
}

func (a *GormAdapter) Info(ctx context.Context, msg string, data ...any) {
	a.log.DebugContext(ctx, fmt.Sprintf(msg, data...))
}

func (a *GormAdapter) Warn(ctx context.Context, msg string, data ...any) {
	a.log.WarnContext(ctx, fmt.Sprintf(msg, data...))
}

func (a *GormAdapter) Error(ctx context.Context, msg string, data ...any) {
	a.log.ErrorContext(ctx, fmt.Sprintf(msg, data...))
}

// Trace 记录每条SQL的执行情况
func (a *GormAdapter) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()
	attrs := []any{
		slog.String("sql", sql),
		slog.Int64("rows_affected", rows),
		slog.Int64("duration_ms", elapsed.Milliseconds()),
	}

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		a.log.WarnContext(ctx, "查询错误", append(attrs, slog.Any("error", err))...)
	case a.slowThreshold > 0 && elapsed > a.slowThreshold:
		a.log.WarnContext(ctx, "慢查询", attrs...)
	default:
		a.log.DebugContext(ctx, "执行SQL", attrs...)
	}
}
