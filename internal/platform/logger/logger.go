// Package logger 基于 log/slog 提供按模块划分的结构化日志，
// 以及供 GORM 与 Gin 使用的适配器。
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Options 描述日志输出方式
type Options struct {
	Level  string // debug, info, warn, error
	Format string // text 或 json
}

// New 根据配置创建根日志器，w 为 nil 时输出到标准输出
func New(w io.Writer, opts Options) (*slog.Logger, error) {
	if w == nil {
		w = os.Stdout
	}
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	switch strings.ToLower(opts.Format) {
	case "", "text":
		h = slog.NewTextHandler(w, handlerOpts)
	case "json":
		h = slog.NewJSONHandler(w, handlerOpts)
	default:
		return nil, fmt.Errorf("未知的日志格式 %q", opts.Format)
	}
	return slog.New(h), nil
}

// ParseLevel 将配置中的级别字符串转换为 slog.Level
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("未知的日志级别 %q", s)
}

// Module 返回带有 module 属性的子日志器
func Module(l *slog.Logger, name string) *slog.Logger {
	if l == nil {
		l = Discard()
	}
	return l.With(slog.String("module", name))
}

// Discard 返回丢弃所有输出的日志器，主要用于测试
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 4}))
}
