// Package shutdown 负责在收到停机信号后依次关闭HTTP服务和其它资源。
package shutdown

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SlpAus/hanzi-flashcard-backend/internal/platform/logger"
)

// DefaultTimeout 是等待正在处理的请求完成的最长时间
const DefaultTimeout = 15 * time.Second

// Closer 是需要在HTTP服务关闭后释放的资源
type Closer struct {
	Name  string
	Close func() error
}

// Coordinator 编排停机流程：先停止接收新请求，等待进行中的请求完成，再释放资源。
type Coordinator struct {
	log     *slog.Logger
	timeout time.Duration
	closers []Closer
}

// NewCoordinator 创建停机协调器，timeout 不是正数时使用 DefaultTimeout
func NewCoordinator(log *slog.Logger, timeout time.Duration, closers ...Closer) *Coordinator {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Coordinator{log: logger.Module(log, "shutdown"), timeout: timeout, closers: closers}
}

// Run 启动 server 并阻塞，直到收到 SIGINT/SIGTERM、ctx 被取消或服务自身出错。
func (c *Coordinator) Run(ctx context.Context, server *http.Server) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		c.log.Info("服务器开始监听", slog.String("address", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	var runErr error
	select {
	case err := <-serveErr:
		runErr = err
	case <-ctx.Done():
		c.log.Info("收到关闭信号，开始优雅停机")
	}

	return errors.Join(runErr, c.Shutdown(server))
}

// Shutdown 关闭HTTP服务器，然后按注册顺序释放资源
func (c *Coordinator) Shutdown(server *http.Server) error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	var errs []error
	if err := server.Shutdown(shutdownCtx); err != nil {
		c.log.Error("HTTP服务器关闭出错", slog.Any("error", err))
		errs = append(errs, err)
	} else {
		c.log.Info("HTTP服务器已关闭")
	}

	for _, cl := range c.closers {
		if err := cl.Close(); err != nil {
			c.log.Error("资源释放失败", slog.String("resource", cl.Name), slog.Any("error", err))
			errs = append(errs, err)
			continue
		}
		c.log.Info("资源已释放", slog.String("resource", cl.Name))
	}

	c.log.Info("优雅停机完成")
	return errors.Join(errs...)
}
