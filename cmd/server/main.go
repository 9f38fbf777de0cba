package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"slices"
	"time"

	"github.com/SlpAus/hanzi-flashcard-backend/api"
	"github.com/SlpAus/hanzi-flashcard-backend/internal/platform/config"
	"github.com/SlpAus/hanzi-flashcard-backend/internal/platform/logger"
	"github.com/SlpAus/hanzi-flashcard-backend/internal/platform/metrics"
	"github.com/SlpAus/hanzi-flashcard-backend/internal/platform/shutdown"
	"github.com/SlpAus/hanzi-flashcard-backend/internal/platform/startup"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "服务器启动失败: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	log, err := logger.New(os.Stdout, logger.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	if err != nil {
		return err
	}
	slog.SetDefault(log)

	ctx := context.Background()
	db, err := startup.InitializeApplication(ctx, cfg.Database, log)
	if err != nil {
		return err
	}

	m, err := metrics.New(nil)
	if err != nil {
		_ = db.Close()
		return err
	}

	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	r.Use(
		gin.Recovery(),
		logger.RequestLogger(logger.Module(log, "http")),
		m.Middleware(),
		cors.New(corsConfig(cfg.Server.Cors)),
	)

	api.SetupRoutes(r, api.Deps{DB: db, Metrics: m, Log: log})

	server := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	coordinator := shutdown.NewCoordinator(log, shutdown.DefaultTimeout,
		shutdown.Closer{Name: "database", Close: db.Close},
	)
	return coordinator.Run(ctx, server)
}

func corsConfig(c config.CorsConfig) cors.Config {
	cc := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", logger.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition", logger.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(c.AllowedOrigins) == 0 || slices.Contains(c.AllowedOrigins, "*") {
		cc.AllowAllOrigins = true
		return cc
	}
	cc.AllowOrigins = c.AllowedOrigins
	cc.AllowCredentials = true
	return cc
}
