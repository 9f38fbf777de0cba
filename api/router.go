package api

import (
	"log/slog"
	"net/http"

	"github.com/SlpAus/hanzi-flashcard-backend/internal/character"
	"github.com/SlpAus/hanzi-flashcard-backend/internal/platform/database"
	"github.com/SlpAus/hanzi-flashcard-backend/internal/platform/metrics"
	"github.com/SlpAus/hanzi-flashcard-backend/internal/report"
	"github.com/SlpAus/hanzi-flashcard-backend/internal/transfer"
	"github.com/gin-gonic/gin"
)

// Deps 是注册路由所需的依赖
type Deps struct {
	DB      *database.DB
	Metrics *metrics.Metrics
	Log     *slog.Logger
}

// SetupRoutes 注册项目的所有API路由
func SetupRoutes(router *gin.Engine, deps Deps) {
	repo := character.NewRepository(deps.DB.Gorm)
	chars := character.NewService(repo, deps.Log, character.WithMetrics(deps.Metrics))
	reports := report.NewService(report.NewRepository(deps.DB.SQL), nil)
	transfers := transfer.NewService(repo, deps.Metrics, deps.Log)

	api := router.Group("/api")
	{
		// 汉字的增删改查、随机抽取和认识判定
		character.NewHandler(chars, deps.Log).Register(api)

		// 导出和导入
		transfer.NewHandler(transfers, deps.Log).Register(api)

		// 统计、最近记录和错题库
		report.NewHandler(reports, deps.Log).Register(api)
	}

	router.GET("/healthz", func(c *gin.Context) {
		if err := deps.DB.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if deps.Metrics != nil {
		router.GET("/metrics", deps.Metrics.Handler())
	}
}
