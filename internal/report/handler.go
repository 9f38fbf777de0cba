package report

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/SlpAus/hanzi-flashcard-backend/internal/platform/apperr"
	"github.com/SlpAus/hanzi-flashcard-backend/internal/platform/logger"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
	log *slog.Logger
}

func NewHandler(svc *Service, log *slog.Logger) *Handler {
	return &Handler{svc: svc, log: logger.Module(log, "report")}
}

// Register 注册统计相关的路由
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/stats", h.Stats)
	rg.GET("/records/recent", h.Recent)
	rg.GET("/mistakes", h.Mistakes)
}

func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		apperr.Respond(c, logger.FromContext(c, h.log), err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Recent 处理 GET /records/recent?limit=N，无法解析的 limit 按默认值处理
func (h *Handler) Recent(c *gin.Context) {
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil {
		limit = DefaultRecentLimit
	}
	records, err := h.svc.Recent(c.Request.Context(), limit)
	if err != nil {
		apperr.Respond(c, logger.FromContext(c, h.log), err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h *Handler) Mistakes(c *gin.Context) {
	mistakes, err := h.svc.Mistakes(c.Request.Context())
	if err != nil {
		apperr.Respond(c, logger.FromContext(c, h.log), err)
		return
	}
	c.JSON(http.StatusOK, mistakes)
}
