package character

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/SlpAus/hanzi-flashcard-backend/internal/platform/apperr"
	"github.com/SlpAus/hanzi-flashcard-backend/internal/platform/logger"
	"github.com/gin-gonic/gin"
)

// Handler 把 Service 暴露为 REST 接口
type Handler struct {
	svc *Service
	log *slog.Logger
}

// NewHandler 创建处理器
func NewHandler(svc *Service, log *slog.Logger) *Handler {
	return &Handler{svc: svc, log: logger.Module(log, "character")}
}

// AddRequest 是添加单个汉字的请求体
type AddRequest struct {
	Character string `json:"character"`
}

// BatchRequest 是批量添加的请求体
type BatchRequest struct {
	Characters string `json:"characters"`
}

// MarkRequest 是判定请求体，缺省视为不认识
type MarkRequest struct {
	Recognized bool `json:"recognized"`
}

// Register 注册 /characters 下的全部路由
func (h *Handler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/characters")
	g.GET("", h.List)
	g.POST("", h.Add)
	g.POST("/batch", h.AddBatch)
	g.GET("/random", h.Random)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.UpdateDetails)
	g.DELETE("/:id", h.Delete)
	g.POST("/:id/mark", h.Mark)
	g.POST("/:id/reset", h.Reset)
}

func (h *Handler) fail(c *gin.Context, err error) {
	apperr.Respond(c, logger.FromContext(c, h.log), err)
}

// parseID 解析路径中的ID，无法解析的ID等同于不存在
func (h *Handler) parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		h.fail(c, ErrNotFound)
		return 0, false
	}
	return uint(id), true
}

// List 返回全部汉字
func (h *Handler) List(c *gin.Context) {
	chars, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	if chars == nil {
		chars = []Character{}
	}
	c.JSON(http.StatusOK, chars)
}

// Add 添加单个汉字
func (h *Handler) Add(c *gin.Context) {
	var body AddRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.fail(c, ErrNotSingle)
		return
	}
	ch, err := h.svc.Add(c.Request.Context(), body.Character)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, ch)
}

// AddBatch 从一段文本中批量添加汉字
func (h *Handler) AddBatch(c *gin.Context) {
	var body BatchRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.fail(c, ErrEmptyBatch)
		return
	}
	res, err := h.svc.AddBatch(c.Request.Context(), body.Characters)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// Get 返回单个汉字
func (h *Handler) Get(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	ch, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ch)
}

// UpdateDetails 覆盖详情字段，请求体中缺少的字段会被清空
func (h *Handler) UpdateDetails(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	var body Details
	if err := c.ShouldBindJSON(&body); err != nil {
		h.fail(c, ErrBadRequest)
		return
	}
	ch, err := h.svc.UpdateDetails(c.Request.Context(), id, body)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ch)
}

// Delete 删除汉字及其学习记录
func (h *Handler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "删除成功"})
}

// Random 随机选取一个汉字。?mastered=true 时从已掌握的汉字中选。
func (h *Handler) Random(c *gin.Context) {
	mastered := false
	if raw := c.Query("mastered"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			h.fail(c, ErrBadMastered)
			return
		}
		mastered = v
	}
	ch, msg, err := h.svc.PickRandom(c.Request.Context(), mastered)
	if err != nil {
		h.fail(c, err)
		return
	}
	if ch == nil {
		c.JSON(http.StatusOK, gin.H{"message": msg})
		return
	}
	c.JSON(http.StatusOK, ch)
}

// Mark 提交一次认识/不认识的判定
func (h *Handler) Mark(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	var body MarkRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			h.fail(c, ErrBadRequest)
			return
		}
	}
	ch, err := h.svc.Mark(c.Request.Context(), id, body.Recognized)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ch)
}

// Reset 清除学习进度
func (h *Handler) Reset(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	ch, err := h.svc.Reset(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ch)
}
